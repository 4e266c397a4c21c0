package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/core/ports"

	kafkago "github.com/segmentio/kafka-go"
)

// DefaultTopic receives every order event.
const DefaultTopic = "order-changed"

// ErrProducerClosed is returned by Publish after Close.
var ErrProducerClosed = errors.New("kafka producer is closed")

// ErrQueueFull is returned by Publish when the producer is too far behind
// the broker to take another batch. The batch is dropped.
var ErrQueueFull = errors.New("kafka producer queue is full")

const (
	defaultQueueSize    = 256
	defaultWriteTimeout = 10 * time.Second
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Producer writes order events keyed by order id, so all events of one order
// land on the same partition in commit order.
//
// Publish only encodes and enqueues. A single goroutine owned by the producer
// drains the queue, so the caller never waits on the broker.
type Producer struct {
	writer       messageWriter
	writeTimeout time.Duration
	logger       *slog.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan []kafkago.Message
	done   chan struct{}
}

var _ ports.DomainEventPublisher = (*Producer)(nil)

// NewProducer builds a producer over brokers. Brokers are comma separated;
// an empty list yields a Noop publisher.
func NewProducer(brokers, topic string, logger *slog.Logger) ports.DomainEventPublisher {
	addrs := splitBrokers(brokers)
	if len(addrs) == 0 {
		return Noop{}
	}
	if topic == "" {
		topic = DefaultTopic
	}

	return newProducer(&kafkago.Writer{
		Addr:                   kafkago.TCP(addrs...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           defaultWriteTimeout,
		AllowAutoTopicCreation: true,
	}, defaultQueueSize, logger)
}

func newProducer(w messageWriter, queueSize int, logger *slog.Logger) *Producer {
	if logger == nil {
		logger = slog.Default()
	}
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	p := &Producer{
		writer:       w,
		writeTimeout: defaultWriteTimeout,
		logger:       logger.With("component", "kafka_producer"),
		queue:        make(chan []kafkago.Message, queueSize),
		done:         make(chan struct{}),
	}
	go p.run()
	return p
}

// Publish enqueues the order events of the batch. Other events are skipped.
// Broker failures are logged by the writer goroutine and never reach the
// caller: the change the events describe is already committed.
func (p *Producer) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	msgs := make([]kafkago.Message, 0, len(events))
	for _, event := range events {
		oe, ok := orderEventOf(event)
		if !ok {
			continue
		}
		value, err := json.Marshal(oe)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", oe.EventType, err)
		}
		msgs = append(msgs, kafkago.Message{
			Key:   []byte(oe.OrderID),
			Value: value,
			Time:  oe.OccurredAt,
			Headers: []kafkago.Header{
				{Key: "event_type", Value: []byte(oe.EventType)},
			},
		})
	}
	if len(msgs) == 0 {
		return nil
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrProducerClosed
	}
	select {
	case p.queue <- msgs:
		return nil
	default:
		p.logger.WarnContext(ctx, "dropping order events", "count", len(msgs))
		return ErrQueueFull
	}
}

func (p *Producer) run() {
	defer close(p.done)
	for msgs := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), p.writeTimeout)
		if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
			p.logger.Error("failed to write order events", "count", len(msgs), "error", err)
		}
		cancel()
	}
}

// Close stops accepting events, flushes what is queued and closes the writer.
func (p *Producer) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	<-p.done
	return p.writer.Close()
}

// Noop is used when Kafka is not configured.
type Noop struct{}

func (Noop) Publish(context.Context, ...kernel.DomainEvent) error { return nil }

func splitBrokers(brokers string) []string {
	var out []string
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
