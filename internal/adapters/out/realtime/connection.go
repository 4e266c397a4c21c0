// Package realtime holds the in-process event bus and the registry of live
// client connections it routes through.
//
// Every connection owns a bounded outbound queue. Publishing resolves the
// subscribed connections under the registry's read lock, releases the lock and
// then offers the encoded message to each queue without blocking: a full
// queue drops the message for that connection only. Delivery is therefore
// at-most-once and best-effort, and publishing never fails because a
// subscriber is slow or gone.
//
// Messages published on one goroutine reach each connection's queue in
// publish order.
package realtime

import (
	"sync"
	"sync/atomic"
	"time"

	"fueldelivery/internal/core/domain/model/kernel"
)

type enqueueResult int

const (
	enqueued enqueueResult = iota
	droppedFull
	droppedClosed
)

// Connection is one live client session.
type Connection struct {
	id       string
	identity *kernel.UUID

	// mu guards closed and the send on queue, so a deregistration racing a
	// publish never sends on a closed channel.
	mu     sync.Mutex
	closed bool
	queue  chan []byte

	lastSeen atomic.Int64
}

func newConnection(id string, identity *kernel.UUID, bufferSize int, now time.Time) *Connection {
	c := &Connection{
		id:       id,
		identity: identity,
		queue:    make(chan []byte, bufferSize),
	}
	c.lastSeen.Store(now.UnixNano())
	return c
}

func (c *Connection) ID() string { return c.id }

// Identity returns the bound user, if any.
func (c *Connection) Identity() (kernel.UUID, bool) {
	if c.identity == nil {
		return kernel.UUID{}, false
	}
	return *c.identity, true
}

// Outbound yields encoded messages for the writer. It is closed once the
// connection is deregistered.
func (c *Connection) Outbound() <-chan []byte {
	return c.queue
}

func (c *Connection) LastSeen() time.Time {
	return time.Unix(0, c.lastSeen.Load())
}

func (c *Connection) touch(now time.Time) {
	c.lastSeen.Store(now.UnixNano())
}

func (c *Connection) enqueue(msg []byte) enqueueResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return droppedClosed
	}
	select {
	case c.queue <- msg:
		return enqueued
	default:
		return droppedFull
	}
}

func (c *Connection) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.queue)
}
