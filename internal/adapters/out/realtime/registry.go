package realtime

import (
	"slices"
	"sync"
	"time"

	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/pkg/errs"

	"github.com/google/uuid"
)

const DefaultBufferSize = 64

// Registry tracks live connections, their identities and their topic
// subscriptions. All indexes are updated under one lock so a connection is
// either fully registered or fully gone.
type Registry struct {
	mu          sync.RWMutex
	connections map[string]*Connection
	topics      map[string]map[string]*Connection
	byConn      map[string]map[string]struct{}
	byUser      map[kernel.UUID]map[string]*Connection

	bufferSize int
	metrics    *Metrics
	now        func() time.Time
}

// NewRegistry creates an empty registry. bufferSize bounds each connection's
// outbound queue; metrics may be nil.
func NewRegistry(bufferSize int, metrics *Metrics) *Registry {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Registry{
		connections: make(map[string]*Connection),
		topics:      make(map[string]map[string]*Connection),
		byConn:      make(map[string]map[string]struct{}),
		byUser:      make(map[kernel.UUID]map[string]*Connection),
		bufferSize:  bufferSize,
		metrics:     metrics,
		now:         time.Now,
	}
}

// Register creates a connection. identity may be nil for anonymous listeners.
func (r *Registry) Register(identity *kernel.UUID) *Connection {
	var bound *kernel.UUID
	if identity != nil {
		id := *identity
		bound = &id
	}
	conn := newConnection(uuid.NewString(), bound, r.bufferSize, r.now())

	r.mu.Lock()
	r.connections[conn.id] = conn
	r.byConn[conn.id] = make(map[string]struct{})
	if bound != nil {
		users := r.byUser[*bound]
		if users == nil {
			users = make(map[string]*Connection)
			r.byUser[*bound] = users
		}
		users[conn.id] = conn
	}
	total := len(r.connections)
	r.mu.Unlock()

	r.metrics.setConnections(total)
	return conn
}

// Deregister removes the connection with all its subscriptions and closes its
// outbound queue. It reports whether the connection was registered.
func (r *Registry) Deregister(connectionID string) bool {
	r.mu.Lock()
	conn, ok := r.connections[connectionID]
	if !ok {
		r.mu.Unlock()
		return false
	}

	for topic := range r.byConn[connectionID] {
		r.removeSubscriber(topic, connectionID)
	}
	delete(r.byConn, connectionID)
	delete(r.connections, connectionID)
	if conn.identity != nil {
		users := r.byUser[*conn.identity]
		delete(users, connectionID)
		if len(users) == 0 {
			delete(r.byUser, *conn.identity)
		}
	}
	total := len(r.connections)
	r.mu.Unlock()

	conn.close()
	r.metrics.setConnections(total)
	return true
}

// Subscribe adds topic to the connection's subscriptions. Subscribing twice
// is a no-op.
func (r *Registry) Subscribe(connectionID, topic string) error {
	if topic == "" {
		return errs.NewValueIsRequiredError("topic")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	conn, ok := r.connections[connectionID]
	if !ok {
		return errs.NewObjectNotFoundError("connection", connectionID)
	}

	subscribers := r.topics[topic]
	if subscribers == nil {
		subscribers = make(map[string]*Connection)
		r.topics[topic] = subscribers
	}
	subscribers[connectionID] = conn
	r.byConn[connectionID][topic] = struct{}{}
	return nil
}

// Unsubscribe removes topic from the connection's subscriptions.
func (r *Registry) Unsubscribe(connectionID, topic string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.connections[connectionID]; !ok {
		return errs.NewObjectNotFoundError("connection", connectionID)
	}
	r.removeSubscriber(topic, connectionID)
	delete(r.byConn[connectionID], topic)
	return nil
}

func (r *Registry) removeSubscriber(topic, connectionID string) {
	subscribers := r.topics[topic]
	delete(subscribers, connectionID)
	if len(subscribers) == 0 {
		delete(r.topics, topic)
	}
}

// SubscriptionsOf returns the ids of the connections subscribed to topic, sorted.
func (r *Registry) SubscriptionsOf(topic string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.topics[topic]))
	for id := range r.topics[topic] {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// TopicsOf returns the topics a connection is subscribed to, sorted.
func (r *Registry) TopicsOf(connectionID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	topics := make([]string, 0, len(r.byConn[connectionID]))
	for topic := range r.byConn[connectionID] {
		topics = append(topics, topic)
	}
	slices.Sort(topics)
	return topics
}

// ConnectionsOf returns the ids of the connections bound to userID, sorted.
func (r *Registry) ConnectionsOf(userID kernel.UUID) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.byUser[userID]))
	for id := range r.byUser[userID] {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Identity returns the user bound to a connection, or nil when anonymous.
func (r *Registry) Identity(connectionID string) (*kernel.UUID, error) {
	conn, ok := r.lookup(connectionID)
	if !ok {
		return nil, errs.NewObjectNotFoundError("connection", connectionID)
	}

	id, bound := conn.Identity()
	if !bound {
		return nil, nil
	}
	return &id, nil
}

// Touch marks the connection as alive.
func (r *Registry) Touch(connectionID string) {
	if conn, ok := r.lookup(connectionID); ok {
		conn.touch(r.now())
	}
}

// Stale returns the connections not touched since cutoff.
func (r *Registry) Stale(cutoff time.Time) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []string
	for id, conn := range r.connections {
		if conn.LastSeen().Before(cutoff) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// Stats is a point-in-time view of the registry.
type Stats struct {
	Connections   int
	Topics        int
	Subscriptions int
}

func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := Stats{Connections: len(r.connections), Topics: len(r.topics)}
	for _, topics := range r.byConn {
		s.Subscriptions += len(topics)
	}
	return s
}

func (r *Registry) lookup(connectionID string) (*Connection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conn, ok := r.connections[connectionID]
	return conn, ok
}

// recipients resolves the distinct connections subscribed to any of topics.
// For each connection it also reports the first matching topic.
func (r *Registry) recipients(topics []string) []recipient {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	var out []recipient
	for _, topic := range topics {
		for id, conn := range r.topics[topic] {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, recipient{conn: conn, topic: topic})
		}
	}
	return out
}

type recipient struct {
	conn  *Connection
	topic string
}
