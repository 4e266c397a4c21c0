package realtime_test

import (
	"encoding/json"
	"testing"
	"time"

	"fueldelivery/internal/adapters/out/realtime"
	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNotification(content string) ports.Notification {
	return ports.Notification{
		Type:      "chat",
		Payload:   map[string]string{"content": content},
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func decode(t *testing.T, raw []byte) realtime.Envelope {
	t.Helper()
	var env realtime.Envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	return env
}

// gathered sums every sample of the named metric family.
func gathered(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	var sum float64
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, m := range family.GetMetric() {
			sum += m.GetCounter().GetValue() + m.GetGauge().GetValue()
		}
	}
	return sum
}

func drain(conn *realtime.Connection) [][]byte {
	var out [][]byte
	for {
		select {
		case msg, ok := <-conn.Outbound():
			if !ok {
				return out
			}
			out = append(out, msg)
		default:
			return out
		}
	}
}

func TestBus_Publish(t *testing.T) {
	t.Run("should reach every subscriber of the topic and nobody else", func(t *testing.T) {
		r := realtime.NewRegistry(8, nil)
		bus := realtime.NewBus(r, nil, nil)
		a, b, c := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
		aPhone, aLaptop, bConn, cConn := r.Register(&a), r.Register(&a), r.Register(&b), r.Register(&c)
		for _, conn := range []*realtime.Connection{aPhone, aLaptop, bConn} {
			require.NoError(t, r.Subscribe(conn.ID(), "chat:a:b"))
		}
		require.NoError(t, r.Subscribe(cConn.ID(), "chat:b:c"))

		n := bus.Publish([]string{"chat:a:b"}, testNotification("hi"))

		assert.Equal(t, 3, n)
		for _, conn := range []*realtime.Connection{aPhone, aLaptop, bConn} {
			msgs := drain(conn)
			require.Len(t, msgs, 1)
			env := decode(t, msgs[0])
			assert.Equal(t, "chat", env.Type)
			assert.Equal(t, "chat:a:b", env.Topic)
		}
		assert.Empty(t, drain(cConn))
	})

	t.Run("should keep publish order per subscriber", func(t *testing.T) {
		r := realtime.NewRegistry(8, nil)
		bus := realtime.NewBus(r, nil, nil)
		conn := r.Register(nil)
		require.NoError(t, r.Subscribe(conn.ID(), "chat:a:b"))

		bus.Publish([]string{"chat:a:b"}, testNotification("hi"))
		bus.Publish([]string{"chat:a:b"}, testNotification("hello"))

		msgs := drain(conn)
		require.Len(t, msgs, 2)
		assert.Contains(t, string(msgs[0]), `"hi"`)
		assert.Contains(t, string(msgs[1]), `"hello"`)
	})

	t.Run("should deliver once per connection across overlapping topics", func(t *testing.T) {
		r := realtime.NewRegistry(8, nil)
		bus := realtime.NewBus(r, nil, nil)
		conn := r.Register(nil)
		require.NoError(t, r.Subscribe(conn.ID(), "order:1"))
		require.NoError(t, r.Subscribe(conn.ID(), "station:9"))

		n := bus.Publish([]string{"order:1", "station:9"}, testNotification("x"))

		assert.Equal(t, 1, n)
		msgs := drain(conn)
		require.Len(t, msgs, 1)
		assert.Equal(t, "order:1", decode(t, msgs[0]).Topic)
	})

	t.Run("should succeed with zero subscribers", func(t *testing.T) {
		bus := realtime.NewBus(realtime.NewRegistry(8, nil), nil, nil)

		assert.Equal(t, 0, bus.Publish([]string{"order:404"}, testNotification("x")))
	})

	t.Run("should drop for a full queue without blocking the publisher", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		metrics := realtime.NewMetrics(reg)
		r := realtime.NewRegistry(1, metrics)
		bus := realtime.NewBus(r, metrics, nil)
		slow := r.Register(nil)
		fast := r.Register(nil)
		require.NoError(t, r.Subscribe(slow.ID(), "t"))
		require.NoError(t, r.Subscribe(fast.ID(), "t"))

		assert.Equal(t, 2, bus.Publish([]string{"t"}, testNotification("1")))
		drain(fast)
		assert.Equal(t, 1, bus.Publish([]string{"t"}, testNotification("2")))

		assert.Len(t, drain(slow), 1)
		assert.Len(t, drain(fast), 1)
		assert.InDelta(t, 1, gathered(t, reg, "realtime_notifications_dropped_total"), 0)
	})

	t.Run("should not deliver after deregistration", func(t *testing.T) {
		r := realtime.NewRegistry(8, nil)
		bus := realtime.NewBus(r, nil, nil)
		conn := r.Register(nil)
		require.NoError(t, r.Subscribe(conn.ID(), "t"))
		r.Deregister(conn.ID())

		assert.Equal(t, 0, bus.Publish([]string{"t"}, testNotification("x")))
		assert.Empty(t, drain(conn))
	})

	t.Run("should stamp a missing timestamp", func(t *testing.T) {
		r := realtime.NewRegistry(8, nil)
		bus := realtime.NewBus(r, nil, nil)
		conn := r.Register(nil)
		require.NoError(t, r.Subscribe(conn.ID(), "t"))

		bus.Publish([]string{"t"}, ports.Notification{Type: "orderStatusUpdate", Payload: struct{}{}})

		msgs := drain(conn)
		require.Len(t, msgs, 1)
		assert.WithinDuration(t, time.Now(), decode(t, msgs[0]).Timestamp, time.Minute)
	})
}

func TestBus_Send(t *testing.T) {
	r := realtime.NewRegistry(8, nil)
	bus := realtime.NewBus(r, nil, nil)
	conn := r.Register(nil)

	assert.True(t, bus.Send(conn.ID(), ports.Notification{Type: "subscribed", Topic: "order:1"}))
	assert.False(t, bus.Send("missing", ports.Notification{Type: "subscribed"}))

	msgs := drain(conn)
	require.Len(t, msgs, 1)
	assert.Equal(t, "subscribed", decode(t, msgs[0]).Type)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := realtime.NewMetrics(reg)
	r := realtime.NewRegistry(8, metrics)

	a := r.Register(nil)
	r.Register(nil)
	r.Deregister(a.ID())

	assert.InDelta(t, 1, gathered(t, reg, "realtime_connections"), 0)
	assert.Nil(t, realtime.NewMetrics(nil))
}
