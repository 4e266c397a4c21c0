package realtime

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records bus and registry activity. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	connections prometheus.Gauge
	published   *prometheus.CounterVec
	delivered   prometheus.Counter
	dropped     *prometheus.CounterVec
}

// NewMetrics registers the realtime metrics on the provided registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return nil
	}
	connections := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "realtime_connections",
		Help: "Live realtime connections.",
	})
	published := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "realtime_notifications_published_total",
		Help: "Notifications published on the event bus.",
	}, []string{"type"})
	delivered := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "realtime_notifications_delivered_total",
		Help: "Notifications queued for a connection.",
	})
	dropped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "realtime_notifications_dropped_total",
		Help: "Notifications not queued for a connection.",
	}, []string{"reason"})
	reg.MustRegister(connections, published, delivered, dropped)
	return &Metrics{
		connections: connections,
		published:   published,
		delivered:   delivered,
		dropped:     dropped,
	}
}

func (m *Metrics) setConnections(n int) {
	if m == nil {
		return
	}
	m.connections.Set(float64(n))
}

func (m *Metrics) incPublished(msgType string) {
	if m == nil {
		return
	}
	if msgType == "" {
		msgType = "unknown"
	}
	m.published.WithLabelValues(msgType).Inc()
}

func (m *Metrics) addDelivered(n int) {
	if m == nil || n == 0 {
		return
	}
	m.delivered.Add(float64(n))
}

func (m *Metrics) incDropped(reason string) {
	if m == nil {
		return
	}
	m.dropped.WithLabelValues(reason).Inc()
}
