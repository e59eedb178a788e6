package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector implements MetricsCollector using Prometheus
type Collector struct {
	messagesPublished *prometheus.CounterVec
	framesDelivered   *prometheus.CounterVec
	framesDropped     *prometheus.CounterVec
	connections       prometheus.Gauge
	broadcastLatency  prometheus.Histogram
}

// NewCollector creates a new Prometheus metrics collector
func NewCollector() *Collector {
	return &Collector{
		messagesPublished: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "livefeed_messages_published_total",
				Help: "Total number of messages published to the feed",
			},
			[]string{"kind"},
		),
		framesDelivered: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "livefeed_frames_delivered_total",
				Help: "Total number of frames written to WebSocket clients",
			},
			[]string{"kind"},
		),
		framesDropped: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "livefeed_frames_dropped_total",
				Help: "Total number of frames dropped before delivery",
			},
			[]string{"reason"},
		),
		connections: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "livefeed_ws_connections",
				Help: "Number of currently connected WebSocket clients",
			},
		),
		broadcastLatency: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "livefeed_broadcast_latency_seconds",
				Help:    "Time from publication to event bus hand-off",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),
	}
}

// IncMessagesPublished increments the count of published messages
func (c *Collector) IncMessagesPublished(kind string) {
	c.messagesPublished.WithLabelValues(kind).Inc()
}

// IncFramesDelivered increments the count of frames written to clients
func (c *Collector) IncFramesDelivered(kind string) {
	c.framesDelivered.WithLabelValues(kind).Inc()
}

// IncFramesDropped increments the count of dropped frames
func (c *Collector) IncFramesDropped(reason string) {
	c.framesDropped.WithLabelValues(reason).Inc()
}

// IncConnections increments the connected client gauge
func (c *Collector) IncConnections() {
	c.connections.Inc()
}

// DecConnections decrements the connected client gauge
func (c *Collector) DecConnections() {
	c.connections.Dec()
}

// ObserveBroadcastLatency records the publication hand-off latency
func (c *Collector) ObserveBroadcastLatency(d time.Duration) {
	c.broadcastLatency.Observe(d.Seconds())
}
