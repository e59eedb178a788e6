package ports

import "time"

// NopMetrics is a MetricsCollector that records nothing. Useful for
// tests and for wiring components that do not need metrics.
type NopMetrics struct{}

func (NopMetrics) IncMessagesPublished(string) {}

func (NopMetrics) IncFramesDelivered(string) {}

func (NopMetrics) IncFramesDropped(string) {}

func (NopMetrics) IncConnections() {}

func (NopMetrics) DecConnections() {}

func (NopMetrics) ObserveBroadcastLatency(time.Duration) {}
