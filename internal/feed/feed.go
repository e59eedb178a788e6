package feed

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// Stats holds the feed's frame counters.
type Stats struct {
	Received uint64
	Appended uint64
	Dropped  uint64
}

// Feed mirrors inbound text frames into a container. Non-text frames are
// dropped with a diagnostic entry naming the payload kind; transport
// errors are logged and nothing else. The feed never reconnects and
// never sends outbound frames.
type Feed struct {
	container Container
	logger    *zap.Logger

	received atomic.Uint64
	appended atomic.Uint64
	dropped  atomic.Uint64
}

// New creates a feed bound to container. A nil container is allowed:
// appends become no-ops while counting and diagnostics continue.
func New(container Container, logger *zap.Logger) *Feed {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Feed{
		container: container,
		logger:    logger,
	}
}

// OnMessage handles one inbound frame. Text frames are appended to the
// container verbatim, exactly one entry per frame, in the order frames
// arrive. Any other kind produces one diagnostic entry and no append.
func (f *Feed) OnMessage(frame Frame) {
	f.received.Add(1)

	if frame.Kind != KindText {
		f.dropped.Add(1)
		f.logger.Warn("dropping non-text frame",
			zap.String("kind", frame.Kind.String()),
			zap.Int("payload_bytes", len(frame.Payload)))
		return
	}

	if f.container == nil {
		return
	}

	f.container.Append(string(frame.Payload))
	f.appended.Add(1)
}

// OnError logs a transport error. No retry, no reconnection, no state
// transition; the connection is left to the environment.
func (f *Feed) OnError(err error) {
	f.logger.Error("transport error", zap.Error(err))
}

// Stats returns a snapshot of the frame counters.
func (f *Feed) Stats() Stats {
	return Stats{
		Received: f.received.Load(),
		Appended: f.appended.Load(),
		Dropped:  f.dropped.Load(),
	}
}
