package ports

import (
	"context"
	"time"

	"github.com/aescanero/livefeed/pkg/domain"
)

// EventHandler processes one message delivered by the event bus.
type EventHandler func(ctx context.Context, msg domain.Message) error

// EventBus distributes published messages to subscribers by topic.
type EventBus interface {
	// Publish delivers msg to all subscribers of topic.
	Publish(ctx context.Context, topic string, msg domain.Message) error

	// Subscribe registers handler for topic. The subscription lives until
	// ctx is cancelled.
	Subscribe(ctx context.Context, topic string, handler EventHandler) error

	// Unsubscribe removes all subscriptions from a topic.
	Unsubscribe(ctx context.Context, topic string) error

	// Close closes the event bus and cleans up resources.
	Close() error
}

// MessageStore keeps a bounded, ordered history of published messages.
type MessageStore interface {
	// Append adds msg to the history, evicting the oldest entries beyond
	// the store's limit.
	Append(ctx context.Context, msg domain.Message) error

	// Recent returns up to limit of the most recently appended messages,
	// oldest first.
	Recent(ctx context.Context, limit int) ([]domain.Message, error)

	// Count returns the number of messages currently held.
	Count(ctx context.Context) (int64, error)
}

// MetricsCollector records feed activity.
type MetricsCollector interface {
	IncMessagesPublished(kind string)
	IncFramesDelivered(kind string)
	IncFramesDropped(reason string)
	IncConnections()
	DecConnections()
	ObserveBroadcastLatency(d time.Duration)
}
