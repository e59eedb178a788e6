package memory

import (
	"context"
	"sync"

	"github.com/aescanero/livefeed/pkg/domain"
	"github.com/aescanero/livefeed/pkg/ports"
)

// InMemoryEventBus implements EventBus with in-process handlers.
// Handlers are called synchronously in publish order, so subscribers see
// messages exactly as they were published. Suitable for single-node runs
// and tests.
type InMemoryEventBus struct {
	subscribers map[string][]*subscription
	mu          sync.RWMutex
	nextID      int
}

type subscription struct {
	id      int
	handler ports.EventHandler
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus() *InMemoryEventBus {
	return &InMemoryEventBus{
		subscribers: make(map[string][]*subscription),
	}
}

// Publish delivers msg to all subscribers of topic, in subscription
// order. Handler errors do not stop delivery to the remaining handlers.
func (e *InMemoryEventBus) Publish(ctx context.Context, topic string, msg domain.Message) error {
	e.mu.RLock()
	subs := make([]*subscription, len(e.subscribers[topic]))
	copy(subs, e.subscribers[topic])
	e.mu.RUnlock()

	for _, sub := range subs {
		_ = sub.handler(ctx, msg)
	}

	return nil
}

// Subscribe registers handler for topic until ctx is cancelled
func (e *InMemoryEventBus) Subscribe(ctx context.Context, topic string, handler ports.EventHandler) error {
	e.mu.Lock()
	e.nextID++
	sub := &subscription{id: e.nextID, handler: handler}
	e.subscribers[topic] = append(e.subscribers[topic], sub)
	e.mu.Unlock()

	go func() {
		<-ctx.Done()
		e.remove(topic, sub.id)
	}()

	return nil
}

// Unsubscribe removes all subscriptions from a topic
func (e *InMemoryEventBus) Unsubscribe(ctx context.Context, topic string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.subscribers, topic)
	return nil
}

// Close closes the event bus and cleans up resources
func (e *InMemoryEventBus) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.subscribers = make(map[string][]*subscription)
	return nil
}

// SubscriberCount returns the number of active subscriptions on a topic
func (e *InMemoryEventBus) SubscriberCount(topic string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return len(e.subscribers[topic])
}

// remove drops a single subscription from a topic
func (e *InMemoryEventBus) remove(topic string, id int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	subs := e.subscribers[topic]
	for i, sub := range subs {
		if sub.id == id {
			e.subscribers[topic] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
}
