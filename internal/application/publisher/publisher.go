package publisher

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aescanero/livefeed/pkg/domain"
	"github.com/aescanero/livefeed/pkg/ports"
)

// Publisher accepts feed messages, records them in history and fans them
// out to subscribers through the event bus.
type Publisher struct {
	eventBus  ports.EventBus
	store     ports.MessageStore
	metrics   ports.MetricsCollector
	validator *Validator
	logger    *zap.Logger
	topic     string
}

// NewPublisher creates a new feed publisher
func NewPublisher(
	eventBus ports.EventBus,
	store ports.MessageStore,
	metrics ports.MetricsCollector,
	validator *Validator,
	logger *zap.Logger,
	topic string,
) *Publisher {
	return &Publisher{
		eventBus:  eventBus,
		store:     store,
		metrics:   metrics,
		validator: validator,
		logger:    logger,
		topic:     topic,
	}
}

// PublishText validates and publishes a text message
func (p *Publisher) PublishText(ctx context.Context, text string) (*domain.Message, error) {
	msg := domain.Message{
		ID:        uuid.New().String(),
		Kind:      domain.KindText,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	return p.publish(ctx, msg)
}

// PublishBinary validates and publishes a binary message. Connected feed
// clients receive it as a binary frame and drop it; it exists so the
// mismatch path can be exercised end to end.
func (p *Publisher) PublishBinary(ctx context.Context, data []byte) (*domain.Message, error) {
	msg := domain.Message{
		ID:        uuid.New().String(),
		Kind:      domain.KindBinary,
		Data:      data,
		CreatedAt: time.Now().UTC(),
	}

	return p.publish(ctx, msg)
}

func (p *Publisher) publish(ctx context.Context, msg domain.Message) (*domain.Message, error) {
	start := time.Now()

	if err := p.validator.Validate(&msg); err != nil {
		p.logger.Error("message validation failed",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		p.metrics.IncFramesDropped("invalid")
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := p.store.Append(ctx, msg); err != nil {
		p.logger.Error("failed to append to history",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to append to history: %w", err)
	}

	if err := p.eventBus.Publish(ctx, p.topic, msg); err != nil {
		p.logger.Error("failed to publish message",
			zap.String("message_id", msg.ID),
			zap.String("topic", p.topic),
			zap.Error(err))
		return nil, fmt.Errorf("failed to publish message: %w", err)
	}

	p.metrics.IncMessagesPublished(string(msg.Kind))
	p.metrics.ObserveBroadcastLatency(time.Since(start))

	p.logger.Debug("message published",
		zap.String("message_id", msg.ID),
		zap.String("kind", string(msg.Kind)),
		zap.String("topic", p.topic))

	return &msg, nil
}

// Recent returns up to limit of the most recent messages, oldest first
func (p *Publisher) Recent(ctx context.Context, limit int) ([]domain.Message, error) {
	msgs, err := p.store.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return msgs, nil
}

// Count returns the number of messages currently held in history
func (p *Publisher) Count(ctx context.Context) (int64, error) {
	n, err := p.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return n, nil
}

// Topic returns the event bus topic messages are published on
func (p *Publisher) Topic() string {
	return p.topic
}
