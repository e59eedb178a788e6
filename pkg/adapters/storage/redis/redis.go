package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aescanero/livefeed/pkg/domain"
)

const historyKey = "livefeed:messages"

// MessageStore implements MessageStore on a bounded Redis list. Appends
// trim the list to the configured limit so history stays bounded across
// restarts and instances.
type MessageStore struct {
	client *redis.Client
	logger *zap.Logger
	limit  int64
}

// NewMessageStore creates a Redis-backed message store holding at most
// limit messages
func NewMessageStore(client *redis.Client, limit int, logger *zap.Logger) *MessageStore {
	return &MessageStore{
		client: client,
		logger: logger,
		limit:  int64(limit),
	}
}

// Append adds msg to the history and trims it to the limit
func (s *MessageStore) Append(ctx context.Context, msg domain.Message) error {
	// Serialize message
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, historyKey, data)
	pipe.LTrim(ctx, historyKey, -s.limit, -1)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}

	s.logger.Debug("message appended",
		zap.String("message_id", msg.ID),
		zap.String("kind", string(msg.Kind)))

	return nil
}

// Recent returns up to limit of the most recent messages, oldest first
func (s *MessageStore) Recent(ctx context.Context, limit int) ([]domain.Message, error) {
	start := int64(-limit)
	if limit <= 0 {
		start = 0
	}

	entries, err := s.client.LRange(ctx, historyKey, start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	messages := make([]domain.Message, 0, len(entries))
	for _, entry := range entries {
		var msg domain.Message
		if err := json.Unmarshal([]byte(entry), &msg); err != nil {
			s.logger.Error("failed to unmarshal stored message", zap.Error(err))
			continue
		}
		messages = append(messages, msg)
	}

	return messages, nil
}

// Count returns the number of messages currently held
func (s *MessageStore) Count(ctx context.Context) (int64, error) {
	n, err := s.client.LLen(ctx, historyKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}

	return n, nil
}
