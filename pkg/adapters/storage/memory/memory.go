package memory

import (
	"context"
	"sync"

	"github.com/aescanero/livefeed/pkg/domain"
)

// InMemoryMessageStore implements MessageStore with a bounded in-memory
// slice. Appends past the limit evict the oldest entries.
type InMemoryMessageStore struct {
	limit    int
	messages []domain.Message
	mu       sync.RWMutex
}

// NewInMemoryMessageStore creates a store holding at most limit messages
func NewInMemoryMessageStore(limit int) *InMemoryMessageStore {
	return &InMemoryMessageStore{limit: limit}
}

// Append adds msg to the history, evicting the oldest entries beyond the
// limit
func (s *InMemoryMessageStore) Append(ctx context.Context, msg domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, msg)
	if len(s.messages) > s.limit {
		overflow := len(s.messages) - s.limit
		s.messages = append([]domain.Message(nil), s.messages[overflow:]...)
	}

	return nil
}

// Recent returns up to limit of the most recent messages, oldest first
func (s *InMemoryMessageStore) Recent(ctx context.Context, limit int) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.messages) {
		limit = len(s.messages)
	}

	out := make([]domain.Message, limit)
	copy(out, s.messages[len(s.messages)-limit:])
	return out, nil
}

// Count returns the number of messages currently held
func (s *InMemoryMessageStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.messages)), nil
}
