package credits

import (
	"context"
	"sync"
	"time"
)

type memoryStore struct {
	mu       sync.Mutex
	balances map[string]Balance
}

// NewMemoryStore constructs an in-memory credit store, used when no database
// is configured.
func NewMemoryStore() *memoryStore {
	return &memoryStore{balances: make(map[string]Balance)}
}

func (s *memoryStore) Get(ctx context.Context, userID string) (Balance, error) {
	if err := ctx.Err(); err != nil {
		return Balance{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureLocked(userID), nil
}

func (s *memoryStore) Consume(ctx context.Context, userID string, n int) (Balance, error) {
	if err := ctx.Err(); err != nil {
		return Balance{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.ensureLocked(userID)
	if n <= 0 {
		return b, nil
	}
	if b.Credits < n {
		return Balance{}, ErrInsufficientCredits
	}
	b.Credits -= n
	b.UpdatedAt = time.Now().UTC()
	s.balances[userID] = b
	return b, nil
}

func (s *memoryStore) Grant(ctx context.Context, userID string, n int) (Balance, error) {
	if err := ctx.Err(); err != nil {
		return Balance{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.ensureLocked(userID)
	if n > 0 {
		b.Credits += n
		b.UpdatedAt = time.Now().UTC()
		s.balances[userID] = b
	}
	return b, nil
}

func (s *memoryStore) ensureLocked(userID string) Balance {
	if b, ok := s.balances[userID]; ok {
		return b
	}
	b := Balance{UserID: userID, Credits: StarterCredits, UpdatedAt: time.Now().UTC()}
	s.balances[userID] = b
	return b
}

var _ Store = (*memoryStore)(nil)
