package payments

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo, used when no database
// is configured.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Transaction // userID -> transactions
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string][]Transaction)}
}

// Create appends a transaction for a user.
func (r *MemoryRepo) Create(ctx context.Context, tx Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[tx.UserID] = append(r.data[tx.UserID], tx)
	return nil
}

// GetByID returns a transaction by ID for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, transactionID string) (Transaction, error) {
	if err := ctx.Err(); err != nil {
		return Transaction{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, tx := range r.data[userID] {
		if tx.ID == transactionID {
			return tx, nil
		}
	}
	return Transaction{}, ErrNotFound
}

// ListByUser returns transactions newest first, honoring limit/offset.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	stored := r.data[userID]
	r.mu.RUnlock()

	if len(stored) == 0 || offset >= len(stored) {
		return []Transaction{}, nil
	}

	txs := make([]Transaction, len(stored))
	copy(txs, stored)
	sort.Slice(txs, func(i, j int) bool {
		return txs[i].CreatedAt.After(txs[j].CreatedAt)
	})

	end := len(txs)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return txs[offset:end], nil
}

// UpdateStatus moves a pending transaction to its final status.
func (r *MemoryRepo) UpdateStatus(ctx context.Context, userID, transactionID, status string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	txs := r.data[userID]
	for i := range txs {
		if txs[i].ID == transactionID {
			if txs[i].Status != StatusPending {
				return false, nil
			}
			txs[i].Status = status
			txs[i].UpdatedAt = time.Now().UTC()
			r.data[userID] = txs
			return true, nil
		}
	}
	return false, ErrNotFound
}

var _ Repo = (*MemoryRepo)(nil)
