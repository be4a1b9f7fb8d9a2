package generations

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo, used when no database
// is configured.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]GeneratedCV // userID -> generations
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string][]GeneratedCV)}
}

// Create appends a generated CV for a user.
func (r *MemoryRepo) Create(ctx context.Context, cv GeneratedCV) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[cv.UserID] = append(r.data[cv.UserID], cv)
	return nil
}

// GetByID returns a generated CV by ID for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, generationID string) (GeneratedCV, error) {
	if err := ctx.Err(); err != nil {
		return GeneratedCV{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, cv := range r.data[userID] {
		if cv.ID == generationID {
			return cv, nil
		}
	}
	return GeneratedCV{}, ErrNotFound
}

// ListByUser returns generated CVs newest first, honoring limit/offset.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]GeneratedCV, error) {
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
		return []GeneratedCV{}, nil
	}

	cvs := make([]GeneratedCV, len(stored))
	copy(cvs, stored)
	sort.Slice(cvs, func(i, j int) bool {
		return cvs[i].CreatedAt.After(cvs[j].CreatedAt)
	})

	end := len(cvs)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return cvs[offset:end], nil
}

// MarkDownloaded flips the downloaded flag, reporting whether this call was
// the first.
func (r *MemoryRepo) MarkDownloaded(ctx context.Context, userID, generationID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cvs := r.data[userID]
	for i := range cvs {
		if cvs[i].ID == generationID {
			if cvs[i].Downloaded {
				return false, nil
			}
			cvs[i].Downloaded = true
			r.data[userID] = cvs
			return true, nil
		}
	}
	return false, ErrNotFound
}

var _ Repo = (*MemoryRepo)(nil)

// ClaimGuest reassigns generations owned by a guest identity to an
// authenticated user.
func (r *MemoryRepo) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	moved := r.data[guestUserID]
	if len(moved) == 0 {
		return 0, nil
	}
	for i := range moved {
		moved[i].UserID = authedUserID
	}
	r.data[authedUserID] = append(r.data[authedUserID], moved...)
	delete(r.data, guestUserID)
	return len(moved), nil
}
