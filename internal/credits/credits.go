// Package credits tracks the download-credit balance per user. Credits are
// a plain balance: purchases and grants add, successful downloads subtract.
package credits

import (
	"context"
	"errors"
	"time"
)

// StarterCredits is granted to every identity the first time its balance is
// touched, guests included.
const StarterCredits = 3

// ErrInsufficientCredits indicates the balance cannot cover the requested
// consumption.
var ErrInsufficientCredits = errors.New("insufficient credits")

// Balance is one user's credit state.
type Balance struct {
	UserID    string
	Credits   int
	UpdatedAt time.Time
}

// Store defines persistence operations for credit balances.
type Store interface {
	// Get returns the balance, creating it with StarterCredits on first use.
	Get(ctx context.Context, userID string) (Balance, error)
	// Consume atomically subtracts n credits, failing with
	// ErrInsufficientCredits when the balance is too low.
	Consume(ctx context.Context, userID string, n int) (Balance, error)
	// Grant atomically adds n credits.
	Grant(ctx context.Context, userID string, n int) (Balance, error)
}
