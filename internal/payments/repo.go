package payments

import "context"

// Repo defines persistence operations for transactions.
type Repo interface {
	Create(ctx context.Context, tx Transaction) error
	GetByID(ctx context.Context, userID, transactionID string) (Transaction, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Transaction, error)
	// UpdateStatus moves a transaction from pending to the given status and
	// reports whether this call made the change.
	UpdateStatus(ctx context.Context, userID, transactionID, status string) (bool, error)
}
