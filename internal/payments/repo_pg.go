package payments

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const transactionColumns = `id, user_id, pack_id, credits, amount_cents, currency, status, provider_ref, created_at, updated_at`

// Create inserts a transaction.
func (r *PGRepo) Create(ctx context.Context, tx Transaction) error {
	const query = `
INSERT INTO transactions (id, user_id, pack_id, credits, amount_cents, currency, status, provider_ref, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.DB.ExecContext(ctx, query,
		tx.ID,
		tx.UserID,
		tx.PackID,
		tx.Credits,
		tx.AmountCents,
		tx.Currency,
		tx.Status,
		tx.ProviderRef,
		tx.CreatedAt,
		tx.UpdatedAt,
	)
	return err
}

// GetByID returns a transaction by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, transactionID string) (Transaction, error) {
	const query = `
SELECT ` + transactionColumns + `
FROM transactions
WHERE user_id = $1 AND id = $2
LIMIT 1`
	var tx Transaction
	err := r.DB.QueryRowContext(ctx, query, userID, transactionID).Scan(
		&tx.ID,
		&tx.UserID,
		&tx.PackID,
		&tx.Credits,
		&tx.AmountCents,
		&tx.Currency,
		&tx.Status,
		&tx.ProviderRef,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Transaction{}, ErrNotFound
		}
		return Transaction{}, err
	}
	return tx, nil
}

// ListByUser lists transactions ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Transaction, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT ` + transactionColumns + `
FROM transactions
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		var tx Transaction
		if err := rows.Scan(
			&tx.ID,
			&tx.UserID,
			&tx.PackID,
			&tx.Credits,
			&tx.AmountCents,
			&tx.Currency,
			&tx.Status,
			&tx.ProviderRef,
			&tx.CreatedAt,
			&tx.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

// UpdateStatus moves a pending transaction to its final status. The WHERE
// clause keeps the transition one-way and one-time, so a replayed confirm
// cannot grant credits twice.
func (r *PGRepo) UpdateStatus(ctx context.Context, userID, transactionID, status string) (bool, error) {
	const query = `
UPDATE transactions
SET status = $1, updated_at = $2
WHERE user_id = $3 AND id = $4 AND status = $5`
	res, err := r.DB.ExecContext(ctx, query, status, time.Now().UTC(), userID, transactionID, StatusPending)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

var _ Repo = (*PGRepo)(nil)
