package admin

import (
	"context"
	"database/sql"
)

const (
	recentRows          = 100
	jobDescriptionLimit = 120
)

// PGSource loads dashboard data from Postgres.
type PGSource struct {
	DB *sql.DB
}

// Overview aggregates users, recent transactions, recent generations and the
// headline statistics.
func (s *PGSource) Overview(ctx context.Context) (Overview, error) {
	out := Overview{
		Users:        []UserRow{},
		Transactions: []TransactionRow{},
		Generations:  []GenerationRow{},
	}

	if err := s.loadUsers(ctx, &out); err != nil {
		return Overview{}, err
	}
	if err := s.loadTransactions(ctx, &out); err != nil {
		return Overview{}, err
	}
	if err := s.loadGenerations(ctx, &out); err != nil {
		return Overview{}, err
	}
	if err := s.loadStatistics(ctx, &out); err != nil {
		return Overview{}, err
	}
	return out, nil
}

func (s *PGSource) loadUsers(ctx context.Context, out *Overview) error {
	const query = `
SELECT u.id, u.email, COALESCE(c.credits, 0), u.created_at
FROM users u
LEFT JOIN credits c ON c.user_id = u.id
ORDER BY u.created_at DESC
LIMIT $1`
	rows, err := s.DB.QueryContext(ctx, query, recentRows)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var row UserRow
		if err := rows.Scan(&row.ID, &row.Email, &row.Credits, &row.CreatedAt); err != nil {
			return err
		}
		out.Users = append(out.Users, row)
	}
	return rows.Err()
}

func (s *PGSource) loadTransactions(ctx context.Context, out *Overview) error {
	const query = `
SELECT user_id, amount_cents, credits, status, created_at
FROM transactions
ORDER BY created_at DESC
LIMIT $1`
	rows, err := s.DB.QueryContext(ctx, query, recentRows)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var row TransactionRow
		if err := rows.Scan(&row.UserID, &row.AmountCents, &row.Credits, &row.Status, &row.CreatedAt); err != nil {
			return err
		}
		out.Transactions = append(out.Transactions, row)
	}
	return rows.Err()
}

func (s *PGSource) loadGenerations(ctx context.Context, out *Overview) error {
	const query = `
SELECT user_id, LEFT(job_description, $1), created_at
FROM generations
ORDER BY created_at DESC
LIMIT $2`
	rows, err := s.DB.QueryContext(ctx, query, jobDescriptionLimit, recentRows)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var row GenerationRow
		if err := rows.Scan(&row.UserID, &row.JobDescription, &row.CreatedAt); err != nil {
			return err
		}
		out.Generations = append(out.Generations, row)
	}
	return rows.Err()
}

func (s *PGSource) loadStatistics(ctx context.Context, out *Overview) error {
	const query = `
SELECT
  (SELECT COUNT(*) FROM users),
  (SELECT COALESCE(SUM(credits), 0) FROM transactions WHERE status = 'completed'),
  (SELECT COALESCE(SUM(amount_cents), 0) FROM transactions WHERE status = 'completed'),
  (SELECT COUNT(*) FROM generations)`
	return s.DB.QueryRowContext(ctx, query).Scan(
		&out.Statistics.TotalUsers,
		&out.Statistics.TotalCreditsSold,
		&out.Statistics.TotalRevenueCents,
		&out.Statistics.TotalGenerations,
	)
}

var _ Source = (*PGSource)(nil)
