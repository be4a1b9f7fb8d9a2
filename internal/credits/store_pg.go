package credits

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type pgStore struct {
	DB *sql.DB
}

// NewPGStore constructs a Postgres-backed credit store.
func NewPGStore(db *sql.DB) *pgStore {
	return &pgStore{DB: db}
}

func (s *pgStore) Get(ctx context.Context, userID string) (Balance, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return Balance{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()
	b, err := s.lockAndEnsure(ctx, tx, userID)
	if err != nil {
		return Balance{}, err
	}
	if err = tx.Commit(); err != nil {
		return Balance{}, err
	}
	return b, nil
}

func (s *pgStore) Consume(ctx context.Context, userID string, n int) (Balance, error) {
	if n <= 0 {
		return s.Get(ctx, userID)
	}
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return Balance{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	b, err := s.lockAndEnsure(ctx, tx, userID)
	if err != nil {
		return Balance{}, err
	}
	if b.Credits < n {
		err = ErrInsufficientCredits
		return Balance{}, err
	}
	b.Credits -= n
	b.UpdatedAt = time.Now().UTC()
	if _, err = tx.ExecContext(ctx, `
UPDATE credits SET credits = $1, updated_at = $2 WHERE user_id = $3`, b.Credits, b.UpdatedAt, userID); err != nil {
		return Balance{}, err
	}
	if err = tx.Commit(); err != nil {
		return Balance{}, err
	}
	return b, nil
}

func (s *pgStore) Grant(ctx context.Context, userID string, n int) (Balance, error) {
	if n <= 0 {
		return s.Get(ctx, userID)
	}
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return Balance{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	b, err := s.lockAndEnsure(ctx, tx, userID)
	if err != nil {
		return Balance{}, err
	}
	b.Credits += n
	b.UpdatedAt = time.Now().UTC()
	if _, err = tx.ExecContext(ctx, `
UPDATE credits SET credits = $1, updated_at = $2 WHERE user_id = $3`, b.Credits, b.UpdatedAt, userID); err != nil {
		return Balance{}, err
	}
	if err = tx.Commit(); err != nil {
		return Balance{}, err
	}
	return b, nil
}

func (s *pgStore) lockAndEnsure(ctx context.Context, tx *sql.Tx, userID string) (Balance, error) {
	b := Balance{UserID: userID}
	row := tx.QueryRowContext(ctx, `
SELECT credits, updated_at FROM credits WHERE user_id = $1 FOR UPDATE`, userID)
	err := row.Scan(&b.Credits, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			b.Credits = StarterCredits
			b.UpdatedAt = time.Now().UTC()
			if _, err = tx.ExecContext(ctx, `
INSERT INTO credits (user_id, credits, updated_at) VALUES ($1, $2, $3)`,
				userID, b.Credits, b.UpdatedAt); err != nil {
				return Balance{}, err
			}
			return b, nil
		}
		return Balance{}, err
	}
	return b, nil
}

var _ Store = (*pgStore)(nil)
