package generations

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const generationColumns = `id, user_id, document_id, file_name, job_description, optimized_text, language, original_score, optimized_score, downloaded, created_at`

// Create inserts a generated CV.
func (r *PGRepo) Create(ctx context.Context, cv GeneratedCV) error {
	const query = `
INSERT INTO generations (
    id, user_id, document_id, file_name, job_description, optimized_text, language, original_score, optimized_score, downloaded, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.DB.ExecContext(ctx, query,
		cv.ID,
		cv.UserID,
		cv.DocumentID,
		cv.FileName,
		cv.JobDescription,
		cv.OptimizedText,
		cv.Language,
		cv.OriginalScore,
		cv.OptimizedScore,
		cv.Downloaded,
		cv.CreatedAt,
	)
	return err
}

// GetByID returns a generated CV by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, generationID string) (GeneratedCV, error) {
	const query = `
SELECT ` + generationColumns + `
FROM generations
WHERE user_id = $1 AND id = $2
LIMIT 1`
	var cv GeneratedCV
	err := r.DB.QueryRowContext(ctx, query, userID, generationID).Scan(
		&cv.ID,
		&cv.UserID,
		&cv.DocumentID,
		&cv.FileName,
		&cv.JobDescription,
		&cv.OptimizedText,
		&cv.Language,
		&cv.OriginalScore,
		&cv.OptimizedScore,
		&cv.Downloaded,
		&cv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GeneratedCV{}, ErrNotFound
		}
		return GeneratedCV{}, err
	}
	return cv, nil
}

// ListByUser lists generated CVs ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]GeneratedCV, error) {
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
SELECT ` + generationColumns + `
FROM generations
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GeneratedCV
	for rows.Next() {
		var cv GeneratedCV
		if err := rows.Scan(
			&cv.ID,
			&cv.UserID,
			&cv.DocumentID,
			&cv.FileName,
			&cv.JobDescription,
			&cv.OptimizedText,
			&cv.Language,
			&cv.OriginalScore,
			&cv.OptimizedScore,
			&cv.Downloaded,
			&cv.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, cv)
	}
	return out, rows.Err()
}

// MarkDownloaded flips the downloaded flag. The WHERE clause makes the flip
// atomic: only one caller sees a row affected, so the credit for a first
// download is charged exactly once even under concurrent requests.
func (r *PGRepo) MarkDownloaded(ctx context.Context, userID, generationID string) (bool, error) {
	const query = `
UPDATE generations
SET downloaded = TRUE
WHERE user_id = $1 AND id = $2 AND downloaded = FALSE`
	res, err := r.DB.ExecContext(ctx, query, userID, generationID)
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

// ClaimGuest reassigns generations owned by a guest identity to an
// authenticated user.
func (r *PGRepo) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error) {
	const query = `
UPDATE generations
SET user_id = $1
WHERE user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, authedUserID, guestUserID)
	if err != nil {
		return 0, err
	}
	updated, _ := res.RowsAffected()
	return int(updated), nil
}
