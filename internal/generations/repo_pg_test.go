package generations

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	cv := GeneratedCV{
		ID:             "gen-1",
		UserID:         "user-1",
		DocumentID:     "doc-1",
		FileName:       "cv.pdf",
		JobDescription: "backend role",
		OptimizedText:  "JANE DOE",
		Language:       "english",
		OriginalScore:  45,
		OptimizedScore: 78,
		CreatedAt:      time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO generations").
		WithArgs(
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
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), cv); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT .+ FROM generations").
		WithArgs("user-1", "missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.GetByID(context.Background(), "user-1", "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoMarkDownloadedFirstCall(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("UPDATE generations").
		WithArgs("user-1", "gen-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	first, err := repo.MarkDownloaded(context.Background(), "user-1", "gen-1")
	if err != nil {
		t.Fatalf("MarkDownloaded: %v", err)
	}
	if !first {
		t.Fatalf("expected first=true when a row was flipped")
	}
}

func TestPGRepoMarkDownloadedAlreadyFlipped(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("UPDATE generations").
		WithArgs("user-1", "gen-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	first, err := repo.MarkDownloaded(context.Background(), "user-1", "gen-1")
	if err != nil {
		t.Fatalf("MarkDownloaded: %v", err)
	}
	if first {
		t.Fatalf("expected first=false when no row matched")
	}
}

func TestPGRepoClaimGuest(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("UPDATE generations").
		WithArgs("user-1", "guest:abc").
		WillReturnResult(sqlmock.NewResult(0, 2))

	moved, err := repo.ClaimGuest(context.Background(), "guest:abc", "user-1")
	if err != nil {
		t.Fatalf("ClaimGuest: %v", err)
	}
	if moved != 2 {
		t.Fatalf("expected 2 rows moved, got %d", moved)
	}
}
