package documents

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateAndGetCurrent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	doc := Document{
		ID:         "doc-1",
		UserID:     "guest:abc",
		FileName:   "cv.pdf",
		MimeType:   "application/pdf",
		SizeBytes:  2048,
		StorageKey: "guest-abc/doc-1/cv.pdf",
		CreatedAt:  now,
	}

	mock.ExpectExec("INSERT INTO documents").
		WithArgs(doc.ID, doc.UserID, doc.FileName, doc.MimeType, doc.SizeBytes, doc.StorageKey, doc.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id, user_id, file_name").
		WithArgs(doc.UserID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "file_name", "mime_type", "size_bytes", "storage_key", "extracted_text_key", "extracted_at", "created_at",
		}).AddRow(doc.ID, doc.UserID, doc.FileName, doc.MimeType, doc.SizeBytes, doc.StorageKey, nil, nil, doc.CreatedAt))

	repo := &PGRepo{DB: db}
	if err := repo.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.GetCurrentByUser(context.Background(), doc.UserID)
	if err != nil {
		t.Fatalf("GetCurrentByUser: %v", err)
	}
	if got.ID != doc.ID || got.ExtractedTextKey != "" || got.ExtractedAt != nil {
		t.Fatalf("unexpected document: %+v", got)
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

	mock.ExpectQuery("SELECT id, user_id, file_name").
		WithArgs("guest:abc", "doc-missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := &PGRepo{DB: db}
	if _, err := repo.GetByID(context.Background(), "guest:abc", "doc-missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoUpdateExtractionFirstWins(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	extractedAt := time.Now().UTC()
	mock.ExpectExec("UPDATE documents").
		WithArgs("guest-abc/doc-1/cv.pdf.extracted.txt", extractedAt, "guest:abc", "doc-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := &PGRepo{DB: db}
	if err := repo.UpdateExtraction(context.Background(), "guest:abc", "doc-1", "guest-abc/doc-1/cv.pdf.extracted.txt", extractedAt); err != nil {
		t.Fatalf("UpdateExtraction: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoClaimGuest(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("UPDATE documents").
		WithArgs("google:user-1", "guest:abc").
		WillReturnResult(sqlmock.NewResult(0, 2))

	repo := &PGRepo{DB: db}
	moved, err := repo.ClaimGuest(context.Background(), "guest:abc", "google:user-1")
	if err != nil {
		t.Fatalf("ClaimGuest: %v", err)
	}
	if moved != 2 {
		t.Fatalf("expected 2 claimed documents, got %d", moved)
	}
}
