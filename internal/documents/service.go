package documents

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"cvbien-backend/internal/shared/storage/object"
)

// allowedMimeTypes is the upload allow-list. The object store sniffs the
// real content type, so a renamed .exe does not pass as a .pdf.
var allowedMimeTypes = map[string]struct{}{
	"text/plain":      {},
	"application/pdf": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
}

var allowedExtensions = map[string]struct{}{
	".txt":  {},
	".pdf":  {},
	".docx": {},
}

// Service contains business logic for documents.
type Service struct {
	Store object.ObjectStore
	Repo  DocumentsRepo
}

// Upload saves the file to object storage and records the document.
func (s *Service) Upload(ctx context.Context, userId, fileName string, r io.Reader) (Document, error) {
	if fileName == "" {
		return Document{}, ErrInvalidInput
	}
	if _, ok := allowedExtensions[strings.ToLower(filepath.Ext(fileName))]; !ok {
		return Document{}, ErrUnsupportedType
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, userId, fileName, r)
	if err != nil {
		return Document{}, err
	}
	if !mimeAllowed(mimeType, fileName) {
		return Document{}, ErrUnsupportedType
	}

	doc := Document{
		ID:         uuid.NewString(),
		UserID:     userId,
		FileName:   fileName,
		MimeType:   mimeType,
		SizeBytes:  size,
		StorageKey: storageKey,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, err
	}

	return doc, nil
}

// mimeAllowed accepts the sniffed mime type directly, or a generic sniff
// result (zip containers and plain octet streams) when the extension is
// already on the allow-list. Content sniffing cannot tell a docx from any
// other zip, and plain text often sniffs as octet-stream.
func mimeAllowed(mimeType, fileName string) bool {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	if _, ok := allowedMimeTypes[clean]; ok {
		return true
	}
	switch clean {
	case "application/zip", "application/octet-stream", "text/plain":
		_, ok := allowedExtensions[strings.ToLower(filepath.Ext(fileName))]
		return ok
	}
	return false
}

// Current returns the most recent document for a user.
func (s *Service) Current(ctx context.Context, userId string) (Document, error) {
	if userId == "" {
		return Document{}, errors.New("user id required")
	}
	return s.Repo.GetCurrentByUser(ctx, userId)
}

// Get returns a document by ID, scoped to the owning user.
func (s *Service) Get(ctx context.Context, userId, documentID string) (Document, error) {
	if userId == "" || documentID == "" {
		return Document{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userId, documentID)
}

// List returns documents for a user, newest first.
func (s *Service) List(ctx context.Context, userId string, limit, offset int) ([]Document, error) {
	if userId == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userId, limit, offset)
}

// MarkExtracted records that a document's text has been extracted and where
// the derived copy lives. First extraction wins.
func (s *Service) MarkExtracted(ctx context.Context, userId, documentID, extractedKey string) error {
	if userId == "" || documentID == "" || extractedKey == "" {
		return ErrInvalidInput
	}
	return s.Repo.UpdateExtraction(ctx, userId, documentID, extractedKey, time.Now().UTC())
}
