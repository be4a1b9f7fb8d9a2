package generations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"cvbien-backend/internal/ats"
	"cvbien-backend/internal/credits"
	"cvbien-backend/internal/display"
	"cvbien-backend/internal/documents"
	"cvbien-backend/internal/extract"
	"cvbien-backend/internal/llm"
	"cvbien-backend/internal/render"
	"cvbien-backend/internal/shared/metrics"
	"cvbien-backend/internal/shared/storage/object"
	"cvbien-backend/internal/shared/telemetry"
)

// CreditLedger is the slice of the credits service the workflow needs.
type CreditLedger interface {
	Balance(ctx context.Context, userID string) (int, error)
	Consume(ctx context.Context, userID string, n int) (int, error)
	Grant(ctx context.Context, userID string, n int) (int, error)
}

// ErrInsufficientCredits mirrors the credits package sentinel so handlers can
// map it without importing the ledger implementation.
var ErrInsufficientCredits = errors.New("insufficient credits")

// Service runs the generation workflow: extract, score, rewrite, score again,
// persist. Preview and download read back stored generations.
type Service struct {
	Repo    Repo
	DocRepo documents.DocumentsRepo
	Store   object.ObjectStore
	LLM     llm.Client
	Credits CreditLedger
}

// Preview is the render-ready view of a generation.
type Preview struct {
	Generation GeneratedCV
	Lines      []display.Line
}

// Create runs one generation. A credit is required up front but not
// consumed; consumption happens on the first successful download. A rewrite
// failure aborts the whole generation with nothing persisted.
func (s *Service) Create(ctx context.Context, userID, documentID, jobDescription string) (GeneratedCV, error) {
	jobDescription = strings.TrimSpace(jobDescription)
	if userID == "" || jobDescription == "" {
		return GeneratedCV{}, ErrInvalidInput
	}

	balance, err := s.Credits.Balance(ctx, userID)
	if err != nil {
		return GeneratedCV{}, err
	}
	if balance < 1 {
		return GeneratedCV{}, ErrInsufficientCredits
	}

	doc, err := s.resolveDocument(ctx, userID, documentID)
	if err != nil {
		return GeneratedCV{}, err
	}

	metrics.IncGenerationStarted()
	started := time.Now()

	resumeText := extract.TextOrFallback(ctx, s.Store, doc.StorageKey, doc.MimeType, doc.FileName)
	originalScore := ats.Score(resumeText, jobDescription, ats.FloorNone)
	language := llm.DetectLanguage(jobDescription)

	optimized, err := s.LLM.Rewrite(ctx, llm.RewriteInput{
		ResumeText:     resumeText,
		JobDescription: jobDescription,
		Language:       language,
	})
	if err != nil {
		metrics.IncGenerationFailed()
		telemetry.Error("generation.rewrite_failed", map[string]any{
			"user_id":     userID,
			"document_id": doc.ID,
			"error":       err.Error(),
		})
		return GeneratedCV{}, fmt.Errorf("%w: %v", ErrRewriteFailed, err)
	}

	optimizedScore := ats.Score(optimized, jobDescription, ats.FloorOptimizedMinimum)

	cv := GeneratedCV{
		ID:             uuid.NewString(),
		UserID:         userID,
		DocumentID:     doc.ID,
		FileName:       doc.FileName,
		JobDescription: jobDescription,
		OptimizedText:  optimized,
		Language:       language,
		OriginalScore:  originalScore,
		OptimizedScore: optimizedScore,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, cv); err != nil {
		metrics.IncGenerationFailed()
		return GeneratedCV{}, err
	}

	metrics.IncGenerationCompleted()
	metrics.ObserveGenerationDuration(time.Since(started))
	telemetry.Info("generation.complete", map[string]any{
		"generation_id":   cv.ID,
		"user_id":         userID,
		"document_id":     doc.ID,
		"language":        language,
		"original_score":  originalScore,
		"optimized_score": optimizedScore,
	})
	return cv, nil
}

// resolveDocument loads the requested document, or the user's most recent
// upload when no ID is given.
func (s *Service) resolveDocument(ctx context.Context, userID, documentID string) (documents.Document, error) {
	var doc documents.Document
	var err error
	if documentID == "" {
		doc, err = s.DocRepo.GetCurrentByUser(ctx, userID)
	} else {
		doc, err = s.DocRepo.GetByID(ctx, userID, documentID)
	}
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			return documents.Document{}, ErrNotFound
		}
		return documents.Document{}, err
	}
	return doc, nil
}

// Get returns a generation by ID for a user.
func (s *Service) Get(ctx context.Context, userID, generationID string) (GeneratedCV, error) {
	if userID == "" || generationID == "" {
		return GeneratedCV{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, generationID)
}

// List returns generations for a user ordered newest-first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]GeneratedCV, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// GetPreview returns the formatted display lines of a generation. Previews
// never consume credits.
func (s *Service) GetPreview(ctx context.Context, userID, generationID string) (Preview, error) {
	cv, err := s.Get(ctx, userID, generationID)
	if err != nil {
		return Preview{}, err
	}
	return Preview{
		Generation: cv,
		Lines:      display.FormatLines(cv.OptimizedText),
	}, nil
}

// Download renders the generation as a PDF and charges one credit the first
// time the PDF is actually produced. A render failure leaves the balance and
// the downloaded flag untouched; repeat downloads are free.
func (s *Service) Download(ctx context.Context, userID, generationID string) ([]byte, GeneratedCV, error) {
	cv, err := s.Get(ctx, userID, generationID)
	if err != nil {
		return nil, GeneratedCV{}, err
	}

	pdfBytes, err := render.BuildPDF(display.FormatLines(cv.OptimizedText))
	if err != nil {
		return nil, GeneratedCV{}, err
	}

	if !cv.Downloaded {
		if _, err := s.Credits.Consume(ctx, userID, 1); err != nil {
			if errors.Is(err, credits.ErrInsufficientCredits) {
				return nil, GeneratedCV{}, ErrInsufficientCredits
			}
			return nil, GeneratedCV{}, err
		}
		first, err := s.Repo.MarkDownloaded(ctx, userID, generationID)
		if err != nil {
			return nil, GeneratedCV{}, err
		}
		if first {
			metrics.IncCreditConsumed()
		} else {
			// Lost a race against a concurrent first download; hand the
			// credit back rather than double-charging.
			if _, err := s.Credits.Grant(ctx, userID, 1); err != nil {
				telemetry.Error("generation.credit_refund_failed", map[string]any{
					"generation_id": generationID,
					"user_id":       userID,
					"error":         err.Error(),
				})
			}
		}
		cv.Downloaded = true
	}

	metrics.IncDownload()
	return pdfBytes, cv, nil
}
