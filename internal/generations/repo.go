package generations

import "context"

// Repo defines persistence operations for generated CVs.
type Repo interface {
	Create(ctx context.Context, cv GeneratedCV) error
	GetByID(ctx context.Context, userID, generationID string) (GeneratedCV, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]GeneratedCV, error)
	// MarkDownloaded flips the downloaded flag and reports whether this call
	// was the first to do so.
	MarkDownloaded(ctx context.Context, userID, generationID string) (bool, error)
}
