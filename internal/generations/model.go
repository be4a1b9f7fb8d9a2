package generations

import "time"

// GeneratedCV is one stored generation: the optimized resume text produced
// for a document against a job description, with both ATS scores.
type GeneratedCV struct {
	ID             string
	UserID         string
	DocumentID     string
	FileName       string
	JobDescription string
	OptimizedText  string
	Language       string
	OriginalScore  int
	OptimizedScore int
	Downloaded     bool
	CreatedAt      time.Time
}
