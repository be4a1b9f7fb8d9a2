package llm

import (
	"context"
	"errors"
)

// Client abstracts the provider that rewrites a resume against a job
// description. Implementations return plain text using the inline markup
// conventions consumed by ParseTagged.
type Client interface {
	Rewrite(ctx context.Context, input RewriteInput) (string, error)
}

// RewriteInput carries everything the rewrite prompt needs.
type RewriteInput struct {
	ResumeText     string
	JobDescription string
	Language       string
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// Rewrite returns ErrNotImplemented.
func (PlaceholderClient) Rewrite(ctx context.Context, input RewriteInput) (string, error) {
	_ = ctx
	_ = input
	return "", ErrNotImplemented
}
