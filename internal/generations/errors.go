package generations

import "errors"

var (
	// ErrNotFound indicates the generation does not exist for this user.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the caller supplied bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrRewriteFailed wraps a failure from the rewrite provider. Nothing is
	// persisted and no credit is touched when this is returned.
	ErrRewriteFailed = errors.New("rewrite failed")
)
