package documents

import "errors"

var (
	// ErrNotFound indicates the requested document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the caller supplied bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates the uploaded file is not txt, pdf or docx.
	ErrUnsupportedType = errors.New("unsupported file type")
)
