package payments

import "errors"

var (
	// ErrNotFound indicates the transaction does not exist for this user.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the caller supplied bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownPack indicates the requested pack is not in the catalog.
	ErrUnknownPack = errors.New("unknown pack")

	// ErrPaymentIncomplete indicates the processor has not confirmed the
	// payment yet; no credits are granted.
	ErrPaymentIncomplete = errors.New("payment incomplete")
)
