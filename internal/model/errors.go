package model

import (
	"context"
	"errors"
	"fmt"
)

// Error classes. Callers classify failures with errors.Is against these.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnavailable  = errors.New("unavailable")
)

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = fmt.Errorf("player %w", ErrNotFound)
	ErrDuplicateID    = fmt.Errorf("%w: id already exists", ErrConflict)

	// Score errors
	ErrScoreNotFound      = fmt.Errorf("score %w", ErrNotFound)
	ErrScoreOwnerMismatch = fmt.Errorf("%w: score belongs to another player", ErrConflict)
	ErrInvalidScore       = fmt.Errorf("%w: strokes and par must be positive", ErrInvalidInput)

	// Calculation errors
	ErrMismatchedSeries = fmt.Errorf("%w: series lengths differ", ErrInvalidInput)
	ErrInvalidName      = fmt.Errorf("%w: display name is required", ErrInvalidInput)
)

// IsTransient reports whether err may succeed on retry. Domain errors and
// context cancellation are final.
func IsTransient(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	}
	return true
}
