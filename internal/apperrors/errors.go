package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that the caller is not authenticated.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates that the caller is authenticated but is neither the
// owner of the resource nor an admin.
var ErrForbidden = errors.New("forbidden")

// ErrInsufficientCredits is the sentinel matched by errors.Is for failed debits.
// The concrete value returned by the ledger is an InsufficientCreditsError.
var ErrInsufficientCredits = errors.New("insufficient credits")

// ErrRender indicates a report format strategy could not produce a byte payload.
var ErrRender = errors.New("render failed")

// InsufficientCreditsError carries the have/need amounts so callers can present
// a top-up prompt.
type InsufficientCreditsError struct {
	Have int64
	Need int64
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits: have %d, need %d", e.Have, e.Need)
}

// Is makes errors.Is(err, ErrInsufficientCredits) match.
func (e *InsufficientCreditsError) Is(target error) bool {
	return target == ErrInsufficientCredits
}

// RenderError identifies which format strategy failed.
type RenderError struct {
	Format string
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render failed for format %s: %v", e.Format, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrRender) match.
func (e *RenderError) Is(target error) bool {
	return target == ErrRender
}
