package catalog

import "errors"

var (
	// ErrValidation matches every *ValidationError via errors.Is.
	ErrValidation = errors.New("invalid book input")
	ErrNotFound   = errors.New("book not found")
	// ErrInternal signals a failed post-write consistency check.
	ErrInternal = errors.New("catalog internal error")
)

const (
	ReasonMissingName      = "missing name"
	ReasonReadPageExceeds  = "readPage exceeds pageCount"
	ReasonNegativePages    = "pageCount must not be negative"
	ReasonNegativeReadPage = "readPage must not be negative"
)

// ValidationError describes rejected input. Reason is a stable
// machine-oriented string, Detail is the text shown to clients.
type ValidationError struct {
	Reason string
	Detail string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
