package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a lookup matches no live row. Soft-deleted
// rows count as absent.
var ErrNotFound = errors.New("not found")

// ErrInsufficientStock is returned when a conditional inventory decrement
// would drive stock below zero. Nothing is written in that case.
var ErrInsufficientStock = errors.New("insufficient stock")

// ValidationError marks input rejected before any statement was issued.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
