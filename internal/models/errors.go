package models

import (
	"errors"
	"fmt"
)

// Custom errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("record not found")
)

// InputError describes a request whose shape cannot be processed at all.
// It matches ErrInvalidInput with errors.Is.
type InputError struct {
	Field  string
	Reason string
}

// NewInputError creates an InputError for the given field
func NewInputError(field, reason string) *InputError {
	return &InputError{Field: field, Reason: reason}
}

func (e *InputError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidInput, e.Reason)
	}
	return fmt.Sprintf("%s: %s %s", ErrInvalidInput, e.Field, e.Reason)
}

// Is reports whether target is ErrInvalidInput
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}
