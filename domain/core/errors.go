package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input errors
	ErrMissingInput       = errors.New("input file missing")
	ErrUnreadableWorkbook = errors.New("workbook could not be read")
	ErrEmptyWorkbook      = errors.New("workbook has no sheets")

	// Schema errors
	ErrInvalidLetter = errors.New("invalid column letter")
	ErrInvalidSchema = errors.New("invalid column schema")
)

// NewMissingInputError names the input that was not supplied
func NewMissingInputError(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingInput, name)
}

// NewUnreadableWorkbookError wraps a reader failure with the input name
func NewUnreadableWorkbookError(name string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnreadableWorkbook, name, err)
}

// IsInputError reports whether err was caused by a missing or unreadable input
func IsInputError(err error) bool {
	return errors.Is(err, ErrMissingInput) ||
		errors.Is(err, ErrUnreadableWorkbook) ||
		errors.Is(err, ErrEmptyWorkbook)
}
