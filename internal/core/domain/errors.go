package domain

import (
	"errors"
	"strings"
)

// Catalog errors
var (
	ErrIsbnAlreadyExists = errors.New("Isbn já cadastrado.")
	ErrInvalidBookID     = errors.New("Book id can't be null")
)

// Loan errors
var (
	ErrBookAlreadyLoaned = errors.New("Book already loaned")
	ErrInvalidLoanID     = errors.New("Loan id can't be null")
	ErrBookNotFoundIsbn  = errors.New("Book not found for passed isbn")
)

// ValidationError lists every field that failed validation
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}

// NewValidationError creates a validation error from field messages
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Errors: messages}
}
