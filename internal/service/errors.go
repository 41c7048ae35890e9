package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/wordsplit/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in DictionaryServiceError
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrDictionaryNotFound indicates that the dictionary does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrDictionaryNotFound = errors.New("dictionary not found")

	// ErrDictionaryExists indicates that another dictionary already uses the name.
	// API layer should map this to HTTP 409 Conflict.
	ErrDictionaryExists = errors.New("dictionary already exists")

	// ErrBatchTooLarge indicates that a batch check carries more texts than allowed.
	ErrBatchTooLarge = errors.New("batch exceeds maximum size")
)

// DictionaryServiceError wraps errors from the dictionary service with context.
type DictionaryServiceError struct {
	// Operation is the operation that failed (e.g., "create_dictionary", "check_text")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for DictionaryServiceError.
func (e *DictionaryServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dictionary service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("dictionary service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *DictionaryServiceError) Unwrap() error {
	return e.Err
}

// NewDictionaryServiceError creates a new DictionaryServiceError.
// Known sentinel errors are returned directly without wrapping, and store
// sentinels are translated to their service-level counterparts.
func NewDictionaryServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrDictionaryNotFound), errors.Is(err, store.ErrDictionaryNotFound):
		return ErrDictionaryNotFound
	case errors.Is(err, ErrDictionaryExists), errors.Is(err, store.ErrDictionaryExists):
		return ErrDictionaryExists
	}

	return &DictionaryServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
