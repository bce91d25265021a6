// Package errors provides consistent error types for Mitraa.
// It defines three main categories: ValidationError (fixable by the user),
// StorageError (the durable store could not be written) and ParseError
// (stored data could not be decoded and was treated as absent).
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common conditions.
var (
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrKeyNotFound       = errors.New("key not found")
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidColor      = errors.New("invalid color format")
	ErrInvalidMood       = errors.New("mood must be between 1 and 5")
	ErrTemplateNotFound  = errors.New("template not found")
	ErrNotCompleted      = errors.New("challenge is not completed yet")
	ErrStoreUnavailable  = errors.New("store unavailable")
	ErrLockHeld          = errors.New("data directory locked by another process")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrDiskFull          = errors.New("insufficient disk space")
)

// ValidationError represents input the user can correct.
// Creation and check-in reject before any state is mutated.
type ValidationError struct {
	Field      string // The field/input that caused the error
	Value      string // The invalid value (optional)
	Message    string // What happened
	Suggestion string // How to fix it
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	if e.Value != "" {
		msg = fmt.Sprintf("%s: '%s'", msg, e.Value)
	}
	return msg
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message, suggestion string) *ValidationError {
	return &ValidationError{
		Field:      field,
		Message:    message,
		Suggestion: suggestion,
	}
}

// NewValidationErrorWithValue creates a new ValidationError carrying the rejected value.
func NewValidationErrorWithValue(field, value, message, suggestion string) *ValidationError {
	return &ValidationError{
		Field:      field,
		Value:      value,
		Message:    message,
		Suggestion: suggestion,
	}
}

// StorageError represents a failed write (or unreachable read) against the durable store.
// The in-memory state that triggered the write is still valid, only unsynced.
type StorageError struct {
	Op    string // The operation that failed (e.g. "save", "load")
	Key   string // The store key involved
	Cause error  // The underlying error
}

func (e *StorageError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("storage %s failed for %s: %v", e.Op, e.Key, e.Cause)
	}
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Cause)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a new StorageError.
func NewStorageError(op, key string, cause error) *StorageError {
	return &StorageError{
		Op:    op,
		Key:   key,
		Cause: cause,
	}
}

// ParseError reports stored content that could not be decoded.
// It is logged and never returned to callers of the repository.
type ParseError struct {
	Key   string
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed data at %s: %v", e.Key, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a new ParseError.
func NewParseError(key string, cause error) *ParseError {
	return &ParseError{Key: key, Cause: cause}
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStorageError checks if an error is a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// IsParseError checks if an error is a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// AsValidationError extracts a ValidationError from an error chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// AsStorageError extracts a StorageError from an error chain.
func AsStorageError(err error) (*StorageError, bool) {
	var se *StorageError
	ok := errors.As(err, &se)
	return se, ok
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted additional context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// New is re-exported from the standard errors package for convenience.
func New(text string) error {
	return errors.New(text)
}

// Is is re-exported from the standard errors package for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is re-exported from the standard errors package for convenience.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
