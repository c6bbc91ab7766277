// Package errors provides the typed outcomes returned by citation resolution
// and corpus lookups.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for each outcome kind.
var (
	// ErrInvalidFormat indicates a citation string does not match the grammar.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrUnresolvedBook indicates a book token has no registry entry.
	ErrUnresolvedBook = errors.New("unresolved book")
	// ErrNotFound indicates a chapter or song unit is absent from the corpus.
	ErrNotFound = errors.New("not found")
	// ErrStorage indicates the corpus could not be read.
	ErrStorage = errors.New("storage failure")
	// ErrInvalidInput indicates a request value failed validation.
	ErrInvalidInput = errors.New("invalid input")
)

// Outcome kinds as reported to callers and logs.
const (
	KindInvalidFormat  = "invalid_format"
	KindUnresolvedBook = "unresolved_book"
	KindNotFound       = "not_found"
	KindStorage        = "storage_failure"
	KindInvalidInput   = "invalid_input"
	KindInternal       = "internal"
)

// InvalidFormatError carries the original input verbatim for display.
type InvalidFormatError struct {
	Input  string
	Reason string
}

func (e *InvalidFormatError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid citation %q: %s", e.Input, e.Reason)
	}
	return fmt.Sprintf("invalid citation %q", e.Input)
}

func (e *InvalidFormatError) Unwrap() error {
	return ErrInvalidFormat
}

// UnresolvedBookError reports a well-formed citation whose book token is not
// registered for the language. Callers may display Token as-is.
type UnresolvedBookError struct {
	Token    string
	Input    string
	Language string
}

func (e *UnresolvedBookError) Error() string {
	return fmt.Sprintf("unknown book %q in %s citation %q", e.Token, e.Language, e.Input)
}

func (e *UnresolvedBookError) Unwrap() error {
	return ErrUnresolvedBook
}

// NotFoundError represents a missing corpus unit.
type NotFoundError struct {
	Resource string // "book", "chapter", "song", ...
	ID       string
	Err      error
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrNotFound
}

// Is lets a NotFoundError wrapping an underlying cause still match ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// StorageError represents an I/O or decoding failure while reading the corpus.
type StorageError struct {
	Operation string // "read", "open", "query", "decode"
	Path      string
	Err       error
}

func (e *StorageError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is reports StorageError as ErrStorage regardless of its cause.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Helper functions for creating common errors

// NewInvalidFormat creates an InvalidFormatError
func NewInvalidFormat(input, reason string) *InvalidFormatError {
	return &InvalidFormatError{Input: input, Reason: reason}
}

// NewUnresolvedBook creates an UnresolvedBookError
func NewUnresolvedBook(token, input, language string) *UnresolvedBookError {
	return &UnresolvedBookError{Token: token, Input: input, Language: language}
}

// NewNotFound creates a NotFoundError
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// NewStorage creates a StorageError
func NewStorage(operation, path string, err error) *StorageError {
	return &StorageError{Operation: operation, Path: path, Err: err}
}

// NewValidation creates a ValidationError
func NewValidation(field, value, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// Kind maps an error to its outcome kind. A nil error has no kind.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidFormat):
		return KindInvalidFormat
	case errors.Is(err, ErrUnresolvedBook):
		return KindUnresolvedBook
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrStorage):
		return KindStorage
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	default:
		return KindInternal
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
