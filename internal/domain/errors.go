package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent error conditions in the bookshelf domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrInvalidYear is returned when a publication year is not a positive
	// integer no later than the current year.
	ErrInvalidYear = errors.New("bookshelf: invalid year")

	// ErrInvalidStatus is returned when a status is not one of the known values.
	ErrInvalidStatus = errors.New("bookshelf: invalid status")

	// ErrMalformedRecord is returned when a stored record is missing a field
	// or a field has the wrong type.
	ErrMalformedRecord = errors.New("bookshelf: malformed record")

	// ErrCorruptStore is returned when the store cannot be parsed as a list of records.
	ErrCorruptStore = errors.New("bookshelf: corrupt store")

	// ErrPersistence is returned when the catalog cannot be written to the store.
	ErrPersistence = errors.New("bookshelf: persistence failed")

	// ErrInvalidInput is returned when a required text field is blank.
	ErrInvalidInput = errors.New("bookshelf: invalid input")
)

// InvalidYearError reports the rejected year text.
type InvalidYearError struct {
	Input       string
	CurrentYear int
}

func (e *InvalidYearError) Error() string {
	return fmt.Sprintf("invalid year %q: must be a whole number from 1 to %d", e.Input, e.CurrentYear)
}

// Is implements errors.Is support.
func (e *InvalidYearError) Is(target error) bool { return target == ErrInvalidYear }

// NewInvalidYearError creates a new InvalidYearError.
func NewInvalidYearError(input string, currentYear int) *InvalidYearError {
	return &InvalidYearError{Input: input, CurrentYear: currentYear}
}

// InvalidStatusError reports a status outside the Status enum.
type InvalidStatusError struct {
	Status string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid status %q: use %q or %q", e.Status, StatusAvailable, StatusCheckedOut)
}

// Is implements errors.Is support.
func (e *InvalidStatusError) Is(target error) bool { return target == ErrInvalidStatus }

// NewInvalidStatusError creates a new InvalidStatusError.
func NewInvalidStatusError(status string) *InvalidStatusError {
	return &InvalidStatusError{Status: status}
}

// MalformedRecordError describes the first problem found in a stored record.
// Index is the record's position in the store, or -1 when unknown.
type MalformedRecordError struct {
	Index   int
	Field   string
	Message string
}

func (e *MalformedRecordError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("malformed record #%d: field %q %s", e.Index, e.Field, e.Message)
	}
	return fmt.Sprintf("malformed record: field %q %s", e.Field, e.Message)
}

// Is implements errors.Is support.
func (e *MalformedRecordError) Is(target error) bool { return target == ErrMalformedRecord }

// NewMalformedRecordError creates a MalformedRecordError with an unknown index.
func NewMalformedRecordError(field, message string) *MalformedRecordError {
	return &MalformedRecordError{Index: -1, Field: field, Message: message}
}

// CorruptStoreError wraps the parse failure of a store.
type CorruptStoreError struct {
	Path string
	Err  error
}

func (e *CorruptStoreError) Error() string {
	return fmt.Sprintf("corrupt store %s: %v", e.Path, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *CorruptStoreError) Unwrap() error { return e.Err }

// Is implements errors.Is support.
func (e *CorruptStoreError) Is(target error) bool { return target == ErrCorruptStore }

// NewCorruptStoreError creates a new CorruptStoreError.
func NewCorruptStoreError(path string, err error) *CorruptStoreError {
	return &CorruptStoreError{Path: path, Err: err}
}

// PersistenceError wraps a failed write to the store.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("save catalog: %v", e.Err)
	}
	return fmt.Sprintf("save %s: %v", e.Path, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *PersistenceError) Unwrap() error { return e.Err }

// Is implements errors.Is support.
func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// NewPersistenceError creates a new PersistenceError.
func NewPersistenceError(path string, err error) *PersistenceError {
	return &PersistenceError{Path: path, Err: err}
}

// ValidationError represents a rejected text field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Is implements errors.Is support.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
