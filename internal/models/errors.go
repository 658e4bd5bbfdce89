package models

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared by every store implementation
var (
	ErrNotFound         = errors.New("not found")
	ErrDuplicateHandle  = errors.New("instagram handle already exists")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// FieldError describes a single failed constraint on a request field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every field-level failure found in a request
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Details()
}

// Details joins the field messages into a single human readable line
func (e *ValidationError) Details() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return strings.Join(parts, "; ")
}

// Add records a failure for field
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any field failed
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// OrNil returns e as an error when it holds failures, nil otherwise.
func (e *ValidationError) OrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

// NewNotFoundError wraps ErrNotFound with the resource name, e.g. "campaign not found"
func NewNotFoundError(resource string) error {
	return fmt.Errorf("%s %w", resource, ErrNotFound)
}

// StoreError wraps an infrastructure failure of the backing store.
// It matches ErrStoreUnavailable with errors.Is.
type StoreError struct {
	Op  string
	Err error
}

// NewStoreError creates a StoreError for operation op
func NewStoreError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store unavailable: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStoreUnavailable
}
