// Package errors provides custom error types for the rectify system.
// These errors enable programmatic error checking and keep configuration
// failures distinct from data-quality conditions throughout the pipeline.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the rectify system
var (
	// ErrNotFound indicates that a requested column or resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotOrderable indicates an attribute value with no total order,
	// reached by a fallback step that needs one
	ErrNotOrderable = errors.New("value not orderable")

	// ErrEmptyTable indicates an operation on a table with no rows
	ErrEmptyTable = errors.New("empty table")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// ColumnNotFoundError reports a column name absent from a table.
type ColumnNotFoundError struct {
	Column    string
	Available []string
}

// Error implements the error interface
func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %s not found (available: %s)", e.Column, strings.Join(e.Available, ", "))
}

// Is implements errors.Is support
func (e *ColumnNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewColumnNotFoundError creates a new ColumnNotFoundError
func NewColumnNotFoundError(column string, available []string) *ColumnNotFoundError {
	return &ColumnNotFoundError{Column: column, Available: available}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError represents a configuration error. Configuration errors fail
// fast: they are never downgraded to warnings.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// ReconcileError represents a failure while reconciling an attribute.
type ReconcileError struct {
	Attribute string
	Key       string
	Err       error
}

// Error implements the error interface
func (e *ReconcileError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("reconcile error for attribute %s (group %s): %v", e.Attribute, e.Key, e.Err)
	}
	return fmt.Sprintf("reconcile error for attribute %s: %v", e.Attribute, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ReconcileError) Unwrap() error {
	return e.Err
}

// NewReconcileError creates a new ReconcileError
func NewReconcileError(attribute, key string, err error) *ReconcileError {
	return &ReconcileError{Attribute: attribute, Key: key, Err: err}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "csv", "yaml", etc.
	File    string
	Line    int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d: %s", e.Format, e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{Operation: operation, Path: path, Message: message, Err: err}
}

// QueryError represents a database query failure in a dataset source.
type QueryError struct {
	Driver string
	Query  string
	Err    error
}

// Error implements the error interface
func (e *QueryError) Error() string {
	if e.Query != "" {
		return fmt.Sprintf("query error (%s): %v: %s", e.Driver, e.Err, e.Query)
	}
	return fmt.Sprintf("query error (%s): %v", e.Driver, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *QueryError) Unwrap() error {
	return e.Err
}

// NewQueryError creates a new QueryError
func NewQueryError(driver, query string, err error) *QueryError {
	return &QueryError{Driver: driver, Query: query, Err: err}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsNotOrderable checks if an error reports a non-orderable value
func IsNotOrderable(err error) bool {
	return errors.Is(err, ErrNotOrderable)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapQuery wraps an error as a QueryError
func WrapQuery(driver, query string, err error) error {
	if err == nil {
		return nil
	}
	return NewQueryError(driver, query, err)
}
