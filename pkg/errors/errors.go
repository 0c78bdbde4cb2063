// Package errors defines the error taxonomy shared by every marquee package.
// Callers classify failures with errors.Is against the sentinels below or
// errors.As against the typed errors.
package errors

import (
	"errors"
	"fmt"
)

// New is the standard library errors.New, re-exported so callers need a
// single errors import.
var New = errors.New

// Sentinel errors.
var (
	// ErrNetwork covers transport failures and API-level failure sentinels.
	ErrNetwork = errors.New("network error")

	// ErrNotFound indicates that a requested resource was not found.
	ErrNotFound = errors.New("not found")

	// ErrSerialization indicates a durable value that could not be encoded or decoded.
	ErrSerialization = errors.New("serialization error")

	// ErrAlreadyExists indicates that a resource already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAPIKeyRequired indicates that the metadata API key is missing.
	ErrAPIKeyRequired = errors.New("API key required")

	// ErrClosed indicates use of a component after Close.
	ErrClosed = errors.New("closed")
)

// NetworkError is a failed catalog request: the transport failed, the
// server answered with a bad status, or the payload carried the API's
// failure sentinel.
type NetworkError struct {
	Operation  string // "search", "detail"
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("network error during %s (status %d): %s", e.Operation, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("network error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// NewNetworkError creates a NetworkError with an explicit message.
func NewNetworkError(operation string, statusCode int, message string) *NetworkError {
	return &NetworkError{Operation: operation, StatusCode: statusCode, Message: message}
}

// NotFoundError represents a lookup that matched nothing, including a
// credential mismatch during login.
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// SerializationError reports a durable value under Key that could not be
// encoded or decoded.
type SerializationError struct {
	Key       string
	Operation string // "encode", "decode"
	Err       error
}

// Error implements the error interface.
func (e *SerializationError) Error() string {
	return fmt.Sprintf("failed to %s value for key %q: %v", e.Operation, e.Key, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *SerializationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *SerializationError) Is(target error) bool {
	return target == ErrSerialization
}

// ValidationError represents a validation failure.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// AlreadyExistsError represents an insert that collides with an existing record.
type AlreadyExistsError struct {
	Resource string
	ID       string
	Message  string
}

// Error implements the error interface.
func (e *AlreadyExistsError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s already exists", e.Resource, e.ID)
}

// Is implements errors.Is support.
func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// IOError represents an error during durable store I/O.
type IOError struct {
	Operation string // "read", "write", "delete", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError.
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{Operation: operation, Path: path, Message: message, Err: err}
}

// IsNetwork reports whether err is a network error.
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// IsNotFound reports whether err is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsSerialization reports whether err is a serialization error.
func IsSerialization(err error) bool {
	return errors.Is(err, ErrSerialization)
}

// IsAlreadyExists reports whether err is an already exists error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError reports whether err is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// WrapNetwork wraps a transport failure as a NetworkError.
func WrapNetwork(operation string, err error) error {
	if err == nil {
		return nil
	}
	return &NetworkError{Operation: operation, Message: err.Error(), Err: err}
}

// WrapSerialization wraps a codec failure for key as a SerializationError.
func WrapSerialization(key, operation string, err error) error {
	if err == nil {
		return nil
	}
	return &SerializationError{Key: key, Operation: operation, Err: err}
}

// WrapIO wraps an error as an IOError.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}
