package pexels

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid pexels configuration")
	// ErrTransport indicates the request never produced a response
	ErrTransport = errors.New("pexels request failed")
	// ErrUnauthorized indicates authentication failure
	ErrUnauthorized = errors.New("unauthorized: invalid API key")
	// ErrInvalidResponse indicates a successful status with an unreadable body
	ErrInvalidResponse = errors.New("invalid response from pexels API")
	// ErrMissingField indicates a record lacks a required field
	ErrMissingField = errors.New("missing field")
	// ErrMalformedField indicates a record field has the wrong shape
	ErrMalformedField = errors.New("malformed field")
	// ErrEmptyQuery indicates a search was attempted without a query
	ErrEmptyQuery = errors.New("search query is required")
)

// ConfigError reports a required endpoint setting that is absent or invalid.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid pexels configuration: %s: %s", e.Key, e.Reason)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// TransportError wraps network, DNS and timeout failures
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("pexels request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// APIError represents a non-success response from the Pexels API
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("pexels API error: status %d: %s", e.StatusCode, e.Message)
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 and 403 responses
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.IsUnauthorized()
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// MissingFieldError is returned by a record accessor when the field is absent or null.
type MissingFieldError struct {
	Record string
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s record: missing field %q", e.Record, e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// MalformedFieldError is returned by a record accessor when the field has the wrong JSON shape.
type MalformedFieldError struct {
	Record string
	Field  string
	Err    error
}

func (e *MalformedFieldError) Error() string {
	return fmt.Sprintf("%s record: malformed field %q: %v", e.Record, e.Field, e.Err)
}

func (e *MalformedFieldError) Unwrap() error {
	return e.Err
}

func (e *MalformedFieldError) Is(target error) bool {
	return target == ErrMalformedField
}
