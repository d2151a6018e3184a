// Package errors provides centralized error definitions and error handling utilities
// for lifespan. It defines the error taxonomy used by the wizard steps, the remote
// summary client, and the reference summary service.
//
// # Error Types
//
// The package provides three kinds of errors:
//
//   - ValidationError: client-side input rejected before any network call
//   - RemoteError: the summary service failed or answered with a non-2xx status
//   - NotFoundError: a user or activity the caller referenced does not exist
//
// Sentinel errors cover the remaining conditions (no user yet, no survival result
// yet, a mutating action already in flight, summary not available).
//
// # Usage
//
//	err := errors.NewValidationError("enter hours/week > 0").WithField("hours_per_week").WithValue(0.0)
//
//	if errors.Is(err, errors.ErrInvalidInput) { ... }
//
//	var remoteErr *errors.RemoteError
//	if errors.As(err, &remoteErr) && remoteErr.IsRetryable() { ... }
//
// # Display
//
// Every failure is shown inline near the control that triggered it. [UserMessage]
// reduces any error to the short line the TUI renders.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityInfo is for conditions the user can resolve by editing input.
	SeverityInfo Severity = iota
	// SeverityWarning is for degraded results (e.g. a partial refresh).
	SeverityWarning
	// SeverityError is for failed operations.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Wizard sentinel errors
var (
	// ErrNoUser indicates that a step was entered before the profile was created.
	ErrNoUser = New("no user profile yet")
	// ErrNoSurvivalResult indicates that survival has not been computed in this session.
	ErrNoSurvivalResult = New("survival result not computed yet")
	// ErrBusy indicates that a mutating action is already in flight for the step.
	ErrBusy = New("another change is still saving")
	// ErrUnknownStep indicates a step name that the wizard does not know.
	ErrUnknownStep = New("unknown step")
)

// Remote sentinel errors
var (
	// ErrSummaryUnavailable indicates the summary is absent or could not be decoded.
	ErrSummaryUnavailable = New("summary not available")
	// ErrTransport indicates the request never produced an HTTP response.
	ErrTransport = New("service unreachable")
)

// General sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
	// ErrNotFound indicates that a referenced resource does not exist.
	ErrNotFound = New("not found")
)

// -----------------------------------------------------------------------------
// Base Error Implementation
// -----------------------------------------------------------------------------

// baseError provides common functionality for all error types.
type baseError struct {
	message   string
	cause     error
	severity  Severity
	retryable bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsRetryable returns whether the error is retryable.
func (e *baseError) IsRetryable() bool {
	return e.retryable
}

// -----------------------------------------------------------------------------
// ValidationError
// -----------------------------------------------------------------------------

// ValidationError represents input rejected before any network call.
//
// Example:
//
//	err := errors.NewValidationError("enter hours/week > 0").WithField("hours_per_week")
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError. The message is shown to the
// user verbatim.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:  message,
			severity: SeverityInfo,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the rejected value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.message)
}

// Message returns the bare user-facing message without the field prefix.
func (e *ValidationError) Message() string {
	return e.message
}

// Is matches any *ValidationError and ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	return target == ErrInvalidInput
}

// -----------------------------------------------------------------------------
// RemoteError
// -----------------------------------------------------------------------------

// RemoteError represents a failed call to the summary service.
//
// Example:
//
//	err := errors.NewRemoteError("life-summary", 400, "Level1 result not found.")
//	fmt.Println(err) // "remote error [op=life-summary, status=400]: Level1 result not found."
type RemoteError struct {
	baseError
	Operation  string
	StatusCode int
	Detail     string
}

// NewRemoteError creates a RemoteError for an HTTP response with a non-2xx status.
// 5xx responses are retryable; 4xx responses are not.
func NewRemoteError(operation string, status int, detail string) *RemoteError {
	msg := detail
	if msg == "" {
		msg = fmt.Sprintf("service returned status %d", status)
	}
	return &RemoteError{
		baseError: baseError{
			message:   msg,
			severity:  SeverityError,
			retryable: status >= 500,
		},
		Operation:  operation,
		StatusCode: status,
		Detail:     detail,
	}
}

// NewTransportError creates a RemoteError for a request that produced no response.
func NewTransportError(operation string, cause error) *RemoteError {
	return &RemoteError{
		baseError: baseError{
			message:   "request failed",
			cause:     cause,
			severity:  SeverityError,
			retryable: true,
		},
		Operation: operation,
	}
}

// WithCause adds a cause to the error.
func (e *RemoteError) WithCause(cause error) *RemoteError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *RemoteError) Error() string {
	var parts []string
	if e.Operation != "" {
		parts = append(parts, fmt.Sprintf("op=%s", e.Operation))
	}
	if e.StatusCode != 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	prefix := "remote error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("remote error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is matches any *RemoteError, ErrTransport for transport failures, and
// ErrNotFound for 404 responses.
func (e *RemoteError) Is(target error) bool {
	if _, ok := target.(*RemoteError); ok {
		return true
	}
	if target == ErrTransport && e.StatusCode == 0 {
		return true
	}
	if target == ErrNotFound && e.StatusCode == 404 {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// NotFoundError
// -----------------------------------------------------------------------------

// NotFoundError represents a resource that could not be found.
//
// Example:
//
//	err := errors.NewNotFoundError("user", "42")
//	fmt.Println(err) // "user '42' not found"
type NotFoundError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			message:  fmt.Sprintf("%s '%s' not found", resourceType, resourceID),
			severity: SeverityError,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// Is matches any *NotFoundError and ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	if _, ok := target.(*NotFoundError); ok {
		return true
	}
	return target == ErrNotFound
}

// -----------------------------------------------------------------------------
// Classification helpers
// -----------------------------------------------------------------------------

// IsRetryable reports whether err is transient. Nothing in lifespan retries
// automatically; this only decides whether the UI suggests trying again.
func IsRetryable(err error) bool {
	var r interface{ IsRetryable() bool }
	if errors.As(err, &r) {
		return r.IsRetryable()
	}
	return false
}

// IsValidation reports whether err was produced by client-side validation.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// UserMessage reduces err to a short human-readable line for inline display.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var v *ValidationError
	if errors.As(err, &v) {
		return v.Message()
	}

	var r *RemoteError
	if errors.As(err, &r) {
		switch {
		case r.StatusCode == 0:
			return "Service unreachable. Try again."
		case r.Detail != "":
			return r.Detail
		case r.StatusCode >= 500:
			return "Service error. Try again."
		default:
			return fmt.Sprintf("Request rejected (%d).", r.StatusCode)
		}
	}

	switch {
	case errors.Is(err, ErrBusy):
		return "Still saving the previous change."
	case errors.Is(err, ErrNoUser):
		return "Create your profile first."
	case errors.Is(err, ErrNoSurvivalResult):
		return "Fill in the survival step first."
	case errors.Is(err, ErrSummaryUnavailable):
		return "Nothing to show yet."
	}

	msg := err.Error()
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	return msg
}
