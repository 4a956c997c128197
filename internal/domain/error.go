package domain

import (
	"errors"
	"fmt"
)

// Application error codes.
// These map to HTTP status codes and determine user-facing messages.
const (
	EUNAUTHORIZED = "unauthorized" // 401 - Mutation attempted with no session; no network call made
	ESYNC         = "sync_failed"  // 502 - Remote fetch/mutation failed; recovered via fallback refresh
	EINVALID      = "invalid"      // 400 - Validation error (bad input, inapplicable promotion)
	ELIFECYCLE    = "lifecycle"    // 409 - Transition requested from a disallowed or terminal state
	EUNCONFIRMED  = "unconfirmed"  // 502 - Local state advanced without remote confirmation
	ENOTFOUND     = "not_found"    // 404 - Resource not found
	EINTERNAL     = "internal"     // 500 - Internal error (hide details)
)

// Error represents an application error with a code and message.
// It implements the error interface and supports error wrapping.
type Error struct {
	// Code is a machine-readable error code (e.g., EINVALID, ESYNC).
	Code string

	// Message is a human-readable error message safe to show to users.
	Message string

	// Op is the operation where the error occurred (e.g., "cart.add").
	// Used for debugging and logging, not shown to users.
	Op string

	// Err is the underlying error, if any. Used for error wrapping.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		if e.Op != "" {
			return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

// Unwrap implements error unwrapping for errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode extracts the error code from an error.
// Returns EINTERNAL for nil or non-domain errors.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return EINTERNAL
}

// ErrorMessage extracts a user-facing message from an error.
// For internal errors, returns a generic message to avoid leaking details.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		if e.Code == EINTERNAL {
			return "An internal error occurred. Please try again later."
		}
		return e.Message
	}

	return "An internal error occurred. Please try again later."
}

// Errorf creates a new domain error with formatted message.
// Example: domain.Errorf(domain.EINVALID, "promotion.apply", "unknown code: %s", code)
func Errorf(code, op, format string, args ...interface{}) error {
	return &Error{
		Code:    code,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError wraps an existing error with a domain error code and operation.
// Preserves the underlying error for logging while providing structure.
// Returns nil if err is nil.
func WrapError(err error, code, op, message string) error {
	if err == nil {
		return nil
	}

	return &Error{
		Code:    code,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// IsCode returns true if err has the given error code.
func IsCode(err error, code string) bool {
	return ErrorCode(err) == code
}

// Unauthorized creates an unauthorized error.
// Example: domain.Unauthorized("cart.add", "sign in to modify your cart")
func Unauthorized(op, message string) error {
	return &Error{
		Code:    EUNAUTHORIZED,
		Op:      op,
		Message: message,
	}
}

// Invalid creates a validation error for a single issue.
// Example: domain.Invalid("promotion.apply", "promotion has expired")
func Invalid(op, message string) error {
	return &Error{
		Code:    EINVALID,
		Op:      op,
		Message: message,
	}
}

// NotFound creates a not found error for a resource.
// Example: domain.NotFound("order.get", "order", orderID)
func NotFound(op, resource, identifier string) error {
	return &Error{
		Code:    ENOTFOUND,
		Op:      op,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
	}
}

// SyncFailure wraps a remote collaborator failure.
// The snapshot layer recovers from these via a fallback refresh; they are
// surfaced to the user but never fatal.
func SyncFailure(err error, op, message string) error {
	return &Error{
		Code:    ESYNC,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// LifecycleViolation creates an error for a disallowed status transition.
// Example: domain.LifecycleViolation("order.cancel", "order has already been delivered")
func LifecycleViolation(op, message string) error {
	return &Error{
		Code:    ELIFECYCLE,
		Op:      op,
		Message: message,
	}
}

// Unconfirmed wraps a failure where every remote confirmation path was
// exhausted. The caller decides whether to advance local state anyway.
func Unconfirmed(err error, op, message string) error {
	return &Error{
		Code:    EUNCONFIRMED,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// Internal creates an internal error (wraps underlying error).
// The message shown to users will be generic; the underlying error is for logging.
func Internal(err error, op, message string) error {
	return &Error{
		Code:    EINTERNAL,
		Op:      op,
		Message: message,
		Err:     err,
	}
}
