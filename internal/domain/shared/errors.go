// Package shared contains common domain types, errors, and events that are
// used across all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")

	// Validation errors
	ErrValidation   = errors.New("validation error")
	ErrInvalidID    = errors.New("invalid ID")
	ErrInvalidInput = errors.New("invalid input")
	ErrEmptyValue   = errors.New("value cannot be empty")

	// State errors
	ErrInvalidState    = errors.New("invalid state")
	ErrStateTransition = errors.New("invalid state transition")

	// Authorization errors. ErrNotFound is deliberately reused for
	// forbidden access to resources whose existence must not leak:
	// callers outside a conversation or request see the same signal
	// whether the record exists or not.
	ErrUnauthenticated = errors.New("unauthenticated")

	// External service errors
	ErrExternalService = errors.New("external service error")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "mentorship", "conversation", "notification"
	Op      string // Operation that failed, e.g., "Create", "Respond"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// User domain errors
var (
	ErrUserNotFound      = NewDomainError("user", "Find", ErrNotFound, "user not found")
	ErrUserAlreadyExists = NewDomainError("user", "Create", ErrAlreadyExists, "user already exists")
	ErrInvalidUserID     = NewDomainError("user", "Validate", ErrInvalidID, "invalid user id")
)

// Mentorship domain errors
var (
	ErrRequestNotFound   = NewDomainError("mentorship", "Find", ErrNotFound, "request not found or access denied")
	ErrDuplicateRequest  = NewDomainError("mentorship", "Create", ErrAlreadyExists, "a request to this mentor already exists")
	ErrSelfRequest       = NewDomainError("mentorship", "Create", ErrInvalidInput, "cannot request mentorship from self")
	ErrInvalidStatus     = NewDomainError("mentorship", "Respond", ErrInvalidInput, "status must be ACCEPTED or REJECTED")
	ErrRequestNotPending = NewDomainError("mentorship", "Respond", ErrStateTransition, "request already responded to")
)

// Conversation domain errors
var (
	ErrConversationNotFound = NewDomainError("conversation", "Find", ErrNotFound, "conversation not found or access denied")
	ErrEmptyMessage         = NewDomainError("conversation", "SendMessage", ErrEmptyValue, "message content cannot be empty")
)

// Notification domain errors
var (
	ErrNotificationNotFound = NewDomainError("notification", "Find", ErrNotFound, "notification not found")
)

// Gamification domain errors
var (
	ErrInvalidAwardAmount = NewDomainError("gamification", "Award", ErrInvalidInput, "award amount must be positive")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if the error is a conflict: a duplicate record or a
// write that lost to an earlier state transition.
func IsConflict(err error) bool {
	return errors.Is(err, ErrAlreadyExists) || errors.Is(err, ErrStateTransition)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyValue)
}

// IsUnauthenticated checks if the error means no identity could be resolved.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}

// IsExternalService checks if the error is from an external service.
func IsExternalService(err error) bool {
	return errors.Is(err, ErrExternalService)
}
