package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business domain error with a structured error code.
type DomainError struct {
	Code    string // Error code (e.g., "TG-SESS-4040")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// GetErrorDetails extracts the details from an error if it's a DomainError.
func GetErrorDetails(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Details
	}
	return ""
}

// ============================================================================
// Session Errors (SESS)
// ============================================================================

var (
	// ErrSessionNotFound indicates the requested session was not found.
	ErrSessionNotFound = NewDomainError("TG-SESS-4040", "session not found")

	// ErrSessionExpired indicates the session has expired.
	ErrSessionExpired = NewDomainError("TG-SESS-4041", "session expired")

	// ErrSessionValidation indicates session data validation failed.
	ErrSessionValidation = NewDomainError("TG-SESS-4001", "session validation failed")
)

// ============================================================================
// Token Errors (TOKN)
// ============================================================================

var (
	// ErrTokenInvalid indicates the token failed verification.
	ErrTokenInvalid = NewDomainError("TG-TOKN-4010", "invalid token")

	// ErrTokenExpired indicates the token has expired.
	ErrTokenExpired = NewDomainError("TG-TOKN-4011", "token expired")

	// ErrTokenClaims indicates token claims could not be encoded.
	ErrTokenClaims = NewDomainError("TG-TOKN-4001", "invalid token claims")
)

// ============================================================================
// Configuration Errors (CONF)
// ============================================================================

var (
	// ErrConfigSecretMissing indicates no signing secret was configured.
	// This is fatal at startup.
	ErrConfigSecretMissing = NewDomainError("TG-CONF-5001", "signing secret not configured")

	// ErrConfigInvalid indicates the configuration failed validation.
	ErrConfigInvalid = NewDomainError("TG-CONF-5002", "invalid configuration")
)

// ============================================================================
// System Errors (SYS)
// ============================================================================

var (
	// ErrInternalServer indicates an internal server error.
	ErrInternalServer = NewDomainError("TG-SYS-5000", "internal server error")

	// ErrUpstreamUnavailable indicates the translation upstream is unreachable.
	ErrUpstreamUnavailable = NewDomainError("TG-SYS-5030", "upstream unavailable")

	// ErrBadRequest indicates a malformed request.
	ErrBadRequest = NewDomainError("TG-SYS-4000", "bad request")

	// ErrRateLimited indicates too many requests.
	ErrRateLimited = NewDomainError("TG-SYS-4290", "too many requests")
)
