package twitter

import (
	"errors"
	"fmt"
	"net/http"
)

// AuthenticationError represents authentication-related errors.
type AuthenticationError struct {
	// Type is the type of authentication error.
	Type string `json:"type"`
	// Message is a human-readable message describing the error.
	Message string `json:"message"`
	// Code is the HTTP status code associated with the error.
	Code int `json:"code"`
	// Cause is the underlying error that caused this authentication error.
	Cause error `json:"-"`
}

// Error returns a string representation of the authentication error.
func (e *AuthenticationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is/As chains.
func (e *AuthenticationError) Unwrap() error {
	return e.Cause
}

// Is matches errors against the sentinel bases below by Type, so callers can
// write errors.Is(err, twitter.ErrSessionExpired) against wrapped instances.
func (e *AuthenticationError) Is(target error) bool {
	var t *AuthenticationError
	if !errors.As(target, &t) {
		return false
	}
	return e.Type == t.Type
}

// Common authentication error bases.
var (
	// ErrMissingConfig indicates required application credentials or the base
	// URL are absent. Fatal, surfaced to the operator rather than the user.
	ErrMissingConfig = &AuthenticationError{
		Type:    "configuration_missing",
		Message: "X application credentials are not configured",
		Code:    http.StatusInternalServerError,
	}

	// ErrStateMismatch indicates the callback state did not match the stored
	// state; the CSRF defense of the PKCE flow.
	ErrStateMismatch = &AuthenticationError{
		Type:    "state_mismatch",
		Message: "OAuth state parameter is invalid",
		Code:    http.StatusBadRequest,
	}

	// ErrCodeExchangeFailed indicates exchanging the authorization code for
	// tokens failed; the user must restart the login flow.
	ErrCodeExchangeFailed = &AuthenticationError{
		Type:    "code_exchange_failed",
		Message: "Failed to exchange authorization code for tokens",
		Code:    http.StatusBadRequest,
	}

	// ErrRefreshFailed indicates the refresh token itself was rejected.
	// Terminal: the session cannot be renewed without a fresh login.
	ErrRefreshFailed = &AuthenticationError{
		Type:    "refresh_failed",
		Message: "Failed to refresh the access token",
		Code:    http.StatusUnauthorized,
	}

	// ErrNotAuthenticated indicates no credentials are stored at all.
	// Expected for first-time visitors; distinct from an expired session.
	ErrNotAuthenticated = &AuthenticationError{
		Type:    "not_authenticated",
		Message: "No X account is connected",
		Code:    http.StatusUnauthorized,
	}

	// ErrSessionExpired indicates stored credentials can no longer be renewed.
	// The user must disconnect and reconnect the account.
	ErrSessionExpired = &AuthenticationError{
		Type:    "session_expired",
		Message: "X authentication has expired. Please disconnect and reconnect your account.",
		Code:    http.StatusUnauthorized,
	}
)

// NewAuthenticationError creates a new authentication error with a cause based on a base error.
func NewAuthenticationError(baseErr *AuthenticationError, cause error) *AuthenticationError {
	return &AuthenticationError{
		Type:    baseErr.Type,
		Message: baseErr.Message,
		Code:    baseErr.Code,
		Cause:   cause,
	}
}

// IsAuthenticationError checks if an error is an authentication error.
func IsAuthenticationError(err error) bool {
	var authenticationError *AuthenticationError
	return errors.As(err, &authenticationError)
}

// UserFriendlyMessage returns UI copy for an error. Never-connected and
// expired sessions get distinct wording ("connect" vs "reconnect").
func UserFriendlyMessage(err error) string {
	var authErr *AuthenticationError
	if !errors.As(err, &authErr) {
		return "An unexpected error occurred. Please try again."
	}
	switch authErr.Type {
	case ErrNotAuthenticated.Type:
		return "Connect your X account to continue."
	case ErrSessionExpired.Type, ErrRefreshFailed.Type:
		return "Your X session has expired. Please reconnect your account."
	case ErrStateMismatch.Type:
		return "The login attempt could not be verified. Please try connecting again."
	case ErrCodeExchangeFailed.Type:
		return "X sign-in failed. Please try connecting again."
	case ErrMissingConfig.Type:
		return "The X integration is not configured on this server."
	default:
		return "Authentication failed. Please try again."
	}
}
