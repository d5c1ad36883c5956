package twitter

import (
	"errors"
	"fmt"
	"testing"
)

func TestAuthenticationError_IsMatchesByType(t *testing.T) {
	t.Parallel()

	wrapped := NewAuthenticationError(ErrSessionExpired, fmt.Errorf("refresh rejected"))
	if !errors.Is(wrapped, ErrSessionExpired) {
		t.Fatal("wrapped error should match its base sentinel")
	}
	if errors.Is(wrapped, ErrNotAuthenticated) {
		t.Fatal("wrapped error must not match a different sentinel")
	}
}

func TestAuthenticationError_UnwrapExposesCause(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("network down")
	wrapped := NewAuthenticationError(ErrRefreshFailed, cause)
	if !errors.Is(wrapped, cause) {
		t.Fatal("cause should be reachable through Unwrap")
	}
}

func TestIsAuthenticationError(t *testing.T) {
	t.Parallel()

	if !IsAuthenticationError(ErrNotAuthenticated) {
		t.Fatal("sentinel should be recognized")
	}
	if IsAuthenticationError(fmt.Errorf("plain error")) {
		t.Fatal("plain error must not be recognized")
	}
	if !IsAuthenticationError(fmt.Errorf("wrapped: %w", ErrCodeExchangeFailed)) {
		t.Fatal("fmt-wrapped sentinel should be recognized")
	}
}

func TestUserFriendlyMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not authenticated", ErrNotAuthenticated, "Connect your X account to continue."},
		{"session expired", ErrSessionExpired, "Your X session has expired. Please reconnect your account."},
		{"refresh failed", ErrRefreshFailed, "Your X session has expired. Please reconnect your account."},
		{"state mismatch", ErrStateMismatch, "The login attempt could not be verified. Please try connecting again."},
		{"plain error", fmt.Errorf("boom"), "An unexpected error occurred. Please try again."},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := UserFriendlyMessage(tt.err); got != tt.want {
				t.Fatalf("want %q, got %q", tt.want, got)
			}
		})
	}
}
