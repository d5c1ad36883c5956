// Package store persists per-browser-session X credentials. The default
// backend seals the tokens into httpOnly cookies so nothing secret is
// readable by page script; a Postgres backend keeps tokens server-side
// behind an opaque session cookie with the same observable contract.
package store

import (
	"github.com/gin-gonic/gin"

	"github.com/chirpdeck/chirpdeck/internal/auth/twitter"
)

// Cookie names. The pending pair is written when an authorization link is
// generated and consumed exactly once by the callback handler.
const (
	AccessTokenCookie  = "twitter_access_token"
	RefreshTokenCookie = "twitter_refresh_token"
	StateCookie        = "twitter_state"
	CodeVerifierCookie = "twitter_code_verifier"
)

// TokenStore persists and retrieves the credential pair and the short-lived
// pending auth state for the session carried by the given request.
type TokenStore interface {
	// Save overwrites the stored credential pair.
	Save(c *gin.Context, pair twitter.CredentialPair) error

	// Load retrieves the stored credential pair. A session with no stored
	// credentials yields a zero pair and no error.
	Load(c *gin.Context) (twitter.CredentialPair, error)

	// Clear removes the credential pair and any leftover pending auth state.
	// Idempotent; no network side effects.
	Clear(c *gin.Context)

	// SavePending stores the verifier/state pair for an in-flight login attempt.
	SavePending(c *gin.Context, pending twitter.PendingAuth) error

	// TakePending retrieves and deletes the pending auth state. The second
	// return is false when no usable pending state exists.
	TakePending(c *gin.Context) (twitter.PendingAuth, bool)
}
