package twitter

import "strings"

// CredentialPair holds the two opaque credential strings for a connected
// account. The access token is always assumed possibly-expired; the refresh
// token, when present, is the only path to silent renewal.
type CredentialPair struct {
	// AccessToken authorizes individual API calls. Short-lived.
	AccessToken string `json:"access_token"`

	// RefreshToken obtains new access tokens without user interaction.
	// Empty when the offline.access scope was not granted.
	RefreshToken string `json:"refresh_token,omitempty"`
}

// HasAccessToken reports whether the pair carries a usable access token.
func (p CredentialPair) HasAccessToken() bool {
	return strings.TrimSpace(p.AccessToken) != ""
}

// HasRefreshToken reports whether silent renewal is possible.
func (p CredentialPair) HasRefreshToken() bool {
	return strings.TrimSpace(p.RefreshToken) != ""
}

// PendingAuth is the short-lived state created when an authorization link is
// generated and consumed exactly once by the callback handler.
type PendingAuth struct {
	// CodeVerifier is the PKCE secret for this login attempt.
	CodeVerifier string `json:"code_verifier"`

	// State binds the authorization request to the callback; the callback
	// must reject the flow unless the returned state matches exactly.
	State string `json:"state"`
}
