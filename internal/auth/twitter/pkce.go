// Package twitter implements the OAuth2 PKCE authentication flow against the
// X (Twitter) API: authorization-link generation, code exchange, and token
// refresh, together with the credential types and error taxonomy shared by
// the session layer.
package twitter

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// PKCECodes holds a PKCE verifier/challenge pair for one login attempt.
type PKCECodes struct {
	// CodeVerifier is the locally generated secret bound to the authorization code.
	CodeVerifier string
	// CodeChallenge is the S256 hash of the verifier sent in the authorize URL.
	CodeChallenge string
}

// GeneratePKCECodes generates a PKCE code verifier and challenge pair
// following RFC 7636. Only the client that generated the verifier can later
// exchange the authorization code, which defeats code interception attacks.
//
// Returns:
//   - *PKCECodes: A struct containing the code verifier and challenge
//   - error: An error if the generation fails, nil otherwise
func GeneratePKCECodes() (*PKCECodes, error) {
	codeVerifier, err := generateCodeVerifier()
	if err != nil {
		return nil, fmt.Errorf("failed to generate code verifier: %w", err)
	}
	return &PKCECodes{
		CodeVerifier:  codeVerifier,
		CodeChallenge: generateCodeChallenge(codeVerifier),
	}, nil
}

// generateCodeVerifier creates a cryptographically random URL-safe string of
// 128 characters, the maximum length RFC 7636 permits.
func generateCodeVerifier() (string, error) {
	// 96 random bytes encode to 128 base64 characters.
	bytes := make([]byte, 96)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(bytes), nil
}

// generateCodeChallenge derives the S256 challenge from the verifier.
func generateCodeChallenge(codeVerifier string) string {
	hash := sha256.Sum256([]byte(codeVerifier))
	return base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(hash[:])
}
