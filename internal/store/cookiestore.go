package store

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/chirpdeck/chirpdeck/internal/auth/twitter"
	"github.com/chirpdeck/chirpdeck/internal/config"
)

// CookieStore seals credentials into httpOnly, path-scoped cookies. Values
// are encrypted with XChaCha20-Poly1305 under a key derived from the server
// cookie secret, so the browser only ever holds opaque ciphertext.
type CookieStore struct {
	cfg  *config.Config
	aead cipher.AEAD
}

// NewCookieStore builds a cookie-backed token store. The configured cookie
// secret must be non-empty; it is stretched to the AEAD key size with SHA-256.
func NewCookieStore(cfg *config.Config) (*CookieStore, error) {
	if cfg.Cookies.Secret == "" {
		return nil, fmt.Errorf("cookie store: cookie secret is required")
	}
	key := sha256.Sum256([]byte(cfg.Cookies.Secret))
	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		return nil, fmt.Errorf("cookie store: initialize cipher: %w", err)
	}
	return &CookieStore{cfg: cfg, aead: aead}, nil
}

// Save writes the credential pair into sealed cookies. The refresh-token
// cookie outlives the access-token cookie so silent renewal stays possible
// after the access token expires.
func (s *CookieStore) Save(c *gin.Context, pair twitter.CredentialPair) error {
	if err := s.setSealed(c, AccessTokenCookie, pair.AccessToken, s.cfg.Cookies.AccessMaxAge); err != nil {
		return err
	}
	if pair.HasRefreshToken() {
		if err := s.setSealed(c, RefreshTokenCookie, pair.RefreshToken, s.cfg.Cookies.RefreshMaxAge); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the credential pair back out of the request cookies. Cookies
// that are missing or fail to unseal are treated as absent; a stale or
// tampered value must look the same as no value at all.
func (s *CookieStore) Load(c *gin.Context) (twitter.CredentialPair, error) {
	return twitter.CredentialPair{
		AccessToken:  s.getSealed(c, AccessTokenCookie),
		RefreshToken: s.getSealed(c, RefreshTokenCookie),
	}, nil
}

// Clear deletes the credential cookies and any leftover pending auth state.
func (s *CookieStore) Clear(c *gin.Context) {
	for _, name := range []string{AccessTokenCookie, RefreshTokenCookie, StateCookie, CodeVerifierCookie} {
		s.deleteCookie(c, name)
	}
}

// SavePending stores the verifier/state pair with the short pending lifetime.
func (s *CookieStore) SavePending(c *gin.Context, pending twitter.PendingAuth) error {
	if err := s.setSealed(c, StateCookie, pending.State, s.cfg.Cookies.PendingMaxAge); err != nil {
		return err
	}
	return s.setSealed(c, CodeVerifierCookie, pending.CodeVerifier, s.cfg.Cookies.PendingMaxAge)
}

// TakePending reads and deletes the pending auth state. The pending cookies
// are removed regardless of how the callback turns out.
func (s *CookieStore) TakePending(c *gin.Context) (twitter.PendingAuth, bool) {
	pending := twitter.PendingAuth{
		State:        s.getSealed(c, StateCookie),
		CodeVerifier: s.getSealed(c, CodeVerifierCookie),
	}
	s.deleteCookie(c, StateCookie)
	s.deleteCookie(c, CodeVerifierCookie)
	if pending.State == "" || pending.CodeVerifier == "" {
		return twitter.PendingAuth{}, false
	}
	return pending, true
}

// setSealed encrypts value and writes it as an httpOnly cookie scoped to the
// whole application path.
func (s *CookieStore) setSealed(c *gin.Context, name, value string, maxAge int) error {
	sealed, err := s.seal(value)
	if err != nil {
		return fmt.Errorf("cookie store: seal %s: %w", name, err)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, sealed, maxAge, "/", "", s.cfg.Cookies.Secure, true)
	return nil
}

// getSealed reads and unseals a cookie, returning "" when absent or invalid.
func (s *CookieStore) getSealed(c *gin.Context, name string) string {
	raw, err := c.Cookie(name)
	if err != nil || raw == "" {
		return ""
	}
	value, err := s.open(raw)
	if err != nil {
		log.Warnf("discarding unreadable %s cookie: %v", name, err)
		return ""
	}
	return value
}

func (s *CookieStore) deleteCookie(c *gin.Context, name string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, "", -1, "/", "", s.cfg.Cookies.Secure, true)
}

// seal encrypts plaintext and encodes nonce||ciphertext as URL-safe base64.
func (s *CookieStore) seal(plaintext string) (string, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := s.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// open reverses seal.
func (s *CookieStore) open(encoded string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	if len(raw) < s.aead.NonceSize() {
		return "", fmt.Errorf("sealed value too short")
	}
	plaintext, err := s.aead.Open(nil, raw[:s.aead.NonceSize()], raw[s.aead.NonceSize():], nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
