package twitter

import (
	"context"
	"net/http"
	"time"

	"github.com/chirpdeck/chirpdeck/internal/config"
	"github.com/chirpdeck/chirpdeck/internal/misc"
	"github.com/chirpdeck/chirpdeck/internal/util"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// OAuth endpoint constants for the X API.
const (
	AuthURL  = "https://twitter.com/i/oauth2/authorize"
	TokenURL = "https://api.twitter.com/2/oauth2/token"
)

// Scopes requested during authorization. offline.access is mandatory: it is
// what yields a refresh token.
var Scopes = []string{"tweet.read", "tweet.write", "users.read", "offline.access"}

// requestTimeout bounds every token-endpoint round trip.
const requestTimeout = 10 * time.Second

// TwitterAuth handles the X OAuth2 PKCE flow. It provides methods for
// generating authorization links, exchanging codes for tokens, and refreshing
// expired tokens.
type TwitterAuth struct {
	cfg        *config.Config
	oauth      *oauth2.Config
	httpClient *http.Client
}

// AuthLink is the product of one authorization-link generation: the redirect
// URL plus the verifier/state pair the caller must persist before redirecting.
type AuthLink struct {
	URL          string
	CodeVerifier string
	State        string
}

// NewTwitterAuth creates a new X authentication service.
//
// Parameters:
//   - cfg: The application configuration carrying client credentials and base URL
//
// Returns:
//   - *TwitterAuth: A new authentication service instance
func NewTwitterAuth(cfg *config.Config) *TwitterAuth {
	return &TwitterAuth{
		cfg: cfg,
		oauth: &oauth2.Config{
			ClientID:     cfg.Twitter.ClientID,
			ClientSecret: cfg.Twitter.ClientSecret,
			RedirectURL:  cfg.CallbackURL(),
			Scopes:       Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  AuthURL,
				TokenURL: TokenURL,
				// X requires confidential clients to authenticate the token
				// endpoint with HTTP basic auth.
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		httpClient: util.NewHTTPClient(requestTimeout, cfg.ProxyURL),
	}
}

// GenerateAuthLink builds the authorization redirect URL together with the
// PKCE verifier and state for this login attempt. It has no side effects; the
// caller is responsible for persisting the verifier/state pair before
// redirecting the browser.
//
// Returns:
//   - *AuthLink: The authorize URL, code verifier, and state
//   - error: ErrMissingConfig when application credentials are absent
func (a *TwitterAuth) GenerateAuthLink() (*AuthLink, error) {
	if err := a.cfg.ValidateTwitter(); err != nil {
		return nil, NewAuthenticationError(ErrMissingConfig, err)
	}

	pkceCodes, err := GeneratePKCECodes()
	if err != nil {
		return nil, err
	}
	state, err := misc.GenerateRandomState()
	if err != nil {
		return nil, err
	}

	authURL := a.oauth.AuthCodeURL(state,
		oauth2.SetAuthURLParam("code_challenge", pkceCodes.CodeChallenge),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	)

	return &AuthLink{
		URL:          authURL,
		CodeVerifier: pkceCodes.CodeVerifier,
		State:        state,
	}, nil
}

// ExchangeCodeForTokens exchanges an authorization code for an access/refresh
// token pair, the callback half of the PKCE flow. The redirect URI baked into
// the oauth2 config must equal the one used to generate the link; PKCE binds
// the verifier to it.
//
// Parameters:
//   - ctx: The context for the request
//   - code: The authorization code received on the callback
//   - codeVerifier: The PKCE verifier persisted when the link was generated
//
// Returns:
//   - *CredentialPair: The new access/refresh token pair
//   - error: ErrCodeExchangeFailed on any transport or protocol rejection
func (a *TwitterAuth) ExchangeCodeForTokens(ctx context.Context, code, codeVerifier string) (*CredentialPair, error) {
	if err := a.cfg.ValidateTwitter(); err != nil {
		return nil, NewAuthenticationError(ErrMissingConfig, err)
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, a.httpClient)
	token, err := a.oauth.Exchange(ctx, code, oauth2.VerifierOption(codeVerifier))
	if err != nil {
		log.Errorf("token exchange failed: %v", err)
		return nil, NewAuthenticationError(ErrCodeExchangeFailed, err)
	}

	return &CredentialPair{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}, nil
}

// RefreshTokens exchanges a refresh token for a new credential pair. X
// rotates the refresh token on every use; when the response omits one, the
// caller's existing refresh token is carried over so the pair persisted after
// a refresh is always complete.
//
// Parameters:
//   - ctx: The context for the request
//   - refreshToken: The refresh token to redeem
//
// Returns:
//   - *CredentialPair: The rotated access/refresh token pair
//   - error: ErrRefreshFailed when the refresh token is invalid or expired
func (a *TwitterAuth) RefreshTokens(ctx context.Context, refreshToken string) (*CredentialPair, error) {
	if refreshToken == "" {
		return nil, NewAuthenticationError(ErrRefreshFailed, nil)
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, a.httpClient)
	source := a.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		log.Errorf("token refresh failed: %v", err)
		return nil, NewAuthenticationError(ErrRefreshFailed, err)
	}

	pair := &CredentialPair{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}
	if pair.RefreshToken == "" {
		pair.RefreshToken = refreshToken
	}
	return pair, nil
}
