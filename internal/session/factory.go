// Package session turns stored credentials into working X API clients. It
// owns the refresh-on-401 state machine: probe the access token, refresh at
// most once, persist rotated tokens, and report terminal session states.
package session

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/chirpdeck/chirpdeck/internal/auth/twitter"
	"github.com/chirpdeck/chirpdeck/internal/logging"
	"github.com/chirpdeck/chirpdeck/internal/store"
	"github.com/chirpdeck/chirpdeck/internal/twitterapi"
)

// TokenRefresher captures the refresh half of the token exchanger.
type TokenRefresher interface {
	RefreshTokens(ctx context.Context, refreshToken string) (*twitter.CredentialPair, error)
}

// ClientFactory produces authenticated X API clients from stored credentials.
type ClientFactory struct {
	store      store.TokenStore
	refresher  TokenRefresher
	httpClient *http.Client
	baseURL    string
}

// NewClientFactory constructs a factory over the given store and refresher.
func NewClientFactory(st store.TokenStore, refresher TokenRefresher, httpClient *http.Client) *ClientFactory {
	return &ClientFactory{store: st, refresher: refresher, httpClient: httpClient}
}

// SetBaseURL points produced clients at a non-default API endpoint.
func (f *ClientFactory) SetBaseURL(baseURL string) {
	f.baseURL = baseURL
}

// GetClient returns a working authenticated client, refreshing the access
// token transparently when needed. The sequence is fixed:
//
//  1. Load the credential pair; no access token means never connected.
//  2. Probe the token with the cheapest authenticated call.
//  3. A non-401 probe failure propagates unchanged; transient faults must
//     never clear stored tokens.
//  4. On exactly a 401, refresh once: success persists the rotated pair and
//     yields a fresh client; a missing or rejected refresh token clears the
//     store and ends the session. There is no second attempt and no loop.
func (f *ClientFactory) GetClient(c *gin.Context) (*twitterapi.Client, error) {
	ctx := c.Request.Context()

	pair, err := f.store.Load(c)
	if err != nil {
		return nil, err
	}
	if !pair.HasAccessToken() {
		return nil, twitter.ErrNotAuthenticated
	}

	client := f.newClient(pair.AccessToken)
	_, errProbe := client.Me(ctx)
	if errProbe == nil {
		return client, nil
	}
	if !twitterapi.IsUnauthorized(errProbe) {
		return nil, fmt.Errorf("x api probe failed: %w", errProbe)
	}

	if !pair.HasRefreshToken() {
		f.store.Clear(c)
		return nil, twitter.NewAuthenticationError(twitter.ErrSessionExpired, errProbe)
	}

	logging.RequestLogger(ctx).Debug("access token rejected, attempting refresh")
	refreshed, errRefresh := f.refresher.RefreshTokens(ctx, pair.RefreshToken)
	if errRefresh != nil {
		f.store.Clear(c)
		return nil, twitter.NewAuthenticationError(twitter.ErrSessionExpired, errRefresh)
	}
	if errSave := f.store.Save(c, *refreshed); errSave != nil {
		// The refreshed client still works for this request; the next
		// request will simply refresh again.
		log.Errorf("failed to persist refreshed credentials: %v", errSave)
	}
	logging.RequestLogger(ctx).Info("x access token refreshed")
	return f.newClient(refreshed.AccessToken), nil
}

// newClient builds an API client bound to the given access token.
func (f *ClientFactory) newClient(accessToken string) *twitterapi.Client {
	client := twitterapi.NewClient(accessToken, f.httpClient)
	if f.baseURL != "" {
		client.BaseURL = f.baseURL
	}
	return client
}
