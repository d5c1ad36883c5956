// Package handlers implements the HTTP handlers the dashboard frontend
// calls: the OAuth login flow, connection status, publishing, and the
// content-generation flows.
package handlers

import (
	"context"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/chirpdeck/chirpdeck/internal/ai"
	"github.com/chirpdeck/chirpdeck/internal/auth/twitter"
	"github.com/chirpdeck/chirpdeck/internal/config"
	"github.com/chirpdeck/chirpdeck/internal/publish"
	"github.com/chirpdeck/chirpdeck/internal/session"
	"github.com/chirpdeck/chirpdeck/internal/store"
)

// publisherPath is the dashboard page the login flow returns to.
const publisherPath = "/dashboard/publisher"

// AuthFlow captures the two halves of the login flow the handlers drive.
// Satisfied by *twitter.TwitterAuth.
type AuthFlow interface {
	GenerateAuthLink() (*twitter.AuthLink, error)
	ExchangeCodeForTokens(ctx context.Context, code, codeVerifier string) (*twitter.CredentialPair, error)
}

// Handlers carries the wired services behind the HTTP surface.
type Handlers struct {
	cfg     *config.Config
	auth    AuthFlow
	store   store.TokenStore
	status  *session.StatusService
	gateway *publish.Gateway
	flows   *ai.Flows
}

// New wires the handler set.
func New(cfg *config.Config, auth AuthFlow, st store.TokenStore, status *session.StatusService, gateway *publish.Gateway, flows *ai.Flows) *Handlers {
	return &Handlers{
		cfg:     cfg,
		auth:    auth,
		store:   st,
		status:  status,
		gateway: gateway,
		flows:   flows,
	}
}

// publisherURL builds the dashboard return URL with optional query markers.
func (h *Handlers) publisherURL(params url.Values) string {
	target := h.cfg.BaseURL + publisherPath
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	return target
}

// redirectWithError sends the browser back to the dashboard with
// human-readable failure markers in the query string.
func (h *Handlers) redirectWithError(c *gin.Context, details string) {
	params := url.Values{}
	params.Set("error", "twitter_auth_failed")
	params.Set("details", details)
	c.Redirect(302, h.publisherURL(params))
}
