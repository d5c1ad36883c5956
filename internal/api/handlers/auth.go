package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/chirpdeck/chirpdeck/internal/auth/twitter"
	"github.com/chirpdeck/chirpdeck/internal/logging"
)

// AuthStart handles GET /auth/start. It generates an authorization link,
// persists the verifier/state pair for the callback, and redirects the
// browser to the consent screen.
func (h *Handlers) AuthStart(c *gin.Context) {
	logger := logging.RequestLogger(c.Request.Context())

	link, err := h.auth.GenerateAuthLink()
	if err != nil {
		logger.Errorf("auth link generation failed: %v", err)
		h.redirectWithError(c, err.Error())
		return
	}

	pending := twitter.PendingAuth{CodeVerifier: link.CodeVerifier, State: link.State}
	if err = h.store.SavePending(c, pending); err != nil {
		logger.Errorf("failed to persist pending auth state: %v", err)
		h.redirectWithError(c, "could not start the login flow")
		return
	}

	c.Redirect(http.StatusFound, link.URL)
}

// AuthCallback handles GET /auth/callback. The stored state must exactly
// equal the returned state before the code is exchanged; anything else
// rejects the flow without touching the token endpoint. The pending state is
// consumed exactly once, whatever the outcome.
func (h *Handlers) AuthCallback(c *gin.Context) {
	logger := logging.RequestLogger(c.Request.Context())

	state := c.Query("state")
	code := c.Query("code")

	pending, ok := h.store.TakePending(c)
	if !ok || state == "" || code == "" || state != pending.State {
		logger.Warn("oauth callback rejected: state mismatch or missing parameters")
		h.redirectWithError(c, "invalid request: state mismatch or missing parameters")
		return
	}

	pair, err := h.auth.ExchangeCodeForTokens(c.Request.Context(), code, pending.CodeVerifier)
	if err != nil {
		logger.Errorf("code exchange failed: %v", err)
		h.redirectWithError(c, "authentication callback failed")
		return
	}

	if err = h.store.Save(c, *pair); err != nil {
		logger.Errorf("failed to persist credentials: %v", err)
		h.redirectWithError(c, "could not store the new session")
		return
	}

	logger.Info("x account connected")
	params := url.Values{}
	params.Set("connected", "1")
	c.Redirect(http.StatusFound, h.publisherURL(params))
}

// Disconnect handles POST /api/twitter/disconnect. Clearing is idempotent
// and always reports success.
func (h *Handlers) Disconnect(c *gin.Context) {
	h.status.Disconnect(c)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Successfully disconnected from X",
	})
}
