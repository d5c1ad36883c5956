package session

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/chirpdeck/chirpdeck/internal/auth/twitter"
	"github.com/chirpdeck/chirpdeck/internal/logging"
	"github.com/chirpdeck/chirpdeck/internal/store"
	"github.com/chirpdeck/chirpdeck/internal/twitterapi"
)

// ConnectionStatus answers "is this user connected, and as whom?" for the
// dashboard. Exactly one of three shapes: not connected, connected-as-user,
// or not connected with an explanatory error.
type ConnectionStatus struct {
	IsConnected bool             `json:"isConnected"`
	User        *twitterapi.User `json:"user,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// StatusService reports the connection state of the current session.
type StatusService struct {
	factory *ClientFactory
	store   store.TokenStore
}

// NewStatusService builds a status service over the factory and store.
func NewStatusService(factory *ClientFactory, st store.TokenStore) *StatusService {
	return &StatusService{factory: factory, store: st}
}

// Check resolves the connection state. A session that was never connected is
// an expected state, not an error; an expired session carries a message so
// the UI can prompt a reconnect.
func (s *StatusService) Check(c *gin.Context) ConnectionStatus {
	client, err := s.factory.GetClient(c)
	if err != nil {
		if errors.Is(err, twitter.ErrNotAuthenticated) {
			return ConnectionStatus{IsConnected: false}
		}
		logging.RequestLogger(c.Request.Context()).Warnf("connection check failed: %v", err)
		return ConnectionStatus{IsConnected: false, Error: twitter.UserFriendlyMessage(err)}
	}

	user, err := client.Me(c.Request.Context(), "profile_image_url")
	if err != nil {
		logging.RequestLogger(c.Request.Context()).Warnf("identity fetch failed: %v", err)
		return ConnectionStatus{IsConnected: false, Error: "Failed to verify connection. Please try reconnecting."}
	}
	return ConnectionStatus{IsConnected: true, User: user}
}

// Disconnect clears stored credentials. Always succeeds; clearing an already
// empty store is a no-op.
func (s *StatusService) Disconnect(c *gin.Context) {
	s.store.Clear(c)
}
