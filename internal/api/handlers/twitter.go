package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chirpdeck/chirpdeck/internal/publish"
)

// publishRequest is the body of POST /api/twitter/publish.
type publishRequest struct {
	Tweets []string `json:"tweets"`
}

// Status handles GET /api/twitter/status. The response always resolves to
// exactly one of: not connected, connected-as-user, or error-with-message.
func (h *Handlers) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.status.Check(c))
}

// Publish handles POST /api/twitter/publish. Outcomes are result values,
// never HTTP errors: the frontend branches on the success flag.
func (h *Handlers) Publish(c *gin.Context) {
	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, publish.Result{Success: false, Error: "invalid request body"})
		return
	}
	c.JSON(http.StatusOK, h.gateway.Publish(c, req.Tweets))
}
