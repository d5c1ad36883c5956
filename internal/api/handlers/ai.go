package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chirpdeck/chirpdeck/internal/ai"
	"github.com/chirpdeck/chirpdeck/internal/logging"
)

// GenerateThemes handles POST /api/ai/themes.
func (h *Handlers) GenerateThemes(c *gin.Context) {
	var input ai.ThemesInput
	if !bindFlowInput(c, &input) {
		return
	}
	respondFlow(c, func() (any, error) { return h.flows.GenerateThemes(c.Request.Context(), input) })
}

// GenerateSuggestions handles POST /api/ai/suggestions.
func (h *Handlers) GenerateSuggestions(c *gin.Context) {
	var input ai.SuggestionsInput
	if !bindFlowInput(c, &input) {
		return
	}
	respondFlow(c, func() (any, error) { return h.flows.GenerateSuggestions(c.Request.Context(), input) })
}

// RefineContent handles POST /api/ai/refine.
func (h *Handlers) RefineContent(c *gin.Context) {
	var input ai.RefineInput
	if !bindFlowInput(c, &input) {
		return
	}
	respondFlow(c, func() (any, error) { return h.flows.RefineContent(c.Request.Context(), input) })
}

// ExpandToThread handles POST /api/ai/expand-thread.
func (h *Handlers) ExpandToThread(c *gin.Context) {
	var input ai.ExpandInput
	if !bindFlowInput(c, &input) {
		return
	}
	respondFlow(c, func() (any, error) { return h.flows.ExpandToThread(c.Request.Context(), input) })
}

// AnalyzeTrends handles POST /api/ai/trends.
func (h *Handlers) AnalyzeTrends(c *gin.Context) {
	var input ai.TrendsInput
	if !bindFlowInput(c, &input) {
		return
	}
	respondFlow(c, func() (any, error) { return h.flows.AnalyzeTrends(c.Request.Context(), input) })
}

// GenerateEngagementStrategy handles POST /api/ai/strategy.
func (h *Handlers) GenerateEngagementStrategy(c *gin.Context) {
	var input ai.StrategyInput
	if !bindFlowInput(c, &input) {
		return
	}
	respondFlow(c, func() (any, error) { return h.flows.GenerateEngagementStrategy(c.Request.Context(), input) })
}

// AlignPlatformContent handles POST /api/ai/align.
func (h *Handlers) AlignPlatformContent(c *gin.Context) {
	var input ai.AlignInput
	if !bindFlowInput(c, &input) {
		return
	}
	respondFlow(c, func() (any, error) { return h.flows.AlignPlatformContent(c.Request.Context(), input) })
}

// bindFlowInput binds the request body, reporting a 400 on malformed input.
func bindFlowInput(c *gin.Context, input any) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// respondFlow runs a flow and maps its outcome: overload exhaustion becomes
// 503 so the frontend can suggest trying again later, everything else a 500.
func respondFlow(c *gin.Context, fn func() (any, error)) {
	output, err := fn()
	if err != nil {
		logging.RequestLogger(c.Request.Context()).Errorf("generation flow failed: %v", err)
		status := http.StatusInternalServerError
		if ai.IsOverloaded(err) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, output)
}
