// Package ai implements the LLM content-generation flows behind the
// dashboard: structured-input to structured-output calls against the Gemini
// generateContent API, with a shared retry policy for overload signals.
package ai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/chirpdeck/chirpdeck/internal/config"
	"github.com/chirpdeck/chirpdeck/internal/util"
)

// DefaultBaseURL is the public Gemini API endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// generationTimeout bounds one generateContent round trip. Generation
// latency dominates, so this is far looser than the token-endpoint timeout.
const generationTimeout = 60 * time.Second

// Generator produces a JSON document for a prompt. The flows depend on this
// interface so tests can substitute a canned model.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string) ([]byte, error)
}

// GenerationError represents a failed generateContent call.
type GenerationError struct {
	// StatusCode is the HTTP status of the response, 0 for transport errors.
	StatusCode int
	// Message is the error description from the API.
	Message string
}

// Error returns a string representation of the generation error.
func (e *GenerationError) Error() string {
	return fmt.Sprintf("gemini error %d: %s", e.StatusCode, e.Message)
}

// IsOverloaded reports whether err is the model-overloaded signal, the only
// error the retry wrapper may retry.
func IsOverloaded(err error) bool {
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		return false
	}
	if genErr.StatusCode == http.StatusServiceUnavailable {
		return true
	}
	return strings.Contains(strings.ToLower(genErr.Message), "overloaded")
}

// GeminiClient calls the Gemini generateContent API.
type GeminiClient struct {
	// BaseURL is overridable for tests.
	BaseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGeminiClient builds a Gemini client from configuration.
func NewGeminiClient(cfg *config.Config) *GeminiClient {
	return &GeminiClient{
		BaseURL:    DefaultBaseURL,
		apiKey:     cfg.Gemini.APIKey,
		model:      cfg.Gemini.Model,
		httpClient: util.NewHTTPClient(generationTimeout, cfg.ProxyURL),
	}
}

// GenerateJSON sends the prompt and returns the model's JSON output. The
// request pins responseMimeType to application/json so every flow can parse
// the reply structurally.
func (g *GeminiClient) GenerateJSON(ctx context.Context, prompt string) ([]byte, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("gemini: api key is not configured")
	}

	payload, _ := sjson.Set("{}", "contents.0.parts.0.text", prompt)
	payload, _ = sjson.Set(payload, "generationConfig.responseMimeType", "application/json")

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", g.BaseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader([]byte(payload)))
	if err != nil {
		return nil, fmt.Errorf("gemini: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini: request failed: %w", err)
	}
	defer func() {
		if errClose := resp.Body.Close(); errClose != nil {
			log.Errorf("failed to close response body: %v", errClose)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gemini: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &GenerationError{
			StatusCode: resp.StatusCode,
			Message:    gjson.GetBytes(body, "error.message").String(),
		}
	}

	text := gjson.GetBytes(body, "candidates.0.content.parts.0.text").String()
	if text == "" {
		return nil, &GenerationError{StatusCode: resp.StatusCode, Message: "response contained no content"}
	}
	return []byte(text), nil
}
