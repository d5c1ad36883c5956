// Package twitterapi provides a minimal client for the X API v2: fetching
// the authenticated user and creating tweets or threaded replies. It covers
// exactly the endpoints the publishing dashboard needs.
package twitterapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// DefaultBaseURL is the production X API v2 endpoint.
const DefaultBaseURL = "https://api.twitter.com/2"

// MaxTweetLength is the platform's per-post character limit.
const MaxTweetLength = 280

// Client is an access-token-scoped X API client. A client wraps exactly one
// access token; the session layer constructs a fresh client after a refresh.
type Client struct {
	// BaseURL is overridable for tests.
	BaseURL     string
	httpClient  *http.Client
	accessToken string
}

// User is a read-only projection of the authenticated account. Never
// persisted; always fetched live.
type User struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	Name            string `json:"name"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
}

// APIError represents a non-2xx response from the X API.
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int
	// Title is the short error title reported by the API.
	Title string
	// Detail is the longer error description reported by the API.
	Detail string
}

// Error returns a string representation of the API error.
func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("x api error %d %s: %s", e.StatusCode, e.Title, e.Detail)
	}
	return fmt.Sprintf("x api error %d %s", e.StatusCode, e.Title)
}

// IsUnauthorized reports whether err is an X API 401. This is the only
// signal the session layer may treat as token expiry; every other failure is
// transient and must not touch stored credentials.
func IsUnauthorized(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.StatusCode == http.StatusUnauthorized
}

// AsAPIError unwraps err into an *APIError when possible.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// NewClient creates a client bound to the given access token.
func NewClient(accessToken string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		BaseURL:     DefaultBaseURL,
		httpClient:  httpClient,
		accessToken: accessToken,
	}
}

// Me fetches the authenticated user. With no fields it is the cheapest
// authenticated call the API offers and doubles as the token validity probe.
//
// Parameters:
//   - ctx: The context for the request
//   - fields: Optional user.fields values (e.g. "profile_image_url")
//
// Returns:
//   - *User: The authenticated account projection
//   - error: An *APIError on protocol rejection, or a transport error
func (c *Client) Me(ctx context.Context, fields ...string) (*User, error) {
	endpoint := c.BaseURL + "/users/me"
	if len(fields) > 0 {
		endpoint += "?user.fields=" + url.QueryEscape(strings.Join(fields, ","))
	}
	body, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	data := gjson.GetBytes(body, "data")
	return &User{
		ID:              data.Get("id").String(),
		Username:        data.Get("username").String(),
		Name:            data.Get("name").String(),
		ProfileImageURL: data.Get("profile_image_url").String(),
	}, nil
}

// CreateTweet posts a single tweet and returns its id. When inReplyTo is
// non-empty the tweet is linked as a reply, which is how threads are chained.
//
// Parameters:
//   - ctx: The context for the request
//   - text: The tweet text, already normalized and length-checked
//   - inReplyTo: The id of the tweet to reply to, or "" for a standalone post
//
// Returns:
//   - string: The id of the created tweet
//   - error: An *APIError on protocol rejection, or a transport error
func (c *Client) CreateTweet(ctx context.Context, text, inReplyTo string) (string, error) {
	payload, err := sjson.Set("{}", "text", text)
	if err != nil {
		return "", fmt.Errorf("build tweet payload: %w", err)
	}
	if inReplyTo != "" {
		if payload, err = sjson.Set(payload, "reply.in_reply_to_tweet_id", inReplyTo); err != nil {
			return "", fmt.Errorf("build tweet payload: %w", err)
		}
	}

	body, err := c.do(ctx, http.MethodPost, c.BaseURL+"/tweets", []byte(payload))
	if err != nil {
		return "", err
	}
	id := gjson.GetBytes(body, "data.id").String()
	if id == "" {
		return "", fmt.Errorf("tweet response missing id: %s", string(body))
	}
	return id, nil
}

// do performs an authenticated request and returns the response body, mapping
// non-2xx responses to *APIError.
func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("x api request failed: %w", err)
	}
	defer func() {
		if errClose := resp.Body.Close(); errClose != nil {
			log.Errorf("failed to close response body: %v", errClose)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read x api response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Title:      gjson.GetBytes(body, "title").String(),
			Detail:     gjson.GetBytes(body, "detail").String(),
		}
	}
	return body, nil
}
