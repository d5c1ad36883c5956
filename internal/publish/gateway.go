// Package publish sends normalized messages to X as single posts or
// reply-linked threads. Failures never escape as errors: the gateway
// boundary converts every outcome into a result value so UI layers do not
// need exception handling around publishing.
package publish

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chirpdeck/chirpdeck/internal/auth/twitter"
	"github.com/chirpdeck/chirpdeck/internal/logging"
	"github.com/chirpdeck/chirpdeck/internal/session"
	"github.com/chirpdeck/chirpdeck/internal/twitterapi"
)

// positionalPrefix matches leading "N/ " thread numbering the generator
// sometimes emits; it is presentation, not content.
var positionalPrefix = regexp.MustCompile(`^\d+/\s*`)

// Result is the outcome of a publish call. Exactly one of two shapes:
// success with the (first) post id and permalink, or failure with a message.
type Result struct {
	Success   bool   `json:"success"`
	TweetID   string `json:"tweetId,omitempty"`
	Permalink string `json:"permalink,omitempty"`
	Username  string `json:"username,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Gateway publishes messages through authenticated clients from the factory.
type Gateway struct {
	factory *session.ClientFactory
}

// NewGateway builds a publish gateway over the client factory.
func NewGateway(factory *session.ClientFactory) *Gateway {
	return &Gateway{factory: factory}
}

// Normalize strips positional "N/ " markers and surrounding whitespace from
// each message, dropping parts that end up empty.
func Normalize(messages []string) []string {
	cleaned := make([]string, 0, len(messages))
	for _, msg := range messages {
		msg = strings.TrimSpace(positionalPrefix.ReplaceAllString(msg, ""))
		if msg != "" {
			cleaned = append(cleaned, msg)
		}
	}
	return cleaned
}

// Publish validates and posts the given messages. One normalized message is
// sent as a single post; several are sent as a chain, each reply-linked to
// the previous. Local validation failures report before any network call is
// made, and over-length content is rejected, never truncated silently.
func (g *Gateway) Publish(c *gin.Context, messages []string) Result {
	if len(messages) == 0 || strings.TrimSpace(messages[0]) == "" {
		return failure("Post content cannot be empty.")
	}

	cleaned := Normalize(messages)
	if len(cleaned) == 0 {
		return failure("Post content cannot be empty.")
	}
	for i, msg := range cleaned {
		if length := len([]rune(msg)); length > twitterapi.MaxTweetLength {
			if len(cleaned) == 1 {
				return failure(fmt.Sprintf("Post content exceeds the %d character limit.", twitterapi.MaxTweetLength))
			}
			return failure(fmt.Sprintf("Part %d exceeds the %d character limit.", i+1, twitterapi.MaxTweetLength))
		}
	}

	client, err := g.factory.GetClient(c)
	if err != nil {
		return failure(twitter.UserFriendlyMessage(err))
	}

	ctx := c.Request.Context()
	logger := logging.RequestLogger(ctx)

	var firstID, previousID string
	for _, msg := range cleaned {
		id, errTweet := client.CreateTweet(ctx, msg, previousID)
		if errTweet != nil {
			logger.Errorf("publish failed: %v", errTweet)
			return failure("Failed to publish to X. Please try again.")
		}
		if firstID == "" {
			firstID = id
		}
		previousID = id
	}

	// Resolve the username live so the permalink stays accurate even if the
	// handle changed mid-session. The post already succeeded; a failed
	// lookup only degrades the permalink to the handle-less form.
	username := "i"
	var resolvedUsername string
	if user, errMe := client.Me(ctx); errMe == nil && user.Username != "" {
		username = user.Username
		resolvedUsername = user.Username
	} else if errMe != nil {
		logger.Warnf("post-publish identity fetch failed: %v", errMe)
	}

	logger.Infof("published %d post(s), root %s", len(cleaned), firstID)
	return Result{
		Success:   true,
		TweetID:   firstID,
		Username:  resolvedUsername,
		Permalink: fmt.Sprintf("https://x.com/%s/status/%s", username, firstID),
	}
}

func failure(message string) Result {
	return Result{Success: false, Error: message}
}
