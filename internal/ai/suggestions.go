package ai

import (
	"context"
	"fmt"
)

// SuggestionsInput describes a post-suggestion request for a theme.
type SuggestionsInput struct {
	Theme string `json:"theme" binding:"required"`
	Count int    `json:"count"`
}

// SuggestionsOutput carries ready-to-edit post drafts.
type SuggestionsOutput struct {
	Suggestions []string `json:"suggestions"`
}

// GenerateSuggestions produces post drafts for a theme, each within the
// platform's character limit.
func (f *Flows) GenerateSuggestions(ctx context.Context, input SuggestionsInput) (*SuggestionsOutput, error) {
	count := input.Count
	if count <= 0 {
		count = 3
	}

	prompt := fmt.Sprintf(`You are a social media copywriter. Write %d engaging post drafts for the theme below. Each draft must stand alone and stay under 280 characters.

Theme: %s

Respond with JSON: {"suggestions": ["...", "..."]}`, count, input.Theme)

	result, err := f.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return &SuggestionsOutput{Suggestions: stringSlice(result.Get("suggestions"))}, nil
}
