package ai

import (
	"context"
	"fmt"
)

// Theme is one generated content theme.
type Theme struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ThemesInput describes a theme-generation request.
type ThemesInput struct {
	Topic string `json:"topic" binding:"required"`
	Count int    `json:"count"`
}

// ThemesOutput carries the generated themes.
type ThemesOutput struct {
	Themes []Theme `json:"themes"`
}

// GenerateThemes produces content themes for a topic.
func (f *Flows) GenerateThemes(ctx context.Context, input ThemesInput) (*ThemesOutput, error) {
	count := input.Count
	if count <= 0 {
		count = 5
	}

	prompt := fmt.Sprintf(`You are a social media strategist. Generate %d distinct content themes around the topic below. Each theme needs a punchy title and a one-sentence description of the angle.

Topic: %s

Respond with JSON: {"themes": [{"title": "...", "description": "..."}]}`, count, input.Topic)

	result, err := f.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	out := &ThemesOutput{}
	for _, item := range result.Get("themes").Array() {
		out.Themes = append(out.Themes, Theme{
			Title:       item.Get("title").String(),
			Description: item.Get("description").String(),
		})
	}
	return out, nil
}
