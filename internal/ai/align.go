package ai

import (
	"context"
	"fmt"
	"strings"
)

// AlignInput describes a cross-platform adaptation request.
type AlignInput struct {
	Content   string   `json:"content" binding:"required"`
	Platforms []string `json:"platforms" binding:"required"`
}

// PlatformVariant is the content adapted for one platform.
type PlatformVariant struct {
	Platform string `json:"platform"`
	Content  string `json:"content"`
}

// AlignOutput carries one variant per requested platform.
type AlignOutput struct {
	Variants []PlatformVariant `json:"variants"`
}

// AlignPlatformContent adapts a piece of content to each target platform's
// conventions and constraints.
func (f *Flows) AlignPlatformContent(ctx context.Context, input AlignInput) (*AlignOutput, error) {
	prompt := fmt.Sprintf(`You are a social media editor. Adapt the content below for each of these platforms, respecting each platform's tone and length conventions: %s.

Content: %s

Respond with JSON: {"variants": [{"platform": "...", "content": "..."}]}`, strings.Join(input.Platforms, ", "), input.Content)

	result, err := f.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	out := &AlignOutput{}
	for _, item := range result.Get("variants").Array() {
		out.Variants = append(out.Variants, PlatformVariant{
			Platform: item.Get("platform").String(),
			Content:  item.Get("content").String(),
		})
	}
	return out, nil
}
