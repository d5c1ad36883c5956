package ai

import (
	"context"
	"fmt"
)

// RefineInput describes a content-refinement request.
type RefineInput struct {
	Content     string `json:"content" binding:"required"`
	Instruction string `json:"instruction" binding:"required"`
}

// RefineOutput carries the rewritten content.
type RefineOutput struct {
	RefinedContent string `json:"refinedContent"`
}

// RefineContent rewrites a draft according to the given instruction while
// keeping it within the platform's character limit.
func (f *Flows) RefineContent(ctx context.Context, input RefineInput) (*RefineOutput, error) {
	prompt := fmt.Sprintf(`You are a social media editor. Rewrite the draft below following the instruction. Preserve the draft's intent, keep it under 280 characters, and return only the rewritten text.

Draft: %s

Instruction: %s

Respond with JSON: {"refinedContent": "..."}`, input.Content, input.Instruction)

	result, err := f.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return &RefineOutput{RefinedContent: result.Get("refinedContent").String()}, nil
}
