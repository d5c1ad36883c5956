package ai

import (
	"context"
	"fmt"
)

// TrendsInput describes a trend-analysis request.
type TrendsInput struct {
	Topic string `json:"topic" binding:"required"`
}

// TrendsOutput carries the analysis summary and recommended content angles.
type TrendsOutput struct {
	Summary string   `json:"summary"`
	Angles  []string `json:"angles"`
}

// AnalyzeTrends summarizes current conversation around a topic and suggests
// content angles to ride it.
func (f *Flows) AnalyzeTrends(ctx context.Context, input TrendsInput) (*TrendsOutput, error) {
	prompt := fmt.Sprintf(`You are a social media trend analyst. Summarize how audiences are currently talking about the topic below, then recommend concrete content angles that would resonate right now.

Topic: %s

Respond with JSON: {"summary": "...", "angles": ["...", "..."]}`, input.Topic)

	result, err := f.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return &TrendsOutput{
		Summary: result.Get("summary").String(),
		Angles:  stringSlice(result.Get("angles")),
	}, nil
}
