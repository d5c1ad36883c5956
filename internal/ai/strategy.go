package ai

import (
	"context"
	"fmt"
)

// StrategyInput describes an engagement-strategy request.
type StrategyInput struct {
	Goal     string `json:"goal" binding:"required"`
	Audience string `json:"audience"`
}

// StrategyOutput carries the generated plan.
type StrategyOutput struct {
	Strategy string   `json:"strategy"`
	Cadence  string   `json:"cadence"`
	Tactics  []string `json:"tactics"`
}

// GenerateEngagementStrategy produces a posting and engagement plan for a goal.
func (f *Flows) GenerateEngagementStrategy(ctx context.Context, input StrategyInput) (*StrategyOutput, error) {
	audience := input.Audience
	if audience == "" {
		audience = "a general audience"
	}

	prompt := fmt.Sprintf(`You are a social media growth strategist. Design an engagement strategy for the goal below, aimed at %s. Include an overall strategy, a posting cadence, and specific tactics.

Goal: %s

Respond with JSON: {"strategy": "...", "cadence": "...", "tactics": ["...", "..."]}`, audience, input.Goal)

	result, err := f.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return &StrategyOutput{
		Strategy: result.Get("strategy").String(),
		Cadence:  result.Get("cadence").String(),
		Tactics:  stringSlice(result.Get("tactics")),
	}, nil
}
