package ai

import (
	"context"

	"github.com/tidwall/gjson"
)

// Flows bundles the content-generation flows behind one Generator. Each flow
// is a structured-input to structured-output call sharing the overload retry
// policy.
type Flows struct {
	gen Generator
}

// NewFlows builds the flow set over the given generator.
func NewFlows(gen Generator) *Flows {
	return &Flows{gen: gen}
}

// generate runs one retried generation call and parses the JSON reply.
func (f *Flows) generate(ctx context.Context, prompt string) (gjson.Result, error) {
	raw, err := CallWithOverloadRetry(ctx, DefaultMaxAttempts, func() ([]byte, error) {
		return f.gen.GenerateJSON(ctx, prompt)
	})
	if err != nil {
		return gjson.Result{}, err
	}
	return gjson.ParseBytes(raw), nil
}

// stringSlice converts a gjson array into a []string.
func stringSlice(result gjson.Result) []string {
	items := result.Array()
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := item.String(); s != "" {
			out = append(out, s)
		}
	}
	return out
}
