package ai

import (
	"context"
	"fmt"
	"strings"
)

// NarrativeStages is the fixed ordered list of stages a generated thread
// walks through, one post per stage.
var NarrativeStages = []string{
	"Intro",
	"Inciting Incident",
	"Rising Tension",
	"Turning Point",
	"Development",
	"Second Turning Point",
	"Crisis",
	"Climax",
	"Resolution",
}

// ThreadBuilder tracks a thread under construction: the parts generated so
// far and an index into NarrativeStages. The index past the last stage is
// the terminal complete state.
type ThreadBuilder struct {
	initialContent string
	parts          []string
	stageIndex     int
}

// NewThreadBuilder starts a thread from an initial idea.
func NewThreadBuilder(initialContent string) *ThreadBuilder {
	return &ThreadBuilder{initialContent: initialContent}
}

// CurrentStage returns the stage to generate next. The second return is
// false once every stage has been generated.
func (b *ThreadBuilder) CurrentStage() (string, bool) {
	if b.stageIndex >= len(NarrativeStages) {
		return "", false
	}
	return NarrativeStages[b.stageIndex], true
}

// Advance records the generated part for the current stage and moves on.
func (b *ThreadBuilder) Advance(part string) {
	b.parts = append(b.parts, part)
	b.stageIndex++
}

// Complete reports whether all stages have been generated.
func (b *ThreadBuilder) Complete() bool {
	return b.stageIndex >= len(NarrativeStages)
}

// Parts returns the thread parts generated so far.
func (b *ThreadBuilder) Parts() []string {
	return append([]string(nil), b.parts...)
}

// ExpandInput describes one stage-expansion request.
type ExpandInput struct {
	InitialContent string   `json:"initialContent" binding:"required"`
	CurrentThread  []string `json:"currentThread"`
	Stage          string   `json:"stage" binding:"required"`
	// Promo, when set, must be woven into the final Resolution stage as a
	// call to action.
	Promo string `json:"promo,omitempty"`
}

// ExpandOutput carries the newly generated thread part.
type ExpandOutput struct {
	NextPost string `json:"nextPost"`
}

// ExpandToThread generates the next part of a narrative thread for the
// requested stage.
func (f *Flows) ExpandToThread(ctx context.Context, input ExpandInput) (*ExpandOutput, error) {
	if !isNarrativeStage(input.Stage) {
		return nil, fmt.Errorf("unknown narrative stage %q", input.Stage)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `You are an expert storyteller creating a viral thread with a cinematic structure. The stages, in order, are: %s.

Initial idea: %s

Thread so far:
`, strings.Join(NarrativeStages, ", "), input.InitialContent)
	for _, part := range input.CurrentThread {
		fmt.Fprintf(&sb, "- %q\n", part)
	}
	fmt.Fprintf(&sb, `
Write the text for the %q stage. Keep it under 280 characters, make it follow logically from the thread so far, and do not repeat earlier parts. Generate only this stage.
`, input.Stage)
	if input.Promo != "" && input.Stage == NarrativeStages[len(NarrativeStages)-1] {
		fmt.Fprintf(&sb, "This is the final stage: conclude the story and seamlessly integrate this call to action: %s\n", input.Promo)
	}
	sb.WriteString(`Respond with JSON: {"nextPost": "..."}`)

	result, err := f.generate(ctx, sb.String())
	if err != nil {
		return nil, err
	}
	return &ExpandOutput{NextPost: result.Get("nextPost").String()}, nil
}

func isNarrativeStage(stage string) bool {
	for _, s := range NarrativeStages {
		if s == stage {
			return true
		}
	}
	return false
}
