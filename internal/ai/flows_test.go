package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGenerateThemes(t *testing.T) {
	t.Parallel()

	gen := &cannedGenerator{json: `{"themes":[{"title":"Build in public","description":"Share progress daily."},{"title":"Lessons learned","description":"Honest retrospectives."}]}`}
	f := NewFlows(gen)

	out, err := f.GenerateThemes(context.Background(), ThemesInput{Topic: "indie hacking", Count: 2})
	if err != nil {
		t.Fatalf("GenerateThemes() error: %v", err)
	}
	if len(out.Themes) != 2 {
		t.Fatalf("want 2 themes, got %d", len(out.Themes))
	}
	if out.Themes[0].Title != "Build in public" {
		t.Fatalf("unexpected first theme: %+v", out.Themes[0])
	}
	if !strings.Contains(gen.prompts[0], "indie hacking") {
		t.Fatal("prompt should carry the topic")
	}
	if !strings.Contains(gen.prompts[0], "2") {
		t.Fatal("prompt should carry the requested count")
	}
}

func TestGenerateThemes_DefaultCount(t *testing.T) {
	t.Parallel()

	gen := &cannedGenerator{json: `{"themes":[]}`}
	f := NewFlows(gen)

	if _, err := f.GenerateThemes(context.Background(), ThemesInput{Topic: "golang"}); err != nil {
		t.Fatalf("GenerateThemes() error: %v", err)
	}
	if !strings.Contains(gen.prompts[0], "5") {
		t.Fatal("prompt should fall back to the default count")
	}
}

func TestGenerateSuggestions(t *testing.T) {
	t.Parallel()

	gen := &cannedGenerator{json: `{"suggestions":["draft one","draft two","draft three"]}`}
	f := NewFlows(gen)

	out, err := f.GenerateSuggestions(context.Background(), SuggestionsInput{Theme: "build in public"})
	if err != nil {
		t.Fatalf("GenerateSuggestions() error: %v", err)
	}
	if len(out.Suggestions) != 3 {
		t.Fatalf("want 3 suggestions, got %d", len(out.Suggestions))
	}
}

func TestRefineContent(t *testing.T) {
	t.Parallel()

	gen := &cannedGenerator{json: `{"refinedContent":"Tighter, punchier draft."}`}
	f := NewFlows(gen)

	out, err := f.RefineContent(context.Background(), RefineInput{
		Content:     "A long rambling draft.",
		Instruction: "make it punchier",
	})
	if err != nil {
		t.Fatalf("RefineContent() error: %v", err)
	}
	if out.RefinedContent != "Tighter, punchier draft." {
		t.Fatalf("unexpected refinement: %q", out.RefinedContent)
	}
	if !strings.Contains(gen.prompts[0], "make it punchier") {
		t.Fatal("prompt should carry the instruction")
	}
}

func TestFlows_GeneratorErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("quota exceeded")
	f := NewFlows(&cannedGenerator{err: boom})

	if _, err := f.GenerateThemes(context.Background(), ThemesInput{Topic: "x"}); !errors.Is(err, boom) {
		t.Fatalf("want generator error, got %v", err)
	}
}
