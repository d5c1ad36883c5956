package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"
)

func overloadedErr() error {
	return &GenerationError{StatusCode: http.StatusServiceUnavailable, Message: "The model is overloaded"}
}

func TestCallWithOverloadRetry_SucceedsFirstTry(t *testing.T) {
	t.Parallel()

	calls := 0
	got, err := CallWithOverloadRetry(context.Background(), 3, func() (string, error) {
		calls++
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" || calls != 1 {
		t.Fatalf("want ok after 1 call, got %q after %d", got, calls)
	}
}

func TestCallWithOverloadRetry_RetriesOverloadWithBackoff(t *testing.T) {
	t.Parallel()

	calls := 0
	start := time.Now()
	got, err := CallWithOverloadRetry(context.Background(), 3, func() (string, error) {
		calls++
		if calls < 3 {
			return "", overloadedErr()
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" || calls != 3 {
		t.Fatalf("want ok after 3 calls, got %q after %d", got, calls)
	}
	// Linear backoff: 1s after the first failure, 2s after the second.
	if elapsed := time.Since(start); elapsed < 3*time.Second {
		t.Fatalf("want at least 3s of backoff, got %s", elapsed)
	}
}

func TestCallWithOverloadRetry_NonOverloadFailsImmediately(t *testing.T) {
	t.Parallel()

	calls := 0
	boom := fmt.Errorf("boom")
	_, err := CallWithOverloadRetry(context.Background(), 3, func() (string, error) {
		calls++
		return "", boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("want the original error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("non-overload errors must not be retried, got %d calls", calls)
	}
}

func TestCallWithOverloadRetry_ExhaustionWrapsLastError(t *testing.T) {
	t.Parallel()

	calls := 0
	_, err := CallWithOverloadRetry(context.Background(), 2, func() (string, error) {
		calls++
		return "", overloadedErr()
	})
	if err == nil {
		t.Fatal("want error after exhausting attempts")
	}
	if calls != 2 {
		t.Fatalf("want 2 attempts, got %d", calls)
	}
	if !IsOverloaded(err) {
		t.Fatalf("exhaustion error should still read as overloaded: %v", err)
	}
}

func TestCallWithOverloadRetry_ContextCancelStopsWaiting(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := CallWithOverloadRetry(ctx, 3, func() (string, error) {
		return "", overloadedErr()
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestIsOverloaded(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"503", &GenerationError{StatusCode: 503}, true},
		{"overloaded message", &GenerationError{StatusCode: 429, Message: "model is Overloaded"}, true},
		{"plain 500", &GenerationError{StatusCode: 500, Message: "internal"}, false},
		{"non generation error", fmt.Errorf("boom"), false},
		{"wrapped", fmt.Errorf("wrap: %w", &GenerationError{StatusCode: 503}), true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsOverloaded(tt.err); got != tt.want {
				t.Fatalf("want %v, got %v", tt.want, got)
			}
		})
	}
}
