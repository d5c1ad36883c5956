package ai

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// DefaultMaxAttempts is the shared attempt limit for every generation flow.
const DefaultMaxAttempts = 3

// CallWithOverloadRetry runs fn, retrying only when the failure is the
// model-overloaded signal. The backoff is linear: attempt × 1s. Every other
// error propagates immediately with zero retries.
func CallWithOverloadRetry[T any](ctx context.Context, maxAttempts int, fn func() (T, error)) (T, error) {
	var zero T
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		if !IsOverloaded(err) {
			return zero, err
		}
		lastErr = err
		if attempt == maxAttempts {
			break
		}

		wait := time.Duration(attempt) * time.Second
		log.Warnf("model overloaded, retrying in %s", wait)
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(wait):
		}
	}
	return zero, fmt.Errorf("the model is currently overloaded, please try again later: %w", lastErr)
}
