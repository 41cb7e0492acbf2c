// Package retry provides a bounded retry wrapper for transactional units of
// work that can fail with optimistic-concurrency conflicts. It replaces the
// implicit retry-on-annotation approach with an explicit, testable function.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/pkg/errs"
)

// DefaultAttempts is the conflict retry budget applied by command handlers.
const DefaultAttempts = 3

// baseBackoff is the delay before the first retry; subsequent retries double it.
const baseBackoff = 10 * time.Millisecond

// Optimistic runs fn, retrying up to attempts times when fn fails with an
// optimistic-concurrency conflict (errs.ErrVersionIsInvalid). Any other error
// aborts immediately. When the budget is exhausted the last conflict error is
// returned wrapped, still matching errs.ErrVersionIsInvalid, so callers can
// surface it as a retryable failure.
func Optimistic(ctx context.Context, attempts int, fn func(ctx context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	backoff := baseBackoff
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if !errors.Is(lastErr, errs.ErrVersionIsInvalid) {
			return lastErr
		}
		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	return fmt.Errorf("retry budget of %d attempts exhausted: %w", attempts, lastErr)
}
