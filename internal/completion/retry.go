// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package completion

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	defaultMaxRetries = 3
	defaultBaseDelay  = 2 * time.Second
)

// RetryClient decorates a Client with bounded retries and exponential
// backoff. The delay starts at the base delay and doubles each attempt.
// Invalid-argument failures are not retried; they cannot succeed on a
// second try.
type RetryClient struct {
	inner      Client
	maxRetries int
	baseDelay  time.Duration
}

// WithRetry wraps inner with a retry policy. Non-positive maxRetries or
// baseDelay select the defaults (3 retries, 2 s base).
func WithRetry(inner Client, maxRetries int, baseDelay time.Duration) *RetryClient {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	if baseDelay <= 0 {
		baseDelay = defaultBaseDelay
	}
	return &RetryClient{inner: inner, maxRetries: maxRetries, baseDelay: baseDelay}
}

// Complete calls the wrapped client, retrying backend failures until the
// attempt ceiling is reached. If the context is cancelled during a backoff
// wait the context error is returned.
func (r *RetryClient) Complete(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * r.baseDelay
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		out, err := r.inner.Complete(ctx, prompt)
		if err == nil {
			return out, nil
		}
		if errors.Is(err, ErrInvalidArgument) {
			return "", err
		}
		lastErr = err
	}
	return "", fmt.Errorf("after %d retries: %w", r.maxRetries, lastErr)
}
