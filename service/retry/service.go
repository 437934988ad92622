// Package retry re-invokes read-only external calls with a fixed delay.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Permanent wraps err so that Do stops retrying immediately
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do runs op until it succeeds, returns a permanent error, the context is
// cancelled, or policy.Attempts calls have been made. It never panics on
// exhaustion; the caller inspects the Outcome.
func Do[T any](ctx context.Context, policy Policy, logger *zap.Logger, name string, op func(context.Context) (T, error)) Outcome[T] {
	if logger == nil {
		logger = zap.NewNop()
	}

	attempts := policy.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var b backoff.BackOff = backoff.NewConstantBackOff(policy.Delay)
	b = backoff.WithMaxRetries(b, uint64(attempts-1))
	b = backoff.WithContext(b, ctx)

	calls := 0
	operation := func() (T, error) {
		calls++
		return op(ctx)
	}

	notify := func(err error, wait time.Duration) {
		logger.Warn("retrying external call",
			zap.String("call", name),
			zap.Int("attempt", calls),
			zap.Int("max_attempts", attempts),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	}

	value, err := backoff.RetryNotifyWithData(operation, b, notify)
	if err != nil {
		logger.Debug("external call gave up",
			zap.String("call", name),
			zap.Int("attempts", calls),
			zap.Error(err),
		)
	}

	return Outcome[T]{Value: value, Attempts: calls, Err: err}
}
