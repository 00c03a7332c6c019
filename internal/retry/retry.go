// Package retry implements a bounded exponential-backoff policy composed
// around external calls, instead of hand-rolling the loop per call site.
package retry

import (
	"context"
	"math/rand"
	"time"
)

// Policy describes how many attempts an operation gets and how long to
// wait between them. Delay for attempt n (0-based) is
// base * 2^n + uniform[0, jitter).
type Policy struct {
	MaxAttempts int
	Base        time.Duration
	Jitter      time.Duration
}

// Do runs op until it succeeds, attempts are exhausted, or ctx is done.
// The last error is returned on exhaustion.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(p.delay(attempt - 1)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if lastErr = op(ctx); lastErr == nil {
			return nil
		}
	}
	return lastErr
}

func (p Policy) delay(attempt int) time.Duration {
	d := p.Base << uint(attempt)
	if p.Jitter > 0 {
		d += time.Duration(rand.Int63n(int64(p.Jitter)))
	}
	return d
}
