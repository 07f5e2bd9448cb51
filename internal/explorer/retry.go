package explorer

import (
	"context"
	"math/rand"
	"time"
)

// maxRetryDelay bounds the backoff between attempts. Explorer APIs
// rate-limit per second, so waiting longer than this buys nothing.
const maxRetryDelay = 10 * time.Second

// withRetry runs fn up to maxRetries+1 times with jittered exponential
// backoff. The jitter spreads concurrent callers hitting the same rate
// limit so they do not retry in lockstep.
func withRetry(ctx context.Context, maxRetries int, baseDelay time.Duration, fn func(context.Context) error) error {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if baseDelay <= 0 {
		baseDelay = 100 * time.Millisecond
	}

	delay := baseDelay
	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if attempt >= maxRetries {
			return err
		}

		sleep := delay + time.Duration(rand.Int63n(int64(delay)/2+1))
		timer := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		if delay < maxRetryDelay {
			delay *= 2
			if delay > maxRetryDelay {
				delay = maxRetryDelay
			}
		}
	}
}
