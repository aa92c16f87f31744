package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/medroster"
)

// Backoff is the wait before each retry of a failed fetch. An empty Backoff
// makes a single attempt.
type Backoff []time.Duration

// DefaultBackoff waits 1s, 2s and 4s between attempts.
func DefaultBackoff() Backoff {
	return Backoff{time.Second, 2 * time.Second, 4 * time.Second}
}

// backoffOrDefault treats a nil slice as unset.
func backoffOrDefault(delays []time.Duration) Backoff {
	if delays == nil {
		return DefaultBackoff()
	}
	return Backoff(delays)
}

// Fetch calls f.Fetch until it succeeds or the delays run out, and returns
// the last error. ENOTFOUND is final: a removed profile stays removed.
// onRetry, when set, sees the failed attempt number before each wait.
func (b Backoff) Fetch(ctx context.Context, f medroster.Fetcher, rawURL string, onRetry func(attempt int, err error)) (string, error) {
	for attempt := 0; ; attempt++ {
		html, err := f.Fetch(ctx, rawURL)
		if err == nil {
			return html, nil
		}
		if attempt == len(b) || medroster.ErrorCode(err) == medroster.ENOTFOUND {
			return "", err
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if onRetry != nil {
			onRetry(attempt+1, err)
		}

		t := time.NewTimer(b[attempt])
		select {
		case <-ctx.Done():
			t.Stop()
			return "", ctx.Err()
		case <-t.C:
		}
	}
}
