package gemini

import (
	"context"
	"time"

	"github.com/fwojciec/ecolocator"
)

// withRetry runs call once plus one retry per entry in delays. Only
// EUNAVAILABLE failures are retried; timeouts and rejected requests return
// immediately.
func withRetry(ctx context.Context, delays []time.Duration, call func(context.Context) (*ecolocator.ExternalQueryResult, error)) (*ecolocator.ExternalQueryResult, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		result, err := call(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if ecolocator.ErrorCode(err) != ecolocator.EUNAVAILABLE || attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, lastErr
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
