package transport

import (
	"math"
	"math/rand"
	"time"
)

// backoffDelay computes delay(a) = min(base*2^a, max) + U(0, 2*jitterRange)
// where jitterRange = capped*jitterFactor: exponential backoff with
// jitter, capped before the jitter range is derived so max delay bounds
// the whole distribution rather than just its base. Never negative, never
// exceeds max + max*jitterFactor.
func backoffDelay(policy RetryPolicy, attempt int) time.Duration {
	exp := float64(policy.BaseDelay) * math.Pow(2, float64(attempt))
	capped := math.Min(exp, float64(policy.MaxDelay))
	jitterRange := capped * policy.JitterFactor
	jitter := rand.Float64() * 2 * jitterRange
	delay := time.Duration(capped + jitter)
	if max := policy.MaxDelay + time.Duration(float64(policy.MaxDelay)*policy.JitterFactor); delay > max {
		delay = max
	}
	return delay
}
