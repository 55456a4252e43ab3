package stream

import (
	"math"
	"math/rand"
	"time"
)

// reconnectDelay computes the backoff before the given reconnect
// attempt, the same shape as the transport core's retry backoff:
// min(base*2^a, max) + U(0, 2*jitterRange) with jitterRange =
// capped*ReconnectJitter, clamped to MaxReconnectDelay plus
// MaxReconnectDelay*ReconnectJitter.
func reconnectDelay(cfg Config, attempt int) time.Duration {
	exp := float64(cfg.BaseReconnectDelay) * math.Pow(2, float64(attempt))
	capped := math.Min(exp, float64(cfg.MaxReconnectDelay))
	jitterRange := capped * cfg.ReconnectJitter
	jitter := rand.Float64() * 2 * jitterRange
	delay := time.Duration(capped + jitter)
	if max := cfg.MaxReconnectDelay + time.Duration(float64(cfg.MaxReconnectDelay)*cfg.ReconnectJitter); delay > max {
		delay = max
	}
	return delay
}
