package transport

import "sync/atomic"

// ConnectionStats accumulates atomic counters over the lifetime of a
// Client. All fields are safe for concurrent increment.
type ConnectionStats struct {
	total            uint64
	successful       uint64
	failed           uint64
	reuses           uint64
	retriesAttempted uint64
	retriesSucceeded uint64
	retryExhausted   uint64
}

func (s *ConnectionStats) incTotal()            { atomic.AddUint64(&s.total, 1) }
func (s *ConnectionStats) incSuccessful()       { atomic.AddUint64(&s.successful, 1) }
func (s *ConnectionStats) incFailed()           { atomic.AddUint64(&s.failed, 1) }
func (s *ConnectionStats) incReuse()            { atomic.AddUint64(&s.reuses, 1) }
func (s *ConnectionStats) incRetriesAttempted() { atomic.AddUint64(&s.retriesAttempted, 1) }
func (s *ConnectionStats) incRetriesSucceeded() { atomic.AddUint64(&s.retriesSucceeded, 1) }
func (s *ConnectionStats) incRetryExhausted()   { atomic.AddUint64(&s.retryExhausted, 1) }

// StatsSummary is a consistent-enough point-in-time read of
// ConnectionStats, with derived success/retry ratios for dashboards.
type StatsSummary struct {
	Total             uint64
	Successful        uint64
	Failed            uint64
	Reuses            uint64
	RetriesAttempted  uint64
	RetriesSucceeded  uint64
	RetryExhausted    uint64
	SuccessRatio      float64
	RetrySuccessRatio float64
}

// Summary reads the current counters and derives ratios. A zero
// denominator yields ratio 0, not NaN.
func (s *ConnectionStats) Summary() StatsSummary {
	total := atomic.LoadUint64(&s.total)
	successful := atomic.LoadUint64(&s.successful)
	failed := atomic.LoadUint64(&s.failed)
	reuses := atomic.LoadUint64(&s.reuses)
	retriesAttempted := atomic.LoadUint64(&s.retriesAttempted)
	retriesSucceeded := atomic.LoadUint64(&s.retriesSucceeded)
	retryExhausted := atomic.LoadUint64(&s.retryExhausted)

	summary := StatsSummary{
		Total:            total,
		Successful:       successful,
		Failed:           failed,
		Reuses:           reuses,
		RetriesAttempted: retriesAttempted,
		RetriesSucceeded: retriesSucceeded,
		RetryExhausted:   retryExhausted,
	}
	if total > 0 {
		summary.SuccessRatio = float64(successful) / float64(total)
	}
	if retriesAttempted > 0 {
		summary.RetrySuccessRatio = float64(retriesSucceeded) / float64(retriesAttempted)
	}
	return summary
}
