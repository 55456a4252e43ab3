// Package transport implements the pooled HTTPS client: connection
// pooling over net/http's own transport, optional leaf-certificate
// pinning, exponential-backoff retry with jitter, atomic request stats,
// and graceful shutdown.
package transport

import "time"

// RetryPolicy controls the exponential backoff applied between retried
// requests.
type RetryPolicy struct {
	MaxRetries   int
	BaseDelay    time.Duration
	MaxDelay     time.Duration
	JitterFactor float64 // in [0, 1]
}

// DefaultRetryPolicy matches the values a caller gets from hlconfig's
// defaults translated into a retry schedule.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:   3,
		BaseDelay:    200 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		JitterFactor: 0.25,
	}
}

// Config configures a Client's pool caps, timeouts, TLS pinning, and retry
// behavior.
type Config struct {
	BaseURL string

	MaxConnectionsPerHost int
	MaxIdleConns          int
	ConnectTimeout        time.Duration
	RequestTimeout        time.Duration
	PreferHTTP2           bool
	DisableCompression    bool
	DisableKeepAlives     bool
	UserAgent             string
	ProxyURL              string // empty disables proxying

	// PinnedCertificates, when non-empty, restricts accepted server
	// certificates to leaves that are byte-for-byte equal to one of
	// these DER-encoded entries. Empty means no pinning (default trust
	// store).
	PinnedCertificates [][]byte

	Retry RetryPolicy
}

// DefaultConfig returns a Config with the hlconfig default HTTP values and
// no pinned certificates.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:               baseURL,
		MaxConnectionsPerHost: 10,
		MaxIdleConns:          10,
		ConnectTimeout:        10 * time.Second,
		RequestTimeout:        10 * time.Second,
		PreferHTTP2:           true,
		UserAgent:             "hyperliquid-go-sdk",
		Retry:                 DefaultRetryPolicy(),
	}
}
