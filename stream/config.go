package stream

import "time"

// Config controls a Client's connect timeout, heartbeat cadence, and
// reconnect policy.
type Config struct {
	URL string

	ConnectTimeout time.Duration

	HeartbeatInterval time.Duration
	PongTimeout       time.Duration

	AutoReconnect        bool
	MaxReconnectAttempts int
	BaseReconnectDelay   time.Duration
	MaxReconnectDelay    time.Duration
	ReconnectJitter      float64 // in [0, 1]

	// BufferCapacity is the burst buffer's ring size. 0 disables
	// buffering: messages are routed directly off the wire instead.
	BufferCapacity int
}

// DefaultConfig returns the hlconfig-aligned defaults for url.
func DefaultConfig(url string) Config {
	return Config{
		URL:                   url,
		ConnectTimeout:        10 * time.Second,
		HeartbeatInterval:     30 * time.Second,
		PongTimeout:           10 * time.Second,
		AutoReconnect:         true,
		MaxReconnectAttempts:  10,
		BaseReconnectDelay:    time.Second,
		MaxReconnectDelay:     30 * time.Second,
		ReconnectJitter:       0.25,
		BufferCapacity:        1024,
	}
}
