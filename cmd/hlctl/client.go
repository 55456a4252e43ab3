package main

import (
	"fmt"
	"os"
	"time"

	"hyperliquid-go-sdk/client"
	"hyperliquid-go-sdk/hlconfig"
	"hyperliquid-go-sdk/hlenv"
	"hyperliquid-go-sdk/secbuf"
	"hyperliquid-go-sdk/transport"
)

// newInfoClient builds an Info facade talking to cfg's configured REST URL.
func newInfoClient(cfg *hlconfig.Config) (*client.InfoClient, error) {
	t, err := newTransport(cfg)
	if err != nil {
		return nil, err
	}
	return client.NewInfoClient(t), nil
}

// newExchangeClient builds an Exchange facade signing with the private key
// found in HYPERLIQUID_PRIVATE_KEY.
func newExchangeClient(cfg *hlconfig.Config) (*client.ExchangeClient, error) {
	t, err := newTransport(cfg)
	if err != nil {
		return nil, err
	}
	privHex, err := loadPrivateKeyHex()
	if err != nil {
		return nil, err
	}
	return client.NewExchangeClient(t, privHex, resolveEnv(cfg)), nil
}

func newTransport(cfg *hlconfig.Config) (*transport.Client, error) {
	tc := transport.DefaultConfig(cfg.Environment.BaseURL)
	tc.RequestTimeout = time.Duration(cfg.HTTP.TimeoutMS) * time.Millisecond
	tc.MaxConnectionsPerHost = cfg.HTTP.MaxConnections
	tc.MaxIdleConns = cfg.HTTP.MaxConnections
	tc.Retry.MaxRetries = cfg.HTTP.MaxRetries
	return transport.NewClient(tc)
}

// resolveEnv maps hlconfig's string Environment onto the fixed Mainnet/
// Testnet distinction the signer cares about. Local falls back to Testnet
// signing rules since there is no separate local chain name.
func resolveEnv(cfg *hlconfig.Config) hlenv.Environment {
	if hlconfig.Environment(cfg.Environment.Name) == hlconfig.Mainnet {
		return hlenv.Mainnet
	}
	return hlenv.Testnet
}

// loadPrivateKeyHex reads and validates HYPERLIQUID_PRIVATE_KEY, scrubbing
// it from the process environment once read. Validation goes through
// secbuf so a malformed key is caught (and the decoded bytes zeroed) before
// any signing attempt, even though the signer package itself takes the
// hex string form.
func loadPrivateKeyHex() (string, error) {
	raw := os.Getenv("HYPERLIQUID_PRIVATE_KEY")
	if raw == "" {
		return "", fmt.Errorf("hlctl: HYPERLIQUID_PRIVATE_KEY is not set")
	}
	os.Unsetenv("HYPERLIQUID_PRIVATE_KEY")

	key, err := secbuf.FromHex(raw)
	if err != nil {
		return "", fmt.Errorf("hlctl: invalid HYPERLIQUID_PRIVATE_KEY: %w", err)
	}
	defer key.Release()

	return raw, nil
}
