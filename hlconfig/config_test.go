package hlconfig

import (
	"os"
	"testing"

	"hyperliquid-go-sdk/pkg/utils"
)

func clearOverrides(t *testing.T) {
	t.Helper()
	keys := []string{
		"HYPERLIQUID_CONFIG", "HYPERLIQUID_ENV", "HYPERLIQUID_BASE_URL",
		"HYPERLIQUID_WS_URL", "HYPERLIQUID_HTTP_TIMEOUT", "HYPERLIQUID_MAX_CONNECTIONS",
		"HYPERLIQUID_WORKER_THREADS", "HYPERLIQUID_LOG_LEVEL", "HYPERLIQUID_LOG_FILE",
	}
	for _, k := range keys {
		_ = os.Unsetenv(k)
		utils.ClearEnvCache(k)
	}
}

func TestLoadDefaultsToMainnetPreset(t *testing.T) {
	clearOverrides(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Environment.BaseURL != "https://api.hyperliquid.xyz" {
		t.Fatalf("expected mainnet base url, got %q", cfg.Environment.BaseURL)
	}
	if cfg.Environment.WSURL != "wss://api.hyperliquid.xyz/ws" {
		t.Fatalf("expected mainnet ws url, got %q", cfg.Environment.WSURL)
	}
}

func TestLoadEnvOverridesSwitchPreset(t *testing.T) {
	clearOverrides(t)
	_ = os.Setenv("HYPERLIQUID_ENV", "testnet")
	utils.ClearEnvCache("HYPERLIQUID_ENV")
	defer clearOverrides(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Environment.BaseURL != "https://api.hyperliquid-testnet.xyz" {
		t.Fatalf("expected testnet base url, got %q", cfg.Environment.BaseURL)
	}
}

func TestLoadExplicitURLOverridesPreset(t *testing.T) {
	clearOverrides(t)
	_ = os.Setenv("HYPERLIQUID_ENV", "testnet")
	_ = os.Setenv("HYPERLIQUID_BASE_URL", "https://custom.example.com")
	utils.ClearEnvCache("HYPERLIQUID_ENV")
	utils.ClearEnvCache("HYPERLIQUID_BASE_URL")
	defer clearOverrides(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Environment.BaseURL != "https://custom.example.com" {
		t.Fatalf("expected custom base url to win over preset, got %q", cfg.Environment.BaseURL)
	}
}

func TestLoadRejectsInvalidLogLevel(t *testing.T) {
	clearOverrides(t)
	_ = os.Setenv("HYPERLIQUID_LOG_LEVEL", "verbose")
	utils.ClearEnvCache("HYPERLIQUID_LOG_LEVEL")
	defer clearOverrides(t)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid log level")
	}
}

func TestLoadRejectsSubMinimumTimeout(t *testing.T) {
	clearOverrides(t)
	_ = os.Setenv("HYPERLIQUID_HTTP_TIMEOUT", "500")
	utils.ClearEnvCache("HYPERLIQUID_HTTP_TIMEOUT")
	defer clearOverrides(t)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for sub-1000ms http timeout")
	}
}

func TestLoadRejectsZeroWorkerThreads(t *testing.T) {
	clearOverrides(t)
	_ = os.Setenv("HYPERLIQUID_WORKER_THREADS", "0")
	utils.ClearEnvCache("HYPERLIQUID_WORKER_THREADS")
	defer clearOverrides(t)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero worker threads")
	}
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	clearOverrides(t)
	_ = os.Setenv("HYPERLIQUID_CONFIG", "/nonexistent/hyperliquid.toml")
	utils.ClearEnvCache("HYPERLIQUID_CONFIG")
	defer clearOverrides(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("missing config file should not be an error, got: %v", err)
	}
	if cfg.HTTP.MaxConnections != 10 {
		t.Fatalf("expected default max_connections 10, got %d", cfg.HTTP.MaxConnections)
	}
}
