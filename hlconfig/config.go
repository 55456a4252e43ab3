// Package hlconfig provides a reusable loader for the SDK's TOML
// configuration file and environment variables. It is versioned so that
// applications can depend on a stable API contract.
//
// Version: v0.1.0
package hlconfig

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"hyperliquid-go-sdk/pkg/utils"
)

// Version is the semantic version of this configuration package.
const Version = "v0.1.0"

// Environment selects which exchange deployment a client talks to.
type Environment string

const (
	Mainnet Environment = "mainnet"
	Testnet Environment = "testnet"
	Local   Environment = "local"
)

// presets holds the base/WS URLs that ship with a named Environment. An
// explicit [environment] base_url/ws_url in the config file, or the
// HYPERLIQUID_BASE_URL/HYPERLIQUID_WS_URL env vars, take priority over these.
var presets = map[Environment]struct{ BaseURL, WSURL string }{
	Mainnet: {"https://api.hyperliquid.xyz", "wss://api.hyperliquid.xyz/ws"},
	Testnet: {"https://api.hyperliquid-testnet.xyz", "wss://api.hyperliquid-testnet.xyz/ws"},
	Local:   {"http://localhost:3001", "ws://localhost:3001/ws"},
}

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

// Config represents the unified configuration for a client of the exchange.
// It mirrors the section layout of hyperliquid.toml.
type Config struct {
	Environment struct {
		Name    string `mapstructure:"name" json:"name"`
		BaseURL string `mapstructure:"base_url" json:"base_url"`
		WSURL   string `mapstructure:"ws_url" json:"ws_url"`
	} `mapstructure:"environment" json:"environment"`

	HTTP struct {
		TimeoutMS      int  `mapstructure:"timeout_ms" json:"timeout_ms"`
		MaxConnections int  `mapstructure:"max_connections" json:"max_connections"`
		MaxRetries     int  `mapstructure:"max_retries" json:"max_retries"`
		PinCerts       bool `mapstructure:"pin_certs" json:"pin_certs"`
	} `mapstructure:"http" json:"http"`

	WebSocket struct {
		HeartbeatIntervalMS int `mapstructure:"heartbeat_interval_ms" json:"heartbeat_interval_ms"`
		ReconnectBackoffMS  int `mapstructure:"reconnect_backoff_ms" json:"reconnect_backoff_ms"`
		BufferCapacity      int `mapstructure:"buffer_capacity" json:"buffer_capacity"`
	} `mapstructure:"websocket" json:"websocket"`

	Runtime struct {
		WorkerThreads int `mapstructure:"worker_threads" json:"worker_threads"`
	} `mapstructure:"runtime" json:"runtime"`

	Logging struct {
		Level string `mapstructure:"level" json:"level"`
		File  string `mapstructure:"file" json:"file"`
	} `mapstructure:"logging" json:"logging"`

	Security struct {
		MlockPrivateKey bool `mapstructure:"mlock_private_key" json:"mlock_private_key"`
	} `mapstructure:"security" json:"security"`

	Metrics struct {
		Enabled bool `mapstructure:"enabled" json:"enabled"`
	} `mapstructure:"metrics" json:"metrics"`
}

// AppConfig holds the configuration loaded via Load or LoadFromEnv.
var AppConfig Config

func defaults() Config {
	var cfg Config
	cfg.Environment.Name = string(Mainnet)
	cfg.HTTP.TimeoutMS = 10_000
	cfg.HTTP.MaxConnections = 10
	cfg.HTTP.MaxRetries = 3
	cfg.WebSocket.HeartbeatIntervalMS = 30_000
	cfg.WebSocket.ReconnectBackoffMS = 1_000
	cfg.WebSocket.BufferCapacity = 1_024
	cfg.Runtime.WorkerThreads = 4
	cfg.Logging.Level = "info"
	cfg.Security.MlockPrivateKey = true
	return cfg
}

// Load reads the TOML config file named by the HYPERLIQUID_CONFIG env var
// (falling back to ./hyperliquid.toml, tolerating its absence), applies the
// HYPERLIQUID_* environment overrides, fills in the named Environment's
// preset URLs where neither the file nor an override supplied one, validates
// the result, and stores it in AppConfig.
func Load() (*Config, error) {
	cfg := defaults()

	v := viper.New()
	v.SetConfigType("toml")
	v.SetConfigFile(utils.EnvOrDefault("HYPERLIQUID_CONFIG", "./hyperliquid.toml"))
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, utils.Wrap(err, "load config")
		}
	} else if err := v.Unmarshal(&cfg); err != nil {
		return nil, utils.Wrap(err, "unmarshal config")
	}

	applyEnvOverrides(&cfg)
	applyEnvironmentPreset(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, utils.Wrap(err, "validate config")
	}

	AppConfig = cfg
	return &cfg, nil
}

// LoadFromEnv is an alias for Load kept for call-site symmetry with callers
// that only ever supply overrides via the environment.
func LoadFromEnv() (*Config, error) {
	return Load()
}

func applyEnvOverrides(cfg *Config) {
	cfg.Environment.Name = utils.EnvOrDefault("HYPERLIQUID_ENV", cfg.Environment.Name)
	cfg.Environment.BaseURL = utils.EnvOrDefault("HYPERLIQUID_BASE_URL", cfg.Environment.BaseURL)
	cfg.Environment.WSURL = utils.EnvOrDefault("HYPERLIQUID_WS_URL", cfg.Environment.WSURL)
	if d := utils.EnvOrDefaultDuration("HYPERLIQUID_HTTP_TIMEOUT", time.Duration(cfg.HTTP.TimeoutMS)*time.Millisecond); d > 0 {
		cfg.HTTP.TimeoutMS = int(d / time.Millisecond)
	}
	cfg.HTTP.MaxConnections = utils.EnvOrDefaultInt("HYPERLIQUID_MAX_CONNECTIONS", cfg.HTTP.MaxConnections)
	cfg.Runtime.WorkerThreads = utils.EnvOrDefaultInt("HYPERLIQUID_WORKER_THREADS", cfg.Runtime.WorkerThreads)
	cfg.Logging.Level = strings.ToLower(utils.EnvOrDefault("HYPERLIQUID_LOG_LEVEL", cfg.Logging.Level))
	cfg.Logging.File = utils.EnvOrDefault("HYPERLIQUID_LOG_FILE", cfg.Logging.File)
}

// applyEnvironmentPreset fills BaseURL/WSURL from the named Environment's
// preset whenever neither the file nor an env override supplied one.
func applyEnvironmentPreset(cfg *Config) {
	p, ok := presets[Environment(strings.ToLower(cfg.Environment.Name))]
	if !ok {
		return
	}
	if cfg.Environment.BaseURL == "" {
		cfg.Environment.BaseURL = p.BaseURL
	}
	if cfg.Environment.WSURL == "" {
		cfg.Environment.WSURL = p.WSURL
	}
}

func validate(cfg *Config) error {
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid log level %q", cfg.Logging.Level)
	}
	if cfg.HTTP.TimeoutMS < 1000 {
		return fmt.Errorf("http timeout_ms must be >= 1000, got %d", cfg.HTTP.TimeoutMS)
	}
	if cfg.HTTP.MaxConnections < 1 {
		return fmt.Errorf("http max_connections must be >= 1, got %d", cfg.HTTP.MaxConnections)
	}
	if cfg.Runtime.WorkerThreads < 1 {
		return fmt.Errorf("runtime worker_threads must be >= 1, got %d", cfg.Runtime.WorkerThreads)
	}
	return nil
}
