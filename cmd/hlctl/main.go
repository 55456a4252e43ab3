// Command hlctl is a thin command-line client over the Info and Exchange
// facades: it loads configuration and environment exactly once at startup
// and delegates everything else to the client package.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	_ "go.uber.org/automaxprocs"

	"hyperliquid-go-sdk/hlconfig"
)

func main() {
	// automaxprocs has already set GOMAXPROCS from its blank import above.
	_ = godotenv.Load()

	cfg, err := hlconfig.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "hlctl: load config: %v\n", err)
		os.Exit(1)
	}
	configureLogging(cfg)

	root := &cobra.Command{
		Use:           "hlctl",
		Short:         "command-line client for the exchange's Info and Exchange APIs",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newInfoCommand(cfg))
	root.AddCommand(newExchangeCommand(cfg))
	root.AddCommand(newConfigCommand(cfg))

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func configureLogging(cfg *hlconfig.Config) {
	level, err := log.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			log.WithError(err).Warn("hlctl: could not open log file, logging to stderr")
			return
		}
		log.SetOutput(f)
	}
}
