package main

import (
	"github.com/spf13/cobra"

	"hyperliquid-go-sdk/hlconfig"
)

func newConfigCommand(cfg *hlconfig.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cfg)
		},
	}
}
