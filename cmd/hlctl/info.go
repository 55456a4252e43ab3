package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"hyperliquid-go-sdk/hlconfig"
)

func newInfoCommand(cfg *hlconfig.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "read-only queries against the exchange's /info endpoint",
	}
	cmd.AddCommand(newInfoMetaCommand(cfg))
	cmd.AddCommand(newInfoL2BookCommand(cfg))
	cmd.AddCommand(newInfoUserStateCommand(cfg))
	cmd.AddCommand(newInfoAllMidsCommand(cfg))
	return cmd
}

func newInfoMetaCommand(cfg *hlconfig.Config) *cobra.Command {
	var dex string
	c := &cobra.Command{
		Use:   "meta",
		Short: "print the tradeable asset universe",
		RunE: func(cmd *cobra.Command, args []string) error {
			ic, err := newInfoClient(cfg)
			if err != nil {
				return err
			}
			m, err := ic.Meta(context.Background(), dex)
			if err != nil {
				return err
			}
			return printJSON(m)
		},
	}
	c.Flags().StringVar(&dex, "dex", "", "perp dex name (empty for the default dex)")
	return c
}

func newInfoL2BookCommand(cfg *hlconfig.Config) *cobra.Command {
	var dex string
	c := &cobra.Command{
		Use:   "l2book [coin]",
		Short: "print the L2 order book snapshot for coin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ic, err := newInfoClient(cfg)
			if err != nil {
				return err
			}
			b, err := ic.L2Book(context.Background(), args[0], dex)
			if err != nil {
				return err
			}
			return printJSON(b)
		},
	}
	c.Flags().StringVar(&dex, "dex", "", "perp dex name (empty for the default dex)")
	return c
}

func newInfoUserStateCommand(cfg *hlconfig.Config) *cobra.Command {
	var dex string
	c := &cobra.Command{
		Use:   "user-state [address]",
		Short: "print a user's clearinghouse state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ic, err := newInfoClient(cfg)
			if err != nil {
				return err
			}
			s, err := ic.UserState(context.Background(), args[0], dex)
			if err != nil {
				return err
			}
			return printJSON(s)
		},
	}
	c.Flags().StringVar(&dex, "dex", "", "perp dex name (empty for the default dex)")
	return c
}

func newInfoAllMidsCommand(cfg *hlconfig.Config) *cobra.Command {
	var dex string
	c := &cobra.Command{
		Use:   "all-mids",
		Short: "print the current mid price for every coin",
		RunE: func(cmd *cobra.Command, args []string) error {
			ic, err := newInfoClient(cfg)
			if err != nil {
				return err
			}
			mids, err := ic.AllMids(context.Background(), dex)
			if err != nil {
				return err
			}
			return printJSON(mids)
		},
	}
	c.Flags().StringVar(&dex, "dex", "", "perp dex name (empty for the default dex)")
	return c
}

func printJSON(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}
