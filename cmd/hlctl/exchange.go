package main

import (
	"context"

	"github.com/spf13/cobra"

	"hyperliquid-go-sdk/client"
	"hyperliquid-go-sdk/hlconfig"
	"hyperliquid-go-sdk/precision"
)

func newExchangeCommand(cfg *hlconfig.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exchange",
		Short: "signed trading actions against the exchange's /exchange endpoint",
	}
	cmd.AddCommand(newExchangeOrderCommand(cfg))
	cmd.AddCommand(newExchangeCancelCommand(cfg))
	cmd.AddCommand(newExchangeUSDSendCommand(cfg))
	return cmd
}

func newExchangeOrderCommand(cfg *hlconfig.Config) *cobra.Command {
	var (
		asset      int
		isBuy      bool
		price      float64
		size       float64
		reduceOnly bool
		tif        string
		cloid      string
	)
	c := &cobra.Command{
		Use:   "order",
		Short: "place a single limit order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := newExchangeClient(cfg)
			if err != nil {
				return err
			}

			b := precision.NewOrderBuilder(asset, isBuy).Price(price).Size(size).ReduceOnly(reduceOnly)
			if cloid != "" {
				b = b.Cloid(cloid)
			}
			order, err := b.Limit(precision.TimeInForce(tif)).Build()
			if err != nil {
				return err
			}

			resp, err := ex.Order(context.Background(), []precision.OrderWire{order}, nil)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
	c.Flags().IntVar(&asset, "asset", 0, "asset index")
	c.Flags().BoolVar(&isBuy, "buy", true, "buy (true) or sell (false)")
	c.Flags().Float64Var(&price, "price", 0, "limit price")
	c.Flags().Float64Var(&size, "size", 0, "order size")
	c.Flags().BoolVar(&reduceOnly, "reduce-only", false, "mark the order reduce-only")
	c.Flags().StringVar(&tif, "tif", string(precision.TifGtc), "time in force: Gtc, Ioc, or Alo")
	c.Flags().StringVar(&cloid, "cloid", "", "client order id")
	return c
}

func newExchangeCancelCommand(cfg *hlconfig.Config) *cobra.Command {
	var (
		asset int
		oid   int64
	)
	c := &cobra.Command{
		Use:   "cancel",
		Short: "cancel a single resting order by asset and order id",
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := newExchangeClient(cfg)
			if err != nil {
				return err
			}
			resp, err := ex.CancelOrders(context.Background(), []client.CancelRequest{{Asset: asset, Oid: oid}})
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
	c.Flags().IntVar(&asset, "asset", 0, "asset index")
	c.Flags().Int64Var(&oid, "oid", 0, "order id")
	return c
}

func newExchangeUSDSendCommand(cfg *hlconfig.Config) *cobra.Command {
	var (
		destination string
		amount      string
	)
	c := &cobra.Command{
		Use:   "usd-send",
		Short: "transfer USD to destination on the perp account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := newExchangeClient(cfg)
			if err != nil {
				return err
			}
			resp, err := ex.USDSend(context.Background(), destination, amount)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
	c.Flags().StringVar(&destination, "to", "", "destination address")
	c.Flags().StringVar(&amount, "amount", "", "amount as a decimal string")
	return c
}
