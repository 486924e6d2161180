/*
Copyright © 2026 Michael Putera Wardana <michaelputeraw@gmail.com>
*/
package cmd

import (
	"context"

	"github.com/krobus00/roostoo-tester/internal/bootstrap"
	"github.com/krobus00/roostoo-tester/internal/handler/console"
	"github.com/spf13/cobra"
)

var serverTimeCmd = &cobra.Command{
	Use:   "server-time",
	Short: "Check the exchange server time (no auth)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return bootstrap.RunAction(cmd, verbose, func(ctx context.Context, actions *console.Actions) error {
			return actions.CheckServerTime(ctx)
		})
	},
}

var exchangeInfoCmd = &cobra.Command{
	Use:   "exchange-info",
	Short: "Get exchange info (no auth)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return bootstrap.RunAction(cmd, verbose, func(ctx context.Context, actions *console.Actions) error {
			return actions.ExchangeInfo(ctx)
		})
	},
}

var tickerCmd = &cobra.Command{
	Use:   "ticker [COIN]",
	Short: "Get the ticker of every pair, or of one coin",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {

		coin := ""
		if len(args) == 1 {
			coin = args[0]
		}
		return bootstrap.RunAction(cmd, verbose, func(ctx context.Context, actions *console.Actions) error {
			return actions.Ticker(ctx, coin)
		})
	},
}

func init() {
	rootCmd.AddCommand(serverTimeCmd)
	rootCmd.AddCommand(exchangeInfoCmd)
	rootCmd.AddCommand(tickerCmd)
}
