/*
Copyright © 2026 Michael Putera Wardana <michaelputeraw@gmail.com>
*/
package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/guregu/null/v6"
	"github.com/krobus00/roostoo-tester/internal/bootstrap"
	"github.com/krobus00/roostoo-tester/internal/entity"
	"github.com/krobus00/roostoo-tester/internal/handler/console"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	orderCoin     string
	orderSide     string
	orderType     string
	orderQuantity string
	orderPrice    string

	queryOrderID     string
	queryPair        string
	queryPendingOnly bool

	cancelOrderID string
	cancelPair    string
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Get the account balance (signed)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return bootstrap.RunAction(cmd, verbose, func(ctx context.Context, actions *console.Actions) error {
			return actions.Balance(ctx)
		})
	},
}

var placeOrderCmd = &cobra.Command{
	Use:   "place-order",
	Short: "Place a LIMIT or MARKET order (signed)",
	Long: `Place a new order. The type is auto-detected when --type is omitted:
LIMIT when --price is set, MARKET otherwise. A LIMIT order without a price is
rejected before anything is sent.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		order, err := placeOrderRequestFromFlags(cmd)
		if err != nil {
			return err
		}

		return bootstrap.RunAction(cmd, verbose, func(ctx context.Context, actions *console.Actions) error {
			return actions.PlaceOrder(ctx, order)
		})
	},
}

var queryOrderCmd = &cobra.Command{
	Use:   "query-order",
	Short: "Query orders by id or by pair (signed)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		query := entity.QueryOrderRequest{
			OrderID: nullString(queryOrderID),
			Pair:    nullString(queryPair),
		}
		if cmd.Flags().Changed("pending-only") {
			query.PendingOnly = null.BoolFrom(queryPendingOnly)
		}

		return bootstrap.RunAction(cmd, verbose, func(ctx context.Context, actions *console.Actions) error {
			return actions.QueryOrder(ctx, query)
		})
	},
}

var cancelOrderCmd = &cobra.Command{
	Use:   "cancel-order",
	Short: "Cancel one order, every order of a pair, or all pending orders (signed)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return bootstrap.RunAction(cmd, verbose, func(ctx context.Context, actions *console.Actions) error {
			return actions.CancelOrder(ctx, entity.CancelOrderRequest{
				OrderID: nullString(cancelOrderID),
				Pair:    nullString(cancelPair),
			})
		})
	},
}

func placeOrderRequestFromFlags(cmd *cobra.Command) (entity.PlaceOrderRequest, error) {
	quantity, err := decimal.NewFromString(strings.TrimSpace(orderQuantity))
	if err != nil {
		return entity.PlaceOrderRequest{}, fmt.Errorf("invalid quantity %q: %w", orderQuantity, err)
	}

	order := entity.PlaceOrderRequest{
		Pair:     orderCoin,
		Side:     entity.OrderSide(strings.ToUpper(strings.TrimSpace(orderSide))),
		Type:     nullString(orderType),
		Quantity: quantity,
	}

	if cmd.Flags().Changed("price") {
		price, err := decimal.NewFromString(strings.TrimSpace(orderPrice))
		if err != nil {
			return entity.PlaceOrderRequest{}, fmt.Errorf("invalid price %q: %w", orderPrice, err)
		}
		order.Price = decimal.NewNullDecimal(price)
	}

	return order, nil
}

func nullString(v string) null.String {
	v = strings.TrimSpace(v)
	return null.NewString(v, v != "")
}

func init() {
	placeOrderCmd.Flags().StringVar(&orderCoin, "coin", "", "coin or pair to trade, e.g. BTC or BTC/USD")
	placeOrderCmd.Flags().StringVar(&orderSide, "side", "", "BUY or SELL")
	placeOrderCmd.Flags().StringVar(&orderType, "type", "", "LIMIT or MARKET (auto-detected when empty)")
	placeOrderCmd.Flags().StringVar(&orderQuantity, "quantity", "", "amount of the coin to trade")
	placeOrderCmd.Flags().StringVar(&orderPrice, "price", "", "limit price")
	_ = placeOrderCmd.MarkFlagRequired("coin")
	_ = placeOrderCmd.MarkFlagRequired("side")
	_ = placeOrderCmd.MarkFlagRequired("quantity")

	queryOrderCmd.Flags().StringVar(&queryOrderID, "order-id", "", "order id")
	queryOrderCmd.Flags().StringVar(&queryPair, "pair", "", "coin or pair, ignored when --order-id is set")
	queryOrderCmd.Flags().BoolVar(&queryPendingOnly, "pending-only", false, "only pending orders of --pair")

	cancelOrderCmd.Flags().StringVar(&cancelOrderID, "order-id", "", "order id")
	cancelOrderCmd.Flags().StringVar(&cancelPair, "pair", "", "coin or pair, ignored when --order-id is set")

	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(placeOrderCmd)
	rootCmd.AddCommand(queryOrderCmd)
	rootCmd.AddCommand(cancelOrderCmd)
}
