package console

import (
	"context"

	"github.com/krobus00/roostoo-tester/internal/entity"
	"github.com/krobus00/roostoo-tester/internal/service/exchange"
)

// Actions runs one exchange call and prints its result. Errors are returned
// to the caller untouched.
type Actions struct {
	exchange entity.Exchange
	printer  *Printer
}

func NewActions(ex entity.Exchange, printer *Printer) *Actions {
	return &Actions{
		exchange: ex,
		printer:  printer,
	}
}

func (a *Actions) CheckServerTime(ctx context.Context) error {
	a.printer.Section("Checking Server Time")
	resp, err := a.exchange.ServerTime(ctx)
	if err != nil {
		return err
	}

	a.printer.ServerTime(resp)
	return nil
}

func (a *Actions) ExchangeInfo(ctx context.Context) error {
	a.printer.Section("Getting Exchange Info")
	resp, err := a.exchange.ExchangeInfo(ctx)
	if err != nil {
		return err
	}

	a.printer.ExchangeInfo(resp)
	return nil
}

// Ticker fetches every pair when coin is empty.
func (a *Actions) Ticker(ctx context.Context, coin string) error {
	pair := exchange.NormalizePair(coin)
	if pair == "" {
		a.printer.Section("Getting Ticker (All)")
	} else {
		a.printer.Section("Getting Ticker (" + pair + ")")
	}

	resp, err := a.exchange.Ticker(ctx, pair)
	if err != nil {
		return err
	}

	a.printer.Ticker(pair, resp)
	return nil
}

func (a *Actions) Balance(ctx context.Context) error {
	a.printer.Section("Getting Account Balance")
	resp, err := a.exchange.Balance(ctx)
	if err != nil {
		return err
	}

	a.printer.Balance(resp)
	return nil
}

func (a *Actions) PlaceOrder(ctx context.Context, order entity.PlaceOrderRequest) error {
	a.printer.Section("Placing a new order for " + order.Quantity.String() + " " + exchange.NormalizePair(order.Pair))
	resp, err := a.exchange.PlaceOrder(ctx, order)
	if err != nil {
		return err
	}

	a.printer.PlaceOrder(resp)
	return nil
}

func (a *Actions) QueryOrder(ctx context.Context, query entity.QueryOrderRequest) error {
	a.printer.Section("Querying Orders")
	resp, err := a.exchange.QueryOrder(ctx, query)
	if err != nil {
		return err
	}

	a.printer.QueryOrder(resp)
	return nil
}

func (a *Actions) CancelOrder(ctx context.Context, cancel entity.CancelOrderRequest) error {
	a.printer.Section("Canceling Orders")
	resp, err := a.exchange.CancelOrder(ctx, cancel)
	if err != nil {
		return err
	}

	a.printer.CancelOrder(resp)
	return nil
}
