package entity

import (
	"context"
)

type ExchangeName string

const (
	ExchangeRoostoo ExchangeName = "roostoo"
)

// Params holds request parameters before they are canonicalized.
type Params map[string]string

type Exchange interface {
	ServerTime(ctx context.Context) (*ServerTimeResponse, error)
	ExchangeInfo(ctx context.Context) (*ExchangeInfoResponse, error)
	Ticker(ctx context.Context, pair string) (*TickerResponse, error)
	Balance(ctx context.Context) (*BalanceResponse, error)
	PlaceOrder(ctx context.Context, order PlaceOrderRequest) (*PlaceOrderResponse, error)
	QueryOrder(ctx context.Context, query QueryOrderRequest) (*QueryOrderResponse, error)
	CancelOrder(ctx context.Context, cancel CancelOrderRequest) (*CancelOrderResponse, error)
}
