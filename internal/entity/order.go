package entity

import (
	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"
)

type OrderType string
type OrderSide string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"

	OrderTypeLimit  OrderType = "LIMIT"
	OrderTypeMarket OrderType = "MARKET"
)

// PlaceOrderRequest describes a new order. Pair accepts either a bare coin
// ("BTC") or a full pair ("BTC/USD"). An unset Type is auto-detected from
// Price.
type PlaceOrderRequest struct {
	Pair     string
	Side     OrderSide
	Type     null.String
	Quantity decimal.Decimal
	Price    decimal.NullDecimal
}

// QueryOrderRequest selects orders by id, or by pair. OrderID takes
// precedence and PendingOnly is only sent together with Pair.
type QueryOrderRequest struct {
	OrderID     null.String
	Pair        null.String
	PendingOnly null.Bool
}

// CancelOrderRequest cancels one order, every order of a pair, or every
// pending order when both fields are unset.
type CancelOrderRequest struct {
	OrderID null.String
	Pair    null.String
}
