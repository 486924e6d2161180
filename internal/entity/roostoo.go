package entity

import "github.com/shopspring/decimal"

type ServerTimeResponse struct {
	ServerTime int64 `json:"ServerTime"`
}

type ExchangeInfoResponse struct {
	IsRunning     bool                       `json:"IsRunning"`
	InitialWallet map[string]decimal.Decimal `json:"InitialWallet"`
	TradePairs    map[string]TradePair       `json:"TradePairs"`
}

type TradePair struct {
	Coin            string          `json:"Coin"`
	CoinFullName    string          `json:"CoinFullName"`
	Unit            string          `json:"Unit"`
	UnitFullName    string          `json:"UnitFullName"`
	CanTrade        bool            `json:"CanTrade"`
	PricePrecision  int32           `json:"PricePrecision"`
	AmountPrecision int32           `json:"AmountPrecision"`
	MiniOrder       decimal.Decimal `json:"MiniOrder"`
}

type TickerResponse struct {
	Success    bool              `json:"Success"`
	ErrMsg     string            `json:"ErrMsg"`
	ServerTime int64             `json:"ServerTime"`
	Data       map[string]Ticker `json:"Data"`
}

type Ticker struct {
	MaxBid         decimal.Decimal `json:"MaxBid"`
	MinAsk         decimal.Decimal `json:"MinAsk"`
	LastPrice      decimal.Decimal `json:"LastPrice"`
	Change         decimal.Decimal `json:"Change"`
	CoinTradeValue decimal.Decimal `json:"CoinTradeValue"`
	UnitTradeValue decimal.Decimal `json:"UnitTradeValue"`
}

type BalanceResponse struct {
	Success bool                   `json:"Success"`
	ErrMsg  string                 `json:"ErrMsg"`
	Wallet  map[string]WalletEntry `json:"Wallet"`
}

type WalletEntry struct {
	Free decimal.Decimal `json:"Free"`
	Lock decimal.Decimal `json:"Lock"`
}

type OrderDetail struct {
	Pair                  string          `json:"Pair"`
	OrderID               int64           `json:"OrderID"`
	Status                string          `json:"Status"`
	Role                  string          `json:"Role"`
	ServerTimeUsage       decimal.Decimal `json:"ServerTimeUsage"`
	CreateTimestamp       int64           `json:"CreateTimestamp"`
	FinishTimestamp       int64           `json:"FinishTimestamp"`
	Side                  OrderSide       `json:"Side"`
	Type                  OrderType       `json:"Type"`
	StopType              string          `json:"StopType"`
	Price                 decimal.Decimal `json:"Price"`
	Quantity              decimal.Decimal `json:"Quantity"`
	FilledQuantity        decimal.Decimal `json:"FilledQuantity"`
	FilledAverPrice       decimal.Decimal `json:"FilledAverPrice"`
	CoinChange            decimal.Decimal `json:"CoinChange"`
	UnitChange            decimal.Decimal `json:"UnitChange"`
	CommissionCoin        string          `json:"CommissionCoin"`
	CommissionChargeValue decimal.Decimal `json:"CommissionChargeValue"`
	CommissionPercent     decimal.Decimal `json:"CommissionPercent"`
}

type PlaceOrderResponse struct {
	Success     bool        `json:"Success"`
	ErrMsg      string      `json:"ErrMsg"`
	OrderDetail OrderDetail `json:"OrderDetail"`
}

type QueryOrderResponse struct {
	Success      bool          `json:"Success"`
	ErrMsg       string        `json:"ErrMsg"`
	OrderMatched []OrderDetail `json:"OrderMatched"`
}

type CancelOrderResponse struct {
	Success      bool    `json:"Success"`
	ErrMsg       string  `json:"ErrMsg"`
	CanceledList []int64 `json:"CanceledList"`
}
