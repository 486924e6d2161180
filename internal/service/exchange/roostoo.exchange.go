package exchange

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/krobus00/roostoo-tester/internal/config"
	"github.com/krobus00/roostoo-tester/internal/constant"
	"github.com/krobus00/roostoo-tester/internal/entity"
	"github.com/sirupsen/logrus"
	"resty.dev/v3"
)

type RoostooExchange struct {
	baseURL    string
	signer     *Signer
	httpClient *resty.Client
	debugSign  bool
	now        func() time.Time
}

func NewRoostooExchange(exchangeConfig config.ExchangeConfig, httpClient *resty.Client) *RoostooExchange {
	return &RoostooExchange{
		baseURL:    strings.TrimRight(strings.TrimSpace(exchangeConfig.BaseURL), "/"),
		signer:     NewSigner(exchangeConfig.APIKey, exchangeConfig.APISecret),
		httpClient: httpClient,
		debugSign:  exchangeConfig.DebugSign,
		now:        time.Now,
	}
}

func InitRoostooExchange(exchangeConfig config.ExchangeConfig, httpClient *resty.Client) *RoostooExchange {
	newExchange := NewRoostooExchange(exchangeConfig, httpClient)

	RegisterExchange(entity.ExchangeRoostoo, newExchange)

	return newExchange
}

func (e *RoostooExchange) ServerTime(ctx context.Context) (*entity.ServerTimeResponse, error) {
	var resp entity.ServerTimeResponse
	err := e.send(ctx, "check server time", http.MethodGet, constant.RoostooServerTimePath, nil, false, &resp)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

func (e *RoostooExchange) ExchangeInfo(ctx context.Context) (*entity.ExchangeInfoResponse, error) {
	var resp entity.ExchangeInfoResponse
	err := e.send(ctx, "get exchange info", http.MethodGet, constant.RoostooExchangeInfoPath, nil, false, &resp)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

// Ticker fetches the ticker of one pair, or of every pair when pair is empty.
func (e *RoostooExchange) Ticker(ctx context.Context, pair string) (*entity.TickerResponse, error) {
	if err := e.ready(); err != nil {
		return nil, fmt.Errorf("get ticker: %w", err)
	}

	params := entity.Params{
		"timestamp": e.Timestamp(ctx),
	}
	if pair = NormalizePair(pair); pair != "" {
		params["pair"] = pair
	}

	var resp entity.TickerResponse
	err := e.send(ctx, "get ticker", http.MethodGet, constant.RoostooTickerPath, params, false, &resp)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

func (e *RoostooExchange) Balance(ctx context.Context) (*entity.BalanceResponse, error) {
	if err := e.ready(); err != nil {
		return nil, fmt.Errorf("get balance: %w", err)
	}

	params := entity.Params{
		"timestamp": e.Timestamp(ctx),
	}

	var resp entity.BalanceResponse
	err := e.send(ctx, "get balance", http.MethodGet, constant.RoostooBalancePath, params, true, &resp)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

func (e *RoostooExchange) PlaceOrder(ctx context.Context, order entity.PlaceOrderRequest) (*entity.PlaceOrderResponse, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	params, err := placeOrderParams(order)
	if err != nil {
		return nil, err
	}

	if err := e.ready(); err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}
	params["timestamp"] = e.Timestamp(ctx)

	var resp entity.PlaceOrderResponse
	err = e.send(ctx, "place order", http.MethodPost, constant.RoostooPlaceOrderPath, params, true, &resp)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"pair":     params["pair"],
		"side":     params["side"],
		"type":     params["type"],
		"quantity": params["quantity"],
		"price":    params["price"],
		"success":  resp.Success,
		"order_id": resp.OrderDetail.OrderID,
		"status":   resp.OrderDetail.Status,
	}).Info("order placed")

	return &resp, nil
}

func (e *RoostooExchange) QueryOrder(ctx context.Context, query entity.QueryOrderRequest) (*entity.QueryOrderResponse, error) {
	if err := e.ready(); err != nil {
		return nil, fmt.Errorf("query order: %w", err)
	}

	params := queryOrderParams(query)
	params["timestamp"] = e.Timestamp(ctx)

	var resp entity.QueryOrderResponse
	err := e.send(ctx, "query order", http.MethodPost, constant.RoostooQueryOrderPath, params, true, &resp)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

func (e *RoostooExchange) CancelOrder(ctx context.Context, cancel entity.CancelOrderRequest) (*entity.CancelOrderResponse, error) {
	if err := e.ready(); err != nil {
		return nil, fmt.Errorf("cancel order: %w", err)
	}

	params := cancelOrderParams(cancel)
	params["timestamp"] = e.Timestamp(ctx)

	var resp entity.CancelOrderResponse
	err := e.send(ctx, "cancel order", http.MethodPost, constant.RoostooCancelOrderPath, params, true, &resp)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

// Timestamp returns the server clock in milliseconds, or the local clock when
// the server time cannot be fetched.
func (e *RoostooExchange) Timestamp(ctx context.Context) string {
	resp, err := e.ServerTime(ctx)
	if err == nil && resp.ServerTime > 0 {
		return strconv.FormatInt(resp.ServerTime, 10)
	}

	if err == nil {
		err = fmt.Errorf("server time is empty")
	}
	logrus.WithError(err).Warn("could not get server time, using local time")

	return strconv.FormatInt(e.now().UnixMilli(), 10)
}

func (e *RoostooExchange) ready() error {
	if e.baseURL == "" {
		return ErrMissingBaseURL
	}

	return nil
}

func (e *RoostooExchange) send(ctx context.Context, op, method, path string, params entity.Params, signed bool, out any) error {
	if err := e.ready(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	req := e.httpClient.R().SetContext(ctx)

	if signed {
		headers, err := e.signer.Headers(params)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		if e.debugSign {
			logrus.WithFields(logrus.Fields{
				"payload":   Canonicalize(params),
				"signature": headers[constant.RoostooSignatureHeader],
			}).Info("roostoo signed payload")
		}

		req.SetHeaders(headers)
	}

	if method == http.MethodPost {
		req.SetHeader("Content-Type", "application/x-www-form-urlencoded")
		req.SetFormData(params)
	} else if len(params) > 0 {
		req.SetQueryParams(params)
	}

	resp, err := req.Execute(method, e.baseURL+path)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	body := resp.Bytes()
	logrus.WithFields(logrus.Fields{
		"op":     op,
		"status": resp.StatusCode(),
		"body":   string(body),
	}).Debug("roostoo response")

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return fmt.Errorf("%s: %w", op, &APIError{StatusCode: resp.StatusCode(), Body: string(body)})
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: parse failed: status=%d body=%s: %w", op, resp.StatusCode(), string(body), err)
	}

	return nil
}

// NormalizePair upper-cases a coin or pair and appends the quote currency to
// a bare coin.
func NormalizePair(pairOrCoin string) string {
	normalized := strings.ToUpper(strings.TrimSpace(pairOrCoin))
	if normalized == "" || strings.Contains(normalized, "/") {
		return normalized
	}

	return normalized + "/" + constant.RoostooQuoteCurrency
}

func placeOrderParams(order entity.PlaceOrderRequest) (entity.Params, error) {
	pair := NormalizePair(order.Pair)

	orderType := entity.OrderType(strings.ToUpper(strings.TrimSpace(order.Type.String)))
	if !order.Type.Valid || orderType == "" {
		orderType = entity.OrderTypeMarket
		if order.Price.Valid {
			orderType = entity.OrderTypeLimit
		}
		logrus.WithField("type", orderType).Info("auto-detected order type")
	}

	if orderType == entity.OrderTypeLimit && !order.Price.Valid {
		return nil, ErrLimitOrderWithoutPrice
	}
	if orderType == entity.OrderTypeMarket && order.Price.Valid {
		logrus.WithField("price", order.Price.Decimal.String()).Warn("price is provided for a MARKET order and will be ignored by the API")
	}

	params := entity.Params{
		"pair":     pair,
		"side":     strings.ToUpper(strings.TrimSpace(string(order.Side))),
		"type":     string(orderType),
		"quantity": order.Quantity.String(),
	}
	if orderType == entity.OrderTypeLimit {
		params["price"] = order.Price.Decimal.String()
	}

	return params, nil
}

// queryOrderParams sends order_id, or pair with an optional pending_only flag.
// The two selectors are mutually exclusive.
func queryOrderParams(query entity.QueryOrderRequest) entity.Params {
	params := entity.Params{}

	switch {
	case query.OrderID.Valid && strings.TrimSpace(query.OrderID.String) != "":
		params["order_id"] = strings.TrimSpace(query.OrderID.String)
	case query.Pair.Valid && strings.TrimSpace(query.Pair.String) != "":
		params["pair"] = NormalizePair(query.Pair.String)
		if query.PendingOnly.Valid {
			params["pending_only"] = stringBool(query.PendingOnly.Bool)
		}
	}

	return params
}

// cancelOrderParams selects one order, a pair, or nothing (cancel all).
func cancelOrderParams(cancel entity.CancelOrderRequest) entity.Params {
	params := entity.Params{}

	switch {
	case cancel.OrderID.Valid && strings.TrimSpace(cancel.OrderID.String) != "":
		params["order_id"] = strings.TrimSpace(cancel.OrderID.String)
	case cancel.Pair.Valid && strings.TrimSpace(cancel.Pair.String) != "":
		params["pair"] = NormalizePair(cancel.Pair.String)
	}

	return params
}

func stringBool(v bool) string {
	if v {
		return "TRUE"
	}
	return "FALSE"
}
