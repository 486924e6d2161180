package exchange

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/guregu/null/v6"
	"github.com/krobus00/roostoo-tester/internal/config"
	"github.com/krobus00/roostoo-tester/internal/constant"
	"github.com/krobus00/roostoo-tester/internal/entity"
	"github.com/krobus00/roostoo-tester/internal/infrastructure"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testServerTime int64 = 1700000000000

type recordedRequest struct {
	Method string
	Values url.Values
	Header http.Header
}

type fakeRoostoo struct {
	mu               sync.Mutex
	serverTimeStatus int
	responses        map[string]string
	statuses         map[string]int
	requests         map[string][]recordedRequest
}

func newFakeRoostoo(t *testing.T) (*fakeRoostoo, *httptest.Server) {
	t.Helper()

	f := &fakeRoostoo{
		responses: map[string]string{},
		statuses:  map[string]int{},
		requests:  map[string][]recordedRequest{},
	}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		values := r.URL.Query()
		if r.Method == http.MethodPost {
			if err := r.ParseForm(); err != nil {
				t.Errorf("unexpected form: %v", err)
			}
			values = r.PostForm
		}

		f.mu.Lock()
		f.requests[r.URL.Path] = append(f.requests[r.URL.Path], recordedRequest{
			Method: r.Method,
			Values: values,
			Header: r.Header.Clone(),
		})
		serverTimeStatus := f.serverTimeStatus
		body, ok := f.responses[r.URL.Path]
		status := f.statuses[r.URL.Path]
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")

		if r.URL.Path == constant.RoostooServerTimePath {
			if serverTimeStatus != 0 && serverTimeStatus != http.StatusOK {
				w.WriteHeader(serverTimeStatus)
				return
			}
			_, _ = w.Write([]byte(`{"ServerTime":1700000000000}`))
			return
		}

		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"Success":false,"ErrMsg":"not found"}`))
			return
		}
		if status != 0 {
			w.WriteHeader(status)
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)

	return f, ts
}

func (f *fakeRoostoo) respond(path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses[path] = status
	f.responses[path] = body
}

func (f *fakeRoostoo) failServerTime(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.serverTimeStatus = status
}

func (f *fakeRoostoo) calls(path string) []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests[path]...)
}

func (f *fakeRoostoo) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, reqs := range f.requests {
		n += len(reqs)
	}
	return n
}

func newTestExchange(baseURL, apiKey, apiSecret string) *RoostooExchange {
	return NewRoostooExchange(config.ExchangeConfig{
		APIKey:    apiKey,
		APISecret: apiSecret,
		BaseURL:   baseURL,
	}, infrastructure.NewHTTPClientWithConfig(infrastructure.HTTPClientConfig{Timeout: 5 * time.Second}))
}

func assertSigned(t *testing.T, rec recordedRequest) {
	t.Helper()

	params := entity.Params{}
	for key := range rec.Values {
		params[key] = rec.Values.Get(key)
	}

	assert.Equal(t, testAPIKey, rec.Header.Get(constant.RoostooAPIKeyHeader))
	assert.Equal(t, hmacSHA256Hex(testAPISecret, Canonicalize(params)), rec.Header.Get(constant.RoostooSignatureHeader))
}

func TestRoostooExchange_ServerTime(t *testing.T) {
	_, ts := newFakeRoostoo(t)
	ex := newTestExchange(ts.URL+"/", "", "")

	resp, err := ex.ServerTime(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testServerTime, resp.ServerTime)
}

func TestRoostooExchange_ExchangeInfo(t *testing.T) {
	f, ts := newFakeRoostoo(t)
	f.respond(constant.RoostooExchangeInfoPath, 0, `{
		"IsRunning": true,
		"InitialWallet": {"USD": 50000},
		"TradePairs": {
			"BTC/USD": {"Coin": "BTC", "Unit": "USD", "CanTrade": true, "PricePrecision": 2, "AmountPrecision": 6, "MiniOrder": 1}
		}
	}`)
	ex := newTestExchange(ts.URL, "", "")

	resp, err := ex.ExchangeInfo(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.IsRunning)
	assert.True(t, resp.InitialWallet["USD"].Equal(decimal.NewFromInt(50000)))
	require.Contains(t, resp.TradePairs, "BTC/USD")
	assert.Equal(t, int32(6), resp.TradePairs["BTC/USD"].AmountPrecision)

	calls := f.calls(constant.RoostooExchangeInfoPath)
	require.Len(t, calls, 1)
	assert.Empty(t, calls[0].Header.Get(constant.RoostooSignatureHeader))
}

func TestRoostooExchange_Ticker(t *testing.T) {
	f, ts := newFakeRoostoo(t)
	f.respond(constant.RoostooTickerPath, 0, `{
		"Success": true,
		"ErrMsg": "",
		"ServerTime": 1700000000000,
		"Data": {"BTC/USD": {"MaxBid": 64999.1, "MinAsk": 65000.2, "LastPrice": 65000, "Change": -0.0123}}
	}`)
	ex := newTestExchange(ts.URL, testAPIKey, testAPISecret)

	resp, err := ex.Ticker(context.Background(), "btc")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "65000", resp.Data["BTC/USD"].LastPrice.String())

	calls := f.calls(constant.RoostooTickerPath)
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodGet, calls[0].Method)
	assert.Equal(t, "BTC/USD", calls[0].Values.Get("pair"))
	assert.Equal(t, "1700000000000", calls[0].Values.Get("timestamp"))
	assert.Empty(t, calls[0].Header.Get(constant.RoostooSignatureHeader))

	_, err = ex.Ticker(context.Background(), "")
	require.NoError(t, err)
	calls = f.calls(constant.RoostooTickerPath)
	require.Len(t, calls, 2)
	assert.False(t, calls[1].Values.Has("pair"))
}

func TestRoostooExchange_Balance(t *testing.T) {
	f, ts := newFakeRoostoo(t)
	f.respond(constant.RoostooBalancePath, 0, `{"Success": true, "ErrMsg": "", "Wallet": {"BTC": {"Free": 0.5, "Lock": 0.1}, "USD": {"Free": 1000, "Lock": 0}}}`)
	ex := newTestExchange(ts.URL, testAPIKey, testAPISecret)

	resp, err := ex.Balance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0.5", resp.Wallet["BTC"].Free.String())

	calls := f.calls(constant.RoostooBalancePath)
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodGet, calls[0].Method)
	assertSigned(t, calls[0])
}

func TestRoostooExchange_PlaceOrder_Limit(t *testing.T) {
	f, ts := newFakeRoostoo(t)
	f.respond(constant.RoostooPlaceOrderPath, 0, `{
		"Success": true,
		"ErrMsg": "",
		"OrderDetail": {"Pair": "BNB/USD", "OrderID": 81, "Status": "PENDING", "Side": "SELL", "Type": "LIMIT", "Price": 965, "Quantity": 0.1}
	}`)
	ex := newTestExchange(ts.URL, testAPIKey, testAPISecret)

	resp, err := ex.PlaceOrder(context.Background(), entity.PlaceOrderRequest{
		Pair:     "bnb",
		Side:     "sell",
		Quantity: decimal.RequireFromString("0.1"),
		Price:    decimal.NewNullDecimal(decimal.NewFromInt(965)),
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, int64(81), resp.OrderDetail.OrderID)

	calls := f.calls(constant.RoostooPlaceOrderPath)
	require.Len(t, calls, 1)
	got := calls[0]
	assert.Equal(t, http.MethodPost, got.Method)
	assert.True(t, strings.HasPrefix(got.Header.Get("Content-Type"), "application/x-www-form-urlencoded"))
	assert.Equal(t, "BNB/USD", got.Values.Get("pair"))
	assert.Equal(t, "SELL", got.Values.Get("side"))
	assert.Equal(t, "LIMIT", got.Values.Get("type"))
	assert.Equal(t, "0.1", got.Values.Get("quantity"))
	assert.Equal(t, "965", got.Values.Get("price"))
	assert.Equal(t, "1700000000000", got.Values.Get("timestamp"))
	assertSigned(t, got)
}

func TestRoostooExchange_PlaceOrder_LimitWithoutPriceRejectedBeforeNetwork(t *testing.T) {
	f, ts := newFakeRoostoo(t)
	ex := newTestExchange(ts.URL, testAPIKey, testAPISecret)

	resp, err := ex.PlaceOrder(context.Background(), entity.PlaceOrderRequest{
		Pair:     "ETH",
		Side:     entity.OrderSideBuy,
		Type:     null.StringFrom("LIMIT"),
		Quantity: decimal.RequireFromString("0.005"),
	})
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrLimitOrderWithoutPrice)
	assert.Zero(t, f.total())
}

func TestRoostooExchange_PlaceOrder_MarketWithPriceIgnoresPriceAndWarns(t *testing.T) {
	hook := logrustest.NewGlobal()
	defer hook.Reset()

	f, ts := newFakeRoostoo(t)
	f.respond(constant.RoostooPlaceOrderPath, 0, `{"Success": true, "ErrMsg": "", "OrderDetail": {"Pair": "BNB/USD", "OrderID": 82, "Status": "FILLED"}}`)
	ex := newTestExchange(ts.URL, testAPIKey, testAPISecret)

	_, err := ex.PlaceOrder(context.Background(), entity.PlaceOrderRequest{
		Pair:     "BNB/USD",
		Side:     entity.OrderSideBuy,
		Type:     null.StringFrom("market"),
		Quantity: decimal.RequireFromString("0.1"),
		Price:    decimal.NewNullDecimal(decimal.NewFromInt(900)),
	})
	require.NoError(t, err)

	calls := f.calls(constant.RoostooPlaceOrderPath)
	require.Len(t, calls, 1)
	assert.Equal(t, "MARKET", calls[0].Values.Get("type"))
	assert.False(t, calls[0].Values.Has("price"))
	assertSigned(t, calls[0])

	warned := false
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel && strings.Contains(entry.Message, "MARKET") {
			warned = true
		}
	}
	assert.True(t, warned, "expected a warning about the ignored price")
}

func TestRoostooExchange_PlaceOrder_AutoDetectMarket(t *testing.T) {
	f, ts := newFakeRoostoo(t)
	f.respond(constant.RoostooPlaceOrderPath, 0, `{"Success": false, "ErrMsg": "insufficient balance"}`)
	ex := newTestExchange(ts.URL, testAPIKey, testAPISecret)

	resp, err := ex.PlaceOrder(context.Background(), entity.PlaceOrderRequest{
		Pair:     "BNB/USD",
		Side:     entity.OrderSideBuy,
		Quantity: decimal.RequireFromString("0.1"),
	})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "insufficient balance", resp.ErrMsg)

	calls := f.calls(constant.RoostooPlaceOrderPath)
	require.Len(t, calls, 1)
	assert.Equal(t, "MARKET", calls[0].Values.Get("type"))
}

func TestRoostooExchange_QueryOrder(t *testing.T) {
	f, ts := newFakeRoostoo(t)
	f.respond(constant.RoostooQueryOrderPath, 0, `{
		"Success": true,
		"ErrMsg": "",
		"OrderMatched": [
			{"Pair": "BTC/USD", "OrderID": 1, "Side": "BUY", "Quantity": 0.01},
			{"Pair": "BTC/USD", "OrderID": 2, "Side": "SELL", "Quantity": 0.02}
		]
	}`)
	ex := newTestExchange(ts.URL, testAPIKey, testAPISecret)

	resp, err := ex.QueryOrder(context.Background(), entity.QueryOrderRequest{
		Pair:        null.StringFrom("btc"),
		PendingOnly: null.BoolFrom(true),
	})
	require.NoError(t, err)
	require.Len(t, resp.OrderMatched, 2)
	assert.Equal(t, entity.OrderSideSell, resp.OrderMatched[1].Side)

	_, err = ex.QueryOrder(context.Background(), entity.QueryOrderRequest{
		OrderID:     null.StringFrom("42"),
		Pair:        null.StringFrom("BTC/USD"),
		PendingOnly: null.BoolFrom(false),
	})
	require.NoError(t, err)

	calls := f.calls(constant.RoostooQueryOrderPath)
	require.Len(t, calls, 2)

	assert.Equal(t, "BTC/USD", calls[0].Values.Get("pair"))
	assert.Equal(t, "TRUE", calls[0].Values.Get("pending_only"))
	assert.False(t, calls[0].Values.Has("order_id"))
	assertSigned(t, calls[0])

	assert.Equal(t, "42", calls[1].Values.Get("order_id"))
	assert.False(t, calls[1].Values.Has("pair"))
	assert.False(t, calls[1].Values.Has("pending_only"))
	assertSigned(t, calls[1])
}

func TestRoostooExchange_CancelOrder(t *testing.T) {
	f, ts := newFakeRoostoo(t)
	f.respond(constant.RoostooCancelOrderPath, 0, `{"Success": true, "ErrMsg": "", "CanceledList": [11, 12]}`)
	ex := newTestExchange(ts.URL, testAPIKey, testAPISecret)

	resp, err := ex.CancelOrder(context.Background(), entity.CancelOrderRequest{Pair: null.StringFrom("eth")})
	require.NoError(t, err)
	assert.Equal(t, []int64{11, 12}, resp.CanceledList)

	_, err = ex.CancelOrder(context.Background(), entity.CancelOrderRequest{})
	require.NoError(t, err)

	calls := f.calls(constant.RoostooCancelOrderPath)
	require.Len(t, calls, 2)
	assert.Equal(t, "ETH/USD", calls[0].Values.Get("pair"))
	assertSigned(t, calls[0])

	assert.Len(t, calls[1].Values, 1, "cancel all sends only the timestamp")
	assert.Equal(t, "1700000000000", calls[1].Values.Get("timestamp"))
	assertSigned(t, calls[1])
}

func TestRoostooExchange_TimestampFallsBackToLocalClock(t *testing.T) {
	hook := logrustest.NewGlobal()
	defer hook.Reset()

	f, ts := newFakeRoostoo(t)
	f.failServerTime(http.StatusServiceUnavailable)
	ex := newTestExchange(ts.URL, testAPIKey, testAPISecret)
	ex.now = func() time.Time { return time.UnixMilli(1234567890123) }

	assert.Equal(t, "1234567890123", ex.Timestamp(context.Background()))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestRoostooExchange_TimestampUnreachableServer(t *testing.T) {
	ex := newTestExchange("http://127.0.0.1:1", testAPIKey, testAPISecret)
	ex.now = func() time.Time { return time.UnixMilli(42) }

	assert.Equal(t, "42", ex.Timestamp(context.Background()))
}

func TestRoostooExchange_Non2xxIsAPIError(t *testing.T) {
	f, ts := newFakeRoostoo(t)
	f.respond(constant.RoostooQueryOrderPath, http.StatusUnauthorized, `{"Success": false, "ErrMsg": "signature mismatch"}`)
	ex := newTestExchange(ts.URL, testAPIKey, testAPISecret)

	_, err := ex.QueryOrder(context.Background(), entity.QueryOrderRequest{})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "signature mismatch")
}

func TestRoostooExchange_MissingCredentials(t *testing.T) {
	f, ts := newFakeRoostoo(t)
	ex := newTestExchange(ts.URL, "", "")

	_, err := ex.CancelOrder(context.Background(), entity.CancelOrderRequest{})
	assert.ErrorIs(t, err, ErrMissingCredentials)
	assert.Empty(t, f.calls(constant.RoostooCancelOrderPath))
}

func TestRoostooExchange_MissingBaseURL(t *testing.T) {
	ex := newTestExchange("", testAPIKey, testAPISecret)

	_, err := ex.ServerTime(context.Background())
	assert.ErrorIs(t, err, ErrMissingBaseURL)

	_, err = ex.Balance(context.Background())
	assert.ErrorIs(t, err, ErrMissingBaseURL)
}

func TestNormalizePair(t *testing.T) {
	assert.Equal(t, "BTC/USD", NormalizePair("btc"))
	assert.Equal(t, "BNB/USD", NormalizePair(" BNB/USD "))
	assert.Equal(t, "ETH/USDT", NormalizePair("eth/usdt"))
	assert.Equal(t, "", NormalizePair("  "))
}

func TestGetExchange(t *testing.T) {
	ex := InitRoostooExchange(config.ExchangeConfig{BaseURL: "http://localhost"}, infrastructure.NewHTTPClient())

	got, err := GetExchange(entity.ExchangeRoostoo)
	require.NoError(t, err)
	assert.Same(t, ex, got)

	_, err = GetExchange("unknown")
	assert.ErrorIs(t, err, ErrExchangeNotRegistered)
}
