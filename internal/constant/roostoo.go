package constant

const (
	RoostooServerTimePath   = "/v3/serverTime"
	RoostooExchangeInfoPath = "/v3/exchangeInfo"
	RoostooTickerPath       = "/v3/ticker"
	RoostooBalancePath      = "/v3/balance"
	RoostooPlaceOrderPath   = "/v3/place_order"
	RoostooQueryOrderPath   = "/v3/query_order"
	RoostooCancelOrderPath  = "/v3/cancel_order"

	RoostooAPIKeyHeader    = "RST-API-KEY"
	RoostooSignatureHeader = "MSG-SIGNATURE"

	// RoostooQuoteCurrency is appended to a bare coin to form a pair.
	RoostooQuoteCurrency = "USD"
)
