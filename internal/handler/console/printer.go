package console

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/krobus00/roostoo-tester/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Printer renders exchange responses for an operator.
type Printer struct {
	out     io.Writer
	verbose bool
}

func NewPrinter(out io.Writer, verbose bool) *Printer {
	return &Printer{out: out, verbose: verbose}
}

func (p *Printer) Section(title string) {
	fmt.Fprintf(p.out, "--- %s ---\n", title)
}

func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

func (p *Printer) ServerTime(resp *entity.ServerTimeResponse) {
	p.Printf("Server time: %d (%s)\n", resp.ServerTime, time.UnixMilli(resp.ServerTime).UTC().Format(time.RFC3339))
	p.raw(resp)
}

func (p *Printer) ExchangeInfo(resp *entity.ExchangeInfoResponse) {
	p.Printf("Is running: %t\n", resp.IsRunning)
	p.Printf("Initial Wallet: %s\n", formatAmounts(resp.InitialWallet))
	p.Printf("Available pairs: [%s]\n", strings.Join(sortedKeys(resp.TradePairs), " "))
	p.raw(resp)
}

// Ticker prints the pair count, or the last price of pair when it is set.
func (p *Printer) Ticker(pair string, resp *entity.TickerResponse) {
	if !resp.Success && resp.ErrMsg != "" {
		p.Printf("Error: %s\n", resp.ErrMsg)
		p.raw(resp)
		return
	}

	if pair == "" {
		p.Printf("Got data for %d pairs.\n", len(resp.Data))
	} else {
		ticker, ok := resp.Data[pair]
		if !ok {
			p.Printf("%s Last Price: <none>\n", pair)
		} else {
			p.Printf("%s Last Price: %s\n", pair, ticker.LastPrice.String())
		}
	}
	p.raw(resp)
}

func (p *Printer) Balance(resp *entity.BalanceResponse) {
	if !resp.Success {
		p.Printf("Error: %s\n", resp.ErrMsg)
		p.raw(resp)
		return
	}

	coins := sortedKeys(resp.Wallet)
	p.Printf("Wallet has %d coins.\n", len(coins))
	for _, coin := range coins {
		entry := resp.Wallet[coin]
		p.Printf("%s: free=%s lock=%s\n", coin, entry.Free.String(), entry.Lock.String())
	}
	p.raw(resp)
}

func (p *Printer) PlaceOrder(resp *entity.PlaceOrderResponse) {
	p.Printf("Success: %t\n", resp.Success)
	if !resp.Success {
		p.Printf("Error: %s\n", resp.ErrMsg)
		p.raw(resp)
		return
	}

	d := resp.OrderDetail
	p.Printf("Order %d %s: %s %s %s @ %s (%s)\n", d.OrderID, d.Pair, d.Side, d.Type, d.Quantity.String(), d.Price.String(), d.Status)
	p.raw(resp)
}

func (p *Printer) QueryOrder(resp *entity.QueryOrderResponse) {
	if !resp.Success {
		p.Printf("Error: %s\n", resp.ErrMsg)
		p.raw(resp)
		return
	}

	p.Printf("Found %d matching orders.\n", len(resp.OrderMatched))
	for _, order := range resp.OrderMatched {
		p.Printf("%s: %s %s\n", order.Pair, order.Side, order.Quantity.String())
	}
	p.raw(resp)
}

func (p *Printer) CancelOrder(resp *entity.CancelOrderResponse) {
	p.Printf("Cancel Success: %t\n", resp.Success)
	if !resp.Success && resp.ErrMsg != "" {
		p.Printf("Error: %s\n", resp.ErrMsg)
	}
	p.Printf("Canceled List: %v\n", resp.CanceledList)
	p.raw(resp)
}

func (p *Printer) raw(v any) {
	if !p.verbose {
		return
	}

	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logrus.WithError(err).Warn("failed to render response")
		return
	}
	p.Printf("Response: %s\n", string(b))
}

func formatAmounts(amounts map[string]decimal.Decimal) string {
	parts := make([]string, 0, len(amounts))
	for _, coin := range sortedKeys(amounts) {
		parts = append(parts, coin+"="+amounts[coin].String())
	}

	return "{" + strings.Join(parts, ", ") + "}"
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return keys
}
