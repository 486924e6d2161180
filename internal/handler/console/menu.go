package console

import (
	"context"
	"io"
	"strings"

	"github.com/guregu/null/v6"
	"github.com/krobus00/roostoo-tester/internal/entity"
	"github.com/shopspring/decimal"
)

const separator = "=================================================="

type MenuConfig struct {
	Prompter         Prompter
	Out              io.Writer
	MissingVariables []string
	Verbose          bool
}

// Menu is the numbered interactive test menu.
type Menu struct {
	actions *Actions
	printer *Printer
	in      input
	missing []string
}

func NewMenu(ex entity.Exchange, cfg MenuConfig) *Menu {
	printer := NewPrinter(cfg.Out, cfg.Verbose)

	return &Menu{
		actions: NewActions(ex, printer),
		printer: printer,
		in:      input{prompter: cfg.Prompter, out: cfg.Out},
		missing: cfg.MissingVariables,
	}
}

// Run shows the menu until the operator exits. Failed actions are printed
// and the loop continues.
func (m *Menu) Run(ctx context.Context) error {
	m.printer.Println("Welcome to Roostoo API Testing Suite!")
	m.checkEnvironment()

	for {
		if ctx.Err() != nil {
			return nil
		}

		m.displayMenu()

		choice, err := m.in.integer("Enter your choice (0-8): ")
		if err != nil {
			if isExit(err) {
				m.printer.Println("\n\nOperation cancelled by user. Exiting...")
				return nil
			}
			return err
		}

		if choice == 0 {
			m.printer.Println("\nExiting... Goodbye!")
			return nil
		}

		pause, err := m.dispatch(ctx, choice)
		if err != nil {
			if isExit(err) {
				m.printer.Println("\n\nOperation cancelled by user. Exiting...")
				return nil
			}
			m.printer.Printf("\nAn error occurred: %v\n", err)
			m.printer.Println("Please try again.")
		}
		if !pause {
			continue
		}

		if _, err := m.in.text("\nPress Enter to continue..."); err != nil && isExit(err) {
			return nil
		}
	}
}

func (m *Menu) displayMenu() {
	m.printer.Println("\n" + separator)
	m.printer.Println("    ROOSTOO API TESTING MENU")
	m.printer.Println(separator)
	m.printer.Println("1. Check Server Time (No Auth)")
	m.printer.Println("2. Get Exchange Info (No Auth)")
	m.printer.Println("3. Get Ticker (All Pairs)")
	m.printer.Println("4. Get Ticker (Specific Coin)")
	m.printer.Println("5. Get Account Balance")
	m.printer.Println("6. Place Order (Test Menu)")
	m.printer.Println("7. Query Orders")
	m.printer.Println("8. Cancel Orders")
	m.printer.Println("0. Exit")
	m.printer.Println(separator)
}

func (m *Menu) checkEnvironment() {
	if len(m.missing) == 0 {
		m.printer.Println("All environment variables are set.")
		return
	}

	m.printer.Println("\nWARNING: Missing environment variables:")
	for _, name := range m.missing {
		m.printer.Printf("   - %s\n", name)
	}
	m.printer.Println("\nPlease check your .env file and ensure all variables are set.")
	m.printer.Println("Some functions may not work without proper credentials.")
}

func (m *Menu) envOK() bool {
	return len(m.missing) == 0
}

// dispatch runs one menu entry. The returned flag tells whether to pause
// before redrawing the menu.
func (m *Menu) dispatch(ctx context.Context, choice int) (bool, error) {
	if choice >= 5 && choice <= 8 && !m.envOK() {
		m.printer.Printf("\nCannot %s without proper API credentials.\n", authActionName(choice))
		return false, nil
	}

	switch choice {
	case 1:
		m.printer.Println("\nChecking server time...")
		return true, m.actions.CheckServerTime(ctx)
	case 2:
		m.printer.Println("\nGetting exchange info...")
		return true, m.actions.ExchangeInfo(ctx)
	case 3:
		m.printer.Println("\nGetting ticker for all pairs...")
		return true, m.actions.Ticker(ctx, "")
	case 4:
		m.printer.Println("\nGetting ticker for specific coin...")
		coin, err := m.in.text("Enter coin symbol (e.g., BTC): ")
		if err != nil {
			return true, err
		}
		return true, m.actions.Ticker(ctx, strings.ToUpper(coin))
	case 5:
		m.printer.Println("\nGetting account balance...")
		return true, m.actions.Balance(ctx)
	case 6:
		return true, m.placeOrderMenu(ctx)
	case 7:
		m.printer.Println("\nQuerying pending orders...")
		pair, err := m.in.text("Enter trading pair (e.g., BTC/USD): ")
		if err != nil {
			return true, err
		}
		return true, m.actions.QueryOrder(ctx, entity.QueryOrderRequest{
			Pair:        null.StringFrom(strings.ToUpper(pair)),
			PendingOnly: null.BoolFrom(true),
		})
	case 8:
		m.printer.Println("\nCanceling orders...")
		pair, err := m.in.text("Enter trading pair (e.g., BTC/USD): ")
		if err != nil {
			return true, err
		}
		if pair == "" {
			m.printer.Println("No trading pair selected, nothing canceled.")
			return true, nil
		}
		return true, m.actions.CancelOrder(ctx, entity.CancelOrderRequest{
			Pair: null.StringFrom(strings.ToUpper(pair)),
		})
	default:
		m.printer.Println("\nInvalid choice. Please enter a number between 0-8.")
		return true, nil
	}
}

func authActionName(choice int) string {
	switch choice {
	case 5:
		return "get balance"
	case 6:
		return "place orders"
	case 7:
		return "query orders"
	default:
		return "cancel orders"
	}
}

func (m *Menu) placeOrderMenu(ctx context.Context) error {
	m.printer.Println("\n--- Place Order Test Menu ---")
	m.printer.Println("0. Custom order")
	m.printer.Println("1. LIMIT order (BNB SELL 0.1 at 965)")
	m.printer.Println("2. MARKET order (BNB/USD BUY 0.1)")
	m.printer.Println("3. Invalid order test (LIMIT without price)")
	m.printer.Println("4. Quit")

	testNum, err := m.in.integer("Choose test (0-4): ")
	if err != nil {
		return err
	}

	var order entity.PlaceOrderRequest
	switch testNum {
	case 0:
		order, err = m.customOrder()
		if err != nil {
			return err
		}
	case 1:
		order = entity.PlaceOrderRequest{
			Pair:     "BNB",
			Side:     entity.OrderSideSell,
			Quantity: decimal.RequireFromString("0.1"),
			Price:    decimal.NewNullDecimal(decimal.NewFromInt(965)),
		}
	case 2:
		order = entity.PlaceOrderRequest{
			Pair:     "BNB/USD",
			Side:     entity.OrderSideBuy,
			Quantity: decimal.RequireFromString("0.1"),
		}
	case 3:
		order = entity.PlaceOrderRequest{
			Pair:     "ETH",
			Side:     entity.OrderSideBuy,
			Type:     null.StringFrom(string(entity.OrderTypeLimit)),
			Quantity: decimal.RequireFromString("0.005"),
		}
	case 4:
		return nil
	default:
		m.printer.Println("Invalid test number. Please choose 0-4.")
		return nil
	}

	return m.actions.PlaceOrder(ctx, order)
}

func (m *Menu) customOrder() (entity.PlaceOrderRequest, error) {
	coin, err := m.in.text("Which coin would you like to use for this transaction? (BTC,BNB,ETH,...): ")
	if err != nil {
		return entity.PlaceOrderRequest{}, err
	}

	side, err := m.in.text("Do you want to BUY or SELL?: ")
	if err != nil {
		return entity.PlaceOrderRequest{}, err
	}

	amount, err := m.in.decimal("How much of the coin do you want to buy/sell?: ")
	if err != nil {
		return entity.PlaceOrderRequest{}, err
	}

	price, err := m.in.optionalDecimal("If you want this to be a LIMIT order enter price. Press Enter to skip!: ")
	if err != nil {
		return entity.PlaceOrderRequest{}, err
	}

	return entity.PlaceOrderRequest{
		Pair:     strings.ToUpper(coin),
		Side:     entity.OrderSide(strings.ToUpper(side)),
		Quantity: amount,
		Price:    price,
	}, nil
}
