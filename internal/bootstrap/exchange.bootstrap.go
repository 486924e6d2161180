package bootstrap

import (
	"context"
	"io"

	"github.com/krobus00/roostoo-tester/internal/config"
	"github.com/krobus00/roostoo-tester/internal/entity"
	"github.com/krobus00/roostoo-tester/internal/handler/console"
	"github.com/krobus00/roostoo-tester/internal/infrastructure"
	"github.com/krobus00/roostoo-tester/internal/service/exchange"
	"github.com/spf13/cobra"
)

func initExchange() (entity.Exchange, map[string]operation, error) {
	httpClient := infrastructure.NewHTTPClient()
	ops := map[string]operation{
		"http client": func(context.Context) error {
			return httpClient.Close()
		},
	}

	exchange.InitRoostooExchange(config.Env.Exchange, httpClient)

	ex, err := exchange.GetExchange(entity.ExchangeName(config.Env.Exchange.Name))
	if err != nil {
		cleanUp(cleanUpTimeout, ops)
		return nil, nil, err
	}

	return ex, ops, nil
}

// NewActions wires the configured exchange to a printer writing to out. The
// returned func releases the HTTP client.
func NewActions(out io.Writer, verbose bool) (*console.Actions, func(), error) {
	ex, ops, err := initExchange()
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() { cleanUp(cleanUpTimeout, ops) }

	return console.NewActions(ex, console.NewPrinter(out, verbose)), closeFn, nil
}

// RunAction runs a single console action for a one-shot subcommand.
func RunAction(cmd *cobra.Command, verbose bool, fn func(ctx context.Context, actions *console.Actions) error) error {
	actions, closeFn, err := NewActions(cmd.OutOrStdout(), verbose)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, stop := withSignals(cmd.Context())
	defer stop()

	return fn(ctx, actions)
}
