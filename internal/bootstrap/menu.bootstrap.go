package bootstrap

import (
	"github.com/krobus00/roostoo-tester/internal/config"
	"github.com/krobus00/roostoo-tester/internal/handler/console"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func StartMenu(cmd *cobra.Command, verbose bool) error {
	ex, ops, err := initExchange()
	if err != nil {
		return err
	}
	defer cleanUp(cleanUpTimeout, ops)

	ctx, stop := withSignals(cmd.Context())
	defer stop()

	missing := config.Env.Exchange.MissingVariables()
	if len(missing) > 0 {
		logrus.WithField("missing", missing).Warn("roostoo credentials are incomplete")
	}

	menu := console.NewMenu(ex, console.MenuConfig{
		Prompter:         console.NewReadlinePrompter(),
		Out:              cmd.OutOrStdout(),
		MissingVariables: missing,
		Verbose:          verbose,
	})

	return menu.Run(ctx)
}
