/*
Copyright © 2026 Michael Putera Wardana <michaelputeraw@gmail.com>
*/
package cmd

import (
	"context"
	"os"

	"github.com/krobus00/roostoo-tester/internal/bootstrap"
	"github.com/krobus00/roostoo-tester/internal/config"
	"github.com/krobus00/roostoo-tester/internal/infrastructure"
	"github.com/spf13/cobra"
)

var (
	configPath string
	dotEnvPath string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "roostoo-tester",
	Short: "Manual test harness for the Roostoo trading API",
	Long: `roostoo-tester exercises the Roostoo REST API by hand. Public endpoints
(server time, exchange info, ticker) and signed trading endpoints (balance,
place, query and cancel order) are reachable from a numbered menu or from
one-shot subcommands.

Credentials are read from ROOSTOO_API_KEY, ROOSTOO_API_SECRET and BASE_URL,
either from the environment, a .env file or config.yml.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		err := config.LoadConfig(configPath, dotEnvPath)
		if err != nil {
			return err
		}

		return infrastructure.ConfigureLogger(config.Env.Env, config.Env.Log)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return bootstrap.StartMenu(cmd, verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: ./config.yml)")
	rootCmd.PersistentFlags().StringVar(&dotEnvPath, "env-file", ".env", "dotenv file with ROOSTOO_API_KEY, ROOSTOO_API_SECRET and BASE_URL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print the full decoded response")
}
