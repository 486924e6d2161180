/*
Copyright © 2026 Michael Putera Wardana <michaelputeraw@gmail.com>
*/
package cmd

import (
	"github.com/krobus00/roostoo-tester/internal/bootstrap"
	"github.com/spf13/cobra"
)

// menuCmd represents the menu command
var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive test menu",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return bootstrap.StartMenu(cmd, verbose)
	},
}

func init() {
	rootCmd.AddCommand(menuCmd)
}
