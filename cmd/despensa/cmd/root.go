// Package cmd implements the CLI commands for the despensa server.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "despensa",
	Short: "Turn grocery purchases into a living pantry",
	Long: "An API-first service that imports grocery-ledger transactions, " +
		"maps purchased products to a canonical food catalog, and keeps a " +
		"per-user pantry inventory with expiry tracking and live snapshots.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
