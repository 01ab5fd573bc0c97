package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Import recent grocery transactions",
		Long: "Fetches the user's recent grocery-ledger transactions, " +
			"auto-resolves known items into the pantry, and queues the rest " +
			"for interactive resolution.",
		Example: `  dsp import --user maria`,
		RunE: func(_ *cobra.Command, _ []string) error {
			uid, err := userID()
			if err != nil {
				return err
			}

			c := newClient()
			summary, err := c.Import(context.Background(), uid)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(summary)
			}

			fmt.Printf("Extracted %d items: %d auto-resolved, %d pending.\n",
				summary.Extracted, summary.AutoResolved, summary.Pending)
			return nil
		},
	}
}
