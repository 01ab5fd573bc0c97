package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func backlogCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "backlog <kind>",
		Short: "Show the unknown-item backlog",
		Long: "Lists items users reported as missing from the canonical\n" +
			"catalog, most-reported first. Kind is \"ingredient\" or \"prepared\".",
		Example: `  dsp backlog ingredient
  dsp backlog prepared --limit 10`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			reports, err := c.GetBacklog(context.Background(), args[0], limit)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(reports)
			}

			if len(reports) == 0 {
				fmt.Println("Backlog is empty.")
				return nil
			}

			return printBacklogTable(reports)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "number of reports")

	return cmd
}
