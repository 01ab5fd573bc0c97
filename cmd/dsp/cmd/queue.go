package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func queueCmd() *cobra.Command {
	queueRoot := &cobra.Command{
		Use:   "queue",
		Short: "Work the resolution queue",
		Long: "Inspect and resolve items the importer could not map to the\n" +
			"canonical food catalog.",
	}

	queueRoot.AddCommand(
		queueListCmd(),
		queueResolveCmd(),
		queueSkipCmd(),
		queueRestoreCmd(),
	)

	return queueRoot
}

func queueListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show pending and skipped items",
		RunE: func(_ *cobra.Command, _ []string) error {
			uid, err := userID()
			if err != nil {
				return err
			}

			c := newClient()
			state, err := c.GetQueue(context.Background(), uid)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(state)
			}

			if len(state.Pending) == 0 && len(state.Skipped) == 0 {
				fmt.Println("Queue is empty.")
				return nil
			}

			if len(state.Pending) > 0 {
				fmt.Printf("Pending (%d):\n\n", len(state.Pending))
				if err := printQueueTable(state.Pending); err != nil {
					return err
				}
			}
			if len(state.Skipped) > 0 {
				fmt.Printf("\nSkipped (%d):\n\n", len(state.Skipped))
				if err := printQueueTable(state.Skipped); err != nil {
					return err
				}
			}

			fmt.Printf("\nSession: %d mapped, %d prepared, %d auto-resolved.\n",
				state.Counters.Mapped,
				state.Counters.Prepared,
				state.Counters.AutoResolved,
			)
			return nil
		},
	}
}

func queueResolveCmd() *cobra.Command {
	var (
		action      string
		canonicalID string
	)

	cmd := &cobra.Command{
		Use:   "resolve <normalized-name>",
		Short: "Resolve a pending item",
		Long: "Resolves a pending item by recording a shared mapping and\n" +
			"stocking the pantry. Actions: ingredient, prepared,\n" +
			"freeform_prepared, unknown_ingredient, unknown_prepared.",
		Example: `  # Map to a catalog ingredient
  dsp queue resolve "tomate cherry" --action ingredient --canonical-id tomate

  # Mark as a prepared dish the catalog does not know
  dsp queue resolve "empanada de pino" --action freeform_prepared

  # Report an ingredient missing from the catalog
  dsp queue resolve "merquén" --action unknown_ingredient`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			uid, err := userID()
			if err != nil {
				return err
			}

			c := newClient()
			if err := c.Resolve(context.Background(), uid, args[0], action, canonicalID); err != nil {
				return err
			}

			fmt.Printf("Resolved %q.\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&action, "action", "", "resolution action (required)")
	cmd.Flags().StringVar(&canonicalID, "canonical-id", "", "catalog id for ingredient/prepared actions")
	cobra.CheckErr(cmd.MarkFlagRequired("action"))

	return cmd
}

func queueSkipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "skip <normalized-name>",
		Short: "Skip a pending item",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			uid, err := userID()
			if err != nil {
				return err
			}

			c := newClient()
			if err := c.Skip(context.Background(), uid, args[0]); err != nil {
				return err
			}

			fmt.Printf("Skipped %q.\n", args[0])
			return nil
		},
	}
}

func queueRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <normalized-name>",
		Short: "Restore a skipped item to pending",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			uid, err := userID()
			if err != nil {
				return err
			}

			c := newClient()
			if err := c.Restore(context.Background(), uid, args[0]); err != nil {
				return err
			}

			fmt.Printf("Restored %q.\n", args[0])
			return nil
		},
	}
}
