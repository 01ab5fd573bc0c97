package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	domain "github.com/jpmardones/despensa/pkg/types"
)

func pantryCmd() *cobra.Command {
	pantryRoot := &cobra.Command{
		Use:   "pantry",
		Short: "Inspect and edit the pantry",
	}

	pantryRoot.AddCommand(
		pantryListCmd(),
		pantryRemoveCmd(),
		pantryCuisineCmd(),
	)

	return pantryRoot
}

func pantryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the pantry, most urgent first",
		Example: `  dsp pantry list --user maria
  dsp pantry list --user maria --output json`,
		RunE: func(_ *cobra.Command, _ []string) error {
			uid, err := userID()
			if err != nil {
				return err
			}

			c := newClient()
			entries, err := c.GetPantry(context.Background(), uid)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(entries)
			}

			if len(entries) == 0 {
				fmt.Println("Pantry is empty.")
				return nil
			}

			return printPantryTable(entries)
		},
	}
}

func pantryRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <canonical-id>",
		Short:   "Remove a pantry entry",
		Example: `  dsp pantry remove tomate --user maria`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			uid, err := userID()
			if err != nil {
				return err
			}

			c := newClient()
			if err := c.RemovePantryEntry(context.Background(), uid, args[0]); err != nil {
				return err
			}

			fmt.Printf("Removed %q.\n", args[0])
			return nil
		},
	}
}

func pantryCuisineCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "cuisine <canonical-id> <cuisine>",
		Short:   "Re-classify a prepared entry's cuisine",
		Example: `  dsp pantry cuisine prepared_ceviche peruvian --user maria`,
		Args:    cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			uid, err := userID()
			if err != nil {
				return err
			}

			cuisine := domain.Cuisine(args[1])
			if !cuisine.Valid() {
				return fmt.Errorf("unknown cuisine %q", args[1])
			}

			c := newClient()
			if err := c.SetPantryCuisine(context.Background(), uid, args[0], cuisine); err != nil {
				return err
			}

			fmt.Printf("Set %q cuisine to %s.\n", args[0], cuisine)
			return nil
		},
	}
}
