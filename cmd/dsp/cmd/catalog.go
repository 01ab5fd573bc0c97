package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func catalogCmd() *cobra.Command {
	catalogRoot := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the canonical food catalogs",
	}

	catalogRoot.AddCommand(
		catalogIngredientsCmd(),
		catalogPreparedCmd(),
	)

	return catalogRoot
}

func catalogIngredientsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingredients",
		Short: "List canonical ingredients",
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			ings, err := c.ListIngredients(context.Background())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(ings)
			}

			if len(ings) == 0 {
				fmt.Println("Catalog is empty. Run `despensa seed` on the server.")
				return nil
			}

			return printIngredientsTable(ings)
		},
	}
}

func catalogPreparedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prepared",
		Short: "List canonical prepared foods",
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			pfs, err := c.ListPreparedFoods(context.Background())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(pfs)
			}

			if len(pfs) == 0 {
				fmt.Println("Catalog is empty. Run `despensa seed` on the server.")
				return nil
			}

			return printPreparedFoodsTable(pfs)
		},
	}
}
