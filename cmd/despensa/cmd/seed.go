package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpmardones/despensa/internal/catalog/seed"
	"github.com/jpmardones/despensa/internal/config"
	"github.com/jpmardones/despensa/internal/store"
	"github.com/jpmardones/despensa/pkg/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the canonical food catalogs",
	Long: "Upserts the embedded canonical ingredient and prepared-food " +
		"catalogs into the database. Safe to re-run.",
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ings, err := seed.Ingredients()
	if err != nil {
		return fmt.Errorf("loading ingredient seed data: %w", err)
	}
	pfs, err := seed.PreparedFoods()
	if err != nil {
		return fmt.Errorf("loading prepared-food seed data: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	st, err := store.NewPostgresStore(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer st.Close()

	if err := st.SeedCatalog(ctx, ings, pfs); err != nil {
		return fmt.Errorf("seeding catalog: %w", err)
	}

	log.Info("catalog seeded",
		"ingredients", len(ings),
		"prepared_foods", len(pfs),
	)
	return nil
}
