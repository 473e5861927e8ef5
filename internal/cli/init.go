package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salesdw/salesdw/internal/datagen"
	"github.com/salesdw/salesdw/internal/logging"
	"github.com/salesdw/salesdw/internal/store"
	"github.com/salesdw/salesdw/internal/warehouse"
)

var (
	initDropExisting bool
	initSeed         bool
	initSeedSales    int
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the warehouse schema, optionally with seed data",
	Long: `Initialize the warehouse database with the customers, products,
and sales tables. With --seed the built-in sample dataset is inserted;
with --seed-sales N, N generated sale records are loaded through the
normal ETL path instead.

Example:
  salesdw init --seed --database sales.db
  salesdw init --seed-sales 500 --drop-existing`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initDropExisting, "drop-existing", false,
		"drop existing warehouse tables before initialization")
	initCmd.Flags().BoolVar(&initSeed, "seed", false,
		"insert the built-in sample dataset")
	initCmd.Flags().IntVar(&initSeedSales, "seed-sales", 0,
		"generate this many fake sale records instead of the sample dataset")
}

func runInit(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if initDropExisting {
		cfg.Init.DropExisting = true
	}
	if initSeed {
		cfg.Init.Seed = true
	}
	if initSeedSales > 0 {
		cfg.Init.SeedSales = initSeedSales
	}

	if err := cfg.ValidateInit(); err != nil {
		return err
	}

	logging.Info().
		Str("database", cfg.Database).
		Msg("Initializing warehouse")

	ctx := context.Background()
	s, err := store.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open warehouse: %w", err)
	}
	defer s.Close()

	if cfg.Init.DropExisting {
		logging.Info().Msg("Dropping existing schema")
		if err := warehouse.DropSchema(ctx, s.DB()); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
		if err := s.DropMetadata(ctx); err != nil {
			logging.Debug().Err(err).Msg("No metadata table to drop")
		}
	} else {
		exists, err := warehouse.SchemaExists(ctx, s.DB())
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf(
				"warehouse %s is already initialized; use --drop-existing to reinitialize",
				cfg.Database)
		}
	}

	logging.Info().Msg("Creating schema")
	if err := warehouse.CreateSchema(ctx, s.DB()); err != nil {
		return err
	}

	seeded := false
	switch {
	case cfg.Init.SeedSales > 0:
		res, err := warehouse.SeedFake(ctx, s, datagen.NewFaker(), cfg.Init.SeedSales)
		if err != nil {
			return fmt.Errorf("failed to seed data: %w", err)
		}
		logging.Info().
			Int("sales", res.Loaded).
			Msg("Seeded generated data")
		seeded = true
	case cfg.Init.Seed:
		if err := warehouse.SeedSample(ctx, s); err != nil {
			return fmt.Errorf("failed to seed data: %w", err)
		}
		seeded = true
	}

	if err := s.SaveMetadata(ctx, seeded); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}

	logging.Info().
		Str("database", cfg.Database).
		Msg("Warehouse initialization complete")

	return nil
}
