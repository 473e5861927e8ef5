package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salesdw/salesdw/internal/logging"
	"github.com/salesdw/salesdw/internal/source"
	"github.com/salesdw/salesdw/internal/store"
	"github.com/salesdw/salesdw/internal/warehouse"
)

var loadSkipInvalid bool

var loadCmd = &cobra.Command{
	Use:   "load FILE",
	Short: "Load a CSV sales file into the warehouse",
	Long: `Load sales records from a CSV file into an initialized warehouse.
The file must carry a header row with at least customer_name, product_name,
raw_price, quantity, and sale_date columns; email and category are optional.

The whole load runs in one transaction: if it fails, the warehouse is left
exactly as it was. By default a record that fails validation aborts the
run; with --skip-invalid such records are skipped and counted instead.

Example:
  salesdw load sales_source.csv
  salesdw load sales_source.csv --skip-invalid`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().BoolVar(&loadSkipInvalid, "skip-invalid", false,
		"skip records that fail validation instead of aborting the run")
}

func runLoad(cmd *cobra.Command, args []string) error {
	if loadSkipInvalid {
		cfg.Load.SkipInvalid = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	path := args[0]

	ctx := context.Background()
	s, err := store.OpenExisting(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open warehouse: %w", err)
	}
	defer s.Close()

	initialized, err := s.Initialized(ctx)
	if err != nil {
		return err
	}
	if !initialized {
		return fmt.Errorf(
			"warehouse %s has not been initialized; run 'salesdw init' first",
			cfg.Database)
	}

	records, err := source.ReadFile(path)
	if err != nil {
		return err
	}

	logging.Info().
		Str("file", path).
		Int("records", len(records)).
		Bool("skip_invalid", cfg.Load.SkipInvalid).
		Msg("Starting load run")

	loader := warehouse.NewLoader(s)
	loader.SkipInvalid = cfg.Load.SkipInvalid

	res, err := loader.Run(ctx, records)
	if err != nil {
		return fmt.Errorf("load failed, no records were committed: %w", err)
	}

	cmd.Printf("Loaded %d records (%d skipped) from %s\n", res.Loaded, res.Skipped, path)
	return nil
}
