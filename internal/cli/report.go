package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salesdw/salesdw/internal/store"
	"github.com/salesdw/salesdw/internal/warehouse"
)

var reportDaily bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print aggregate sales reports",
	Long: `Print the total sales value per customer, ordered by total
descending. With --daily, print the total sales value per sale date
instead, ordered by date.

Example:
  salesdw report
  salesdw report --daily`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&reportDaily, "daily", false,
		"report totals per sale date instead of per customer")
}

func runReport(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

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

	if reportDaily {
		totals, err := warehouse.DailySalesTrend(ctx, s.DB())
		if err != nil {
			return err
		}
		cmd.Println("Daily Sales:")
		for _, t := range totals {
			cmd.Printf("- %s: $%.2f\n", t.Date, t.Total)
		}
		return nil
	}

	totals, err := warehouse.TotalSalesByCustomer(ctx, s.DB())
	if err != nil {
		return err
	}
	cmd.Println("Total Sales by Customer:")
	for _, t := range totals {
		cmd.Printf("- %s: $%.2f\n", t.Name, t.Total)
	}
	return nil
}
