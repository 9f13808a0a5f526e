package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marginscope/marginscope/internal/analytics"
	"github.com/marginscope/marginscope/internal/dataset"
	"github.com/marginscope/marginscope/internal/db"
	"github.com/marginscope/marginscope/internal/logging"
	"github.com/marginscope/marginscope/internal/warehouse"
)

var loadDropExisting bool

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load a transaction extract into the warehouse",
	Long: `Load a transaction extract into PostgreSQL as a single batch.
The extract is validated row by row before anything is written; the
first bad row aborts the load. After the copy the row count and the
monetary totals are read back and checked against the source.

Example:
  marginscope load --dataset transactions.csv --connection "postgres://..."
  marginscope load --dataset transactions.csv --drop-existing`,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().BoolVar(&loadDropExisting, "drop-existing", false,
		"drop existing transaction data before loading")
}

func runLoad(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if loadDropExisting {
		cfg.Load.DropExisting = true
	}

	// Validate configuration
	if err := cfg.ValidateLoad(); err != nil {
		return err
	}

	recs, err := dataset.ReadFile(cfg.Dataset)
	if err != nil {
		return fmt.Errorf("failed to read extract: %w", err)
	}

	logging.Info().
		Int("rows", len(recs)).
		Str("dataset", cfg.Dataset).
		Msg("Extract validated")

	// Connect to database
	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// Refuse to clobber existing data unless asked to
	exists, err := warehouse.SchemaExists(ctx, pool)
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}
	if exists {
		if !cfg.Load.DropExisting {
			return fmt.Errorf(
				"database already holds transaction data; " +
					"use --drop-existing to replace it")
		}
		logging.Warn().Msg("Dropping existing schema")
		if err := warehouse.DropSchema(ctx, pool); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
		if err := warehouse.DropMetadata(ctx, pool); err != nil {
			logging.Debug().Err(err).Msg("No metadata table to drop")
		}
	}

	logging.Info().Msg("Creating schema")
	if err := warehouse.CreateSchema(ctx, pool); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if err := warehouse.Load(ctx, pool, recs); err != nil {
		return fmt.Errorf("failed to load extract: %w", err)
	}

	// Read back what landed and check it against the source
	summary, err := warehouse.Totals(ctx, pool)
	if err != nil {
		return fmt.Errorf("failed to read back totals: %w", err)
	}
	wantSales, wantProfit := analytics.GrandTotals(recs)
	if summary.Rows != int64(len(recs)) {
		return fmt.Errorf("loaded %d rows but the extract has %d",
			summary.Rows, len(recs))
	}
	if !summary.TotalSales.Equal(wantSales) || !summary.TotalProfit.Equal(wantProfit) {
		return fmt.Errorf(
			"loaded totals (sales %s, profit %s) do not match the extract (sales %s, profit %s)",
			summary.TotalSales, summary.TotalProfit, wantSales, wantProfit)
	}

	loadID, err := warehouse.SaveLoadInfo(ctx, pool, cfg.Dataset, len(recs))
	if err != nil {
		return fmt.Errorf("failed to save load metadata: %w", err)
	}

	logging.Info().
		Str("load_id", loadID).
		Int("rows", len(recs)).
		Str("total_sales", wantSales.StringFixed(2)).
		Str("total_profit", wantProfit.StringFixed(2)).
		Msg("Warehouse load complete")

	return nil
}
