package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/marginscope/marginscope/internal/dataset"
	"github.com/marginscope/marginscope/internal/db"
	"github.com/marginscope/marginscope/internal/export"
	"github.com/marginscope/marginscope/internal/logging"
	"github.com/marginscope/marginscope/internal/reports"
	"github.com/marginscope/marginscope/internal/warehouse"
)

var (
	reportSource   string
	reportFormat   string
	reportOutput   string
	reportParallel bool
)

var reportCmd = &cobra.Command{
	Use:   "report [name...]",
	Short: "Compute reports from the dataset",
	Long: `Compute profitability reports. With no arguments every report in
the catalog is computed; otherwise only the named ones, in the given
order. 'marginscope reports' lists the catalog.

The table format prints to stdout. The csv and json formats write one
file per report into the output directory.

Example:
  marginscope report --dataset transactions.csv
  marginscope report top-customers worst-products --format json --output reports
  marginscope report --source warehouse --connection "postgres://..."`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportSource, "source", "",
		"record source: csv or warehouse")
	reportCmd.Flags().StringVar(&reportFormat, "format", "",
		"output format: table, csv or json")
	reportCmd.Flags().StringVar(&reportOutput, "output", "",
		"directory for csv/json report files")
	reportCmd.Flags().BoolVar(&reportParallel, "parallel", false,
		"compute reports concurrently")
}

func runReport(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if reportSource != "" {
		cfg.Report.Source = reportSource
	}
	if reportFormat != "" {
		cfg.Report.Format = reportFormat
	}
	if reportOutput != "" {
		cfg.Report.Output = reportOutput
	}
	if reportParallel {
		cfg.Report.Parallel = true
	}

	// Validate configuration
	if err := cfg.ValidateReport(); err != nil {
		return err
	}

	// Resolve report names before touching the dataset
	defs := reports.All()
	if len(args) > 0 {
		defs = make([]reports.Definition, 0, len(args))
		for _, name := range args {
			def, err := reports.Get(name)
			if err != nil {
				return err
			}
			defs = append(defs, def)
		}
	}

	ctx := context.Background()
	recs, err := loadRecords(ctx, cfg.Report.Source)
	if err != nil {
		return err
	}

	runner := reports.Runner{Parallel: cfg.Report.Parallel}
	results := runner.Run(recs, defs)

	switch cfg.Report.Format {
	case "table":
		for _, res := range results {
			printTable(cmd, res.Table)
		}
	case "csv", "json":
		tables := make([]reports.Table, len(results))
		for i, res := range results {
			tables[i] = res.Table
		}
		paths, err := export.WriteAll(cfg.Report.Output, tables, export.Format(cfg.Report.Format))
		if err != nil {
			return err
		}
		logging.Info().
			Int("reports", len(paths)).
			Str("dir", cfg.Report.Output).
			Msg("Reports exported")
	}

	return nil
}

// loadRecords reads the dataset from the configured source. Both sources
// yield the same records, so every report downstream is source-agnostic.
func loadRecords(ctx context.Context, source string) ([]dataset.Record, error) {
	switch source {
	case "warehouse":
		pool, err := db.Connect(ctx, cfg.Connection)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		recs, err := warehouse.FetchAll(ctx, pool)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch transactions: %w", err)
		}
		logging.Info().Int("rows", len(recs)).Msg("Dataset fetched from warehouse")
		return recs, nil
	default:
		recs, err := dataset.ReadFile(cfg.Dataset)
		if err != nil {
			return nil, fmt.Errorf("failed to read extract: %w", err)
		}
		logging.Info().
			Int("rows", len(recs)).
			Str("dataset", cfg.Dataset).
			Msg("Dataset read from extract")
		return recs, nil
	}
}

func printTable(cmd *cobra.Command, table reports.Table) {
	cmd.Printf("\n%s\n", table.Title)
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(table.Columns, "\t"))
	for _, row := range table.Rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
	if len(table.Rows) == 0 {
		cmd.Println("(no rows)")
	}
}
