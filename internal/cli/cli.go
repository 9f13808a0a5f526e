//-------------------------------------------------------------------------
//
// MarginScope Retail Analytics
//
// Portions copyright (c) 2025 - 2026, the MarginScope authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for marginscope.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/marginscope/marginscope/internal/config"
	"github.com/marginscope/marginscope/internal/logging"
	"github.com/marginscope/marginscope/internal/reports"
	"github.com/marginscope/marginscope/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	connection string
	dataPath   string
	logLevel   string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "marginscope",
		Short: "Retail margin analytics over transaction extracts",
		Long: `marginscope turns a retail transaction extract into a set of
profitability reports. It answers where margin is made and where
discounting destroys it, broken down by discount tier, product,
customer, segment and geography.

Reports run from the CSV extract directly or from a PostgreSQL
warehouse populated with 'marginscope load'. Both paths produce
identical numbers.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./marginscope.yaml)")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"PostgreSQL connection string")
	rootCmd.PersistentFlags().StringVar(&dataPath, "dataset", "",
		"path to the transaction extract CSV")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(reportsCmd)
	rootCmd.AddCommand(serveCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if connection != "" {
		cfg.Connection = connection
	}
	if dataPath != "" {
		cfg.Dataset = dataPath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List available reports",
	Long: `List the reports in the catalog. Each one can be computed with
'marginscope report <name>', or all at once with a bare 'marginscope report'.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("Available reports:")
		cmd.Println()
		for _, def := range reports.All() {
			cmd.Printf("  %-22s %s\n", def.Name, def.Description)
		}
		cmd.Println()
		cmd.Println("Use 'marginscope report <name>...' to compute a subset.")
	},
}
