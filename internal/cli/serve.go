package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/marginscope/marginscope/internal/api"
	"github.com/marginscope/marginscope/internal/logging"
)

const shutdownTimeout = 10 * time.Second

var (
	serveListen string
	serveSource string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the report catalog over HTTP",
	Long: `Load the dataset once and serve the report catalog over HTTP for
dashboards. Reports are computed on request from an immutable snapshot;
restart the server to pick up new data.

Example:
  marginscope serve --dataset transactions.csv --listen :8080
  marginscope serve --source warehouse --connection "postgres://..."`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "",
		"address the HTTP server binds to")
	serveCmd.Flags().StringVar(&serveSource, "source", "",
		"record source: csv or warehouse")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if serveListen != "" {
		cfg.Serve.Listen = serveListen
	}
	if serveSource != "" {
		cfg.Serve.Source = serveSource
	}

	// Validate configuration
	if err := cfg.ValidateServe(); err != nil {
		return err
	}

	ctx := context.Background()
	recs, err := loadRecords(ctx, cfg.Serve.Source)
	if err != nil {
		return err
	}

	server := api.NewServer(cfg.Serve.Listen, recs)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigChan:
		logging.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down cleanly: %w", err)
	}

	logging.Info().Msg("Server stopped")
	return nil
}
