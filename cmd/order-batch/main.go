package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/joseph-ayodele/freight-orders/internal/common"
	"github.com/joseph-ayodele/freight-orders/internal/core"
	"github.com/joseph-ayodele/freight-orders/internal/core/async"
	"github.com/joseph-ayodele/freight-orders/internal/export"
	"github.com/joseph-ayodele/freight-orders/internal/ingest"
	repo "github.com/joseph-ayodele/freight-orders/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		inmem   = flag.Bool("inmem", false, "use in-memory SQLite database")
		dir     = flag.String("dir", "", "directory to process task sheets from (required)")
		out     = flag.String("out", "", "output XLSX file path (optional, defaults to parent directory)")
		workers = flag.Int("workers", 4, "parallel extraction workers")
		hidden  = flag.Bool("hidden", false, "include hidden files and directories")
	)
	flag.Parse()

	// Validate required flags
	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}

	// If output file not specified, use parent directory with default filename
	if *out == "" {
		parentDir := filepath.Dir(filepath.Clean(*dir))
		*out = filepath.Join(parentDir, "orders.xlsx")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()
	cfg := common.LoadConfig()

	// Initialize database
	dbResult, err := repo.InitDatabase(ctx, cfg, *inmem, logger)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer dbResult.Cleanup()

	engine, err := core.NewEngine(cfg.Extraction, logger)
	if err != nil {
		logger.Error("failed to configure extraction", "error", err)
		os.Exit(1)
	}
	ordersRepo := repo.NewOrderRepository(dbResult.DB, logger)
	processor := core.NewProcessor(logger, core.NewTextExtractor(cfg.Text, logger), engine, ordersRepo)

	var processed, rejected, failures atomic.Int32
	queue := async.NewProcessorQueue(processor, logger,
		async.WithWorkers(*workers),
		async.WithProcessTimeout(cfg.Server.ProcessTimeout),
		async.WithOutcome(func(_ async.Job, _ *core.Result, err error) {
			switch {
			case err == nil:
				processed.Add(1)
			case errors.Is(err, common.ErrUnsupportedInput):
				rejected.Add(1)
			default:
				failures.Add(1)
			}
		}),
	)

	// Ingest directory
	logger.Info("starting ingestion", "dir", *dir)
	_, stats, err := ingest.EnqueueDirectory(ctx, queue, *dir, nil, !*hidden, logger)
	if err != nil {
		logger.Error("failed to ingest directory", "error", err)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	queue.Shutdown(shutdownCtx)
	cancel()

	// Export to XLSX
	logger.Info("exporting to XLSX", "output", *out)
	xlsxBytes, err := export.NewService(ordersRepo, logger).ExportOrdersXLSX(ctx, repo.OrderFilter{})
	if err != nil {
		logger.Error("failed to export orders", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, xlsxBytes, 0644); err != nil {
		logger.Error("failed to write output file", "error", err)
		os.Exit(1)
	}

	// Log summary
	logger.Info("batch processing complete",
		"files_matched", stats.Matched,
		"duplicates", stats.Deduplicated,
		"orders", processed.Load(),
		"not_task_sheets", rejected.Load(),
		"failures", failures.Load(),
		"output_file", *out)

	fmt.Printf("Batch processing complete!\n")
	fmt.Printf("- Files matched: %d (%d duplicates)\n", stats.Matched, stats.Deduplicated)
	fmt.Printf("- Orders extracted: %d\n", processed.Load())
	fmt.Printf("- Not task sheets: %d\n", rejected.Load())
	fmt.Printf("- Failures: %d\n", failures.Load())
	fmt.Printf("- Output: %s\n", *out)
}
