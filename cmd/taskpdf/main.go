package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/freight-orders/internal/common"
	"github.com/joseph-ayodele/freight-orders/internal/core"
	"github.com/joseph-ayodele/freight-orders/internal/core/taskpdf"
)

func main() {
	classifyOnly := flag.Bool("classify-only", false, "only report whether the file is a task sheet")
	attachment := flag.String("attachment", "", "attachment filename to record (defaults to the file name)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if flag.NArg() != 1 {
		logger.Error("usage", "cmd", "taskpdf [--classify-only] [--attachment name] <file.pdf|file.txt>")
		os.Exit(2)
	}
	path := flag.Arg(0)
	cfg := common.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	text := core.NewTextExtractor(cfg.Text, logger)
	res, err := text.Extract(ctx, path)
	if err != nil {
		logger.Error("text extraction failed", "path", path, "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if *classifyOnly {
		_ = enc.Encode(map[string]any{
			"path":       path,
			"lines":      len(res.Lines),
			"method":     res.Method,
			"task_sheet": taskpdf.IsTaskSheet(res.Lines),
		})
		return
	}

	engine, err := core.NewEngine(cfg.Extraction, logger)
	if err != nil {
		logger.Error("failed to configure extraction", "error", err)
		os.Exit(2)
	}
	name := *attachment
	if name == "" {
		name = filepath.Base(path)
	}
	// No repository: the order is printed, not stored.
	out, err := core.NewProcessor(logger, text, engine, nil).ProcessLines(ctx, res.Lines, name, path)
	if errors.Is(err, common.ErrUnsupportedInput) {
		fmt.Fprintf(os.Stderr, "%s: not a task sheet\n", path)
		os.Exit(3)
	}
	if out == nil {
		logger.Error("extraction failed", "path", path, "error", err)
		os.Exit(1)
	}
	if err != nil {
		// schema mismatch: still print what was extracted
		logger.Warn("order does not match output schema", "error", err)
	}
	if err := enc.Encode(out.Order); err != nil {
		logger.Error("encode order", "error", err)
		os.Exit(1)
	}
}
