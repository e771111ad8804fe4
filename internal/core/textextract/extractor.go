package textextract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/freight-orders/constants"
)

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	MaxPages  int    // 0 = no limit
	// DisableExec skips pdftotext and reads PDFs in-process only.
	DisableExec bool
}

type ExtractionResult struct {
	Lines      []string
	Pages      int
	SourceType string // constants.PDF | constants.TXT
	Method     string // "pdftotext" | "pdf-native" | "text"
	Duration   time.Duration
	Warnings   []string
}

// Extractor turns a source file into the line sequence the task sheet engine reads.
type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	return &Extractor{cfg: cfg, runner: execRunner{logger: logger}, logger: logger}
}

// WithRunner swaps the command runner, mainly for tests.
func (e *Extractor) WithRunner(r Runner) *Extractor {
	e.runner = r
	return e
}

// Extract picks a strategy based on file extension.
func (e *Extractor) Extract(ctx context.Context, path string) (ExtractionResult, error) {
	start := time.Now()
	ext := filepath.Ext(path)
	e.logger.Debug("starting text extraction", "path", path, "ext", ext)

	switch constants.MapExtToFormat(ext) {
	case constants.PDF:
		res, err := e.extractPDF(ctx, path)
		res.SourceType = constants.PDF
		res.Duration = time.Since(start)
		return res, err
	case constants.TXT:
		b, err := os.ReadFile(path)
		if err != nil {
			return ExtractionResult{SourceType: constants.TXT}, fmt.Errorf("read text: %w", err)
		}
		return ExtractionResult{
			Lines:      SplitLines(string(b)),
			Pages:      1,
			SourceType: constants.TXT,
			Method:     "text",
			Duration:   time.Since(start),
		}, nil
	default:
		e.logger.Error("unsupported extension", "extension", ext)
		return ExtractionResult{}, fmt.Errorf("unsupported extension: %q", ext)
	}
}

func (e *Extractor) extractPDF(ctx context.Context, path string) (ExtractionResult, error) {
	var warns []string
	if !e.cfg.DisableExec {
		text, pages, w, err := e.pdfToText(ctx, path)
		warns = append(warns, w...)
		if err == nil && len(text) > 0 {
			return ExtractionResult{Lines: SplitLines(text), Pages: pages, Method: "pdftotext", Warnings: warns}, nil
		}
		if err != nil {
			warns = append(warns, err.Error())
		}
		e.logger.Warn("pdftotext unavailable or empty, falling back to native reader", "path", path, "error", err)
	}

	text, pages, err := e.pdfNative(path)
	if err != nil {
		return ExtractionResult{Warnings: warns}, fmt.Errorf("read pdf: %w", err)
	}
	return ExtractionResult{Lines: SplitLines(text), Pages: pages, Method: "pdf-native", Warnings: warns}, nil
}
