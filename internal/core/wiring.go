package core

import (
	"fmt"
	"log/slog"
	_ "time/tzdata" // EXTRACT_TIMEZONE must resolve on hosts without zoneinfo

	"github.com/joseph-ayodele/freight-orders/internal/common"
	"github.com/joseph-ayodele/freight-orders/internal/core/normalize"
	"github.com/joseph-ayodele/freight-orders/internal/core/taskpdf"
	"github.com/joseph-ayodele/freight-orders/internal/core/textextract"
)

// NewEngine builds the task sheet extractor from configuration.
func NewEngine(cfg common.ExtractionConfig, logger *slog.Logger) (*taskpdf.Extractor, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", cfg.Timezone, err)
	}
	tr, err := normalize.NewCatalogTranslator(cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("locale %q: %w", cfg.Locale, err)
	}
	return taskpdf.NewExtractor(logger,
		taskpdf.WithTranslator(tr),
		taskpdf.WithDateParser(normalize.LayoutDateParser{Location: loc, ReferenceYear: cfg.ReferenceYear}),
	), nil
}

// NewTextExtractor builds the file-to-lines stage from configuration.
func NewTextExtractor(cfg common.TextConfig, logger *slog.Logger) *textextract.Extractor {
	return textextract.NewExtractor(textextract.Config{
		Pdftotext:   cfg.Pdftotext,
		MaxPages:    cfg.MaxPages,
		DisableExec: cfg.DisableExec,
	}, logger)
}
