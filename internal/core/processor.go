package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/freight-orders/constants"
	"github.com/joseph-ayodele/freight-orders/internal/common"
	"github.com/joseph-ayodele/freight-orders/internal/core/schema"
	"github.com/joseph-ayodele/freight-orders/internal/core/taskpdf"
	"github.com/joseph-ayodele/freight-orders/internal/core/textextract"
	"github.com/joseph-ayodele/freight-orders/internal/entity"
	"github.com/joseph-ayodele/freight-orders/internal/repository"
)

// Result is what one processed document produced.
type Result struct {
	SourceFile string
	Lines      int
	Method     string
	Order      *entity.Order
	Stored     *entity.StoredOrder // nil when no repository is configured
}

// Processor coordinates text extraction, task sheet assembly, schema validation
// and persistence.
type Processor struct {
	logger *slog.Logger
	text   *textextract.Extractor
	engine *taskpdf.Extractor
	orders repository.OrderRepository
}

// NewProcessor wires the pipeline. orders may be nil for a dry run.
func NewProcessor(
	logger *slog.Logger,
	text *textextract.Extractor,
	engine *taskpdf.Extractor,
	orders repository.OrderRepository,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{logger: logger, text: text, engine: engine, orders: orders}
}

// ProcessFile extracts lines from path and runs them through ProcessLines.
// attachmentName defaults to the file's base name.
func (p *Processor) ProcessFile(ctx context.Context, path, attachmentName string) (*Result, error) {
	start := time.Now()
	if attachmentName == "" {
		attachmentName = filepath.Base(path)
	}

	// 1) Text stage
	res, err := p.text.Extract(ctx, path)
	if err != nil {
		p.logger.Error("processor.text.failed", "path", path, "err", err)
		return nil, fmt.Errorf("extract text: %w", err)
	}
	p.logger.Debug("processor text success",
		"path", path,
		"method", res.Method,
		"pages", res.Pages,
		"lines", len(res.Lines),
		"warnings", len(res.Warnings),
	)

	// 2) Order stage
	out, err := p.ProcessLines(ctx, res.Lines, attachmentName, path)
	if out != nil {
		out.Method = res.Method
	}
	if err == nil {
		p.logger.Info("processor.extract.ok", "path", path, "duration_ms", time.Since(start).Milliseconds())
	}
	return out, err
}

// ProcessLines classifies and assembles an order from already extracted lines,
// validates it and stores it when a repository is configured.
func (p *Processor) ProcessLines(ctx context.Context, seq []string, attachmentName, sourceFile string) (*Result, error) {
	log := common.LoggerFromContext(ctx, p.logger)

	order, err := p.engine.ExtractTaskSheet(seq, attachmentName)
	switch {
	case errors.Is(err, taskpdf.ErrNotTaskSheet):
		log.Info("processor.classify.rejected", "source_file", sourceFile, "lines", len(seq))
		return nil, fmt.Errorf("%w: %w", common.ErrUnsupportedInput, err)
	case errors.Is(err, taskpdf.ErrNoLines):
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidInput, err)
	case err != nil:
		return nil, err
	}

	out := &Result{SourceFile: sourceFile, Lines: len(seq), Order: order}

	payload, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("encode order: %w", err)
	}
	status := constants.OrderStatusExtracted
	verr := schema.ValidateOrder(payload)
	if verr != nil {
		log.Warn("processor.schema.invalid", "source_file", sourceFile, "err", verr)
		status = constants.OrderStatusInvalid
	}

	if p.orders != nil {
		stored, err := p.orders.Create(ctx, &repository.CreateOrderRequest{
			SourceFile: sourceFile,
			Order:      order,
			Status:     status,
		})
		if err != nil {
			log.Error("processor.persist.failed", "source_file", sourceFile, "err", err)
			return out, err
		}
		out.Stored = stored
		log.Debug("processor persist success", "order_id", stored.ID, "status", stored.Status)
	}

	if verr != nil {
		return out, common.NewAppError("SCHEMA_ERROR", "order does not match output schema", errors.Join(common.ErrValidation, verr))
	}
	return out, nil
}
