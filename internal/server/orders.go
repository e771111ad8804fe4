package server

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/joseph-ayodele/freight-orders/constants"
	"github.com/joseph-ayodele/freight-orders/internal/common"
	"github.com/joseph-ayodele/freight-orders/internal/core"
	"github.com/joseph-ayodele/freight-orders/internal/core/taskpdf"
	"github.com/joseph-ayodele/freight-orders/internal/entity"
	"github.com/joseph-ayodele/freight-orders/internal/export"
	"github.com/joseph-ayodele/freight-orders/internal/repository"
)

const (
	maxLines        = 20000
	maxListLimit    = 500
	defaultPageSize = 100
)

// LineProcessor turns extracted lines into a stored order.
type LineProcessor interface {
	ProcessLines(ctx context.Context, seq []string, attachmentName, sourceFile string) (*core.Result, error)
}

type OrderService struct {
	processor LineProcessor
	orders    repository.OrderRepository
	exporter  *export.Service
	logger    *slog.Logger
}

var _ OrderExtractionServer = (*OrderService)(nil)

func NewOrderService(proc LineProcessor, orders repository.OrderRepository, exporter *export.Service, logger *slog.Logger) *OrderService {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderService{processor: proc, orders: orders, exporter: exporter, logger: logger}
}

// Classify reports whether the given lines form a task sheet.
func (s *OrderService) Classify(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	seq, err := s.requestLines(req)
	if err != nil {
		return nil, err
	}
	ok := taskpdf.IsTaskSheet(seq)
	common.LoggerFromContext(ctx, s.logger).Debug("classified lines", "lines", len(seq), "task_sheet", ok)
	return structpb.NewStruct(map[string]any{"task_sheet": ok})
}

// Extract assembles an order from lines and stores it when a repository is wired.
func (s *OrderService) Extract(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	log := common.LoggerFromContext(ctx, s.logger)
	seq, err := s.requestLines(req)
	if err != nil {
		return nil, err
	}
	v := common.NewValidator().
		Field("attachment_filename", stringField(req, "attachment_filename"), common.MaxLength(255)).
		Field("source_file", stringField(req, "source_file"), common.MaxLength(1024))
	if err := common.ValidateAndReturnError(v); err != nil {
		return nil, err
	}

	source := stringField(req, "source_file")
	if source == "" {
		source = "grpc:" + common.RequestIDFromContext(ctx)
	}
	res, err := s.processor.ProcessLines(ctx, seq, stringField(req, "attachment_filename"), source)
	var schemaErr error
	switch {
	case err == nil:
	case errors.Is(err, common.ErrValidation) && res != nil && res.Order != nil:
		// the record is still returned, flagged INVALID
		log.Warn("extract produced an invalid order", "error", err)
		schemaErr = err
	case errors.Is(err, common.ErrUnsupportedInput):
		log.Info("extract rejected: not a task sheet", "lines", len(seq))
		return nil, common.ToStatus(err)
	default:
		log.Error("extract failed", "error", err)
		return nil, common.ToStatus(err)
	}

	body, err := res.Order.Map()
	if err != nil {
		return nil, common.InternalErrorf("render order: %v", err)
	}
	out := map[string]any{"order": body, "status": string(constants.OrderStatusExtracted)}
	if schemaErr != nil {
		out["status"] = string(constants.OrderStatusInvalid)
		out["schema_error"] = schemaErr.Error()
	}
	if res.Stored != nil {
		out["order_id"] = res.Stored.ID.String()
		out["status"] = res.Stored.Status
	}
	log.Info("order extracted", "order_reference", deref(res.Order.OrderReference), "stored", res.Stored != nil)
	return structpb.NewStruct(out)
}

func (s *OrderService) GetOrder(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if s.orders == nil {
		return nil, common.FailedPreconditionError("no order store configured")
	}
	id := stringField(req, "id")
	if err := common.ValidateAndReturnError(common.NewValidator().Field("id", id, common.Required, common.UUID)); err != nil {
		return nil, err
	}
	rec, err := s.orders.GetByID(ctx, uuid.MustParse(id))
	if err != nil {
		return nil, common.ToStatus(err)
	}
	m, err := storedMap(rec)
	if err != nil {
		return nil, common.InternalErrorf("render order: %v", err)
	}
	return structpb.NewStruct(m)
}

func (s *OrderService) ListOrders(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if s.orders == nil {
		return nil, common.FailedPreconditionError("no order store configured")
	}
	filter, err := listFilter(req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("listing orders", "order_reference", filter.OrderReference, "limit", filter.Limit)
	recs, err := s.orders.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list orders", "error", err)
		return nil, common.ToStatus(err)
	}

	items := make([]any, 0, len(recs))
	for _, r := range recs {
		m, err := storedMap(r)
		if err != nil {
			return nil, common.InternalErrorf("render order %s: %v", r.ID, err)
		}
		items = append(items, m)
	}
	s.logger.Info("orders listed successfully", "count", len(items))
	return structpb.NewStruct(map[string]any{"orders": items})
}

func (s *OrderService) ExportOrders(ctx context.Context, req *structpb.Struct) (*wrapperspb.BytesValue, error) {
	if s.exporter == nil {
		return nil, common.FailedPreconditionError("no order store configured")
	}
	filter, err := listFilter(req)
	if err != nil {
		return nil, err
	}
	if !hasField(req, "limit") {
		filter.Limit, filter.Offset = 0, 0
	}
	xlsx, err := s.exporter.ExportOrdersXLSX(ctx, filter)
	if err != nil {
		s.logger.Error("export.xlsx.failed", "err", err)
		return nil, common.InternalError(err.Error())
	}
	return wrapperspb.Bytes(xlsx), nil
}

func (s *OrderService) requestLines(req *structpb.Struct) ([]string, error) {
	seq, err := linesField(req, "lines")
	if err != nil {
		return nil, common.InvalidArgumentError(err.Error())
	}
	v := common.NewValidator().Field("lines", seq, common.Required, common.MaxItems(maxLines))
	if err := common.ValidateAndReturnError(v); err != nil {
		return nil, err
	}
	return seq, nil
}

func listFilter(req *structpb.Struct) (repository.OrderFilter, error) {
	f := repository.OrderFilter{
		OrderReference: stringField(req, "order_reference"),
		SourceFile:     stringField(req, "source_file"),
		Status:         constants.OrderStatus(stringField(req, "status")),
		Limit:          defaultPageSize,
	}
	if hasField(req, "limit") {
		f.Limit = intField(req, "limit")
	}
	f.Offset = intField(req, "offset")

	v := common.NewValidator().
		Field("limit", f.Limit, common.IntRange(1, maxListLimit)).
		Field("offset", f.Offset, common.IntRange(0, 1<<30))
	if err := common.ValidateAndReturnError(v); err != nil {
		return f, err
	}

	var err error
	if f.FromDate, err = dateField(req, "from_date"); err != nil {
		return f, common.InvalidArgumentError(err.Error())
	}
	if f.ToDate, err = dateField(req, "to_date"); err != nil {
		return f, common.InvalidArgumentError(err.Error())
	}
	if f.ToDate != nil {
		end := f.ToDate.Add(24*time.Hour - time.Nanosecond) // inclusive day
		f.ToDate = &end
	}
	return f, nil
}

func hasField(req *structpb.Struct, key string) bool {
	_, ok := req.GetFields()[key]
	return ok
}

func storedMap(r *entity.StoredOrder) (map[string]any, error) {
	o, err := r.Order()
	if err != nil {
		return nil, err
	}
	body, err := o.Map()
	if err != nil {
		return nil, err
	}
	m := map[string]any{
		"id":          r.ID.String(),
		"source_file": r.SourceFile,
		"status":      r.Status,
		"created_at":  r.CreatedAt.UTC().Format(time.RFC3339Nano),
		"order":       body,
	}
	if r.OrderReference != nil {
		m["order_reference"] = *r.OrderReference
	}
	return m, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
