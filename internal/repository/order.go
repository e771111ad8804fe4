package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/freight-orders/constants"
	"github.com/joseph-ayodele/freight-orders/internal/common"
	"github.com/joseph-ayodele/freight-orders/internal/entity"
)

const ordersTable = "orders"

var orderColumns = []string{
	"id", "source_file", "order_reference", "transport_numbers",
	"freight_price", "freight_currency", "incoterms", "status", "payload", "created_at",
}

var ordersDDL = map[string]string{
	dialect.Postgres: `CREATE TABLE IF NOT EXISTS orders (
	id UUID PRIMARY KEY,
	source_file TEXT NOT NULL,
	order_reference TEXT NULL,
	transport_numbers TEXT NOT NULL DEFAULT '',
	freight_price DOUBLE PRECISION NULL,
	freight_currency TEXT NULL,
	incoterms TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	payload JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
)`,
	dialect.SQLite: `CREATE TABLE IF NOT EXISTS orders (
	id TEXT PRIMARY KEY,
	source_file TEXT NOT NULL,
	order_reference TEXT NULL,
	transport_numbers TEXT NOT NULL DEFAULT '',
	freight_price REAL NULL,
	freight_currency TEXT NULL,
	incoterms TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	payload TEXT NOT NULL,
	created_at DATETIME NOT NULL
)`,
}

const ordersIndexDDL = `CREATE INDEX IF NOT EXISTS orders_order_reference_idx ON orders (order_reference)`

// Migrate creates the orders table for the driver's dialect.
func Migrate(ctx context.Context, db *DB, logger *slog.Logger) error {
	ddl, ok := ordersDDL[db.Dialect()]
	if !ok {
		return common.NewAppError("MIGRATE", fmt.Sprintf("unsupported dialect %q", db.Dialect()), common.ErrDatabase)
	}
	for _, stmt := range []string{ddl, ordersIndexDDL} {
		if err := db.Driver.Exec(ctx, stmt, []any{}, nil); err != nil {
			logger.Error("migration failed", "dialect", db.Dialect(), "error", err)
			return fmt.Errorf("%w: migrate: %v", common.ErrDatabase, err)
		}
	}
	logger.Info("schema ready", "table", ordersTable, "dialect", db.Dialect())
	return nil
}

// CreateOrderRequest wraps parameters for storing an extracted order.
type CreateOrderRequest struct {
	SourceFile string
	Order      *entity.Order
	Status     constants.OrderStatus
}

// OrderFilter narrows ListOrders. Zero values are ignored.
type OrderFilter struct {
	OrderReference string
	SourceFile     string
	Status         constants.OrderStatus
	FromDate       *time.Time
	ToDate         *time.Time
	Limit          int
	Offset         int
}

type OrderRepository interface {
	Create(ctx context.Context, req *CreateOrderRequest) (*entity.StoredOrder, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.StoredOrder, error)
	List(ctx context.Context, filter OrderFilter) ([]*entity.StoredOrder, error)
	Count(ctx context.Context) (int, error)
}

type orderRepository struct {
	db     *DB
	logger *slog.Logger
	now    func() time.Time
}

func NewOrderRepository(db *DB, logger *slog.Logger) OrderRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &orderRepository{db: db, logger: logger, now: time.Now}
}

func (r *orderRepository) builder() *entsql.DialectBuilder {
	return entsql.Dialect(r.db.Dialect())
}

func (r *orderRepository) Create(ctx context.Context, req *CreateOrderRequest) (*entity.StoredOrder, error) {
	if req == nil || req.Order == nil {
		return nil, fmt.Errorf("%w: order is required", common.ErrInvalidInput)
	}
	payload, err := json.Marshal(req.Order)
	if err != nil {
		return nil, fmt.Errorf("encode order: %w", err)
	}
	status := req.Status
	if status == "" {
		status = constants.OrderStatusExtracted
	}

	rec := &entity.StoredOrder{
		ID:               uuid.New(),
		SourceFile:       req.SourceFile,
		OrderReference:   req.Order.OrderReference,
		TransportNumbers: req.Order.TransportNumbers,
		FreightPrice:     req.Order.FreightPrice,
		FreightCurrency:  req.Order.FreightCurrency,
		Incoterms:        req.Order.Incoterms,
		Status:           string(status),
		Payload:          payload,
		CreatedAt:        r.now().UTC().Truncate(time.Microsecond),
	}

	q, args := r.builder().Insert(ordersTable).
		Columns(orderColumns...).
		Values(
			rec.ID.String(), rec.SourceFile, nullString(rec.OrderReference), rec.TransportNumbers,
			nullFloat(rec.FreightPrice), nullString(rec.FreightCurrency), rec.Incoterms,
			rec.Status, string(rec.Payload), rec.CreatedAt,
		).Query()
	if err := r.db.Driver.Exec(ctx, q, args, nil); err != nil {
		r.logger.Error("failed to insert order", "source_file", req.SourceFile, "error", err)
		return nil, fmt.Errorf("%w: insert order: %v", common.ErrDatabase, err)
	}
	r.logger.Debug("order stored", "order_id", rec.ID, "source_file", rec.SourceFile)
	return rec, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.StoredOrder, error) {
	s := r.builder().Select(orderColumns...).From(entsql.Table(ordersTable)).
		Where(entsql.EQ("id", id.String()))
	out, err := r.query(ctx, s)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: order %s", common.ErrNotFound, id)
	}
	return out[0], nil
}

func (r *orderRepository) List(ctx context.Context, f OrderFilter) ([]*entity.StoredOrder, error) {
	s := r.builder().Select(orderColumns...).From(entsql.Table(ordersTable))
	if f.OrderReference != "" {
		s.Where(entsql.EQ("order_reference", f.OrderReference))
	}
	if f.SourceFile != "" {
		s.Where(entsql.EQ("source_file", f.SourceFile))
	}
	if f.Status != "" {
		s.Where(entsql.EQ("status", string(f.Status)))
	}
	if f.FromDate != nil {
		s.Where(entsql.GTE("created_at", f.FromDate.UTC()))
	}
	if f.ToDate != nil {
		s.Where(entsql.LTE("created_at", f.ToDate.UTC()))
	}
	s.OrderBy("created_at", "source_file", "id")
	if f.Limit > 0 {
		s.Limit(f.Limit)
	}
	if f.Offset > 0 {
		s.Offset(f.Offset)
	}
	return r.query(ctx, s)
}

func (r *orderRepository) Count(ctx context.Context) (int, error) {
	q, args := r.builder().Select(entsql.Count("*")).From(entsql.Table(ordersTable)).Query()
	var rows entsql.Rows
	if err := r.db.Driver.Query(ctx, q, args, &rows); err != nil {
		return 0, fmt.Errorf("%w: count orders: %v", common.ErrDatabase, err)
	}
	defer rows.Close()
	n := 0
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, fmt.Errorf("%w: count orders: %v", common.ErrDatabase, err)
		}
	}
	return n, rows.Err()
}

func (r *orderRepository) query(ctx context.Context, s *entsql.Selector) ([]*entity.StoredOrder, error) {
	q, args := s.Query()
	var rows entsql.Rows
	if err := r.db.Driver.Query(ctx, q, args, &rows); err != nil {
		r.logger.Error("failed to query orders", "error", err)
		return nil, fmt.Errorf("%w: query orders: %v", common.ErrDatabase, err)
	}
	defer rows.Close()

	out := make([]*entity.StoredOrder, 0)
	for rows.Next() {
		rec, err := scanOrder(&rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan order: %v", common.ErrDatabase, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: query orders: %v", common.ErrDatabase, err)
	}
	return out, nil
}

func scanOrder(rows *entsql.Rows) (*entity.StoredOrder, error) {
	var (
		rec      entity.StoredOrder
		id       string
		ref      sql.NullString
		price    sql.NullFloat64
		currency sql.NullString
		payload  []byte
	)
	if err := rows.Scan(&id, &rec.SourceFile, &ref, &rec.TransportNumbers, &price, &currency,
		&rec.Incoterms, &rec.Status, &payload, &rec.CreatedAt); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.Join(errors.New("bad order id"), err)
	}
	rec.ID = parsed
	if ref.Valid {
		rec.OrderReference = &ref.String
	}
	if price.Valid {
		rec.FreightPrice = &price.Float64
	}
	if currency.Valid {
		rec.FreightCurrency = &currency.String
	}
	rec.Payload = json.RawMessage(payload)
	rec.CreatedAt = rec.CreatedAt.UTC()
	return &rec, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
