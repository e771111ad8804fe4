package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/joseph-ayodele/freight-orders/constants"
	"github.com/joseph-ayodele/freight-orders/internal/common"
	"github.com/joseph-ayodele/freight-orders/internal/core"
	"github.com/joseph-ayodele/freight-orders/internal/core/normalize"
	"github.com/joseph-ayodele/freight-orders/internal/core/taskpdf"
	"github.com/joseph-ayodele/freight-orders/internal/core/textextract"
	"github.com/joseph-ayodele/freight-orders/internal/entity"
	"github.com/joseph-ayodele/freight-orders/internal/export"
	"github.com/joseph-ayodele/freight-orders/internal/repository"
)

var sheet = []any{
	"Tournumber:", "", "* 12345 *",
	"Truck, trailer:", "", "LT-ABC123", "AB123 Krone", "Vehicle type:",
	"Freight rate in €:", "", "980 EUR",
	"Load:", "Paper rolls", "Amount:", "12",
	"Loading sequence:",
	"1", "Loading", "05.03.2024 08:00-12:00", "Ref: L-1", "Acme GmbH, Hauptstr. 1, DE-10115 Berlin", "",
	"Unloading sequence:",
	"1", "Unloading", "07.03.2024 09:00", "Ref: U-1", "Beta SIA, Brivibas 5, LV-1010 Riga", "",
	"Best regards",
}

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func startServer(t *testing.T) *OrderExtractionClient {
	t.Helper()
	ctx := context.Background()

	db, err := repository.OpenSQLite(ctx, repository.MemoryDSN, quiet())
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(ctx, db, quiet()))
	orders := repository.NewOrderRepository(db, quiet())

	engine := taskpdf.NewExtractor(quiet(), taskpdf.WithDateParser(normalize.LayoutDateParser{Location: time.UTC, ReferenceYear: 2024}))
	proc := core.NewProcessor(quiet(), textextract.NewExtractor(textextract.Config{DisableExec: true}, quiet()), engine, orders)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.UnaryInterceptor(RequestLogger(quiet())))
	RegisterOrderExtractionServer(srv, NewOrderService(proc, orders, export.NewService(orders, quiet()), quiet()))
	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	go func() { _ = srv.Serve(lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close()
		srv.Stop()
		repository.Close(db, quiet())
	})

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	require.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	return NewOrderExtractionClient(conn)
}

func mustStruct(t *testing.T, m map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(m)
	require.NoError(t, err)
	return s
}

func TestClassify(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()

	out, err := c.Classify(ctx, mustStruct(t, map[string]any{"lines": sheet}))
	require.NoError(t, err)
	assert.True(t, out.GetFields()["task_sheet"].GetBoolValue())

	out, err = c.Classify(ctx, mustStruct(t, map[string]any{"lines": []any{"Invoice"}}))
	require.NoError(t, err)
	assert.False(t, out.GetFields()["task_sheet"].GetBoolValue())

	_, err = c.Classify(ctx, mustStruct(t, map[string]any{}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = c.Classify(ctx, mustStruct(t, map[string]any{"lines": []any{"ok", 3.0}}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestExtractAndList(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()

	out, err := c.Extract(ctx, mustStruct(t, map[string]any{
		"lines":               sheet,
		"attachment_filename": "Tour_12345.PDF",
		"source_file":         "inbox/tour_12345.pdf",
	}))
	require.NoError(t, err)

	m := out.AsMap()
	assert.Equal(t, "EXTRACTED", m["status"])
	id, _ := m["order_id"].(string)
	require.NotEmpty(t, id)

	order := m["order"].(map[string]any)
	assert.Equal(t, "12345", order["order_reference"])
	assert.Equal(t, "LT-ABC123 / AB123", order["transport_numbers"])
	assert.Equal(t, 980.0, order["freight_price"])
	assert.Equal(t, []any{"tour_12345.pdf"}, order["attachment_filenames"])
	assert.NotContains(t, order, "container")

	got, err := c.GetOrder(ctx, mustStruct(t, map[string]any{"id": id}))
	require.NoError(t, err)
	assert.Equal(t, "inbox/tour_12345.pdf", got.AsMap()["source_file"])

	list, err := c.ListOrders(ctx, mustStruct(t, map[string]any{"order_reference": "12345"}))
	require.NoError(t, err)
	assert.Len(t, list.AsMap()["orders"], 1)

	empty, err := c.ListOrders(ctx, mustStruct(t, map[string]any{"order_reference": "nope"}))
	require.NoError(t, err)
	assert.Empty(t, empty.AsMap()["orders"])

	xlsx, err := c.ExportOrders(ctx, mustStruct(t, map[string]any{}))
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(xlsx.GetValue()))
	require.NoError(t, err)
	rows, err := f.GetRows("Orders")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	_ = f.Close()
}

func TestExtractRejectsOtherDocuments(t *testing.T) {
	c := startServer(t)
	_, err := c.Extract(context.Background(), mustStruct(t, map[string]any{"lines": []any{"Invoice", "Total"}}))
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
}

func TestRequestValidation(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()

	_, err := c.GetOrder(ctx, mustStruct(t, map[string]any{"id": "not-a-uuid"}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = c.GetOrder(ctx, mustStruct(t, map[string]any{"id": "6f1c1f1e-8a44-4a4c-9d0b-2f0f5b8f6a11"}))
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = c.ListOrders(ctx, mustStruct(t, map[string]any{"limit": 0.0}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = c.ListOrders(ctx, mustStruct(t, map[string]any{"from_date": "03/05/2024"}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

type schemaFailingProcessor struct{ id uuid.UUID }

func (p schemaFailingProcessor) ProcessLines(_ context.Context, _ []string, attachmentName, sourceFile string) (*core.Result, error) {
	ref := "12345"
	res := &core.Result{
		SourceFile: sourceFile,
		Order: &entity.Order{
			Customer:            entity.Customer{Side: "none"},
			AttachmentFilenames: []string{attachmentName},
			Cargos:              []entity.CargoItem{{PackageCount: 1}},
			OrderReference:      &ref,
		},
		Stored: &entity.StoredOrder{ID: p.id, SourceFile: sourceFile, Status: string(constants.OrderStatusInvalid)},
	}
	return res, common.NewAppError("SCHEMA_ERROR", "order does not match output schema",
		errors.Join(common.ErrValidation, errors.New("cargos: maxItems")))
}

func TestExtractReturnsInvalidOrder(t *testing.T) {
	id := uuid.New()
	svc := NewOrderService(schemaFailingProcessor{id: id}, nil, nil, quiet())

	out, err := svc.Extract(context.Background(), mustStruct(t, map[string]any{
		"lines":               sheet,
		"attachment_filename": "tour.pdf",
	}))
	require.NoError(t, err)

	m := out.AsMap()
	assert.Equal(t, "INVALID", m["status"])
	assert.Equal(t, id.String(), m["order_id"])
	assert.Contains(t, m["schema_error"], "maxItems")
	order := m["order"].(map[string]any)
	assert.Equal(t, "12345", order["order_reference"])
}
