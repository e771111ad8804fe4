package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/freight-orders/internal/entity"
	"github.com/joseph-ayodele/freight-orders/internal/repository"
)

const (
	ordersSheet = "Orders"
	stopsSheet  = "Stops"
)

// Service is a tiny façade over the order repository that produces XLSX bytes for exports.
type Service struct {
	orders repository.OrderRepository
	logger *slog.Logger
}

func NewService(orders repository.OrderRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{orders: orders, logger: logger}
}

// ExportOrdersXLSX returns an XLSX workbook (as bytes) with one row per stored
// order and one row per loading or unloading stop.
func (s *Service) ExportOrdersXLSX(ctx context.Context, filter repository.OrderFilter) ([]byte, error) {
	start := time.Now()

	recs, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	if err := f.SetSheetName("Sheet1", ordersSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(stopsSheet); err != nil {
		return nil, err
	}
	activeIndex, _ := f.GetSheetIndex(ordersSheet)
	f.SetActiveSheet(activeIndex)

	writeRow(f, ordersSheet, 1, []any{
		"Order ID", "Source File", "Order Reference", "Transport Numbers",
		"Freight Price", "Currency", "Incoterms", "Cargo", "Packages", "Package Type",
		"Weight", "LDM", "Container", "Status", "Created At",
	})
	writeRow(f, stopsSheet, 1, []any{
		"Order Reference", "Kind", "Stop", "Company", "Street", "Postal Code",
		"City", "Country", "From", "To",
	})

	orderRow, stopRow := 2, 2
	for _, r := range recs {
		o, err := r.Order()
		if err != nil {
			s.logger.Warn("export.payload.invalid", "order_id", r.ID, "err", err)
			o = &entity.Order{}
		}
		ref := str(r.OrderReference)

		var cargo entity.CargoItem
		if len(o.Cargos) > 0 {
			cargo = o.Cargos[0]
		}
		writeRow(f, ordersSheet, orderRow, []any{
			r.ID.String(),
			r.SourceFile,
			ref,
			r.TransportNumbers,
			num(r.FreightPrice),
			str(r.FreightCurrency),
			r.Incoterms,
			truncate(str(cargo.Title), 80),
			cargo.PackageCount,
			str(cargo.PackageType),
			num(cargo.Weight),
			num(cargo.LDM),
			containerLabel(o.Container),
			r.Status,
			r.CreatedAt.UTC().Format(time.RFC3339),
		})
		orderRow++

		for _, stop := range stops(o) {
			a := stop.entry.CompanyAddress
			writeRow(f, stopsSheet, stopRow, []any{
				ref,
				stop.kind,
				stop.seq,
				str(a.Company),
				str(a.StreetAddress),
				str(a.PostalCode),
				str(a.City),
				str(a.Country),
				str(stop.entry.Time.From),
				str(stop.entry.Time.To),
			})
			stopRow++
		}
	}

	// Widen a few columns
	_ = f.SetColWidth(ordersSheet, "A", "A", 38) // id
	_ = f.SetColWidth(ordersSheet, "B", "B", 40) // source
	_ = f.SetColWidth(ordersSheet, "C", "D", 22) // refs
	_ = f.SetColWidth(ordersSheet, "H", "H", 30) // cargo
	_ = f.SetColWidth(stopsSheet, "D", "E", 30)
	_ = f.SetColWidth(stopsSheet, "I", "J", 28)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"orders", orderRow-2,
		"stops", stopRow-2,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

type stop struct {
	kind  string
	seq   int
	entry entity.LocationEntry
}

func stops(o *entity.Order) []stop {
	out := make([]stop, 0, len(o.LoadingLocations)+len(o.DestinationLocations))
	for i, e := range o.LoadingLocations {
		out = append(out, stop{kind: "Loading", seq: i + 1, entry: e})
	}
	for i, e := range o.DestinationLocations {
		out = append(out, stop{kind: "Unloading", seq: i + 1, entry: e})
	}
	return out
}

func writeRow(f *excelize.File, sheet string, row int, values []any) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}

func containerLabel(c *entity.ContainerInfo) string {
	if c == nil {
		return ""
	}
	label := str(c.ContainerNumber)
	if t := str(c.ContainerType); t != "" {
		if label != "" {
			label += " "
		}
		label += t
	}
	return label
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// num leaves the cell empty for unknown values.
func num(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
