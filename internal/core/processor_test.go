package core

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/freight-orders/internal/common"
	"github.com/joseph-ayodele/freight-orders/internal/core/normalize"
	"github.com/joseph-ayodele/freight-orders/internal/core/taskpdf"
	"github.com/joseph-ayodele/freight-orders/internal/core/textextract"
	"github.com/joseph-ayodele/freight-orders/internal/repository"
)

var sheet = []string{
	"Tournumber:",
	"",
	"* 12345 *",
	"Truck, trailer:",
	"",
	"LT-ABC123",
	"AB123 Krone",
	"Vehicle type:",
	"Freight rate in €:",
	"",
	"1.250,50 EUR",
	"Load:",
	"Paper rolls",
	"Amount:",
	"33",
	"Unit:",
	"EW-Paletten",
	"Loading sequence:",
	"1",
	"Loading",
	"05.03.2024 08:00-12:00",
	"Ref: L-1",
	"Acme GmbH, Hauptstr. 1, DE-10115 Berlin",
	"",
	"Unloading sequence:",
	"1",
	"Unloading",
	"07.03.2024 09:00",
	"Ref: U-1",
	"Beta SIA, Brivibas 5, LV-1010 Riga",
	"",
	"Best regards",
}

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func newTestProcessor(t *testing.T, withRepo bool) (*Processor, repository.OrderRepository) {
	t.Helper()
	engine := taskpdf.NewExtractor(quiet(), taskpdf.WithDateParser(normalize.LayoutDateParser{Location: time.UTC, ReferenceYear: 2024}))
	text := textextract.NewExtractor(textextract.Config{DisableExec: true}, quiet())

	var repo repository.OrderRepository
	if withRepo {
		ctx := context.Background()
		db, err := repository.OpenSQLite(ctx, repository.MemoryDSN, quiet())
		require.NoError(t, err)
		t.Cleanup(func() { repository.Close(db, quiet()) })
		require.NoError(t, repository.Migrate(ctx, db, quiet()))
		repo = repository.NewOrderRepository(db, quiet())
	}
	return NewProcessor(quiet(), text, engine, repo), repo
}

func writeSheet(t *testing.T, name string, lines []string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return p
}

func TestProcessFileStoresOrder(t *testing.T) {
	proc, repo := newTestProcessor(t, true)
	path := writeSheet(t, "Order_12345.TXT", sheet)

	res, err := proc.ProcessFile(context.Background(), path, "")
	require.NoError(t, err)
	require.NotNil(t, res.Order)
	assert.Equal(t, "text", res.Method)
	assert.Equal(t, []string{"order_12345.txt"}, res.Order.AttachmentFilenames)
	require.NotNil(t, res.Stored)
	assert.Equal(t, "EXTRACTED", res.Stored.Status)

	got, err := repo.GetByID(context.Background(), res.Stored.ID)
	require.NoError(t, err)
	require.NotNil(t, got.OrderReference)
	assert.Equal(t, "12345", *got.OrderReference)
	assert.Equal(t, "LT-ABC123 / AB123", got.TransportNumbers)
}

func TestProcessLinesRejectsOtherDocuments(t *testing.T) {
	proc, repo := newTestProcessor(t, true)

	_, err := proc.ProcessLines(context.Background(), []string{"Invoice", "Total: 12"}, "inv.pdf", "inv.pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUnsupportedInput))
	assert.True(t, errors.Is(err, taskpdf.ErrNotTaskSheet))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestProcessLinesNil(t *testing.T) {
	proc, _ := newTestProcessor(t, false)
	_, err := proc.ProcessLines(context.Background(), nil, "", "")
	assert.True(t, errors.Is(err, common.ErrInvalidInput))
}

func TestProcessLinesDryRun(t *testing.T) {
	proc, _ := newTestProcessor(t, false)
	res, err := proc.ProcessLines(context.Background(), sheet, "Task.pdf", "mem")
	require.NoError(t, err)
	assert.Nil(t, res.Stored)
	require.Len(t, res.Order.DestinationLocations, 1)
	assert.Equal(t, "LV", *res.Order.DestinationLocations[0].CompanyAddress.Country)
}

func TestProcessFileMissing(t *testing.T) {
	proc, _ := newTestProcessor(t, false)
	_, err := proc.ProcessFile(context.Background(), filepath.Join(t.TempDir(), "nope.txt"), "")
	assert.Error(t, err)
}

func TestNewEngineFromConfig(t *testing.T) {
	_, err := NewEngine(common.ExtractionConfig{Locale: "de", Timezone: "Europe/Berlin"}, quiet())
	require.NoError(t, err)

	_, err = NewEngine(common.ExtractionConfig{Locale: "xx"}, quiet())
	assert.Error(t, err)

	_, err = NewEngine(common.ExtractionConfig{Timezone: "Mars/Base"}, quiet())
	assert.Error(t, err)
}
