package taskpdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/freight-orders/internal/core/lines"
)

func TestExtractHeaderSample(t *testing.T) {
	h := ExtractHeader(lines.New(sampleSheet()))

	require.NotNil(t, h.OrderReference)
	assert.Equal(t, "4711-22", *h.OrderReference)
	require.NotNil(t, h.TruckNumber)
	assert.Equal(t, "LT-ABC123", *h.TruckNumber)
	require.NotNil(t, h.TrailerNumber)
	assert.Equal(t, "AB123", *h.TrailerNumber)
	assert.Equal(t, "LT-ABC123 / AB123", h.TransportNumbers)
	require.NotNil(t, h.FreightPrice)
	assert.InDelta(t, 1250.5, *h.FreightPrice, 1e-9)
	require.NotNil(t, h.FreightCurrency)
	assert.Equal(t, "EUR", *h.FreightCurrency)
}

func TestExtractHeaderTourNumber(t *testing.T) {
	h := ExtractHeader(lines.New([]string{"Tournumber:", "", "* 12345 *"}))
	require.NotNil(t, h.OrderReference)
	assert.Equal(t, "12345", *h.OrderReference)
	assert.Equal(t, "", h.TransportNumbers)
}

func TestExtractHeaderMissingAnchors(t *testing.T) {
	h := ExtractHeader(lines.New([]string{"Tournumber:", ""}))
	assert.Nil(t, h.OrderReference)
	assert.Nil(t, h.TruckNumber)
	assert.Nil(t, h.TrailerNumber)
	assert.Nil(t, h.FreightPrice)
	assert.Nil(t, h.FreightCurrency)
	assert.Equal(t, "", h.TransportNumbers)
}

func TestExtractHeaderTrailerNeedsBothAnchors(t *testing.T) {
	h := ExtractHeader(lines.New([]string{"Truck, trailer:", "", "TR 1", "AB123"}))
	require.NotNil(t, h.TruckNumber)
	assert.Nil(t, h.TrailerNumber)
	assert.Equal(t, "TR 1", h.TransportNumbers)
}

func TestExtractHeaderTrailerOnly(t *testing.T) {
	h := ExtractHeader(lines.New([]string{"Truck, trailer:", "", "", "XY987", "Vehicle type:"}))
	require.NotNil(t, h.TruckNumber)
	assert.Equal(t, "", *h.TruckNumber)
	require.NotNil(t, h.TrailerNumber)
	assert.Equal(t, "XY987", *h.TrailerNumber)
	assert.Equal(t, "XY987", h.TransportNumbers)
}

func TestExtractHeaderFreightWithoutLetters(t *testing.T) {
	h := ExtractHeader(lines.New([]string{"Freight rate in €:", "", "900,00"}))
	require.NotNil(t, h.FreightPrice)
	assert.InDelta(t, 900.0, *h.FreightPrice, 1e-9)
	require.NotNil(t, h.FreightCurrency)
	assert.Equal(t, "", *h.FreightCurrency)
}
