package taskpdf

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/freight-orders/internal/core/lines"
)

func TestExtractDetailsLithuanian(t *testing.T) {
	d := ExtractDetails(lines.New([]string{
		"Pervežimo užsakymas",
		"Vežėjas: UAB Žalias Kelias",
		"Į. k./Reg. no. 304512345",
		"PVM k./VAT No. LT100011223344",
		"El. paštas: info@zalias.lt",
		"Kontaktas: Ona Jonaitė",
		"Pristatymo adresas: Sandėlis, Kaunas, 44000 LT, LT",
		"Prašome įkelti visus CMR/POD/Pristatymo dokumentus per 3 d.",
	}))

	require.NotNil(t, d.Company)
	assert.Equal(t, "UAB Žalias Kelias", *d.Company)
	assert.Equal(t, "304512345", *d.CompanyCode)
	assert.Equal(t, "LT100011223344", *d.VATCode)
	assert.Equal(t, "info@zalias.lt", *d.Email)
	assert.Equal(t, "Ona Jonaitė", *d.ContactPerson)
	assert.Equal(t, "Sandėlis, Kaunas, 44000 LT, LT", *d.StreetAddress)
	assert.Equal(t, "Kaunas", *d.City)
	assert.Equal(t, "44000 LT", *d.PostalCode)
	assert.Equal(t, "LT", *d.Country)
	assert.Equal(t, "Prašome įkelti visus CMR/POD/Pristatymo dokumentus per 3 d.", *d.Comment)
	assert.Nil(t, d.Title)
}

func TestExtractDetailsCzechGerman(t *testing.T) {
	d := ExtractDetails(lines.New([]string{
		"NÁLOŽNÍ LIST / VERLADESCHEIN / LOADING LIST 20240611",
		"Dopravce / Spediteur / Forwarder: Trans CZ s.r.o.",
		"DIČ:CZ12345678",
		"Řidič / Fahrer / Driver: Petr Novak",
		"Za / für / on behalf of Skoda Auto a.s.",
	}))

	assert.Equal(t, "Trans CZ s.r.o.", *d.Company)
	assert.Equal(t, "20240611", *d.CompanyCode)
	assert.Equal(t, "CZ12345678", *d.VATCode)
	assert.Equal(t, "Petr Novak", *d.ContactPerson)
	assert.Equal(t, "Skoda Auto a.s.", *d.Title)
}

func TestExtractDetailsEnglish(t *testing.T) {
	d := ExtractDetails(lines.New([]string{
		"To: Northern Freight Ltd, Station Rd 4, 12345, Leeds, UK",
		"F.A.O.: Jane Smith",
		"Email: ops@northern.example",
		"Tournumber: 55123",
	}))

	assert.Equal(t, "Northern Freight Ltd", *d.Company)
	assert.Equal(t, "Leeds", *d.City)
	assert.Equal(t, "12345", *d.PostalCode)
	assert.Equal(t, "Jane Smith", *d.Title)
	assert.Equal(t, "ops@northern.example", *d.Email)
	assert.Equal(t, "55123", *d.Comment)
	assert.Equal(t, "UK", *d.Country)
}

func TestDetailChainFallsThroughOnMismatch(t *testing.T) {
	// first VAT label is present but carries no value on its line
	d := ExtractDetails(lines.New([]string{
		"PVM k./VAT No.",
		"USt.-ID: DE811222333",
	}))
	require.NotNil(t, d.VATCode)
	assert.Equal(t, "DE811222333", *d.VATCode)
}

func TestDetailChainPriority(t *testing.T) {
	d := ExtractDetails(lines.New([]string{
		"To: Later Company",
		"Vežėjas: First Company",
	}))
	assert.Equal(t, "First Company", *d.Company)
}

func TestExtractDetailsDropsUnset(t *testing.T) {
	d := ExtractDetails(lines.New([]string{"nothing to see"}))
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(b))

	d = ExtractDetails(lines.New([]string{"Email: a@b.c"}))
	b, err = json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"a@b.c"}`, string(b))
}

func TestExtractDetailsCityFromToLine(t *testing.T) {
	tests := []struct {
		line   string
		city   string
		postal *string
	}{
		{line: "To: Acme GmbH, Hauptstr 5, Berlin, DE", city: "Berlin"},
		{line: "To: Acme, Vilnius, Lithuania", city: "Vilnius"},
		{line: "To: Acme GmbH, Hauptstr 5, 10115, Berlin, DE", city: "Berlin", postal: ptr("10115")},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			d := ExtractDetails(lines.New([]string{tt.line}))
			require.NotNil(t, d.City)
			assert.Equal(t, tt.city, *d.City)
			assert.Equal(t, tt.postal, d.PostalCode)
		})
	}
}
