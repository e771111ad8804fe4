package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/freight-orders/internal/entity"
)

func strp(s string) *string { return &s }
func f64(v float64) *float64 { return &v }

func sampleOrder() *entity.Order {
	from := "2024-03-05T08:00:00.000000Z"
	to := "2024-03-05T12:00:00.000000Z"
	return &entity.Order{
		Customer: entity.Customer{
			Side:    "none",
			Details: entity.CustomerDetails{Email: strp("ops@example.com")},
		},
		AttachmentFilenames: []string{"task.pdf"},
		LoadingLocations: []entity.LocationEntry{{
			CompanyAddress: entity.AddressFields{
				Company: strp("Acme"), Title: strp("Acme"), StreetAddress: strp("Main 1"),
				City: strp("Berlin"), PostalCode: strp("10115"), Country: strp("DE"),
			},
			Time: entity.NewTimeWindow(&from, &to),
		}},
		DestinationLocations: []entity.LocationEntry{{
			Time: entity.NewTimeWindow(&from, &from),
		}},
		Cargos: []entity.CargoItem{{
			Title: strp("Paper"), Number: "R1", PackageCount: 33,
			PackageType: strp("Pallet (other)"), LDM: f64(13.6), Weight: f64(23500),
		}},
		OrderReference:   strp("12345"),
		TransportNumbers: "LT-ABC123 / AB123",
		FreightPrice:     f64(1250.5),
		FreightCurrency:  strp("EUR"),
		Incoterms:        "FCA,DAP",
		Container:        &entity.ContainerInfo{ContainerType: strp("40HC")},
	}
}

func encode(t *testing.T, o *entity.Order) []byte {
	t.Helper()
	b, err := json.Marshal(o)
	require.NoError(t, err)
	return b
}

func TestValidateOrderAccepts(t *testing.T) {
	require.NoError(t, ValidateOrder(encode(t, sampleOrder())))

	// minimal record: nothing found
	bare := &entity.Order{
		Customer:             entity.Customer{Side: "none"},
		AttachmentFilenames:  []string{},
		LoadingLocations:     []entity.LocationEntry{},
		DestinationLocations: []entity.LocationEntry{},
		Cargos:               []entity.CargoItem{{Number: "", PackageCount: 1}},
	}
	require.NoError(t, ValidateOrder(encode(t, bare)))
}

func TestValidateOrderRejects(t *testing.T) {
	cases := map[string]func(o *entity.Order){
		"unknown incoterm": func(o *entity.Order) { o.Incoterms = "XYZ" },
		"bad container":    func(o *entity.Order) { o.Container.ContainerType = strp("99ZZ") },
		"bad instant": func(o *entity.Order) {
			bad := "05.03.2024"
			o.LoadingLocations[0].Time = entity.NewTimeWindow(&bad, nil)
		},
		"two cargos": func(o *entity.Order) { o.Cargos = append(o.Cargos, o.Cargos[0]) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			o := sampleOrder()
			mutate(o)
			assert.Error(t, ValidateOrder(encode(t, o)))
		})
	}
}

func TestValidateJSONAgainstSchemaExtraField(t *testing.T) {
	m, err := sampleOrder().Map()
	require.NoError(t, err)
	m["unexpected"] = true
	b, err := json.Marshal(m)
	require.NoError(t, err)

	err = ValidateJSONAgainstSchema(BuildOrderJSONSchema(), b)
	assert.ErrorContains(t, err, "does not match schema")
}

func TestValidateJSONAgainstSchemaGarbage(t *testing.T) {
	assert.Error(t, ValidateJSONAgainstSchema(BuildOrderJSONSchema(), []byte("{")))
}
