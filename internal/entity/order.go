package entity

import (
	"encoding/json"
	"fmt"
)

// AddressFields is a parsed "company, street, CC-postal city" line. Either every
// field is set or none is.
type AddressFields struct {
	Company       *string `json:"company"`
	Title         *string `json:"title"`
	StreetAddress *string `json:"street_address"`
	City          *string `json:"city"`
	PostalCode    *string `json:"postal_code"`
	Country       *string `json:"country"`
}

// TimeWindow holds ISO-8601 instants for a stop. A window that collapsed to a
// single instant renders without datetime_to.
type TimeWindow struct {
	From *string
	To   *string

	single bool
}

// NewTimeWindow drops the upper bound when both sides are the same instant.
func NewTimeWindow(from, to *string) TimeWindow {
	if from != nil && to != nil && *from == *to {
		return TimeWindow{From: from, single: true}
	}
	return TimeWindow{From: from, To: to}
}

// Single reports whether the window collapsed to one instant.
func (w TimeWindow) Single() bool { return w.single }

func (w TimeWindow) MarshalJSON() ([]byte, error) {
	if w.single {
		return json.Marshal(struct {
			From *string `json:"datetime_from"`
		}{w.From})
	}
	return json.Marshal(struct {
		From *string `json:"datetime_from"`
		To   *string `json:"datetime_to"`
	}{w.From, w.To})
}

func (w *TimeWindow) UnmarshalJSON(b []byte) error {
	var raw map[string]*string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	to, hasTo := raw["datetime_to"]
	w.From = raw["datetime_from"]
	w.To = to
	w.single = !hasTo && w.From != nil
	return nil
}

// LocationEntry is one loading or unloading stop.
type LocationEntry struct {
	CompanyAddress AddressFields `json:"company_address"`
	Time           TimeWindow    `json:"time"`
}

// CargoItem is a single load line.
type CargoItem struct {
	Title        *string  `json:"title"`
	Number       string   `json:"number"`
	PackageCount float64  `json:"package_count"`
	PackageType  *string  `json:"package_type"`
	LDM          *float64 `json:"ldm"`
	Weight       *float64 `json:"weight"`
}

// ContainerInfo carries optional sea-freight metadata.
type ContainerInfo struct {
	ContainerNumber  *string `json:"container_number"`
	ContainerType    *string `json:"container_type"`
	BookingReference *string `json:"booking_reference"`
	ShippingLine     *string `json:"shipping_line"`
}

// IsEmpty reports whether no field carries a non-empty value.
func (c ContainerInfo) IsEmpty() bool {
	for _, v := range []*string{c.ContainerNumber, c.ContainerType, c.BookingReference, c.ShippingLine} {
		if v != nil && *v != "" {
			return false
		}
	}
	return true
}

// CustomerDetails are the counterparty fields; unset fields are left out of the output.
type CustomerDetails struct {
	Company       *string `json:"company,omitempty"`
	CompanyCode   *string `json:"company_code,omitempty"`
	VATCode       *string `json:"vat_code,omitempty"`
	Email         *string `json:"email,omitempty"`
	ContactPerson *string `json:"contact_person,omitempty"`
	StreetAddress *string `json:"street_address,omitempty"`
	Title         *string `json:"title,omitempty"`
	City          *string `json:"city,omitempty"`
	Country       *string `json:"country,omitempty"`
	PostalCode    *string `json:"postal_code,omitempty"`
	Comment       *string `json:"comment,omitempty"`
}

// Customer wraps the counterparty with the side it plays on the order.
type Customer struct {
	Side    string          `json:"side"`
	Details CustomerDetails `json:"details"`
}

// Order is the record assembled from one task sheet.
type Order struct {
	Customer             Customer        `json:"customer"`
	AttachmentFilenames  []string        `json:"attachment_filenames"`
	LoadingLocations     []LocationEntry `json:"loading_locations"`
	DestinationLocations []LocationEntry `json:"destination_locations"`
	Cargos               []CargoItem     `json:"cargos"`
	OrderReference       *string         `json:"order_reference"`
	TransportNumbers     string          `json:"transport_numbers"`
	FreightPrice         *float64        `json:"freight_price"`
	FreightCurrency      *string         `json:"freight_currency"`
	Incoterms            string          `json:"incoterms,omitempty"`
	Container            *ContainerInfo  `json:"container,omitempty"`
}

// Map renders the order as the nested map handed to persistence and transport layers.
func (o *Order) Map() (map[string]any, error) {
	b, err := json.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("marshal order: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("unmarshal order: %w", err)
	}
	return m, nil
}
