package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// StoredOrder represents a persisted order for data transfer between layers.
type StoredOrder struct {
	ID               uuid.UUID       `json:"id"`
	SourceFile       string          `json:"source_file"`
	OrderReference   *string         `json:"order_reference,omitempty"`
	TransportNumbers string          `json:"transport_numbers"`
	FreightPrice     *float64        `json:"freight_price,omitempty"`
	FreightCurrency  *string         `json:"freight_currency,omitempty"`
	Incoterms        string          `json:"incoterms"`
	Status           string          `json:"status"`
	Payload          json.RawMessage `json:"payload"`
	CreatedAt        time.Time       `json:"created_at"`
}

// Order decodes the stored payload back into an Order.
func (s *StoredOrder) Order() (*Order, error) {
	var o Order
	if err := json.Unmarshal(s.Payload, &o); err != nil {
		return nil, err
	}
	return &o, nil
}
