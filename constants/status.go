package constants

// OrderStatus is the canonical status for rows in orders.
type OrderStatus string

// Stable values (store these exact strings in DB).
const (
	OrderStatusExtracted OrderStatus = "EXTRACTED" // record assembled and schema-valid
	OrderStatusInvalid   OrderStatus = "INVALID"   // assembled but failed schema validation
)
