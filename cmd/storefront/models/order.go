package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus is the order payment state, stored as a one-letter code
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "P"
	PaymentComplete PaymentStatus = "C"
	PaymentFailed   PaymentStatus = "F"
)

// Valid reports whether s is one of the known payment status codes
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentComplete, PaymentFailed:
		return true
	}
	return false
}

// Order is one placed order
// Maps to: store_order table
type Order struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	CustomerID    uuid.UUID     `db:"customer_id" json:"customer_id"`
	PlacedAt      time.Time     `db:"placed_at" json:"placed_at"`
	PaymentStatus PaymentStatus `db:"payment_status" json:"payment_status"`
}

// OrderItem is one line of an order. The unit price is captured at order
// time so later catalog price changes do not rewrite history.
// Maps to: order_item table
type OrderItem struct {
	ID        uuid.UUID `db:"id" json:"id"`
	OrderID   uuid.UUID `db:"order_id" json:"order_id"`
	ProductID uuid.UUID `db:"product_id" json:"product_id"`
	Quantity  int       `db:"quantity" json:"quantity"`
	UnitPrice float64   `db:"unit_price" json:"unit_price"`
}

// OrderWithItems is an order fetched together with its lines in one query
type OrderWithItems struct {
	Order
	Items []OrderItem `json:"items"`
}

// StatusCount is one row of the orders-by-status aggregate
type StatusCount struct {
	PaymentStatus PaymentStatus `json:"payment_status"`
	Count         int64         `json:"count"`
}
