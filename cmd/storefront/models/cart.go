package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart is an anonymous shopping cart
// Maps to: cart table
type Cart struct {
	ID        uuid.UUID `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CartItem is one product line in a cart; quantities accumulate when the
// same product is added twice
// Maps to: cart_item table
type CartItem struct {
	ID        uuid.UUID `db:"id" json:"id"`
	CartID    uuid.UUID `db:"cart_id" json:"cart_id"`
	ProductID uuid.UUID `db:"product_id" json:"product_id"`
	Quantity  int       `db:"quantity" json:"quantity"`
}
