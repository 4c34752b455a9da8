package models

import (
	"time"

	"github.com/google/uuid"
)

// Membership is the customer loyalty level, stored as a one-letter code
type Membership string

const (
	MembershipBronze Membership = "B"
	MembershipSilver Membership = "S"
	MembershipGold   Membership = "G"
)

// Valid reports whether m is one of the known membership codes
func (m Membership) Valid() bool {
	switch m {
	case MembershipBronze, MembershipSilver, MembershipGold:
		return true
	}
	return false
}

// Customer is a storefront account
// Maps to: customer table
type Customer struct {
	ID        uuid.UUID `db:"id" json:"id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`

	// Unique across the storefront
	Email string `db:"email" json:"email"`

	Phone string `db:"phone" json:"phone"`

	// Optional
	BirthDate *time.Time `db:"birth_date" json:"birth_date,omitempty"`

	Membership Membership `db:"membership" json:"membership"`
}

// Address belongs to a customer; deleting the customer cascades
// Maps to: address table
type Address struct {
	ID         uuid.UUID `db:"id" json:"id"`
	CustomerID uuid.UUID `db:"customer_id" json:"customer_id"`
	Street     string    `db:"street" json:"street"`
	City       string    `db:"city" json:"city"`
}
