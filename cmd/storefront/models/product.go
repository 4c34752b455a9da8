package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog item
// Maps to: product table
type Product struct {
	ID uuid.UUID `db:"id" json:"id"`

	Title string `db:"title" json:"title"`

	// URL-safe identifier derived from the title
	Slug string `db:"slug" json:"slug"`

	// Optional: products can ship without a description
	Description *string `db:"description" json:"description,omitempty"`

	UnitPrice float64 `db:"unit_price" json:"unit_price"`

	Inventory int `db:"inventory" json:"inventory"`

	// Optional: uncategorized products carry no collection
	CollectionID *uuid.UUID `db:"collection_id" json:"collection_id,omitempty"`

	LastUpdate time.Time `db:"last_update" json:"last_update"`
}

// Collection groups products for merchandising
// Maps to: collection table
type Collection struct {
	ID    uuid.UUID `db:"id" json:"id"`
	Title string    `db:"title" json:"title"`

	// Optional: a collection may highlight one of its products
	FeaturedProductID *uuid.UUID `db:"featured_product_id" json:"featured_product_id,omitempty"`
}

// ProductStats holds catalog-wide aggregates
type ProductStats struct {
	Count        int64   `json:"count"`
	MinUnitPrice float64 `json:"min_unit_price"`
	MaxUnitPrice float64 `json:"max_unit_price"`
	AvgUnitPrice float64 `json:"avg_unit_price"`
}
