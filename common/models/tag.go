package models

import (
	"time"

	"github.com/google/uuid"
)

// Tag is an operator-managed label that can be attached to entities of any
// registered target type.
// Maps to: tag table
type Tag struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Label     string    `db:"label" json:"label"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// TaggedItem is one (tag, entity) association. The target is identified by
// a type discriminator plus a raw identifier instead of a per-type foreign
// key, so new taggable types need no schema change here. The flip side is
// that the database cannot enforce that the target row still exists; a
// target deleted without cleanup surfaces as "not found" at resolve time.
// Maps to: tagged_item table
type TaggedItem struct {
	ID uuid.UUID `db:"id" json:"id"`

	// Referenced tag; deleting the tag cascades to its associations
	TagID uuid.UUID `db:"tag_id" json:"tag_id"`

	// Target discriminator. Examples: 'product', 'customer', 'order'
	TargetType string `db:"target_type" json:"target_type"`

	// Target identifier, interpreted per TargetType by the resolver registry
	TargetID uuid.UUID `db:"target_id" json:"target_id"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
