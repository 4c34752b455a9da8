package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/storelab/storefront/common/db"
	"github.com/storelab/storefront/common/models"
)

// TaggedItemRepository handles database operations for tag associations.
// It implements tagging.Repository.
type TaggedItemRepository struct {
	db *db.DB
}

// NewTaggedItemRepository creates a new tagged item repository
func NewTaggedItemRepository(db *db.DB) *TaggedItemRepository {
	return &TaggedItemRepository{db: db}
}

// TagExists reports whether the referenced tag exists
func (r *TaggedItemRepository) TagExists(ctx context.Context, tagID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM tag WHERE id = $1)`

	var exists bool
	err := r.db.QueryRow(ctx, query, tagID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check tag existence: %w", err)
	}

	return exists, nil
}

// Upsert inserts the association, relying on the unique index over
// (tag_id, target_type, target_id) to serialize concurrent callers. When
// the triple already exists the insert is skipped and the existing row is
// returned.
func (r *TaggedItemRepository) Upsert(ctx context.Context, item *models.TaggedItem) (*models.TaggedItem, error) {
	insert := `
		INSERT INTO tagged_item (id, tag_id, target_type, target_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (tag_id, target_type, target_id) DO NOTHING
		RETURNING id, tag_id, target_type, target_id, created_at
	`

	stored := &models.TaggedItem{}
	err := r.db.QueryRow(ctx, insert,
		item.ID,
		item.TagID,
		item.TargetType,
		item.TargetID,
	).Scan(
		&stored.ID,
		&stored.TagID,
		&stored.TargetType,
		&stored.TargetID,
		&stored.CreatedAt,
	)

	if err == nil {
		return stored, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to insert tagged item: %w", err)
	}

	// Conflict path: fetch the row that won
	existing := `
		SELECT id, tag_id, target_type, target_id, created_at
		FROM tagged_item
		WHERE tag_id = $1 AND target_type = $2 AND target_id = $3
	`

	err = r.db.QueryRow(ctx, existing,
		item.TagID,
		item.TargetType,
		item.TargetID,
	).Scan(
		&stored.ID,
		&stored.TagID,
		&stored.TargetType,
		&stored.TargetID,
		&stored.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing tagged item: %w", err)
	}

	return stored, nil
}

// Delete removes the association and reports whether a row was removed
func (r *TaggedItemRepository) Delete(ctx context.Context, tagID uuid.UUID, targetType string, targetID uuid.UUID) (bool, error) {
	query := `
		DELETE FROM tagged_item
		WHERE tag_id = $1 AND target_type = $2 AND target_id = $3
	`

	result, err := r.db.Exec(ctx, query, tagID, targetType, targetID)
	if err != nil {
		return false, fmt.Errorf("failed to delete tagged item: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// TagsFor returns all tags applied to the given entity
func (r *TaggedItemRepository) TagsFor(ctx context.Context, targetType string, targetID uuid.UUID) ([]models.Tag, error) {
	query := `
		SELECT t.id, t.label, t.created_at
		FROM tag t
		JOIN tagged_item ti ON ti.tag_id = t.id
		WHERE ti.target_type = $1 AND ti.target_id = $2
	`

	rows, err := r.db.Query(ctx, query, targetType, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags for target: %w", err)
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var tag models.Tag
		err := rows.Scan(
			&tag.ID,
			&tag.Label,
			&tag.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}

	return tags, nil
}

// ItemsFor returns the ids of all entities of one type carrying the tag
func (r *TaggedItemRepository) ItemsFor(ctx context.Context, tagID uuid.UUID, targetType string) ([]uuid.UUID, error) {
	query := `
		SELECT target_id
		FROM tagged_item
		WHERE tag_id = $1 AND target_type = $2
	`

	rows, err := r.db.Query(ctx, query, tagID, targetType)
	if err != nil {
		return nil, fmt.Errorf("failed to list tagged items: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan target id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tagged items: %w", err)
	}

	return ids, nil
}
