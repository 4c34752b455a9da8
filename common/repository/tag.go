package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/storelab/storefront/common/db"
	"github.com/storelab/storefront/common/models"
	"github.com/storelab/storefront/common/tagging"
)

// TagRepository handles database operations for tags
type TagRepository struct {
	db *db.DB
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *db.DB) *TagRepository {
	return &TagRepository{db: db}
}

// Create inserts a new tag
func (r *TagRepository) Create(ctx context.Context, tag *models.Tag) error {
	query := `
		INSERT INTO tag (id, label, created_at)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.Exec(ctx, query,
		tag.ID,
		tag.Label,
		tag.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}

	return nil
}

// GetByID retrieves a tag by id
func (r *TagRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	query := `
		SELECT id, label, created_at
		FROM tag
		WHERE id = $1
	`

	tag := &models.Tag{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&tag.ID,
		&tag.Label,
		&tag.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &tagging.NotFoundError{Resource: "tag", ID: id.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	return tag, nil
}

// Delete removes a tag. The tagged_item foreign key cascades, so every
// association carrying the tag goes with it.
func (r *TagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM tag WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	if result.RowsAffected() == 0 {
		return &tagging.NotFoundError{Resource: "tag", ID: id.String()}
	}

	return nil
}

// List retrieves all tags ordered by label
func (r *TagRepository) List(ctx context.Context) ([]*models.Tag, error) {
	query := `
		SELECT id, label, created_at
		FROM tag
		ORDER BY label ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	var tags []*models.Tag
	for rows.Next() {
		tag := &models.Tag{}
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

// Exists checks if a tag exists
func (r *TagRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM tag WHERE id = $1)`

	var exists bool
	err := r.db.QueryRow(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check tag existence: %w", err)
	}

	return exists, nil
}
