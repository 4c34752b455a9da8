package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/storelab/storefront/cmd/storefront/models"
	"github.com/storelab/storefront/common/db"
	"github.com/storelab/storefront/common/tagging"
)

// CollectionRepository handles database operations for collections
type CollectionRepository struct {
	db *db.DB
}

// NewCollectionRepository creates a new collection repository
func NewCollectionRepository(db *db.DB) *CollectionRepository {
	return &CollectionRepository{db: db}
}

// Create inserts a new collection
func (r *CollectionRepository) Create(ctx context.Context, collection *models.Collection) error {
	query := `
		INSERT INTO collection (id, title, featured_product_id)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.Exec(ctx, query,
		collection.ID,
		collection.Title,
		collection.FeaturedProductID,
	)
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	return nil
}

// GetByID retrieves a collection by id
func (r *CollectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Collection, error) {
	query := `
		SELECT id, title, featured_product_id
		FROM collection
		WHERE id = $1
	`

	collection := &models.Collection{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&collection.ID,
		&collection.Title,
		&collection.FeaturedProductID,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &tagging.NotFoundError{Resource: "collection", ID: id.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}

	return collection, nil
}

// List retrieves all collections ordered by title
func (r *CollectionRepository) List(ctx context.Context) ([]models.Collection, error) {
	query := `
		SELECT id, title, featured_product_id
		FROM collection
		ORDER BY title ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	var collections []models.Collection
	for rows.Next() {
		var collection models.Collection
		err := rows.Scan(
			&collection.ID,
			&collection.Title,
			&collection.FeaturedProductID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}
		collections = append(collections, collection)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating collections: %w", err)
	}

	return collections, nil
}
