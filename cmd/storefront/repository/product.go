package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/storelab/storefront/cmd/storefront/models"
	"github.com/storelab/storefront/common/db"
	"github.com/storelab/storefront/common/tagging"
)

// ProductRepository handles database operations for products
type ProductRepository struct {
	db *db.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *db.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// ProductFilter narrows List results. Zero values mean "no constraint".
type ProductFilter struct {
	TitleContains string     // case-insensitive substring match
	PriceMin      *float64   // unit_price >=
	PriceMax      *float64   // unit_price <=
	InventoryLT   *int       // inventory <
	CollectionID  *uuid.UUID // collection_id =
	OrderBy       string     // one of the whitelisted sort keys
	Limit         int
	Offset        int
}

// Sort keys accepted by List. Anything else falls back to title.
var productOrderings = map[string]string{
	"title":        "title ASC",
	"-title":       "title DESC",
	"unit_price":   "unit_price ASC",
	"-unit_price":  "unit_price DESC",
	"last_update":  "last_update ASC",
	"-last_update": "last_update DESC",
}

// Create inserts a new product
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO product (id, title, slug, description, unit_price, inventory, collection_id, last_update)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`

	_, err := r.db.Exec(ctx, query,
		product.ID,
		product.Title,
		product.Slug,
		product.Description,
		product.UnitPrice,
		product.Inventory,
		product.CollectionID,
	)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by id
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	query := `
		SELECT id, title, slug, description, unit_price, inventory, collection_id, last_update
		FROM product
		WHERE id = $1
	`

	product := &models.Product{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&product.ID,
		&product.Title,
		&product.Slug,
		&product.Description,
		&product.UnitPrice,
		&product.Inventory,
		&product.CollectionID,
		&product.LastUpdate,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &tagging.NotFoundError{Resource: "product", ID: id.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// Update rewrites all mutable fields of a product
func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE product
		SET title = $2, slug = $3, description = $4, unit_price = $5,
		    inventory = $6, collection_id = $7, last_update = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		product.ID,
		product.Title,
		product.Slug,
		product.Description,
		product.UnitPrice,
		product.Inventory,
		product.CollectionID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	if result.RowsAffected() == 0 {
		return &tagging.NotFoundError{Resource: "product", ID: product.ID.String()}
	}

	return nil
}

// Delete removes a product
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM product WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if result.RowsAffected() == 0 {
		return &tagging.NotFoundError{Resource: "product", ID: id.String()}
	}

	return nil
}

// List retrieves products matching the filter
func (r *ProductRepository) List(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	var conditions []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.TitleContains != "" {
		conditions = append(conditions, fmt.Sprintf("title ILIKE %s", arg("%"+filter.TitleContains+"%")))
	}
	if filter.PriceMin != nil {
		conditions = append(conditions, fmt.Sprintf("unit_price >= %s", arg(*filter.PriceMin)))
	}
	if filter.PriceMax != nil {
		conditions = append(conditions, fmt.Sprintf("unit_price <= %s", arg(*filter.PriceMax)))
	}
	if filter.InventoryLT != nil {
		conditions = append(conditions, fmt.Sprintf("inventory < %s", arg(*filter.InventoryLT)))
	}
	if filter.CollectionID != nil {
		conditions = append(conditions, fmt.Sprintf("collection_id = %s", arg(*filter.CollectionID)))
	}

	query := `
		SELECT id, title, slug, description, unit_price, inventory, collection_id, last_update
		FROM product
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	ordering, ok := productOrderings[filter.OrderBy]
	if !ok {
		ordering = productOrderings["title"]
	}
	query += " ORDER BY " + ordering

	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	query += fmt.Sprintf(" LIMIT %s OFFSET %s", arg(limit), arg(filter.Offset))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var product models.Product
		err := rows.Scan(
			&product.ID,
			&product.Title,
			&product.Slug,
			&product.Description,
			&product.UnitPrice,
			&product.Inventory,
			&product.CollectionID,
			&product.LastUpdate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// Stats computes catalog-wide price aggregates
func (r *ProductRepository) Stats(ctx context.Context) (*models.ProductStats, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(MIN(unit_price), 0),
		       COALESCE(MAX(unit_price), 0),
		       COALESCE(AVG(unit_price), 0)
		FROM product
	`

	stats := &models.ProductStats{}
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.Count,
		&stats.MinUnitPrice,
		&stats.MaxUnitPrice,
		&stats.AvgUnitPrice,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute product stats: %w", err)
	}

	return stats, nil
}
