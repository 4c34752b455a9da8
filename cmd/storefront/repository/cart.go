package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/storelab/storefront/cmd/storefront/models"
	"github.com/storelab/storefront/common/db"
	"github.com/storelab/storefront/common/tagging"
)

// CartRepository handles database operations for shopping carts
type CartRepository struct {
	db *db.DB
}

// NewCartRepository creates a new cart repository
func NewCartRepository(db *db.DB) *CartRepository {
	return &CartRepository{db: db}
}

// Create inserts a new empty cart
func (r *CartRepository) Create(ctx context.Context, cart *models.Cart) error {
	query := `INSERT INTO cart (id, created_at) VALUES ($1, NOW())`

	_, err := r.db.Exec(ctx, query, cart.ID)
	if err != nil {
		return fmt.Errorf("failed to create cart: %w", err)
	}

	return nil
}

// Exists checks if a cart exists
func (r *CartRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM cart WHERE id = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check cart existence: %w", err)
	}

	return exists, nil
}

// AddItem adds a product to the cart, accumulating quantity when the
// product is already in it
func (r *CartRepository) AddItem(ctx context.Context, item *models.CartItem) error {
	query := `
		INSERT INTO cart_item (id, cart_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_item.quantity + EXCLUDED.quantity
	`

	_, err := r.db.Exec(ctx, query, item.ID, item.CartID, item.ProductID, item.Quantity)
	if err != nil {
		return fmt.Errorf("failed to add cart item: %w", err)
	}

	return nil
}

// Items retrieves all lines of a cart
func (r *CartRepository) Items(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	query := `
		SELECT id, cart_id, product_id, quantity
		FROM cart_item
		WHERE cart_id = $1
	`

	rows, err := r.db.Query(ctx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	defer rows.Close()

	var items []models.CartItem
	for rows.Next() {
		var item models.CartItem
		if err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return items, nil
}

// Delete removes a cart and its items (cascade)
func (r *CartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM cart WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	if result.RowsAffected() == 0 {
		return &tagging.NotFoundError{Resource: "cart", ID: id.String()}
	}

	return nil
}
