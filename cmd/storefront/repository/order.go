package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/storelab/storefront/cmd/storefront/models"
	"github.com/storelab/storefront/common/db"
	"github.com/storelab/storefront/common/tagging"
)

// OrderRepository handles database operations for orders
type OrderRepository struct {
	db *db.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *db.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts an order and its items in one transaction. An order with
// zero items never reaches the database.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	if len(items) == 0 {
		return fmt.Errorf("order must have at least one item")
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	orderQuery := `
		INSERT INTO store_order (id, customer_id, placed_at, payment_status)
		VALUES ($1, $2, NOW(), $3)
	`
	if _, err := tx.Exec(ctx, orderQuery, order.ID, order.CustomerID, order.PaymentStatus); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_item (id, order_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, item := range items {
		if _, err := tx.Exec(ctx, itemQuery, item.ID, order.ID, item.ProductID, item.Quantity, item.UnitPrice); err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	return nil
}

// GetWithItems retrieves an order and all its items in a single join
func (r *OrderRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*models.OrderWithItems, error) {
	query := `
		SELECT o.id, o.customer_id, o.placed_at, o.payment_status,
		       i.id, i.product_id, i.quantity, i.unit_price
		FROM store_order o
		LEFT JOIN order_item i ON i.order_id = o.id
		WHERE o.id = $1
	`

	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	defer rows.Close()

	var result *models.OrderWithItems
	for rows.Next() {
		var itemID, productID *uuid.UUID
		var quantity *int
		var unitPrice *float64
		var order models.Order

		err := rows.Scan(
			&order.ID,
			&order.CustomerID,
			&order.PlacedAt,
			&order.PaymentStatus,
			&itemID,
			&productID,
			&quantity,
			&unitPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}

		if result == nil {
			result = &models.OrderWithItems{Order: order}
		}

		// LEFT JOIN yields null item columns for an order with no lines
		if itemID != nil {
			result.Items = append(result.Items, models.OrderItem{
				ID:        *itemID,
				OrderID:   order.ID,
				ProductID: *productID,
				Quantity:  *quantity,
				UnitPrice: *unitPrice,
			})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order rows: %w", err)
	}

	if result == nil {
		return nil, &tagging.NotFoundError{Resource: "order", ID: id.String()}
	}

	return result, nil
}

// ListByCustomer retrieves all orders of one customer, newest first
func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Order, error) {
	query := `
		SELECT id, customer_id, placed_at, payment_status
		FROM store_order
		WHERE customer_id = $1
		ORDER BY placed_at DESC
	`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		err := rows.Scan(
			&order.ID,
			&order.CustomerID,
			&order.PlacedAt,
			&order.PaymentStatus,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// SetPaymentStatus updates the payment status of an order
func (r *OrderRepository) SetPaymentStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus) error {
	query := `UPDATE store_order SET payment_status = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return &tagging.NotFoundError{Resource: "order", ID: id.String()}
	}

	return nil
}

// CountByStatus aggregates orders per payment status
func (r *OrderRepository) CountByStatus(ctx context.Context) ([]models.StatusCount, error) {
	query := `
		SELECT payment_status, COUNT(*)
		FROM store_order
		GROUP BY payment_status
		ORDER BY payment_status
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders by status: %w", err)
	}
	defer rows.Close()

	var counts []models.StatusCount
	for rows.Next() {
		var count models.StatusCount
		if err := rows.Scan(&count.PaymentStatus, &count.Count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts = append(counts, count)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating status counts: %w", err)
	}

	return counts, nil
}
