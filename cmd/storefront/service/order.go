package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/storelab/storefront/cmd/storefront/models"
	"github.com/storelab/storefront/cmd/storefront/repository"
	"github.com/storelab/storefront/common/logger"
)

// OrderService handles orders and shopping carts
type OrderService struct {
	orders    *repository.OrderRepository
	carts     *repository.CartRepository
	products  *repository.ProductRepository
	customers *repository.CustomerRepository
	log       *logger.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	orders *repository.OrderRepository,
	carts *repository.CartRepository,
	products *repository.ProductRepository,
	customers *repository.CustomerRepository,
	log *logger.Logger,
) *OrderService {
	return &OrderService{
		orders:    orders,
		carts:     carts,
		products:  products,
		customers: customers,
		log:       log,
	}
}

// OrderLine is one requested product in a new order
type OrderLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// PlaceOrder creates an order for a customer, pricing each line from the
// current catalog
func (s *OrderService) PlaceOrder(ctx context.Context, customerID uuid.UUID, lines []OrderLine) (*models.OrderWithItems, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("order must have at least one line")
	}

	if _, err := s.customers.GetByID(ctx, customerID); err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:            uuid.New(),
		CustomerID:    customerID,
		PaymentStatus: models.PaymentPending,
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("quantity must be positive for product %s", line.ProductID)
		}

		product, err := s.products.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}

		items = append(items, models.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: product.ID,
			Quantity:  line.Quantity,
			UnitPrice: product.UnitPrice,
		})
	}

	if err := s.orders.Create(ctx, order, items); err != nil {
		return nil, err
	}

	s.log.Info("placed order",
		"order_id", order.ID,
		"customer_id", customerID,
		"lines", len(items),
	)

	return s.orders.GetWithItems(ctx, order.ID)
}

// GetOrder retrieves an order with its items
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.OrderWithItems, error) {
	return s.orders.GetWithItems(ctx, id)
}

// ListOrders retrieves all orders of one customer
func (s *OrderService) ListOrders(ctx context.Context, customerID uuid.UUID) ([]models.Order, error) {
	return s.orders.ListByCustomer(ctx, customerID)
}

// SetPaymentStatus updates the payment status of an order
func (s *OrderService) SetPaymentStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus) error {
	if !status.Valid() {
		return fmt.Errorf("unknown payment status: %s", status)
	}

	if err := s.orders.SetPaymentStatus(ctx, id, status); err != nil {
		return err
	}

	s.log.Info("updated payment status", "order_id", id, "status", status)
	return nil
}

// CountByStatus aggregates orders per payment status
func (s *OrderService) CountByStatus(ctx context.Context) ([]models.StatusCount, error) {
	return s.orders.CountByStatus(ctx)
}

// CreateCart creates a new empty cart
func (s *OrderService) CreateCart(ctx context.Context) (*models.Cart, error) {
	cart := &models.Cart{ID: uuid.New()}
	if err := s.carts.Create(ctx, cart); err != nil {
		return nil, err
	}

	s.log.Info("created cart", "cart_id", cart.ID)
	return cart, nil
}

// AddToCart adds a product to a cart
func (s *OrderService) AddToCart(ctx context.Context, cartID, productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}

	exists, err := s.carts.Exists(ctx, cartID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("cart not found: %s", cartID)
	}

	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return err
	}

	return s.carts.AddItem(ctx, &models.CartItem{
		ID:        uuid.New(),
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
	})
}

// CartItems retrieves all lines of a cart
func (s *OrderService) CartItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	return s.carts.Items(ctx, cartID)
}

// Checkout turns a cart into an order for the customer and deletes the
// cart. Pricing happens at checkout time, not add-to-cart time.
func (s *OrderService) Checkout(ctx context.Context, cartID, customerID uuid.UUID) (*models.OrderWithItems, error) {
	items, err := s.carts.Items(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("cart is empty: %s", cartID)
	}

	lines := make([]OrderLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, OrderLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := s.PlaceOrder(ctx, customerID, lines)
	if err != nil {
		return nil, err
	}

	if err := s.carts.Delete(ctx, cartID); err != nil {
		// The order exists; a stale cart is recoverable
		s.log.Warn("failed to delete cart after checkout", "cart_id", cartID, "error", err)
	}

	return order, nil
}
