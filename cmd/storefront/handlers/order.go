package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/storelab/storefront/cmd/storefront/container"
	"github.com/storelab/storefront/cmd/storefront/models"
	"github.com/storelab/storefront/cmd/storefront/service"
	"github.com/storelab/storefront/common/bootstrap"
)

// OrderHandler handles order and cart requests
type OrderHandler struct {
	components   *bootstrap.Components
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(c *container.Container) *OrderHandler {
	return &OrderHandler{
		components:   c.Components,
		orderService: c.OrderService,
	}
}

// PlaceOrder creates a new order
// POST /api/v1/orders
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		CustomerID uuid.UUID           `json:"customer_id"`
		Lines      []service.OrderLine `json:"lines"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.CustomerID == uuid.Nil {
		return badRequest(c, "customer_id is required")
	}

	order, err := h.orderService.PlaceOrder(ctx, req.CustomerID, req.Lines)
	if err != nil {
		return respondError(c, err, "failed to place order")
	}

	return c.JSON(http.StatusCreated, order)
}

// GetOrder retrieves an order with its items
// GET /api/v1/orders/:id
func (h *OrderHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "id must be a valid uuid")
	}

	order, err := h.orderService.GetOrder(ctx, id)
	if err != nil {
		return respondError(c, err, "failed to get order")
	}

	return c.JSON(http.StatusOK, order)
}

// ListOrders lists the orders of one customer
// GET /api/v1/orders?customer_id=...
func (h *OrderHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	customerID, err := uuid.Parse(c.QueryParam("customer_id"))
	if err != nil {
		return badRequest(c, "customer_id query parameter is required")
	}

	orders, err := h.orderService.ListOrders(ctx, customerID)
	if err != nil {
		h.components.Logger.Error("failed to list orders", "error", err)
		return respondError(c, err, "failed to list orders")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"orders": orders,
		"count":  len(orders),
	})
}

// SetPaymentStatus updates the payment status of an order
// PUT /api/v1/orders/:id/payment-status
func (h *OrderHandler) SetPaymentStatus(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "id must be a valid uuid")
	}

	var req struct {
		Status models.PaymentStatus `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := h.orderService.SetPaymentStatus(ctx, id, req.Status); err != nil {
		return respondError(c, err, "failed to update payment status")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"order_id": id,
		"status":   req.Status,
	})
}

// OrderStats aggregates order counts per payment status
// GET /api/v1/orders/stats
func (h *OrderHandler) OrderStats(c echo.Context) error {
	ctx := c.Request().Context()

	counts, err := h.orderService.CountByStatus(ctx)
	if err != nil {
		h.components.Logger.Error("failed to count orders", "error", err)
		return respondError(c, err, "failed to count orders")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"counts": counts,
	})
}

// CreateCart creates a new empty cart
// POST /api/v1/carts
func (h *OrderHandler) CreateCart(c echo.Context) error {
	ctx := c.Request().Context()

	cart, err := h.orderService.CreateCart(ctx)
	if err != nil {
		h.components.Logger.Error("failed to create cart", "error", err)
		return respondError(c, err, "failed to create cart")
	}

	return c.JSON(http.StatusCreated, cart)
}

// AddToCart adds a product to a cart. Adding the same product again
// accumulates quantity.
// POST /api/v1/carts/:id/items
func (h *OrderHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()

	cartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "id must be a valid uuid")
	}

	var req struct {
		ProductID uuid.UUID `json:"product_id"`
		Quantity  int       `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := h.orderService.AddToCart(ctx, cartID, req.ProductID, req.Quantity); err != nil {
		return respondError(c, err, "failed to add to cart")
	}

	return c.NoContent(http.StatusNoContent)
}

// CartItems lists the lines of a cart
// GET /api/v1/carts/:id/items
func (h *OrderHandler) CartItems(c echo.Context) error {
	ctx := c.Request().Context()

	cartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "id must be a valid uuid")
	}

	items, err := h.orderService.CartItems(ctx, cartID)
	if err != nil {
		return respondError(c, err, "failed to list cart items")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"items": items,
	})
}

// Checkout turns a cart into an order and deletes the cart
// POST /api/v1/carts/:id/checkout
func (h *OrderHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()

	cartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "id must be a valid uuid")
	}

	var req struct {
		CustomerID uuid.UUID `json:"customer_id"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.CustomerID == uuid.Nil {
		return badRequest(c, "customer_id is required")
	}

	order, err := h.orderService.Checkout(ctx, cartID, req.CustomerID)
	if err != nil {
		return respondError(c, err, "failed to check out cart")
	}

	return c.JSON(http.StatusCreated, order)
}
