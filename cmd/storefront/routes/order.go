package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/storelab/storefront/cmd/storefront/container"
	"github.com/storelab/storefront/cmd/storefront/handlers"
)

// RegisterOrderRoutes registers order and cart routes
func RegisterOrderRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewOrderHandler(c)

	orders := e.Group("/api/v1/orders")
	{
		orders.POST("", h.PlaceOrder)
		orders.GET("", h.ListOrders) // ?customer_id=...
		orders.GET("/stats", h.OrderStats)
		orders.GET("/:id", h.GetOrder)
		orders.PUT("/:id/payment-status", h.SetPaymentStatus)
	}

	carts := e.Group("/api/v1/carts")
	{
		carts.POST("", h.CreateCart)
		carts.POST("/:id/items", h.AddToCart)
		carts.GET("/:id/items", h.CartItems)
		carts.POST("/:id/checkout", h.Checkout)
	}
}
