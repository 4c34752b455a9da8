package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/storelab/storefront/cmd/storefront/container"
	"github.com/storelab/storefront/cmd/storefront/handlers"
)

// RegisterCustomerRoutes registers customer and address routes
func RegisterCustomerRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewCustomerHandler(c)

	customers := e.Group("/api/v1/customers")
	{
		customers.POST("", h.CreateCustomer)
		customers.GET("", h.ListCustomers) // ?email_ends_with=.com&membership=G
		customers.GET("/:id", h.GetCustomer)
		customers.DELETE("/:id", h.DeleteCustomer)

		customers.POST("/:id/addresses", h.AddAddress)
		customers.GET("/:id/addresses", h.ListAddresses)
	}
}
