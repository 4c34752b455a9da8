package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/storelab/storefront/cmd/storefront/container"
	"github.com/storelab/storefront/cmd/storefront/handlers"
)

// RegisterCatalogRoutes registers product and collection routes
func RegisterCatalogRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewProductHandler(c)

	products := e.Group("/api/v1/products")
	{
		products.POST("", h.CreateProduct)
		products.GET("", h.ListProducts) // ?filter=inventory < 10 || unit_price < 20.0
		products.GET("/stats", h.ProductStats)
		products.GET("/:id", h.GetProduct)
		products.PATCH("/:id", h.PatchProduct) // RFC 7386 merge patch
		products.DELETE("/:id", h.DeleteProduct)
	}

	collections := e.Group("/api/v1/collections")
	{
		collections.POST("", h.CreateCollection)
		collections.GET("", h.ListCollections)
		collections.GET("/:id", h.GetCollection)
	}
}
