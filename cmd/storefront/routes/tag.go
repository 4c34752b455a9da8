package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/storelab/storefront/cmd/storefront/container"
	"github.com/storelab/storefront/cmd/storefront/handlers"
)

// RegisterTagRoutes registers tag lifecycle and association routes
func RegisterTagRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewTagHandler(c)

	tags := e.Group("/api/v1/tags")
	{
		tags.POST("", h.CreateTag)
		tags.GET("", h.ListTags)
		tags.GET("/:id", h.GetTag)
		tags.DELETE("/:id", h.DeleteTag)

		tags.POST("/:id/items", h.ApplyTag) // apply tag to an entity
		tags.GET("/:id/items", h.ListItems) // ?target_type=product&resolve=true
		tags.DELETE("/:id/items/:target_type/:target_id", h.RemoveTag)
	}

	// Reverse lookup: all tags on one entity
	e.GET("/api/v1/targets/:target_type/:target_id/tags", h.TagsFor)
}
