package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/storelab/storefront/cmd/storefront/container"
	"github.com/storelab/storefront/cmd/storefront/models"
	"github.com/storelab/storefront/cmd/storefront/repository"
	"github.com/storelab/storefront/cmd/storefront/service"
	"github.com/storelab/storefront/common/bootstrap"
)

// ProductHandler handles product and collection requests
type ProductHandler struct {
	components     *bootstrap.Components
	catalogService *service.CatalogService
}

// NewProductHandler creates a new product handler
func NewProductHandler(c *container.Container) *ProductHandler {
	return &ProductHandler{
		components:     c.Components,
		catalogService: c.CatalogService,
	}
}

// CreateProduct creates a new product
// POST /api/v1/products
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	product := &models.Product{}
	if err := c.Bind(product); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := h.catalogService.CreateProduct(ctx, product); err != nil {
		return badRequest(c, err.Error())
	}

	return c.JSON(http.StatusCreated, product)
}

// GetProduct retrieves a product by id
// GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "id must be a valid uuid")
	}

	product, err := h.catalogService.GetProduct(ctx, id)
	if err != nil {
		return respondError(c, err, "failed to get product")
	}

	return c.JSON(http.StatusOK, product)
}

// ListProducts lists products. Structured query parameters translate to
// SQL; the optional filter parameter is an expression evaluated against
// each row, e.g. filter=inventory < 10 || unit_price < 20.0
// GET /api/v1/products
func (h *ProductHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	filter := repository.ProductFilter{
		TitleContains: c.QueryParam("title_contains"),
		OrderBy:       c.QueryParam("order_by"),
		Limit:         queryInt(c, "limit", 100),
		Offset:        queryInt(c, "offset", 0),
	}

	if v := c.QueryParam("price_min"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return badRequest(c, "price_min must be a number")
		}
		filter.PriceMin = &f
	}
	if v := c.QueryParam("price_max"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return badRequest(c, "price_max must be a number")
		}
		filter.PriceMax = &f
	}
	if v := c.QueryParam("inventory_lt"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return badRequest(c, "inventory_lt must be an integer")
		}
		filter.InventoryLT = &n
	}
	if v := c.QueryParam("collection_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return badRequest(c, "collection_id must be a valid uuid")
		}
		filter.CollectionID = &id
	}

	products, err := h.catalogService.ListProducts(ctx, filter, c.QueryParam("filter"))
	if err != nil {
		h.components.Logger.Error("failed to list products", "error", err)
		return respondError(c, err, "failed to list products")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": products,
		"count":    len(products),
	})
}

// PatchProduct applies an RFC 7386 merge patch to a product
// PATCH /api/v1/products/:id
func (h *ProductHandler) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "id must be a valid uuid")
	}

	patch, err := io.ReadAll(c.Request().Body)
	if err != nil || len(patch) == 0 {
		return badRequest(c, "patch body is required")
	}

	product, err := h.catalogService.PatchProduct(ctx, id, patch)
	if err != nil {
		return respondError(c, err, "failed to patch product")
	}

	return c.JSON(http.StatusOK, product)
}

// DeleteProduct deletes a product
// DELETE /api/v1/products/:id
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "id must be a valid uuid")
	}

	if err := h.catalogService.DeleteProduct(ctx, id); err != nil {
		return respondError(c, err, "failed to delete product")
	}

	return c.NoContent(http.StatusNoContent)
}

// ProductStats returns catalog-wide aggregates
// GET /api/v1/products/stats
func (h *ProductHandler) ProductStats(c echo.Context) error {
	ctx := c.Request().Context()

	stats, err := h.catalogService.ProductStats(ctx)
	if err != nil {
		h.components.Logger.Error("failed to compute product stats", "error", err)
		return respondError(c, err, "failed to compute product stats")
	}

	return c.JSON(http.StatusOK, stats)
}

// CreateCollection creates a new collection
// POST /api/v1/collections
func (h *ProductHandler) CreateCollection(c echo.Context) error {
	ctx := c.Request().Context()

	collection := &models.Collection{}
	if err := c.Bind(collection); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := h.catalogService.CreateCollection(ctx, collection); err != nil {
		return badRequest(c, err.Error())
	}

	return c.JSON(http.StatusCreated, collection)
}

// GetCollection retrieves a collection by id
// GET /api/v1/collections/:id
func (h *ProductHandler) GetCollection(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "id must be a valid uuid")
	}

	collection, err := h.catalogService.GetCollection(ctx, id)
	if err != nil {
		return respondError(c, err, "failed to get collection")
	}

	return c.JSON(http.StatusOK, collection)
}

// ListCollections lists all collections
// GET /api/v1/collections
func (h *ProductHandler) ListCollections(c echo.Context) error {
	ctx := c.Request().Context()

	collections, err := h.catalogService.ListCollections(ctx)
	if err != nil {
		h.components.Logger.Error("failed to list collections", "error", err)
		return respondError(c, err, "failed to list collections")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"collections": collections,
	})
}

// queryInt parses an integer query parameter with a default
func queryInt(c echo.Context, name string, defaultValue int) int {
	if v := c.QueryParam(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}
