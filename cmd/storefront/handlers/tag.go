package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/storelab/storefront/cmd/storefront/container"
	"github.com/storelab/storefront/cmd/storefront/service"
	"github.com/storelab/storefront/common/bootstrap"
)

// TagHandler handles tag lifecycle and tag association requests
type TagHandler struct {
	components     *bootstrap.Components
	taggingService *service.TaggingService
}

// NewTagHandler creates a new tag handler
func NewTagHandler(c *container.Container) *TagHandler {
	return &TagHandler{
		components:     c.Components,
		taggingService: c.TaggingService,
	}
}

// CreateTag creates a new tag
// POST /api/v1/tags
func (h *TagHandler) CreateTag(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Label string `json:"label"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	tag, err := h.taggingService.CreateTag(ctx, req.Label)
	if err != nil {
		return badRequest(c, err.Error())
	}

	return c.JSON(http.StatusCreated, tag)
}

// ListTags lists all tags
// GET /api/v1/tags
func (h *TagHandler) ListTags(c echo.Context) error {
	ctx := c.Request().Context()

	tags, err := h.taggingService.ListTags(ctx)
	if err != nil {
		h.components.Logger.Error("failed to list tags", "error", err)
		return respondError(c, err, "failed to list tags")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"tags": tags,
	})
}

// GetTag retrieves a tag by id
// GET /api/v1/tags/:id
func (h *TagHandler) GetTag(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "id must be a valid uuid")
	}

	tag, err := h.taggingService.GetTag(ctx, id)
	if err != nil {
		return respondError(c, err, "failed to get tag")
	}

	return c.JSON(http.StatusOK, tag)
}

// DeleteTag deletes a tag and, via cascade, all of its associations
// DELETE /api/v1/tags/:id
func (h *TagHandler) DeleteTag(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "id must be a valid uuid")
	}

	if err := h.taggingService.DeleteTag(ctx, id); err != nil {
		return respondError(c, err, "failed to delete tag")
	}

	return c.NoContent(http.StatusNoContent)
}

// ApplyTag associates a tag with an entity
// POST /api/v1/tags/:id/items
func (h *TagHandler) ApplyTag(c echo.Context) error {
	ctx := c.Request().Context()

	tagID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "id must be a valid uuid")
	}

	var req struct {
		TargetType string    `json:"target_type"`
		TargetID   uuid.UUID `json:"target_id"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.TargetType == "" || req.TargetID == uuid.Nil {
		return badRequest(c, "target_type and target_id are required")
	}

	item, err := h.taggingService.ApplyTag(ctx, tagID, req.TargetType, req.TargetID)
	if err != nil {
		return respondError(c, err, "failed to apply tag")
	}

	return c.JSON(http.StatusCreated, item)
}

// RemoveTag removes an association. Removing an absent association
// succeeds and reports removed: false.
// DELETE /api/v1/tags/:id/items/:target_type/:target_id
func (h *TagHandler) RemoveTag(c echo.Context) error {
	ctx := c.Request().Context()

	tagID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "id must be a valid uuid")
	}
	targetID, err := uuid.Parse(c.Param("target_id"))
	if err != nil {
		return badRequest(c, "target_id must be a valid uuid")
	}
	targetType := c.Param("target_type")

	removed, err := h.taggingService.RemoveTag(ctx, tagID, targetType, targetID)
	if err != nil {
		return respondError(c, err, "failed to remove tag")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"removed": removed,
	})
}

// ListItems lists the entities carrying a tag. With resolve=true each
// item is loaded through its resolver; otherwise only ids are returned.
// GET /api/v1/tags/:id/items?target_type=product&resolve=true
func (h *TagHandler) ListItems(c echo.Context) error {
	ctx := c.Request().Context()

	tagID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "id must be a valid uuid")
	}

	targetType := c.QueryParam("target_type")
	if targetType == "" {
		return badRequest(c, "target_type query parameter is required")
	}

	if c.QueryParam("resolve") == "true" {
		items, err := h.taggingService.ResolveItems(ctx, tagID, targetType)
		if err != nil {
			return respondError(c, err, "failed to resolve tagged items")
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"target_type": targetType,
			"items":       items,
		})
	}

	ids, err := h.taggingService.ItemsFor(ctx, tagID, targetType)
	if err != nil {
		return respondError(c, err, "failed to list tagged items")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"target_type": targetType,
		"target_ids":  ids,
	})
}

// TagsFor lists all tags applied to one entity
// GET /api/v1/targets/:target_type/:target_id/tags
func (h *TagHandler) TagsFor(c echo.Context) error {
	ctx := c.Request().Context()

	targetID, err := uuid.Parse(c.Param("target_id"))
	if err != nil {
		return badRequest(c, "target_id must be a valid uuid")
	}
	targetType := c.Param("target_type")

	tags, err := h.taggingService.TagsFor(ctx, targetType, targetID)
	if err != nil {
		return respondError(c, err, "failed to list tags")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"target_type": targetType,
		"target_id":   targetID,
		"tags":        tags,
	})
}
