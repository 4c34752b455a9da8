package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/storelab/storefront/common/tagging"
)

// respondError maps domain errors onto HTTP status codes: missing
// resources are 404, unregistered target types are 400, everything else
// is a 500 with a generic message.
func respondError(c echo.Context, err error, fallback string) error {
	if tagging.IsNotFound(err) {
		return c.JSON(http.StatusNotFound, map[string]interface{}{
			"error": err.Error(),
		})
	}

	if tagging.IsConfiguration(err) {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"error": fallback,
	})
}

// badRequest writes a 400 with a single error message
func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]interface{}{
		"error": msg,
	})
}
