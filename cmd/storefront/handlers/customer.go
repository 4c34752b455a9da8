package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/storelab/storefront/cmd/storefront/container"
	"github.com/storelab/storefront/cmd/storefront/models"
	"github.com/storelab/storefront/cmd/storefront/repository"
	"github.com/storelab/storefront/cmd/storefront/service"
	"github.com/storelab/storefront/common/bootstrap"
)

// CustomerHandler handles customer and address requests
type CustomerHandler struct {
	components      *bootstrap.Components
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(c *container.Container) *CustomerHandler {
	return &CustomerHandler{
		components:      c.Components,
		customerService: c.CustomerService,
	}
}

// CreateCustomer creates a new customer
// POST /api/v1/customers
func (h *CustomerHandler) CreateCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	customer := &models.Customer{}
	if err := c.Bind(customer); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := h.customerService.CreateCustomer(ctx, customer); err != nil {
		return badRequest(c, err.Error())
	}

	return c.JSON(http.StatusCreated, customer)
}

// GetCustomer retrieves a customer by id
// GET /api/v1/customers/:id
func (h *CustomerHandler) GetCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "id must be a valid uuid")
	}

	customer, err := h.customerService.GetCustomer(ctx, id)
	if err != nil {
		return respondError(c, err, "failed to get customer")
	}

	return c.JSON(http.StatusOK, customer)
}

// ListCustomers lists customers matching the query parameters
// GET /api/v1/customers?email_ends_with=.com&membership=G
func (h *CustomerHandler) ListCustomers(c echo.Context) error {
	ctx := c.Request().Context()

	filter := repository.CustomerFilter{
		EmailEndsWith: c.QueryParam("email_ends_with"),
		Membership:    models.Membership(c.QueryParam("membership")),
		Limit:         queryInt(c, "limit", 100),
		Offset:        queryInt(c, "offset", 0),
	}

	customers, err := h.customerService.ListCustomers(ctx, filter)
	if err != nil {
		h.components.Logger.Error("failed to list customers", "error", err)
		return badRequest(c, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"customers": customers,
		"count":     len(customers),
	})
}

// DeleteCustomer deletes a customer and their addresses
// DELETE /api/v1/customers/:id
func (h *CustomerHandler) DeleteCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "id must be a valid uuid")
	}

	if err := h.customerService.DeleteCustomer(ctx, id); err != nil {
		return respondError(c, err, "failed to delete customer")
	}

	return c.NoContent(http.StatusNoContent)
}

// AddAddress attaches an address to a customer
// POST /api/v1/customers/:id/addresses
func (h *CustomerHandler) AddAddress(c echo.Context) error {
	ctx := c.Request().Context()

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "id must be a valid uuid")
	}

	address := &models.Address{}
	if err := c.Bind(address); err != nil {
		return badRequest(c, "invalid request body")
	}
	address.CustomerID = customerID

	if err := h.customerService.AddAddress(ctx, address); err != nil {
		return respondError(c, err, "failed to add address")
	}

	return c.JSON(http.StatusCreated, address)
}

// ListAddresses lists all addresses of a customer
// GET /api/v1/customers/:id/addresses
func (h *CustomerHandler) ListAddresses(c echo.Context) error {
	ctx := c.Request().Context()

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "id must be a valid uuid")
	}

	addresses, err := h.customerService.Addresses(ctx, customerID)
	if err != nil {
		return respondError(c, err, "failed to list addresses")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"addresses": addresses,
	})
}
