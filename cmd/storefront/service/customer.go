package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/storelab/storefront/cmd/storefront/models"
	"github.com/storelab/storefront/cmd/storefront/repository"
	"github.com/storelab/storefront/common/logger"
)

// CustomerService handles customer operations
type CustomerService struct {
	repo *repository.CustomerRepository
	log  *logger.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(repo *repository.CustomerRepository, log *logger.Logger) *CustomerService {
	return &CustomerService{
		repo: repo,
		log:  log,
	}
}

// CreateCustomer inserts a new customer. Membership defaults to bronze.
func (s *CustomerService) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	if customer.Email == "" || !strings.Contains(customer.Email, "@") {
		return fmt.Errorf("valid email is required")
	}
	if customer.Membership == "" {
		customer.Membership = models.MembershipBronze
	}
	if !customer.Membership.Valid() {
		return fmt.Errorf("unknown membership code: %s", customer.Membership)
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		return err
	}

	s.log.Info("created customer", "customer_id", customer.ID, "email", customer.Email)
	return nil
}

// GetCustomer retrieves a customer by id
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

// ListCustomers retrieves customers matching the filter
func (s *CustomerService) ListCustomers(ctx context.Context, filter repository.CustomerFilter) ([]models.Customer, error) {
	if filter.Membership != "" && !filter.Membership.Valid() {
		return nil, fmt.Errorf("unknown membership code: %s", filter.Membership)
	}

	return s.repo.List(ctx, filter)
}

// DeleteCustomer removes a customer and, via cascade, their addresses
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("deleted customer", "customer_id", id)
	return nil
}

// AddAddress attaches an address to a customer
func (s *CustomerService) AddAddress(ctx context.Context, address *models.Address) error {
	if address.ID == uuid.Nil {
		address.ID = uuid.New()
	}
	if address.Street == "" || address.City == "" {
		return fmt.Errorf("street and city are required")
	}

	// Surface a clean not-found instead of a foreign key violation
	if _, err := s.repo.GetByID(ctx, address.CustomerID); err != nil {
		return err
	}

	return s.repo.AddAddress(ctx, address)
}

// Addresses retrieves all addresses of a customer
func (s *CustomerService) Addresses(ctx context.Context, customerID uuid.UUID) ([]models.Address, error) {
	return s.repo.Addresses(ctx, customerID)
}
