package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/storelab/storefront/cmd/storefront/models"
	"github.com/storelab/storefront/common/db"
	"github.com/storelab/storefront/common/tagging"
)

// CustomerRepository handles database operations for customers
type CustomerRepository struct {
	db *db.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *db.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// CustomerFilter narrows List results. Zero values mean "no constraint".
type CustomerFilter struct {
	EmailEndsWith string
	Membership    models.Membership
	Limit         int
	Offset        int
}

// Create inserts a new customer
func (r *CustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	query := `
		INSERT INTO customer (id, first_name, last_name, email, phone, birth_date, membership)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		customer.ID,
		customer.FirstName,
		customer.LastName,
		customer.Email,
		customer.Phone,
		customer.BirthDate,
		customer.Membership,
	)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	return nil
}

// GetByID retrieves a customer by id
func (r *CustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	query := `
		SELECT id, first_name, last_name, email, phone, birth_date, membership
		FROM customer
		WHERE id = $1
	`

	customer := &models.Customer{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&customer.ID,
		&customer.FirstName,
		&customer.LastName,
		&customer.Email,
		&customer.Phone,
		&customer.BirthDate,
		&customer.Membership,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &tagging.NotFoundError{Resource: "customer", ID: id.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	return customer, nil
}

// List retrieves customers matching the filter
func (r *CustomerRepository) List(ctx context.Context, filter CustomerFilter) ([]models.Customer, error) {
	var conditions []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.EmailEndsWith != "" {
		conditions = append(conditions, fmt.Sprintf("email ILIKE %s", arg("%"+filter.EmailEndsWith)))
	}
	if filter.Membership != "" {
		conditions = append(conditions, fmt.Sprintf("membership = %s", arg(filter.Membership)))
	}

	query := `
		SELECT id, first_name, last_name, email, phone, birth_date, membership
		FROM customer
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY last_name ASC, first_name ASC"

	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	query += fmt.Sprintf(" LIMIT %s OFFSET %s", arg(limit), arg(filter.Offset))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		var customer models.Customer
		err := rows.Scan(
			&customer.ID,
			&customer.FirstName,
			&customer.LastName,
			&customer.Email,
			&customer.Phone,
			&customer.BirthDate,
			&customer.Membership,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}

	return customers, nil
}

// Delete removes a customer; addresses cascade via foreign key
func (r *CustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM customer WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	if result.RowsAffected() == 0 {
		return &tagging.NotFoundError{Resource: "customer", ID: id.String()}
	}

	return nil
}

// AddAddress inserts a new address for a customer
func (r *CustomerRepository) AddAddress(ctx context.Context, address *models.Address) error {
	query := `
		INSERT INTO address (id, customer_id, street, city)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query,
		address.ID,
		address.CustomerID,
		address.Street,
		address.City,
	)
	if err != nil {
		return fmt.Errorf("failed to add address: %w", err)
	}

	return nil
}

// Addresses retrieves all addresses of a customer
func (r *CustomerRepository) Addresses(ctx context.Context, customerID uuid.UUID) ([]models.Address, error) {
	query := `
		SELECT id, customer_id, street, city
		FROM address
		WHERE customer_id = $1
		ORDER BY city ASC
	`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	defer rows.Close()

	var addresses []models.Address
	for rows.Next() {
		var address models.Address
		if err := rows.Scan(&address.ID, &address.CustomerID, &address.Street, &address.City); err != nil {
			return nil, fmt.Errorf("failed to scan address: %w", err)
		}
		addresses = append(addresses, address)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating addresses: %w", err)
	}

	return addresses, nil
}
