package customer

import (
	"context"

	"factura/internal/core/id"
	"factura/internal/domain"
	"factura/pkg/logger"
)

// Service provides business logic for the Customer catalog.
type Service struct {
	repo Repository
}

// NewService creates a new Customer service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new customer.
func (s *Service) Create(ctx context.Context, c *Customer) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return err
	}

	logger.Info(ctx, "customer created", "id", c.ID, "name", c.Name)
	return nil
}

// GetByID retrieves a customer within the owner's data.
func (s *Service) GetByID(ctx context.Context, ownerID, customerID id.ID) (*Customer, error) {
	return s.repo.GetByID(ctx, ownerID, customerID)
}

// Update validates and persists customer changes.
func (s *Service) Update(ctx context.Context, ownerID id.ID, c *Customer) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}
	return s.repo.Update(ctx, ownerID, c)
}

// Delete removes a customer. Existing invoices keep their reference;
// reports substitute a placeholder for the missing record.
func (s *Service) Delete(ctx context.Context, ownerID, customerID id.ID) error {
	return s.repo.Delete(ctx, ownerID, customerID)
}

// List retrieves the owner's customers.
func (s *Service) List(ctx context.Context, ownerID id.ID, filter domain.ListFilter) (domain.ListResult[*Customer], error) {
	return s.repo.List(ctx, ownerID, filter)
}
