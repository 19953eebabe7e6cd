package item

import (
	"context"

	"factura/internal/core/id"
	"factura/internal/domain"
	"factura/pkg/logger"
)

// Service provides business logic for the Item catalog.
type Service struct {
	repo Repository
}

// NewService creates a new Item service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new item.
func (s *Service) Create(ctx context.Context, i *Item) error {
	if err := i.Validate(ctx); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, i); err != nil {
		return err
	}

	logger.Info(ctx, "item created", "id", i.ID, "name", i.Name, "stock", i.Stock)
	return nil
}

// GetByID retrieves an item within the owner's data.
func (s *Service) GetByID(ctx context.Context, ownerID, itemID id.ID) (*Item, error) {
	return s.repo.GetByID(ctx, ownerID, itemID)
}

// Update validates and persists item changes. The stock field is not
// written by catalog updates; only the ledger moves stock.
func (s *Service) Update(ctx context.Context, ownerID id.ID, i *Item) error {
	if err := i.Validate(ctx); err != nil {
		return err
	}
	return s.repo.Update(ctx, ownerID, i)
}

// Delete removes an item. Existing invoice lines keep their snapshots.
func (s *Service) Delete(ctx context.Context, ownerID, itemID id.ID) error {
	return s.repo.Delete(ctx, ownerID, itemID)
}

// List retrieves the owner's items.
func (s *Service) List(ctx context.Context, ownerID id.ID, filter domain.ListFilter) (domain.ListResult[*Item], error) {
	return s.repo.List(ctx, ownerID, filter)
}
