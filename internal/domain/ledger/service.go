package ledger

import (
	"context"

	"factura/internal/core/apperror"
	"factura/internal/core/id"
	"factura/pkg/logger"
)

// Service exposes the two stock movements the invoice engine needs.
// Both operations assume the caller runs them inside a transaction;
// the service itself never opens one.
type Service struct {
	repo Repository
}

// NewService creates a new ledger service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Reserve decrements the item's stock by qty. The decrement is
// conditional: it succeeds only when the remaining balance would stay
// non-negative. On a miss the row is re-read to tell an absent item
// (NotFound) from a short one (InsufficientStock with the available
// quantity).
func (s *Service) Reserve(ctx context.Context, ownerID, itemID id.ID, qty int64) error {
	if qty < 1 {
		return apperror.NewValidation("quantity must be at least 1").
			WithDetail("itemId", itemID).
			WithDetail("quantity", qty)
	}

	ok, err := s.repo.DecrementIfAvailable(ctx, ownerID, itemID, qty)
	if err != nil {
		return err
	}
	if ok {
		logger.Debug(ctx, "stock reserved", "item_id", itemID, "qty", qty)
		return nil
	}

	view, err := s.repo.GetStock(ctx, ownerID, itemID)
	if err != nil {
		return err
	}
	if view == nil {
		return apperror.NewNotFound("item", itemID)
	}
	return apperror.NewInsufficientStock(itemID.String(), view.Name, qty, view.Stock)
}

// Release increments the item's stock by qty. Releasing against an
// item that was deleted in the meantime is a no-op: the stock it
// tracked is gone with the item.
func (s *Service) Release(ctx context.Context, ownerID, itemID id.ID, qty int64) error {
	if qty < 1 {
		return apperror.NewValidation("quantity must be at least 1").
			WithDetail("itemId", itemID).
			WithDetail("quantity", qty)
	}

	ok, err := s.repo.Increment(ctx, ownerID, itemID, qty)
	if err != nil {
		return err
	}
	if !ok {
		logger.Warn(ctx, "release skipped, item gone", "item_id", itemID, "qty", qty)
		return nil
	}

	logger.Debug(ctx, "stock released", "item_id", itemID, "qty", qty)
	return nil
}
