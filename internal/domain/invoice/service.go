package invoice

import (
	"context"
	"time"

	"factura/internal/core/apperror"
	"factura/internal/core/entity"
	"factura/internal/core/id"
	"factura/internal/core/tx"
	"factura/internal/core/types"
	"factura/internal/domain"
	"factura/internal/domain/catalogs/customer"
	"factura/internal/domain/catalogs/item"
	"factura/internal/domain/pricing"
	"factura/pkg/logger"
	"factura/pkg/numerator"
)

// CustomerSource resolves customers for validation.
type CustomerSource interface {
	GetByID(ctx context.Context, ownerID, customerID id.ID) (*customer.Customer, error)
}

// ItemSource resolves items for validation and snapshots.
type ItemSource interface {
	GetByID(ctx context.Context, ownerID, itemID id.ID) (*item.Item, error)
}

// StockLedger moves stock while a document is being posted.
type StockLedger interface {
	Reserve(ctx context.Context, ownerID, itemID id.ID, qty int64) error
	Release(ctx context.Context, ownerID, itemID id.ID, qty int64) error
}

// NumberSource issues document numbers within a scope.
type NumberSource interface {
	Next(ctx context.Context, cfg numerator.Config, scope string, period time.Time) (string, error)
}

// Service implements the invoice lifecycle. Build and Revise each run
// inside a single serializable transaction: every stock movement, the
// number assignment and the document write commit together or not at
// all.
type Service struct {
	txm       tx.Manager
	repo      Repository
	customers CustomerSource
	items     ItemSource
	ledger    StockLedger
	numbers   NumberSource
	numberCfg numerator.Config
	now       func() time.Time
}

// NewService creates a new invoice service.
func NewService(
	txm tx.Manager,
	repo Repository,
	customers CustomerSource,
	items ItemSource,
	ledger StockLedger,
	numbers NumberSource,
) *Service {
	return &Service{
		txm:       txm,
		repo:      repo,
		customers: customers,
		items:     items,
		ledger:    ledger,
		numbers:   numbers,
		numberCfg: numerator.DefaultConfig("INV"),
		now:       time.Now,
	}
}

// Build validates the request, reserves stock for every line and
// persists a new invoice. Validation fails fast in a fixed order:
// customer, non-empty lines, quantities, item existence, stock levels.
// Any failure rolls the whole transaction back, so a rejected invoice
// leaves no stock movement behind.
func (s *Service) Build(ctx context.Context, ownerID, customerID id.ID, inputs []LineInput) (*Invoice, error) {
	var inv *Invoice

	err := s.txm.RunSerializable(ctx, func(ctx context.Context) error {
		items, err := s.validate(ctx, ownerID, customerID, inputs)
		if err != nil {
			return err
		}

		lines, subTotal, err := s.post(ctx, ownerID, inputs, items)
		if err != nil {
			return err
		}

		// Numbers are scoped per owner so builds of different owners
		// never contend on the same sequence row.
		number, err := s.numbers.Next(ctx, s.numberCfg, ownerID.String(), s.now())
		if err != nil {
			return err
		}

		inv = &Invoice{
			BaseEntity:  entity.NewBaseEntity(),
			Owned:       entity.Owned{OwnerID: ownerID},
			Number:      number,
			CustomerID:  customerID,
			InvoiceDate: s.now(),
			SubTotal:    subTotal,
			GrandTotal:  pricing.GrandTotal(subTotal),
			Lines:       lines,
		}
		for _, line := range inv.Lines {
			line.InvoiceID = inv.ID
		}

		return s.repo.Create(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "invoice created",
		"id", inv.ID, "number", inv.Number, "grand_total", inv.GrandTotal)
	return inv, nil
}

// Revise replaces the customer and lines of an existing invoice. Old
// lines are released and the new set is validated and reserved inside
// the same transaction, so a failed revision leaves the original
// invoice and all stock balances exactly as they were. The document id
// and number are preserved.
func (s *Service) Revise(ctx context.Context, ownerID, invoiceID, customerID id.ID, inputs []LineInput) (*Invoice, error) {
	var inv *Invoice

	err := s.txm.RunSerializable(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetByID(ctx, ownerID, invoiceID)
		if err != nil {
			return err
		}

		for _, line := range existing.Lines {
			if err := s.ledger.Release(ctx, ownerID, line.ItemID, line.Quantity); err != nil {
				return err
			}
		}

		items, err := s.validate(ctx, ownerID, customerID, inputs)
		if err != nil {
			return err
		}

		lines, subTotal, err := s.post(ctx, ownerID, inputs, items)
		if err != nil {
			return err
		}
		for _, line := range lines {
			line.InvoiceID = existing.ID
		}

		existing.CustomerID = customerID
		existing.SubTotal = subTotal
		existing.GrandTotal = pricing.GrandTotal(subTotal)
		existing.Lines = lines
		existing.Touch()

		inv = existing
		return s.repo.Update(ctx, ownerID, existing)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "invoice revised",
		"id", inv.ID, "number", inv.Number, "grand_total", inv.GrandTotal)
	return inv, nil
}

// GetByID loads an invoice with its lines.
func (s *Service) GetByID(ctx context.Context, ownerID, invoiceID id.ID) (*Invoice, error) {
	return s.repo.GetByID(ctx, ownerID, invoiceID)
}

// List loads the owner's invoices.
func (s *Service) List(ctx context.Context, ownerID id.ID, filter domain.ListFilter) (domain.ListResult[*Invoice], error) {
	return s.repo.List(ctx, ownerID, filter)
}

// validate enforces the build preconditions in order: customer exists,
// line list is non-empty, every quantity is at least one, every item
// exists, every item has enough stock. The first violation wins.
// Returns the loaded items keyed by position for snapshotting.
func (s *Service) validate(ctx context.Context, ownerID, customerID id.ID, inputs []LineInput) ([]*item.Item, error) {
	if _, err := s.customers.GetByID(ctx, ownerID, customerID); err != nil {
		return nil, err
	}

	if len(inputs) == 0 {
		return nil, apperror.NewValidation("invoice must contain at least one line")
	}

	for i, in := range inputs {
		if in.Quantity < 1 {
			return nil, apperror.NewValidation("quantity must be at least 1").
				WithDetail("line", i).
				WithDetail("itemId", in.ItemID)
		}
	}

	items := make([]*item.Item, len(inputs))
	for i, in := range inputs {
		it, err := s.items.GetByID(ctx, ownerID, in.ItemID)
		if err != nil {
			return nil, err
		}
		items[i] = it
	}

	for i, in := range inputs {
		if items[i].Stock < in.Quantity {
			return nil, apperror.NewInsufficientStock(
				in.ItemID.String(), items[i].Name, in.Quantity, items[i].Stock)
		}
	}

	return items, nil
}

// post reserves stock for every line and builds the line records with
// name and price snapshots. Must run after validate in the same
// transaction; the ledger's conditional decrement remains the final
// guard against concurrent writers.
func (s *Service) post(ctx context.Context, ownerID id.ID, inputs []LineInput, items []*item.Item) ([]*Line, types.Money, error) {
	lines := make([]*Line, 0, len(inputs))
	lineTotals := make([]types.Money, 0, len(inputs))

	for i, in := range inputs {
		if err := s.ledger.Reserve(ctx, ownerID, in.ItemID, in.Quantity); err != nil {
			return nil, types.ZeroMoney(), err
		}

		it := items[i]
		total := pricing.LineTotal(it.Price, in.Quantity)
		lines = append(lines, &Line{
			ID:        id.New(),
			LineNo:    i + 1,
			ItemID:    in.ItemID,
			ItemName:  it.Name,
			UnitPrice: it.Price,
			Quantity:  in.Quantity,
			Total:     total,
		})
		lineTotals = append(lineTotals, total)
	}

	return lines, pricing.SubTotal(lineTotals), nil
}
