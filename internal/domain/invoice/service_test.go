package invoice

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"factura/internal/core/apperror"
	"factura/internal/core/id"
	"factura/internal/core/types"
	"factura/internal/domain"
	"factura/internal/domain/catalogs/customer"
	"factura/internal/domain/catalogs/item"
	"factura/internal/domain/ledger"
	"factura/pkg/numerator"
)

// world is a shared in-memory store behind all fake repositories so a
// test observes build/revise effects across customers, items and
// invoices together.
type world struct {
	mu        sync.Mutex
	customers map[id.ID]*customer.Customer
	items     map[id.ID]*item.Item
	invoices  map[id.ID]*Invoice
}

func newWorld() *world {
	return &world{
		customers: make(map[id.ID]*customer.Customer),
		items:     make(map[id.ID]*item.Item),
		invoices:  make(map[id.ID]*Invoice),
	}
}

func copyItemRec(it *item.Item) *item.Item {
	c := *it
	return &c
}

func copyInvoiceRec(inv *Invoice) *Invoice {
	c := *inv
	c.Lines = make([]*Line, len(inv.Lines))
	for i, l := range inv.Lines {
		cl := *l
		c.Lines[i] = &cl
	}
	return &c
}

type worldSnapshot struct {
	items    map[id.ID]*item.Item
	invoices map[id.ID]*Invoice
}

func (w *world) snapshot() worldSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	s := worldSnapshot{
		items:    make(map[id.ID]*item.Item, len(w.items)),
		invoices: make(map[id.ID]*Invoice, len(w.invoices)),
	}
	for k, v := range w.items {
		s.items[k] = copyItemRec(v)
	}
	for k, v := range w.invoices {
		s.invoices[k] = copyInvoiceRec(v)
	}
	return s
}

func (w *world) restore(s worldSnapshot) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.items = s.items
	w.invoices = s.invoices
}

// fakeTxManager serializes transactions and restores the world on
// error, mirroring a database rollback.
type fakeTxManager struct {
	txMu sync.Mutex
	w    *world
}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(context.Context) error) error {
	return m.RunSerializable(ctx, fn)
}

func (m *fakeTxManager) RunSerializable(ctx context.Context, fn func(context.Context) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	snap := m.w.snapshot()
	if err := fn(ctx); err != nil {
		m.w.restore(snap)
		return err
	}
	return nil
}

type fakeCustomerSource struct{ w *world }

func (s *fakeCustomerSource) GetByID(_ context.Context, ownerID, customerID id.ID) (*customer.Customer, error) {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	c, ok := s.w.customers[customerID]
	if !ok || c.OwnerID != ownerID {
		return nil, apperror.NewNotFound("customer", customerID)
	}
	return c, nil
}

type fakeItemSource struct{ w *world }

func (s *fakeItemSource) GetByID(_ context.Context, ownerID, itemID id.ID) (*item.Item, error) {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	it, ok := s.w.items[itemID]
	if !ok || it.OwnerID != ownerID {
		return nil, apperror.NewNotFound("item", itemID)
	}
	return copyItemRec(it), nil
}

type fakeLedgerRepo struct{ w *world }

func (r *fakeLedgerRepo) DecrementIfAvailable(_ context.Context, ownerID, itemID id.ID, qty int64) (bool, error) {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	it, ok := r.w.items[itemID]
	if !ok || it.OwnerID != ownerID || it.Stock < qty {
		return false, nil
	}
	it.Stock -= qty
	return true, nil
}

func (r *fakeLedgerRepo) Increment(_ context.Context, ownerID, itemID id.ID, qty int64) (bool, error) {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	it, ok := r.w.items[itemID]
	if !ok || it.OwnerID != ownerID {
		return false, nil
	}
	it.Stock += qty
	return true, nil
}

func (r *fakeLedgerRepo) GetStock(_ context.Context, ownerID, itemID id.ID) (*ledger.StockView, error) {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	it, ok := r.w.items[itemID]
	if !ok || it.OwnerID != ownerID {
		return nil, nil
	}
	return &ledger.StockView{ItemID: itemID, Name: it.Name, Stock: it.Stock}, nil
}

type fakeInvoiceRepo struct{ w *world }

func (r *fakeInvoiceRepo) Create(_ context.Context, inv *Invoice) error {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	r.w.invoices[inv.ID] = copyInvoiceRec(inv)
	return nil
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, ownerID, invoiceID id.ID) (*Invoice, error) {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	inv, ok := r.w.invoices[invoiceID]
	if !ok || inv.OwnerID != ownerID {
		return nil, apperror.NewNotFound("invoice", invoiceID)
	}
	return copyInvoiceRec(inv), nil
}

func (r *fakeInvoiceRepo) Update(_ context.Context, ownerID id.ID, inv *Invoice) error {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	old, ok := r.w.invoices[inv.ID]
	if !ok || old.OwnerID != ownerID {
		return apperror.NewNotFound("invoice", inv.ID)
	}
	// Same predicate as the SQL update: WHERE version = <caller version>.
	if old.Version != inv.Version {
		return apperror.NewConflict("invoice was modified concurrently").
			WithDetail("id", inv.ID)
	}
	inv.SetVersion(old.Version + 1)
	r.w.invoices[inv.ID] = copyInvoiceRec(inv)
	return nil
}

func (r *fakeInvoiceRepo) List(_ context.Context, ownerID id.ID, filter domain.ListFilter) (domain.ListResult[*Invoice], error) {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	res := domain.ListResult[*Invoice]{Limit: filter.Limit, Offset: filter.Offset}
	for _, inv := range r.w.invoices {
		if inv.OwnerID == ownerID {
			res.Items = append(res.Items, copyInvoiceRec(inv))
			res.TotalCount++
		}
	}
	return res, nil
}

type fakeNumberSource struct {
	mu  sync.Mutex
	seq map[string]int64
}

func (s *fakeNumberSource) Next(_ context.Context, cfg numerator.Config, scope string, _ time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seq == nil {
		s.seq = make(map[string]int64)
	}
	s.seq[scope]++
	return fmt.Sprintf("%s-2026-%05d", cfg.Prefix, s.seq[scope]), nil
}

type fixture struct {
	svc   *Service
	w     *world
	owner id.ID
	cust  *customer.Customer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	w := newWorld()
	owner := id.New()
	cust := customer.New(owner, "Acme Traders")
	w.customers[cust.ID] = cust

	svc := NewService(
		&fakeTxManager{w: w},
		&fakeInvoiceRepo{w: w},
		&fakeCustomerSource{w: w},
		&fakeItemSource{w: w},
		ledger.NewService(&fakeLedgerRepo{w: w}),
		&fakeNumberSource{},
	)
	return &fixture{svc: svc, w: w, owner: owner, cust: cust}
}

func (f *fixture) addItem(name, price string, stock int64) *item.Item {
	it := item.New(f.owner, name, types.MustMoney(price), stock)
	f.w.mu.Lock()
	defer f.w.mu.Unlock()
	f.w.items[it.ID] = it
	return it
}

func (f *fixture) stockOf(itemID id.ID) int64 {
	f.w.mu.Lock()
	defer f.w.mu.Unlock()
	return f.w.items[itemID].Stock
}

func TestBuild_TotalsStockAndSnapshots(t *testing.T) {
	f := newFixture(t)
	itemA := f.addItem("Item A", "100", 10)
	itemB := f.addItem("Item B", "50", 5)

	inv, err := f.svc.Build(context.Background(), f.owner, f.cust.ID, []LineInput{
		{ItemID: itemA.ID, Quantity: 2},
		{ItemID: itemB.ID, Quantity: 3},
	})

	require.NoError(t, err)
	require.Len(t, inv.Lines, 2)

	assert.True(t, types.MustMoney("200").Equal(inv.Lines[0].Total))
	assert.True(t, types.MustMoney("150").Equal(inv.Lines[1].Total))
	assert.True(t, types.MustMoney("350").Equal(inv.SubTotal))
	assert.True(t, inv.SubTotal.Equal(inv.GrandTotal))

	assert.Equal(t, int64(8), f.stockOf(itemA.ID))
	assert.Equal(t, int64(2), f.stockOf(itemB.ID))

	assert.Equal(t, "Item A", inv.Lines[0].ItemName)
	assert.True(t, types.MustMoney("100").Equal(inv.Lines[0].UnitPrice))
	assert.Equal(t, 1, inv.Lines[0].LineNo)
	assert.Equal(t, 2, inv.Lines[1].LineNo)
	assert.Equal(t, "INV-2026-00001", inv.Number)
}

func TestBuild_CustomerNotFound(t *testing.T) {
	f := newFixture(t)

	// Customer check comes before the empty-lines check.
	_, err := f.svc.Build(context.Background(), f.owner, id.New(), nil)

	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestBuild_ForeignCustomerIsNotFound(t *testing.T) {
	f := newFixture(t)
	stranger := customer.New(id.New(), "Someone Else")
	f.w.customers[stranger.ID] = stranger

	_, err := f.svc.Build(context.Background(), f.owner, stranger.ID, nil)

	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestBuild_EmptyLines(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Build(context.Background(), f.owner, f.cust.ID, []LineInput{})

	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestBuild_ZeroQuantity(t *testing.T) {
	f := newFixture(t)
	it := f.addItem("Widget", "10", 5)

	_, err := f.svc.Build(context.Background(), f.owner, f.cust.ID, []LineInput{
		{ItemID: it.ID, Quantity: 0},
	})

	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Equal(t, int64(5), f.stockOf(it.ID))
}

func TestBuild_ItemNotFound(t *testing.T) {
	f := newFixture(t)
	it := f.addItem("Widget", "10", 5)

	_, err := f.svc.Build(context.Background(), f.owner, f.cust.ID, []LineInput{
		{ItemID: it.ID, Quantity: 1},
		{ItemID: id.New(), Quantity: 1},
	})

	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Equal(t, int64(5), f.stockOf(it.ID))
	assert.Empty(t, f.w.invoices)
}

func TestBuild_InsufficientStockLeavesAllStockUntouched(t *testing.T) {
	f := newFixture(t)
	itemA := f.addItem("Item A", "100", 10)
	itemB := f.addItem("Item B", "50", 5)

	_, err := f.svc.Build(context.Background(), f.owner, f.cust.ID, []LineInput{
		{ItemID: itemA.ID, Quantity: 2},
		{ItemID: itemB.ID, Quantity: 6},
	})

	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))
	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, int64(5), appErr.Details["available"])
	assert.Equal(t, "Item B", appErr.Details["item_name"])

	assert.Equal(t, int64(10), f.stockOf(itemA.ID))
	assert.Equal(t, int64(5), f.stockOf(itemB.ID))
	assert.Empty(t, f.w.invoices)
}

func TestBuild_SnapshotsSurviveCatalogEdits(t *testing.T) {
	f := newFixture(t)
	it := f.addItem("Widget", "25", 10)

	inv, err := f.svc.Build(context.Background(), f.owner, f.cust.ID, []LineInput{
		{ItemID: it.ID, Quantity: 2},
	})
	require.NoError(t, err)

	f.w.mu.Lock()
	f.w.items[it.ID].Name = "Renamed Widget"
	f.w.items[it.ID].Price = types.MustMoney("99")
	f.w.mu.Unlock()

	reloaded, err := f.svc.GetByID(context.Background(), f.owner, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", reloaded.Lines[0].ItemName)
	assert.True(t, types.MustMoney("25").Equal(reloaded.Lines[0].UnitPrice))
	assert.True(t, types.MustMoney("50").Equal(reloaded.Lines[0].Total))
}

func TestBuild_SequentialNumbers(t *testing.T) {
	f := newFixture(t)
	it := f.addItem("Widget", "10", 100)

	first, err := f.svc.Build(context.Background(), f.owner, f.cust.ID, []LineInput{{ItemID: it.ID, Quantity: 1}})
	require.NoError(t, err)
	second, err := f.svc.Build(context.Background(), f.owner, f.cust.ID, []LineInput{{ItemID: it.ID, Quantity: 1}})
	require.NoError(t, err)

	assert.Equal(t, "INV-2026-00001", first.Number)
	assert.Equal(t, "INV-2026-00002", second.Number)
}

func TestBuild_NumbersScopedPerOwner(t *testing.T) {
	f := newFixture(t)
	it := f.addItem("Widget", "10", 100)

	otherOwner := id.New()
	otherCust := customer.New(otherOwner, "Globex Retail")
	otherItem := item.New(otherOwner, "Widget", types.MustMoney("10"), 100)
	f.w.mu.Lock()
	f.w.customers[otherCust.ID] = otherCust
	f.w.items[otherItem.ID] = otherItem
	f.w.mu.Unlock()

	mine, err := f.svc.Build(context.Background(), f.owner, f.cust.ID, []LineInput{{ItemID: it.ID, Quantity: 1}})
	require.NoError(t, err)
	theirs, err := f.svc.Build(context.Background(), otherOwner, otherCust.ID, []LineInput{{ItemID: otherItem.ID, Quantity: 1}})
	require.NoError(t, err)

	// Each owner numbers from their own sequence.
	assert.Equal(t, "INV-2026-00001", mine.Number)
	assert.Equal(t, "INV-2026-00001", theirs.Number)
}

func TestBuild_ConcurrentOnLastUnit(t *testing.T) {
	f := newFixture(t)
	it := f.addItem("Widget", "10", 1)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = f.svc.Build(context.Background(), f.owner, f.cust.ID, []LineInput{
				{ItemID: it.ID, Quantity: 1},
			})
		}(i)
	}
	wg.Wait()

	var successes, failures int
	for _, err := range results {
		if err == nil {
			successes++
		} else {
			assert.True(t, apperror.IsInsufficientStock(err) || apperror.IsConflict(err))
			failures++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, failures)
	assert.Equal(t, int64(0), f.stockOf(it.ID))
	assert.Len(t, f.w.invoices, 1)
}

func TestRevise_NetsStockDelta(t *testing.T) {
	f := newFixture(t)
	it := f.addItem("Widget", "20", 10)

	inv, err := f.svc.Build(context.Background(), f.owner, f.cust.ID, []LineInput{
		{ItemID: it.ID, Quantity: 3},
	})
	require.NoError(t, err)
	require.Equal(t, int64(7), f.stockOf(it.ID))

	revised, err := f.svc.Revise(context.Background(), f.owner, inv.ID, f.cust.ID, []LineInput{
		{ItemID: it.ID, Quantity: 5},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), f.stockOf(it.ID))
	assert.Equal(t, inv.ID, revised.ID)
	assert.Equal(t, inv.Number, revised.Number)
	assert.True(t, types.MustMoney("100").Equal(revised.GrandTotal))
}

func TestRevise_DecreaseReturnsStock(t *testing.T) {
	f := newFixture(t)
	it := f.addItem("Widget", "20", 10)

	inv, err := f.svc.Build(context.Background(), f.owner, f.cust.ID, []LineInput{
		{ItemID: it.ID, Quantity: 5},
	})
	require.NoError(t, err)

	_, err = f.svc.Revise(context.Background(), f.owner, inv.ID, f.cust.ID, []LineInput{
		{ItemID: it.ID, Quantity: 2},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(8), f.stockOf(it.ID))
}

func TestRevise_FailureLeavesInvoiceAndStockIntact(t *testing.T) {
	f := newFixture(t)
	itemA := f.addItem("Item A", "100", 10)
	itemB := f.addItem("Item B", "50", 5)

	inv, err := f.svc.Build(context.Background(), f.owner, f.cust.ID, []LineInput{
		{ItemID: itemA.ID, Quantity: 2},
	})
	require.NoError(t, err)
	require.Equal(t, int64(8), f.stockOf(itemA.ID))

	// New line list is short on stock: the release of the old lines
	// must roll back with everything else.
	_, err = f.svc.Revise(context.Background(), f.owner, inv.ID, f.cust.ID, []LineInput{
		{ItemID: itemB.ID, Quantity: 6},
	})

	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	assert.Equal(t, int64(8), f.stockOf(itemA.ID))
	assert.Equal(t, int64(5), f.stockOf(itemB.ID))

	reloaded, err := f.svc.GetByID(context.Background(), f.owner, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, inv.Number, reloaded.Number)
	require.Len(t, reloaded.Lines, 1)
	assert.Equal(t, itemA.ID, reloaded.Lines[0].ItemID)
	assert.Equal(t, int64(2), reloaded.Lines[0].Quantity)
}

func TestRevise_ReleasedStockAvailableToNewLines(t *testing.T) {
	f := newFixture(t)
	it := f.addItem("Widget", "10", 5)

	inv, err := f.svc.Build(context.Background(), f.owner, f.cust.ID, []LineInput{
		{ItemID: it.ID, Quantity: 5},
	})
	require.NoError(t, err)
	require.Equal(t, int64(0), f.stockOf(it.ID))

	// Revising to the same quantity only works if the old reservation
	// is released before the new one is validated.
	_, err = f.svc.Revise(context.Background(), f.owner, inv.ID, f.cust.ID, []LineInput{
		{ItemID: it.ID, Quantity: 5},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(0), f.stockOf(it.ID))
}

func TestRevise_SucceedsWithoutConcurrentWriter(t *testing.T) {
	f := newFixture(t)
	it := f.addItem("Widget", "10", 10)

	inv, err := f.svc.Build(context.Background(), f.owner, f.cust.ID, []LineInput{
		{ItemID: it.ID, Quantity: 1},
	})
	require.NoError(t, err)

	// The fake repo enforces the version predicate of the SQL update.
	// A revision with nobody else writing must pass it, and repeated
	// revisions must keep passing it as the version advances.
	first, err := f.svc.Revise(context.Background(), f.owner, inv.ID, f.cust.ID, []LineInput{
		{ItemID: it.ID, Quantity: 2},
	})
	require.NoError(t, err)
	assert.Greater(t, first.Version, inv.Version)

	second, err := f.svc.Revise(context.Background(), f.owner, inv.ID, f.cust.ID, []LineInput{
		{ItemID: it.ID, Quantity: 3},
	})
	require.NoError(t, err)
	assert.Greater(t, second.Version, first.Version)
	assert.Equal(t, int64(7), f.stockOf(it.ID))
}

func TestRevise_StaleVersionIsConflict(t *testing.T) {
	f := newFixture(t)
	it := f.addItem("Widget", "10", 10)

	inv, err := f.svc.Build(context.Background(), f.owner, f.cust.ID, []LineInput{
		{ItemID: it.ID, Quantity: 1},
	})
	require.NoError(t, err)

	stale := copyInvoiceRec(inv)
	f.w.mu.Lock()
	f.w.invoices[inv.ID].Version++
	f.w.mu.Unlock()

	repo := &fakeInvoiceRepo{w: f.w}
	err = repo.Update(context.Background(), f.owner, stale)

	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestRevise_InvoiceNotFound(t *testing.T) {
	f := newFixture(t)
	it := f.addItem("Widget", "10", 5)

	_, err := f.svc.Revise(context.Background(), f.owner, id.New(), f.cust.ID, []LineInput{
		{ItemID: it.ID, Quantity: 1},
	})

	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Equal(t, int64(5), f.stockOf(it.ID))
}

func TestRevise_ChangesCustomer(t *testing.T) {
	f := newFixture(t)
	other := customer.New(f.owner, "Other Co")
	f.w.customers[other.ID] = other
	it := f.addItem("Widget", "10", 5)

	inv, err := f.svc.Build(context.Background(), f.owner, f.cust.ID, []LineInput{
		{ItemID: it.ID, Quantity: 1},
	})
	require.NoError(t, err)

	revised, err := f.svc.Revise(context.Background(), f.owner, inv.ID, other.ID, []LineInput{
		{ItemID: it.ID, Quantity: 1},
	})

	require.NoError(t, err)
	assert.Equal(t, other.ID, revised.CustomerID)
}

func TestGetByID_ForeignOwnerIsNotFound(t *testing.T) {
	f := newFixture(t)
	it := f.addItem("Widget", "10", 5)

	inv, err := f.svc.Build(context.Background(), f.owner, f.cust.ID, []LineInput{
		{ItemID: it.ID, Quantity: 1},
	})
	require.NoError(t, err)

	_, err = f.svc.GetByID(context.Background(), id.New(), inv.ID)

	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
