package ledger

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"factura/internal/core/apperror"
	"factura/internal/core/id"
)

type fakeStock struct {
	name  string
	stock int64
}

type fakeRepo struct {
	mu    sync.Mutex
	items map[id.ID]*fakeStock
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[id.ID]*fakeStock)}
}

func (r *fakeRepo) add(itemID id.ID, name string, stock int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[itemID] = &fakeStock{name: name, stock: stock}
}

func (r *fakeRepo) DecrementIfAvailable(_ context.Context, _, itemID id.ID, qty int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[itemID]
	if !ok || it.stock < qty {
		return false, nil
	}
	it.stock -= qty
	return true, nil
}

func (r *fakeRepo) Increment(_ context.Context, _, itemID id.ID, qty int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[itemID]
	if !ok {
		return false, nil
	}
	it.stock += qty
	return true, nil
}

func (r *fakeRepo) GetStock(_ context.Context, _, itemID id.ID) (*StockView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[itemID]
	if !ok {
		return nil, nil
	}
	return &StockView{ItemID: itemID, Name: it.name, Stock: it.stock}, nil
}

func (r *fakeRepo) stockOf(itemID id.ID) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[itemID].stock
}

func TestReserve_DecrementsStock(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	owner := id.New()
	itemID := id.New()
	repo.add(itemID, "Widget", 10)

	err := svc.Reserve(context.Background(), owner, itemID, 3)

	require.NoError(t, err)
	assert.Equal(t, int64(7), repo.stockOf(itemID))
}

func TestReserve_InsufficientStock(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	owner := id.New()
	itemID := id.New()
	repo.add(itemID, "Widget", 2)

	err := svc.Reserve(context.Background(), owner, itemID, 5)

	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))
	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, int64(2), appErr.Details["available"])
	assert.Equal(t, int64(5), appErr.Details["requested"])
	assert.Equal(t, "Widget", appErr.Details["item_name"])
	assert.Equal(t, int64(2), repo.stockOf(itemID))
}

func TestReserve_ItemNotFound(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	err := svc.Reserve(context.Background(), id.New(), id.New(), 1)

	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestReserve_InvalidQuantity(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	for _, qty := range []int64{0, -1} {
		err := svc.Reserve(context.Background(), id.New(), id.New(), qty)
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
	}
}

func TestReserve_ExactStock(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	owner := id.New()
	itemID := id.New()
	repo.add(itemID, "Widget", 5)

	err := svc.Reserve(context.Background(), owner, itemID, 5)

	require.NoError(t, err)
	assert.Equal(t, int64(0), repo.stockOf(itemID))
}

func TestReserve_ConcurrentSingleWinner(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	owner := id.New()
	itemID := id.New()
	repo.add(itemID, "Widget", 1)

	const workers = 8
	var wg sync.WaitGroup
	results := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = svc.Reserve(context.Background(), owner, itemID, 1)
		}(i)
	}
	wg.Wait()

	var successes, shortages int
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case apperror.IsInsufficientStock(err):
			shortages++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, shortages)
	assert.Equal(t, int64(0), repo.stockOf(itemID))
}

func TestRelease_IncrementsStock(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	owner := id.New()
	itemID := id.New()
	repo.add(itemID, "Widget", 3)

	err := svc.Release(context.Background(), owner, itemID, 4)

	require.NoError(t, err)
	assert.Equal(t, int64(7), repo.stockOf(itemID))
}

func TestRelease_MissingItemIsNoOp(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	err := svc.Release(context.Background(), id.New(), id.New(), 2)

	require.NoError(t, err)
}
