package numerator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

// mockQuerier simulates the sys_sequences UPSERT: every call bumps the
// counter for the given key by one and returns the new value.
type mockQuerier struct {
	mu   sync.Mutex
	vals map[string]int64
}

func newMockQuerier() *mockQuerier {
	return &mockQuerier{vals: make(map[string]int64)}
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	key, _ := args[0].(string)
	m.vals[key]++
	return &mockRow{val: m.vals[key]}
}

func TestNext_SequentialNumbers(t *testing.T) {
	q := newMockQuerier()
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("INV")
	period := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)

	num, err := svc.Next(ctx, cfg, "owner-a", period)
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-00001", num)

	num, err = svc.Next(ctx, cfg, "owner-a", period)
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-00002", num)
}

func TestNext_ScopesHaveIndependentCounters(t *testing.T) {
	q := newMockQuerier()
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("INV")
	period := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)

	num, err := svc.Next(ctx, cfg, "owner-a", period)
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-00001", num)

	// A different scope allocates from its own sequence row.
	num, err = svc.Next(ctx, cfg, "owner-b", period)
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-00001", num)

	num, err = svc.Next(ctx, cfg, "owner-a", period)
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-00002", num)
}

func TestNext_YearlyReset(t *testing.T) {
	q := newMockQuerier()
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("INV")

	num, err := svc.Next(ctx, cfg, "owner-a", time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-00001", num)

	// New year, new sequence key: counter starts over.
	num, err = svc.Next(ctx, cfg, "owner-a", time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "INV-2027-00001", num)
}

func TestNext_NoYear(t *testing.T) {
	q := newMockQuerier()
	svc := New(q)
	cfg := Config{Prefix: "CUST", PadWidth: 4, ResetPeriod: "never"}

	num, err := svc.Next(context.Background(), cfg, "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "CUST-0001", num)
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, int64(42), ParseNumber("INV-2026-00042"))
	assert.Equal(t, int64(7), ParseNumber("CUST-0007"))
	assert.Equal(t, int64(-1), ParseNumber("garbage"))
}
