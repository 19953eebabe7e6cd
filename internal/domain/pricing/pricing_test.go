package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"factura/internal/core/types"
)

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name     string
		price    types.Money
		qty      int64
		expected types.Money
	}{
		{"whole price", types.MustMoney("100"), 2, types.MustMoney("200")},
		{"fractional price", types.MustMoney("19.99"), 3, types.MustMoney("59.97")},
		{"quantity one", types.MustMoney("50"), 1, types.MustMoney("50")},
		{"zero price", types.ZeroMoney(), 10, types.ZeroMoney()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LineTotal(tt.price, tt.qty)
			assert.True(t, tt.expected.Equal(got), "want %s got %s", tt.expected, got)
		})
	}
}

func TestSubTotal(t *testing.T) {
	lines := []types.Money{
		types.MustMoney("200"),
		types.MustMoney("150"),
	}

	got := SubTotal(lines)

	assert.True(t, types.MustMoney("350").Equal(got))
}

func TestSubTotal_Empty(t *testing.T) {
	got := SubTotal(nil)
	assert.True(t, got.IsZero())
}

func TestGrandTotal_EqualsSubTotal(t *testing.T) {
	sub := types.MustMoney("350")
	assert.True(t, sub.Equal(GrandTotal(sub)))
}
