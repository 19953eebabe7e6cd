package item

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"factura/internal/core/apperror"
	"factura/internal/core/id"
	"factura/internal/core/types"
)

func TestValidate(t *testing.T) {
	owner := id.New()

	tests := []struct {
		name    string
		item    *Item
		wantErr bool
	}{
		{"valid", New(owner, "Widget", types.MustMoney("9.99"), 10), false},
		{"zero price ok", New(owner, "Freebie", types.ZeroMoney(), 0), false},
		{"missing name", New(owner, "", types.MustMoney("1"), 1), true},
		{"negative price", New(owner, "Widget", types.MustMoney("-1"), 1), true},
		{"missing owner", New(id.Nil(), "Widget", types.MustMoney("1"), 1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				appErr, ok := apperror.AsAppError(err)
				require.True(t, ok)
				assert.Equal(t, apperror.CodeValidation, appErr.Code)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_NegativeStock(t *testing.T) {
	it := New(id.New(), "Widget", types.MustMoney("1"), 0)
	it.Stock = -1

	err := it.Validate(context.Background())

	require.Error(t, err)
}
