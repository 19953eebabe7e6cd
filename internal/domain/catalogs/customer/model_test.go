package customer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"factura/internal/core/apperror"
	"factura/internal/core/id"
)

func strPtr(s string) *string { return &s }

func TestValidate(t *testing.T) {
	owner := id.New()

	t.Run("valid minimal", func(t *testing.T) {
		c := New(owner, "Acme Traders")
		assert.NoError(t, c.Validate(context.Background()))
	})

	t.Run("valid with email", func(t *testing.T) {
		c := New(owner, "Acme Traders")
		c.Email = strPtr("billing@acme.example")
		assert.NoError(t, c.Validate(context.Background()))
	})

	t.Run("missing name", func(t *testing.T) {
		c := New(owner, "")
		err := c.Validate(context.Background())
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
	})

	t.Run("bad email", func(t *testing.T) {
		c := New(owner, "Acme Traders")
		c.Email = strPtr("not-an-email")
		require.Error(t, c.Validate(context.Background()))
	})

	t.Run("missing owner", func(t *testing.T) {
		c := New(id.Nil(), "Acme Traders")
		require.Error(t, c.Validate(context.Background()))
	})
}
