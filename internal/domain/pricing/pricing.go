// Package pricing computes invoice monetary amounts.
// All functions are pure: no I/O, no state, deterministic for a given
// input. Prices are decimal values; quantities are whole units.
package pricing

import (
	"factura/internal/core/types"
)

// LineTotal returns price multiplied by quantity.
func LineTotal(price types.Money, qty int64) types.Money {
	return price.Mul(types.MoneyFromInt(qty))
}

// SubTotal returns the sum of the given line totals. An empty slice
// yields zero.
func SubTotal(lineTotals []types.Money) types.Money {
	total := types.ZeroMoney()
	for _, lt := range lineTotals {
		total = total.Add(lt)
	}
	return total
}

// GrandTotal returns the invoice total. No tax or discount layers are
// applied, so it equals the subtotal.
func GrandTotal(subTotal types.Money) types.Money {
	return subTotal
}
