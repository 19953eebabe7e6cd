// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors; stored as NUMERIC(15,2).
type Money = decimal.Decimal

// NewMoneyFromString creates a Money value from a string.
// This is the preferred method for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// MoneyFromInt creates a Money value from an integer amount.
func MoneyFromInt(v int64) Money {
	return decimal.NewFromInt(v)
}

// ZeroMoney returns zero Money value.
func ZeroMoney() Money {
	return decimal.Zero
}
