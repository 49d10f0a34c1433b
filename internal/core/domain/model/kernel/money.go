package kernel

import (
	"fmt"
	"math"
)

// Money is an amount of Colombian pesos stored in cents.
//
// Carrier APIs and the balance ledger report amounts as decimal numbers; keeping
// cents as an int64 makes sums such as the batch total exact. The zero value is
// zero pesos and is ready to use.
//
// Example:
//
//	freight := kernel.MoneyFromFloat(12500)
//	insurance := kernel.MoneyFromFloat(1000.5)
//	total := freight.Add(insurance) // 13500.50
type Money struct {
	cents int64
}

// NewMoney creates an amount from cents.
func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

// MoneyFromFloat converts a peso amount to Money, rounding half away from zero
// to the nearest cent.
func MoneyFromFloat(amount float64) Money {
	return Money{cents: int64(math.Round(amount * 100))}
}

// Cents returns the amount in cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Float64 returns the amount in pesos, for JSON payloads.
func (m Money) Float64() float64 {
	return float64(m.cents) / 100
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return Money{cents: m.cents - other.cents}
}

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) bool {
	return m.cents < other.cents
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.cents == 0
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.cents < 0
}

// String formats the amount as pesos with two decimals, e.g. "-20000.00".
func (m Money) String() string {
	sign := ""
	cents := m.cents
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
