package batch

import (
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
)

// ErrInsufficientBalance is the sentinel behind InsufficientBalanceError.
var ErrInsufficientBalance = errors.New("insufficient balance")

// Pricer sums the projected cost of quote outcomes. The run calls it while it
// holds its lock, so the total always matches the rates it then hands out.
type Pricer interface {
	Total(quotes []shipment.QuoteSelection) kernel.Money
}

// CostSummary compares the projected cost of a run with the prepaid balance.
type CostSummary struct {
	Total   kernel.Money
	Balance kernel.Money
}

// Sufficient reports whether the balance covers the total; equality is enough.
func (c CostSummary) Sufficient() bool {
	return !c.Balance.LessThan(c.Total)
}

// Shortfall returns Total - Balance, or zero when the balance suffices.
func (c CostSummary) Shortfall() kernel.Money {
	if c.Sufficient() {
		return kernel.Money{}
	}
	return c.Total.Sub(c.Balance)
}

// Check returns an InsufficientBalanceError when the balance is short.
func (c CostSummary) Check() error {
	if c.Sufficient() {
		return nil
	}
	return &InsufficientBalanceError{Total: c.Total, Balance: c.Balance}
}

// InsufficientBalanceError blocks the move into generation.
type InsufficientBalanceError struct {
	Total   kernel.Money
	Balance kernel.Money
}

// Shortfall returns the amount missing.
func (e *InsufficientBalanceError) Shortfall() kernel.Money {
	return e.Total.Sub(e.Balance)
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: total %s, balance %s, shortfall %s",
		e.Total, e.Balance, e.Shortfall())
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}
