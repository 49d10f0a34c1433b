package services

import (
	"shipping/internal/core/domain/model/batch"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
)

var _ batch.Pricer = CostAggregator{}

// CostAggregator sums the projected cost of a run.
//
// Only quotes holding a selected rate contribute, with freight plus insurance;
// failed quotes and single-order quotes still waiting for a pick are left out
// rather than counted as zero.
//
// Example:
//
//	items, summary, err := run.BeginGeneration(services.NewCostAggregator(), balance)
//	var short *batch.InsufficientBalanceError
//	if errors.As(err, &short) {
//	    // short.Shortfall()
//	}
type CostAggregator struct{}

// NewCostAggregator creates a new CostAggregator instance.
func NewCostAggregator() CostAggregator {
	return CostAggregator{}
}

// Total returns the summed cost of every selected rate.
func (a CostAggregator) Total(quotes []shipment.QuoteSelection) kernel.Money {
	var total kernel.Money
	for i := range quotes {
		if !quotes[i].Succeeded() {
			continue
		}
		total = total.Add(quotes[i].Cost())
	}
	return total
}
