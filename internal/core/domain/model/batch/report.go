package batch

import (
	"slices"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
)

// QuoteOutcome is the read-only view of one order's quote.
type QuoteOutcome struct {
	Offers      []shipment.RateQuote
	Selected    *shipment.RateQuote
	Recommended string
	Error       string
}

// Item is one candidate order in a report.
type Item struct {
	OrderID         kernel.UUID
	OrderNumber     string
	City            string
	Department      string
	Selected        bool
	Quote           *QuoteOutcome
	Label           *shipment.Label
	GenerationError string
}

// Report is a consistent snapshot of a Run.
type Report struct {
	RunID              kernel.UUID
	Mode               Mode
	Phase              Phase
	Origin             string
	Items              []Item
	QuoteProgress      Progress
	GenerationProgress Progress
	Cost               *CostSummary
	Generated          int
	Failed             int
	Errors             []string
	Cancelled          bool
	UpdatedAt          time.Time
}

// Report takes a snapshot under the read lock.
func (r *Run) Report() Report {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rep := Report{
		RunID:              r.id,
		Mode:               r.mode,
		Phase:              r.phase,
		Origin:             r.origin,
		Items:              make([]Item, 0, len(r.candidates)),
		QuoteProgress:      r.quoteProgress,
		GenerationProgress: r.generationProgress,
		Generated:          r.generated,
		Failed:             r.failed,
		Errors:             slices.Clone(r.errors),
		Cancelled:          r.cancelled,
		UpdatedAt:          r.updatedAt,
	}
	if r.cost != nil {
		cost := *r.cost
		rep.Cost = &cost
	}

	for _, o := range r.candidates {
		_, selected := r.selected[o.ID()]
		item := Item{
			OrderID:     o.ID(),
			OrderNumber: o.Number(),
			City:        o.Address().City,
			Department:  o.Address().Department,
			Selected:    selected,
		}
		if q, ok := r.quotes[o.ID()]; ok {
			item.Quote = outcomeOf(q)
		}
		if label, ok := r.labels[o.ID()]; ok {
			item.Label = &label
		}
		if failure, ok := r.failures[o.ID()]; ok {
			item.GenerationError = failure.Error()
		}
		rep.Items = append(rep.Items, item)
	}

	return rep
}

func outcomeOf(q *shipment.QuoteSelection) *QuoteOutcome {
	outcome := &QuoteOutcome{
		Offers:      q.Offers(),
		Recommended: q.Recommended(),
	}
	if rate, ok := q.Selected(); ok {
		outcome.Selected = &rate
	}
	if err := q.Err(); err != nil {
		outcome.Error = err.Error()
	}
	return outcome
}
