// Package batch models one shipping workflow run: the orders offered for
// selection, the quote outcome per order, the projected cost against the prepaid
// balance and the label generation counters.
//
// The package includes:
//   - Phase: the SELECT → QUOTING → REVIEW → GENERATING → COMPLETE state machine
//   - Mode: batch (automatic cheapest pick) or single order (manual pick, optional COD)
//   - Progress: a monotonic done/total counter
//   - CostSummary: total projected cost versus balance, with the hard block
//   - Run: the aggregate tying them together, safe for concurrent use
//
// A Run lives in memory only. Cancelling it stops the loops between items but
// cannot undo labels already issued.
package batch
