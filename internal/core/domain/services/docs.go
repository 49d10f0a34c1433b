// Package services provides the pure domain services of the shipping workflow:
// decisions that span rate offers and quote outcomes without owning state.
//
// The package includes:
//   - RateSelector: picks the cheapest offer and matches the advisory carrier
//   - CostAggregator: sums the projected cost of a run against the prepaid balance
//
// Neither service performs I/O; the use cases feed them collaborator results.
package services
