// Package shipment holds the value objects exchanged with the carrier-rate
// aggregator and the label issuer, and the per-order QuoteSelection that the
// batch workflow builds from them.
//
// The package includes:
//   - Package: parcel weight and dimensions with the small-package fallback profile
//   - QuoteRequest, Recommendation, LabelRequest, Label: collaborator payloads
//   - RateQuote: one priced offer and its single-use selection token
//   - QuoteSelection: the outcome of quoting one order (selected rate or error)
//   - QuoteError, GenerationError: per-order failures recorded without aborting a batch
//
// Key business rules:
//   - zero or negative package measures fall back to weight 1 and 10x10x10
//   - a QuoteSelection holds a selected rate or an error, never both
//   - a rate token is consumed at most once
package shipment
