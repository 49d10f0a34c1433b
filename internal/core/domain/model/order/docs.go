// Package order provides the read-only view of a merchant order that the shipping
// workflow quotes and labels.
//
// The package includes:
//   - Order: the aggregate root holding customer contact, shipping address,
//     declared value, optional parcel measures and the tracking number
//   - Status: a two-state machine, Pending until a label is issued and Shipped after
//
// Key business rules:
//   - An order with a non-blank tracking number is Shipped and never a candidate
//     for a new label
//   - Missing or non-positive measures fall back to the default parcel profile
//   - Ship is the only mutation; it records the tracking number returned by the
//     label issuer and happens at most once
package order
