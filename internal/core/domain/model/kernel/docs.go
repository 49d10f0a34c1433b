// Package kernel provides the value objects shared by every shipping aggregate.
//
// The package includes:
//   - UUID: identifier for orders and workflow runs, wrapping github.com/google/uuid
//   - Money: an amount in cents (COP), used for freight, insurance, declared values and balances
//
// Both are immutable value types. Their zero values are either invalid (UUID) or
// mean "nothing" (Money), and every exported method is safe for concurrent use.
package kernel
