// Package ports defines the contracts between the shipping use cases and the
// outside world: the order store, the carrier aggregator, the advisory service,
// the prepaid ledger and the in-memory run registry.
package ports

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates. Orders
// are created by the store front; this service reads them and records tracking
// numbers.
type OrderRepository interface {
	// Update persists changes to an existing order aggregate, in practice the
	// tracking number recorded by Order.Ship.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when it does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllUnshipped retrieves every order without a tracking number, oldest first.
	GetAllUnshipped(ctx context.Context) ([]*order.Order, error)
}
