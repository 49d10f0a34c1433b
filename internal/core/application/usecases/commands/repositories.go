// Package commands contains the operations that drive a shipping workflow run.
// Every command follows the same pattern: constructor validation, a handler that
// loads the run and delegates the state change to the WorkflowOrchestrator or to
// the batch.Run aggregate.
package commands

import (
	"context"

	"shipping/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)

// Runner executes the quoting and generation loops outside the HTTP request.
type Runner interface {
	// Go schedules fn. The context passed to fn outlives the request that
	// scheduled it and is cancelled only on shutdown.
	Go(name string, fn func(ctx context.Context))
}
