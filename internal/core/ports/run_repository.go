package ports

import (
	"context"

	"shipping/internal/core/domain/model/batch"
	"shipping/internal/core/domain/model/kernel"
)

// RunRepository keeps the workflow runs alive between HTTP calls.
type RunRepository interface {
	// Add registers a new run.
	Add(ctx context.Context, run *batch.Run) error

	// Get returns a run by id, or errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*batch.Run, error)

	// Remove discards a run. Removing an unknown id is not an error.
	Remove(ctx context.Context, id kernel.UUID) error

	// List returns every registered run.
	List(ctx context.Context) ([]*batch.Run, error)
}
