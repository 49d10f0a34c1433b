// Package runrepo keeps workflow runs in process memory. Runs are lost on restart.
package runrepo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"shipping/internal/core/domain/model/batch"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

// ErrRunAlreadyExists is returned when Add is called twice with the same run.
var ErrRunAlreadyExists = errors.New("run already registered")

// Repository implements ports.RunRepository over a map.
type Repository struct {
	mu   sync.RWMutex
	runs map[kernel.UUID]*batch.Run
}

// NewRepository creates an empty repository.
func NewRepository() *Repository {
	return &Repository{runs: make(map[kernel.UUID]*batch.Run)}
}

// Add registers a run.
func (r *Repository) Add(_ context.Context, run *batch.Run) error {
	if run == nil {
		return errs.NewValueIsRequiredError("run")
	}
	if err := run.ID().Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.runs[run.ID()]; ok {
		return fmt.Errorf("%w: %s", ErrRunAlreadyExists, run.ID())
	}
	r.runs[run.ID()] = run
	return nil
}

// Get returns the run or errs.ObjectNotFoundError.
func (r *Repository) Get(_ context.Context, id kernel.UUID) (*batch.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	run, ok := r.runs[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("run", id.String())
	}
	return run, nil
}

// Remove forgets the run. Unknown ids are ignored.
func (r *Repository) Remove(_ context.Context, id kernel.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.runs, id)
	return nil
}

// List returns every run, least recently touched first.
func (r *Repository) List(_ context.Context) ([]*batch.Run, error) {
	r.mu.RLock()
	runs := make([]*batch.Run, 0, len(r.runs))
	for _, run := range r.runs {
		runs = append(runs, run)
	}
	r.mu.RUnlock()

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].UpdatedAt().Before(runs[j].UpdatedAt())
	})
	return runs, nil
}
