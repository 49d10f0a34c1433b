package queries

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrGetRunReportQueryIsNotConstructed = errors.New(
	"GetRunReportQuery must be created via NewGetRunReportQuery constructor",
)

// GetRunReportQuery asks for the progress projection of one run. Clients poll it
// while quoting and generation run in the background.
type GetRunReportQuery struct {
	runID kernel.UUID
	guard guard.ConstructorGuard
}

func NewGetRunReportQuery(runID kernel.UUID) (GetRunReportQuery, error) {
	if err := runID.Validate(); err != nil {
		return GetRunReportQuery{}, err
	}
	return GetRunReportQuery{runID: runID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRunReportQuery) Validate() error {
	return q.guard.Validate(ErrGetRunReportQueryIsNotConstructed)
}

func (q GetRunReportQuery) RunID() kernel.UUID {
	return q.runID
}
