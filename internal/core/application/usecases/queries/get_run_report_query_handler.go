package queries

import (
	"context"

	"shipping/internal/core/domain/model/batch"
	"shipping/internal/core/ports"
)

// GetRunReportQueryHandler snapshots a registered run.
type GetRunReportQueryHandler struct {
	runs ports.RunRepository
}

func NewGetRunReportQueryHandler(runs ports.RunRepository) GetRunReportQueryHandler {
	return GetRunReportQueryHandler{runs: runs}
}

// Handle returns errs.ObjectNotFoundError for an unknown or cancelled run.
func (h GetRunReportQueryHandler) Handle(ctx context.Context, query GetRunReportQuery) (batch.Report, error) {
	if err := query.Validate(); err != nil {
		return batch.Report{}, err
	}

	run, err := h.runs.Get(ctx, query.RunID())
	if err != nil {
		return batch.Report{}, err
	}

	return run.Report(), nil
}
