package in

import (
	"context"

	"senscal/internal/modules/analysis/dto"
)

type Usecase interface {
	Analyze(ctx context.Context, runID string) (dto.ReportOutput, error)
	// Export renders a report to disk; format is "json" or "text".
	Export(ctx context.Context, runID, format string) (string, error)
	List(ctx context.Context) ([]dto.RunRecordOutput, error)
	// Query evaluates a gjson path against the run's JSON report.
	Query(ctx context.Context, runID, path string) (string, error)
	// Project indexes a terminal run so List and Query can see it.
	Project(ctx context.Context, input dto.RunInput) error
}
