package out

import (
	"context"

	"senscal/internal/modules/analysis/domain"
)

// RunSource loads a finished run for analysis.
type RunSource interface {
	Load(ctx context.Context, id string) (domain.Run, error)
}

// ResultsIndex is the queryable projection of terminal runs.
type ResultsIndex interface {
	Upsert(ctx context.Context, record domain.RunRecord) error
	List(ctx context.Context) ([]domain.RunRecord, error)
}

// ReportWriter renders a report to a file and returns its path.
type ReportWriter interface {
	WriteJSON(ctx context.Context, report domain.Report) (string, error)
	WriteText(ctx context.Context, report domain.Report) (string, error)
}
