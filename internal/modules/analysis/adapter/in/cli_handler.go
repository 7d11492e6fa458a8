package in

import (
	"context"

	analysisdto "senscal/internal/modules/analysis/dto"
	analysisin "senscal/internal/modules/analysis/port/in"
)

type CLIHandler struct {
	usecase analysisin.Usecase
}

func NewCLIHandler(usecase analysisin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Analyze(ctx context.Context, runID string) (analysisdto.ReportOutput, error) {
	return h.usecase.Analyze(ctx, runID)
}

func (h CLIHandler) Export(ctx context.Context, runID, format string) (string, error) {
	return h.usecase.Export(ctx, runID, format)
}

func (h CLIHandler) List(ctx context.Context) ([]analysisdto.RunRecordOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Query(ctx context.Context, runID, path string) (string, error) {
	return h.usecase.Query(ctx, runID, path)
}
