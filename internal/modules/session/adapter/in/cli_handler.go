package in

import (
	"context"

	sessiondto "senscal/internal/modules/session/dto"
	sessionin "senscal/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) RunAutomatic(ctx context.Context, weightID string) (sessiondto.SummaryOutput, error) {
	return h.usecase.RunAutomatic(ctx, sessiondto.StartInput{WeightID: weightID})
}

func (h CLIHandler) ListRuns(ctx context.Context) ([]sessiondto.RunOutput, error) {
	return h.usecase.ListRuns(ctx)
}

func (h CLIHandler) GetRun(ctx context.Context, id string) (sessiondto.RunOutput, error) {
	return h.usecase.GetRun(ctx, id)
}
