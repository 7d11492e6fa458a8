package in

import (
	"context"

	plandto "senscal/internal/modules/plan/dto"
	planin "senscal/internal/modules/plan/port/in"
)

type CLIHandler struct {
	usecase planin.Usecase
}

func NewCLIHandler(usecase planin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Generate(ctx context.Context, regionID string, count, jitter, frames int) (plandto.PlanOutput, error) {
	return h.usecase.Generate(ctx, plandto.GenerateInput{
		RegionID:          regionID,
		Count:             count,
		Jitter:            jitter,
		FramesPerPosition: frames,
	})
}

func (h CLIHandler) Get(ctx context.Context) (plandto.PlanOutput, error) {
	return h.usecase.Get(ctx)
}
