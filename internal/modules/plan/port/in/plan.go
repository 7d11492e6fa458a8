package in

import (
	"context"

	"senscal/internal/modules/plan/dto"
)

type Usecase interface {
	Generate(ctx context.Context, input dto.GenerateInput) (dto.PlanOutput, error)
	Get(ctx context.Context) (dto.PlanOutput, error)
}
