package usecase

import (
	"context"

	"senscal/internal/modules/plan/domain"
	"senscal/internal/modules/plan/dto"
	planin "senscal/internal/modules/plan/port/in"
	"senscal/internal/modules/plan/service"
	regionin "senscal/internal/modules/region/port/in"
)

type Interactor struct {
	svc    *service.PlanService
	region regionin.Usecase
}

func NewInteractor(svc *service.PlanService, region regionin.Usecase) planin.Usecase {
	return &Interactor{svc: svc, region: region}
}

func (i *Interactor) Generate(ctx context.Context, input dto.GenerateInput) (dto.PlanOutput, error) {
	region, err := i.region.Get(ctx, input.RegionID)
	if err != nil {
		return dto.PlanOutput{}, err
	}
	plan, err := i.svc.Generate(ctx, domain.GenerateParams{
		RegionID:          region.ID,
		BaseX:             region.X,
		BaseY:             region.Y,
		Count:             input.Count,
		Jitter:            input.Jitter,
		FramesPerPosition: input.FramesPerPosition,
	})
	if err != nil {
		return dto.PlanOutput{}, err
	}
	return toOutput(plan), nil
}

func (i *Interactor) Get(ctx context.Context) (dto.PlanOutput, error) {
	plan, err := i.svc.Get(ctx)
	if err != nil {
		return dto.PlanOutput{}, err
	}
	return toOutput(plan), nil
}

func toOutput(plan domain.Plan) dto.PlanOutput {
	positions := make([]dto.PositionOutput, 0, len(plan.Positions))
	for _, p := range plan.Positions {
		positions = append(positions, dto.PositionOutput{
			ID:       p.ID,
			X:        p.X,
			Y:        p.Y,
			OffsetX:  p.OffsetX,
			OffsetY:  p.OffsetY,
			Distance: p.Distance,
		})
	}
	return dto.PlanOutput{
		RegionID:          plan.RegionID,
		BaseX:             plan.BaseX,
		BaseY:             plan.BaseY,
		Jitter:            plan.Jitter,
		FramesPerPosition: plan.FramesPerPosition,
		GeneratedAt:       plan.GeneratedAt,
		Positions:         positions,
	}
}
