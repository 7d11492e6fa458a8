package usecase

import (
	"context"

	"senscal/internal/modules/region/domain"
	"senscal/internal/modules/region/dto"
	regionin "senscal/internal/modules/region/port/in"
	"senscal/internal/modules/region/service"
)

type Interactor struct {
	svc *service.RegionService
}

func NewInteractor(svc *service.RegionService) regionin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.RegionOutput, error) {
	regions, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RegionOutput, 0, len(regions))
	for _, region := range regions {
		out = append(out, toOutput(region))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, id string) (dto.RegionOutput, error) {
	region, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.RegionOutput{}, err
	}
	return toOutput(region), nil
}

func toOutput(region domain.Region) dto.RegionOutput {
	return dto.RegionOutput{
		ID:          region.ID,
		Name:        region.Name,
		X:           region.X,
		Y:           region.Y,
		Description: region.Description,
	}
}
