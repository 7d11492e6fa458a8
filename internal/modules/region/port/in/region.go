package in

import (
	"context"

	"senscal/internal/modules/region/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.RegionOutput, error)
	Get(ctx context.Context, id string) (dto.RegionOutput, error)
}
