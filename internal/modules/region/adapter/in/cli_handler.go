package in

import (
	"context"

	regiondto "senscal/internal/modules/region/dto"
	regionin "senscal/internal/modules/region/port/in"
)

type CLIHandler struct {
	usecase regionin.Usecase
}

func NewCLIHandler(usecase regionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]regiondto.RegionOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Get(ctx context.Context, id string) (regiondto.RegionOutput, error) {
	return h.usecase.Get(ctx, id)
}
