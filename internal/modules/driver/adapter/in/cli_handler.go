package in

import (
	"context"

	driverdto "senscal/internal/modules/driver/dto"
	driverin "senscal/internal/modules/driver/port/in"
)

type CLIHandler struct {
	usecase driverin.Usecase
}

func NewCLIHandler(usecase driverin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]driverdto.DriverInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]driverdto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}
