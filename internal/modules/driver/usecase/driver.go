package usecase

import (
	"context"

	"senscal/internal/modules/driver/dto"
	driverin "senscal/internal/modules/driver/port/in"
	"senscal/internal/modules/driver/service"
)

type Interactor struct {
	svc *service.DriverService
}

func NewInteractor(svc *service.DriverService) driverin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.DriverInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}
