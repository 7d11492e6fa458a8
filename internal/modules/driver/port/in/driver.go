package in

import (
	"context"

	"senscal/internal/modules/driver/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.DriverInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
}
