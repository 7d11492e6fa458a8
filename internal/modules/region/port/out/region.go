package out

import (
	"context"

	"senscal/internal/modules/region/domain"
)

type RegionStore interface {
	Load(ctx context.Context) ([]domain.Region, error)
}
