package out

import (
	"context"

	"senscal/internal/modules/plan/domain"
)

type PlanStore interface {
	Save(ctx context.Context, plan domain.Plan) error
	Load(ctx context.Context) (domain.Plan, error)
}
