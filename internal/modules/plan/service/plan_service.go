package service

import (
	"context"
	"math/rand"

	"senscal/internal/modules/plan/domain"
	planout "senscal/internal/modules/plan/port/out"
	"senscal/internal/platform/clock"
)

type PlanService struct {
	clock clock.Clock
	rng   *rand.Rand
	store planout.PlanStore
}

// NewPlanService builds the position-plan service. A nil rng falls back to a
// clock-seeded source; tests pass a fixed seed for determinism.
func NewPlanService(clk clock.Clock, rng *rand.Rand, store planout.PlanStore) *PlanService {
	if rng == nil {
		rng = rand.New(rand.NewSource(clk.Now().UnixNano()))
	}
	return &PlanService{clock: clk, rng: rng, store: store}
}

func (s *PlanService) Generate(ctx context.Context, params domain.GenerateParams) (domain.Plan, error) {
	plan, err := domain.Generate(params, s.rng, s.clock.Now())
	if err != nil {
		return domain.Plan{}, err
	}
	if err := s.store.Save(ctx, plan); err != nil {
		return domain.Plan{}, err
	}
	return plan, nil
}

func (s *PlanService) Get(ctx context.Context) (domain.Plan, error) {
	return s.store.Load(ctx)
}
