package in

import (
	"context"

	"senscal/internal/modules/session/dto"
)

// Usecase is the measurement session surface. One controller instance owns
// one run at a time; starting a new run resets the previous terminal state.
type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.SummaryOutput, error)
	RecordFrame(ctx context.Context) (dto.FrameOutput, error)
	Next(ctx context.Context) (dto.SummaryOutput, error)
	Previous(ctx context.Context) (dto.SummaryOutput, error)
	Stop(ctx context.Context) (dto.SummaryOutput, error)
	WindowClosed(ctx context.Context) (dto.CloseOutput, error)
	Summary(ctx context.Context) (dto.SummaryOutput, error)
	Affordances(ctx context.Context) (map[string]bool, error)
	CurrentPosition(ctx context.Context) (dto.PositionOutput, bool, error)
	RefreshPlan(ctx context.Context) error

	// RunAutomatic starts a run and records frames at the configured pace
	// until the plan completes or the context is cancelled.
	RunAutomatic(ctx context.Context, input dto.StartInput) (dto.SummaryOutput, error)

	GetRun(ctx context.Context, id string) (dto.RunOutput, error)
	ListRuns(ctx context.Context) ([]dto.RunOutput, error)
}
