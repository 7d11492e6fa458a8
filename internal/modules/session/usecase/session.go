package usecase

import (
	"context"
	"errors"

	"golang.org/x/time/rate"

	planin "senscal/internal/modules/plan/port/in"
	"senscal/internal/modules/session/domain"
	"senscal/internal/modules/session/dto"
	sessionin "senscal/internal/modules/session/port/in"
	sessionout "senscal/internal/modules/session/port/out"
	"senscal/internal/modules/session/service"
	apperrors "senscal/internal/platform/errors"
)

type Interactor struct {
	svc     *service.SessionService
	plan    planin.Usecase
	store   sessionout.RunStore
	limiter *rate.Limiter
}

// NewInteractor wires the session controller to the position plan and the
// run archive. The limiter paces automatic runs; interactive callers never
// touch it.
func NewInteractor(svc *service.SessionService, plan planin.Usecase, store sessionout.RunStore, limiter *rate.Limiter) sessionin.Usecase {
	return &Interactor{svc: svc, plan: plan, store: store, limiter: limiter}
}

func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.SummaryOutput, error) {
	plan, err := i.plan.Get(ctx)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	positions := make([]domain.Position, 0, len(plan.Positions))
	for _, p := range plan.Positions {
		positions = append(positions, domain.Position{
			ID:       p.ID,
			X:        p.X,
			Y:        p.Y,
			OffsetX:  p.OffsetX,
			OffsetY:  p.OffsetY,
			Distance: p.Distance,
		})
	}
	summary, err := i.svc.Start(ctx, plan.RegionID, input.WeightID, positions, plan.FramesPerPosition)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	return i.toSummary(summary), nil
}

func (i *Interactor) RecordFrame(ctx context.Context) (dto.FrameOutput, error) {
	frame, sealed, err := i.svc.RecordFrame(ctx)
	if err != nil {
		return dto.FrameOutput{}, err
	}
	return dto.FrameOutput{
		PositionID: frame.PositionID,
		Index:      frame.Index,
		Pressure:   frame.Pressure,
		Sealed:     sealed,
		Summary:    i.toSummary(i.svc.Summary()),
	}, nil
}

func (i *Interactor) Next(ctx context.Context) (dto.SummaryOutput, error) {
	summary, err := i.svc.Next(ctx)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	return i.toSummary(summary), nil
}

func (i *Interactor) Previous(ctx context.Context) (dto.SummaryOutput, error) {
	summary, err := i.svc.Previous(ctx)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	return i.toSummary(summary), nil
}

func (i *Interactor) Stop(ctx context.Context) (dto.SummaryOutput, error) {
	summary, err := i.svc.UserStop(ctx)
	if err != nil {
		return i.toSummary(summary), err
	}
	return i.toSummary(summary), nil
}

func (i *Interactor) WindowClosed(ctx context.Context) (dto.CloseOutput, error) {
	decision, err := i.svc.WindowClosed(ctx)
	out := dto.CloseOutput{Decision: string(decision), Summary: i.toSummary(i.svc.Summary())}
	return out, err
}

func (i *Interactor) Summary(ctx context.Context) (dto.SummaryOutput, error) {
	return i.toSummary(i.svc.Summary()), nil
}

func (i *Interactor) Affordances(ctx context.Context) (map[string]bool, error) {
	table := i.svc.Affordances()
	out := make(map[string]bool, len(table))
	for k, v := range table {
		out[string(k)] = v
	}
	return out, nil
}

func (i *Interactor) CurrentPosition(ctx context.Context) (dto.PositionOutput, bool, error) {
	pos, ok := i.svc.CurrentPosition()
	if !ok {
		return dto.PositionOutput{}, false, nil
	}
	return dto.PositionOutput{
		ID:       pos.ID,
		X:        pos.X,
		Y:        pos.Y,
		OffsetX:  pos.OffsetX,
		OffsetY:  pos.OffsetY,
		Distance: pos.Distance,
	}, true, nil
}

// RefreshPlan re-checks whether a position plan exists so the start-run
// affordance tracks plan generation done elsewhere in the process.
func (i *Interactor) RefreshPlan(ctx context.Context) error {
	_, err := i.plan.Get(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			i.svc.SetPlanAvailable(false)
			return nil
		}
		return err
	}
	i.svc.SetPlanAvailable(true)
	return nil
}

// RunAutomatic drives a full run without an operator, pacing frames with the
// rate limiter. It returns the terminal summary, or the state reached when
// the context was cancelled after stopping the run cleanly.
func (i *Interactor) RunAutomatic(ctx context.Context, input dto.StartInput) (dto.SummaryOutput, error) {
	summary, err := i.Start(ctx, input)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	for summary.Status == string(domain.StatusActive) {
		if err := i.limiter.Wait(ctx); err != nil {
			stopped, stopErr := i.Stop(context.WithoutCancel(ctx))
			if stopErr != nil {
				return stopped, stopErr
			}
			return stopped, err
		}
		frame, err := i.RecordFrame(ctx)
		if err != nil {
			return frame.Summary, err
		}
		summary = frame.Summary
	}
	return summary, nil
}

func (i *Interactor) GetRun(ctx context.Context, runID string) (dto.RunOutput, error) {
	run, err := i.store.Load(ctx, runID)
	if err != nil {
		return dto.RunOutput{}, err
	}
	return toRunOutput(run), nil
}

func (i *Interactor) ListRuns(ctx context.Context) ([]dto.RunOutput, error) {
	runs, err := i.store.List(ctx)
	if err != nil {
		return nil, err
	}
	outputs := make([]dto.RunOutput, 0, len(runs))
	for _, run := range runs {
		outputs = append(outputs, toRunOutput(run))
	}
	return outputs, nil
}

func (i *Interactor) toSummary(summary domain.Summary) dto.SummaryOutput {
	return dto.SummaryOutput{
		RunID:         summary.RunID,
		Status:        string(summary.Status),
		Recorded:      summary.Recorded,
		Total:         summary.Total,
		CurrentIndex:  summary.CurrentIndex,
		PendingFrames: summary.PendingFrames,
		WindowOpen:    i.svc.WindowOpen(),
	}
}

func toRunOutput(run domain.Run) dto.RunOutput {
	positions := make([]dto.PositionOutput, 0, len(run.Positions))
	for _, p := range run.Positions {
		positions = append(positions, dto.PositionOutput{
			ID:       p.ID,
			X:        p.X,
			Y:        p.Y,
			OffsetX:  p.OffsetX,
			OffsetY:  p.OffsetY,
			Distance: p.Distance,
		})
	}
	samples := make([]dto.SampleOutput, 0, len(run.Samples))
	for _, s := range run.Samples {
		samples = append(samples, dto.SampleOutput{
			PositionID: s.PositionID,
			X:          s.X,
			Y:          s.Y,
			Distance:   s.Distance,
			Frames:     s.Frames,
			Mean:       s.Mean(),
			RecordedAt: s.RecordedAt,
		})
	}
	return dto.RunOutput{
		ID:                run.ID,
		RegionID:          run.RegionID,
		WeightID:          run.WeightID,
		Status:            string(run.Status),
		FramesPerPosition: run.FramesPerPosition,
		StartedAt:         run.StartedAt,
		EndedAt:           run.EndedAt,
		Positions:         positions,
		Samples:           samples,
	}
}
