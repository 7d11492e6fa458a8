package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"senscal/internal/modules/session/domain"
	sessionout "senscal/internal/modules/session/port/out"
	"senscal/internal/platform/clock"
	apperrors "senscal/internal/platform/errors"
	"senscal/internal/platform/id"
)

// GuideInterval is how often the guide prompts for the next reading.
const GuideInterval = 500 * time.Millisecond

// SessionService is the measurement run controller. It owns the run state
// machine and drives the guide collaborators (timer, window, confirm dialog)
// as side effects of each transition. All methods assume a single caller;
// the hosting event loop serializes access.
type SessionService struct {
	clock     clock.Clock
	idGen     id.Generator
	log       hclog.Logger
	timer     sessionout.GuideTimer
	window    sessionout.GuideWindow
	confirm   sessionout.StopConfirmer
	source    sessionout.SampleSource
	publisher sessionout.FramePublisher
	store     sessionout.RunStore
	projector sessionout.RunProjector
	sink      sessionout.AffordanceSink

	run           domain.Run
	planAvailable bool
	tornDown      bool
}

type Deps struct {
	Clock     clock.Clock
	IDGen     id.Generator
	Log       hclog.Logger
	Timer     sessionout.GuideTimer
	Window    sessionout.GuideWindow
	Confirm   sessionout.StopConfirmer
	Source    sessionout.SampleSource
	Publisher sessionout.FramePublisher
	Store     sessionout.RunStore
	Projector sessionout.RunProjector
	Sink      sessionout.AffordanceSink
}

func NewSessionService(deps Deps) *SessionService {
	s := &SessionService{
		clock:     deps.Clock,
		idGen:     deps.IDGen,
		log:       deps.Log,
		timer:     deps.Timer,
		window:    deps.Window,
		confirm:   deps.Confirm,
		source:    deps.Source,
		publisher: deps.Publisher,
		store:     deps.Store,
		projector: deps.Projector,
		sink:      deps.Sink,
	}
	s.run.Status = domain.StatusIdle
	s.applyAffordances()
	return s
}

// SetPlanAvailable records whether a position plan exists, which gates the
// start-run affordance outside an active run.
func (s *SessionService) SetPlanAvailable(ok bool) {
	s.planAvailable = ok
	s.applyAffordances()
}

// Start replaces any terminal run with a fresh active one and brings up the
// guide timer and window. Starting over an active run is an error.
func (s *SessionService) Start(ctx context.Context, regionID, weightID string, positions []domain.Position, framesPerPosition int) (domain.Summary, error) {
	if s.run.Status == domain.StatusActive {
		return domain.Summary{}, apperrors.ErrRunActive
	}
	run, err := domain.NewRun(s.idGen.New(), regionID, weightID, positions, framesPerPosition, s.clock.Now())
	if err != nil {
		return domain.Summary{}, err
	}
	s.run = run
	s.tornDown = false
	s.planAvailable = true
	s.timer.Start(GuideInterval)
	if err := s.window.Open(); err != nil {
		s.timer.Stop()
		s.run.Stop(s.clock.Now())
		return domain.Summary{}, fmt.Errorf("open guide window: %w", err)
	}
	s.applyAffordances()
	s.log.Info("measurement run started",
		"run", run.ID, "region", regionID, "weight", weightID, "positions", len(positions))
	return s.run.Summary(), nil
}

// RecordFrame reads one pressure value from the sample source and feeds it
// to the run. Completing the last position triggers teardown.
func (s *SessionService) RecordFrame(ctx context.Context) (domain.Frame, bool, error) {
	if s.run.Status != domain.StatusActive {
		return domain.Frame{}, false, apperrors.ErrNotActive
	}
	pos, ok := s.run.CurrentPosition()
	if !ok {
		return domain.Frame{}, false, apperrors.ErrNotActive
	}
	value, err := s.source.ReadFrame(ctx, pos)
	if err != nil {
		return domain.Frame{}, false, fmt.Errorf("read frame at %s: %w", pos.ID, err)
	}
	frame := domain.Frame{
		RunID:      s.run.ID,
		PositionID: pos.ID,
		X:          pos.X,
		Y:          pos.Y,
		Index:      s.run.PendingFrames(),
		Pressure:   value,
		RecordedAt: s.clock.Now(),
	}
	sealed, err := s.run.RecordFrame(value, s.clock.Now())
	if err != nil {
		return domain.Frame{}, false, err
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, frame); err != nil {
			s.log.Warn("frame publish failed", "run", s.run.ID, "position", pos.ID, "error", err)
		}
	}
	if s.run.Status == domain.StatusCompleted {
		s.log.Info("measurement run completed", "run", s.run.ID, "samples", len(s.run.Samples))
		s.teardown(ctx)
	}
	s.applyAffordances()
	return frame, sealed, nil
}

// Next seals the position in progress early. Sealing the last position
// completes the run and tears down like a full seal would.
func (s *SessionService) Next(ctx context.Context) (domain.Summary, error) {
	if err := s.run.Next(s.clock.Now()); err != nil {
		return domain.Summary{}, err
	}
	if s.run.Status == domain.StatusCompleted {
		s.log.Info("measurement run completed", "run", s.run.ID, "samples", len(s.run.Samples))
		s.teardown(ctx)
	}
	s.applyAffordances()
	return s.run.Summary(), nil
}

// Previous reopens the last sealed position for re-measurement.
func (s *SessionService) Previous(ctx context.Context) (domain.Summary, error) {
	if err := s.run.Previous(); err != nil {
		return domain.Summary{}, err
	}
	s.applyAffordances()
	return s.run.Summary(), nil
}

// UserStop ends the run from an explicit stop request. Stopping an idle or
// terminal run is a no-op that reports the current state.
func (s *SessionService) UserStop(ctx context.Context) (domain.Summary, error) {
	if s.run.Status != domain.StatusActive {
		return s.run.Summary(), nil
	}
	s.run.Stop(s.clock.Now())
	s.log.Info("measurement run stopped", "run", s.run.ID, "samples", len(s.run.Samples))
	s.teardown(ctx)
	return s.run.Summary(), nil
}

// WindowClosed handles the operator closing the guide window. With a run
// active the operator is asked to confirm; a veto (or a failed prompt)
// reopens the window and the run continues untouched.
func (s *SessionService) WindowClosed(ctx context.Context) (domain.CloseDecision, error) {
	if s.run.Status != domain.StatusActive {
		return domain.DecisionStop, nil
	}
	decision, err := s.confirm.ConfirmStop(ctx)
	if err != nil {
		s.log.Warn("stop confirmation failed, resuming run", "run", s.run.ID, "error", err)
		decision = domain.DecisionResume
	}
	if decision != domain.DecisionStop {
		if err := s.window.Open(); err != nil {
			s.log.Warn("guide window reopen failed", "run", s.run.ID, "error", err)
		}
		return domain.DecisionResume, nil
	}
	s.run.Stop(s.clock.Now())
	s.log.Info("measurement run stopped on window close", "run", s.run.ID, "samples", len(s.run.Samples))
	s.teardown(ctx)
	return domain.DecisionStop, nil
}

func (s *SessionService) Summary() domain.Summary {
	return s.run.Summary()
}

func (s *SessionService) WindowOpen() bool {
	return s.window.IsOpen()
}

func (s *SessionService) CurrentPosition() (domain.Position, bool) {
	if s.run.Status != domain.StatusActive {
		return domain.Position{}, false
	}
	return s.run.CurrentPosition()
}

// Run returns a copy of the current run for persistence and analysis.
func (s *SessionService) Run() domain.Run {
	return s.run
}

func (s *SessionService) Affordances() map[domain.Affordance]bool {
	return domain.Affordances(s.run.Status, s.planAvailable, s.run.HasSamples())
}

// teardown releases every guide collaborator and persists the run. Each step
// is guarded so one failure cannot keep another resource alive; a second call
// for the same run does nothing. Failures are logged and never reach the
// caller: the run is in a terminal state by the time teardown runs.
func (s *SessionService) teardown(ctx context.Context) {
	if s.tornDown {
		return
	}
	s.tornDown = true
	var failures []error
	s.timer.Stop()
	if err := s.window.Close(); err != nil {
		s.log.Warn("guide window close failed", "run", s.run.ID, "error", err)
		failures = append(failures, fmt.Errorf("close window: %w", err))
	}
	if s.run.HasSamples() {
		path, err := s.store.Save(ctx, s.run)
		if err != nil {
			s.log.Warn("run save failed", "run", s.run.ID, "error", err)
			failures = append(failures, fmt.Errorf("save run: %w", err))
		} else {
			s.log.Info("run saved", "run", s.run.ID, "path", path)
		}
		if s.projector != nil {
			if err := s.projector.Project(ctx, s.run); err != nil {
				s.log.Warn("run projection failed", "run", s.run.ID, "error", err)
				failures = append(failures, fmt.Errorf("project run: %w", err))
			}
		}
	}
	s.applyAffordances()
	if len(failures) > 0 {
		s.log.Warn("teardown finished with failures", "run", s.run.ID,
			"error", fmt.Errorf("%w: %w", apperrors.ErrTeardownPartial, errors.Join(failures...)))
	}
}

func (s *SessionService) applyAffordances() {
	if s.sink == nil {
		return
	}
	s.sink.Apply(s.Affordances())
}
