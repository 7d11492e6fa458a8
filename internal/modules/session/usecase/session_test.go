package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/time/rate"

	plandto "senscal/internal/modules/plan/dto"
	sessionadapter "senscal/internal/modules/session/adapter/out"
	"senscal/internal/modules/session/domain"
	"senscal/internal/modules/session/dto"
	"senscal/internal/modules/session/service"
	"senscal/internal/modules/session/usecase"
	"senscal/internal/platform/clock"
	apperrors "senscal/internal/platform/errors"
)

type fakePlan struct {
	plan plandto.PlanOutput
	err  error
}

func (f *fakePlan) Generate(context.Context, plandto.GenerateInput) (plandto.PlanOutput, error) {
	return f.plan, f.err
}

func (f *fakePlan) Get(context.Context) (plandto.PlanOutput, error) {
	return f.plan, f.err
}

type fakeTimer struct{ running bool }

func (f *fakeTimer) Start(time.Duration) { f.running = true }
func (f *fakeTimer) Stop()               { f.running = false }
func (f *fakeTimer) Running() bool       { return f.running }

type fakeWindow struct{ open bool }

func (f *fakeWindow) Open() error  { f.open = true; return nil }
func (f *fakeWindow) Close() error { f.open = false; return nil }
func (f *fakeWindow) IsOpen() bool { return f.open }

type fakeSource struct{ value float64 }

func (f *fakeSource) ReadFrame(context.Context, domain.Position) (float64, error) {
	f.value++
	return f.value, nil
}

type memoryStore struct{ saved []domain.Run }

func (m *memoryStore) Save(_ context.Context, run domain.Run) (string, error) {
	m.saved = append(m.saved, run)
	return "runs/run.yaml", nil
}

func (m *memoryStore) Load(_ context.Context, id string) (domain.Run, error) {
	for _, run := range m.saved {
		if run.ID == id {
			return run, nil
		}
	}
	return domain.Run{}, apperrors.ErrNotFound
}

func (m *memoryStore) List(context.Context) ([]domain.Run, error) {
	return m.saved, nil
}

type staticIDs struct{}

func (staticIDs) New() string { return "run-0001" }

func newHarness(t *testing.T, plan *fakePlan) (*usecase.Interactor, *memoryStore) {
	t.Helper()
	store := &memoryStore{}
	svc := service.NewSessionService(service.Deps{
		Clock:   clock.NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)),
		IDGen:   staticIDs{},
		Log:     hclog.NewNullLogger(),
		Timer:   &fakeTimer{},
		Window:  &fakeWindow{},
		Confirm: sessionadapter.StaticStopConfirmer{Decision: domain.DecisionStop},
		Source:  &fakeSource{},
		Store:   store,
	})
	uc := usecase.NewInteractor(svc, plan, store, rate.NewLimiter(rate.Inf, 1))
	return uc.(*usecase.Interactor), store
}

func twoPositionPlan() *fakePlan {
	return &fakePlan{plan: plandto.PlanOutput{
		RegionID:          "center",
		FramesPerPosition: 2,
		Positions: []plandto.PositionOutput{
			{ID: "pos_1", X: 32, Y: 32},
			{ID: "pos_2", X: 33, Y: 31, Distance: 1.41},
		},
	}}
}

func TestRunAutomaticCompletesPlan(t *testing.T) {
	t.Parallel()
	uc, store := newHarness(t, twoPositionPlan())

	summary, err := uc.RunAutomatic(context.Background(), dto.StartInput{WeightID: "w500"})
	if err != nil {
		t.Fatalf("run automatic: %v", err)
	}
	if summary.Status != string(domain.StatusCompleted) {
		t.Fatalf("status %s, want completed", summary.Status)
	}
	if summary.Recorded != 2 {
		t.Fatalf("recorded %d positions, want 2", summary.Recorded)
	}
	if len(store.saved) != 1 {
		t.Fatalf("expected 1 archived run, got %d", len(store.saved))
	}
	run := store.saved[0]
	if run.WeightID != "w500" || len(run.Samples) != 2 {
		t.Fatalf("archived run wrong: %+v", run)
	}
	for _, sample := range run.Samples {
		if len(sample.Frames) != 2 {
			t.Fatalf("sample %s has %d frames, want 2", sample.PositionID, len(sample.Frames))
		}
	}
}

func TestRunAutomaticStopsOnCancel(t *testing.T) {
	t.Parallel()
	store := &memoryStore{}
	svc := service.NewSessionService(service.Deps{
		Clock:   clock.NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)),
		IDGen:   staticIDs{},
		Log:     hclog.NewNullLogger(),
		Timer:   &fakeTimer{},
		Window:  &fakeWindow{},
		Confirm: sessionadapter.StaticStopConfirmer{Decision: domain.DecisionStop},
		Source:  &fakeSource{},
		Store:   store,
	})
	// A zero-burst limiter never admits a frame, so the pacing wait fails and
	// the loop must stop the run cleanly before reporting the error.
	uc := usecase.NewInteractor(svc, twoPositionPlan(), store, rate.NewLimiter(0, 0))

	summary, err := uc.RunAutomatic(context.Background(), dto.StartInput{WeightID: "default"})
	if err == nil {
		t.Fatal("expected pacing error")
	}
	if summary.Status != string(domain.StatusStopped) {
		t.Fatalf("status %s, want stopped after abort", summary.Status)
	}
}

func TestRefreshPlanGatesStartAffordance(t *testing.T) {
	t.Parallel()
	plan := &fakePlan{err: apperrors.ErrNotFound}
	uc, _ := newHarness(t, plan)

	if err := uc.RefreshPlan(context.Background()); err != nil {
		t.Fatalf("refresh without plan: %v", err)
	}
	affordances, err := uc.Affordances(context.Background())
	if err != nil {
		t.Fatalf("affordances: %v", err)
	}
	if affordances[string(domain.AffordanceStartRun)] {
		t.Fatal("start must be disabled without a plan")
	}

	plan.err = nil
	plan.plan = twoPositionPlan().plan
	if err := uc.RefreshPlan(context.Background()); err != nil {
		t.Fatalf("refresh with plan: %v", err)
	}
	affordances, err = uc.Affordances(context.Background())
	if err != nil {
		t.Fatalf("affordances: %v", err)
	}
	if !affordances[string(domain.AffordanceStartRun)] {
		t.Fatal("start must be enabled once a plan exists")
	}
}
