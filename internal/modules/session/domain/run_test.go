package domain

import (
	"errors"
	"math"
	"testing"
	"time"

	apperrors "senscal/internal/platform/errors"
)

func testPositions(n int) []Position {
	positions := make([]Position, 0, n)
	for i := 0; i < n; i++ {
		positions = append(positions, Position{ID: "pos_" + string(rune('1'+i)), X: 16 + i, Y: 32})
	}
	return positions
}

func TestNewRunValidation(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	if _, err := NewRun("r1", "center", "", testPositions(3), 5, now); !errors.Is(err, apperrors.ErrInvalidParameter) {
		t.Fatalf("expected invalid parameter for empty weight, got %v", err)
	}
	if _, err := NewRun("r1", "center", "w500", nil, 5, now); !errors.Is(err, apperrors.ErrInvalidParameter) {
		t.Fatalf("expected invalid parameter for empty positions, got %v", err)
	}
	if _, err := NewRun("r1", "center", "w500", testPositions(3), 0, now); !errors.Is(err, apperrors.ErrInvalidParameter) {
		t.Fatalf("expected invalid parameter for zero frames, got %v", err)
	}

	run, err := NewRun("r1", "center", "w500", testPositions(3), 5, now)
	if err != nil {
		t.Fatalf("NewRun failed: %v", err)
	}
	if run.Status != StatusActive {
		t.Fatalf("expected active run, got %s", run.Status)
	}
	if run.CurrentIndex != 0 {
		t.Fatalf("expected index 0, got %d", run.CurrentIndex)
	}
}

func TestRecordFrameSealsAtQuota(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	run, _ := NewRun("r1", "center", "w500", testPositions(2), 3, now)

	for i := 0; i < 2; i++ {
		sealed, err := run.RecordFrame(1000, now)
		if err != nil {
			t.Fatalf("record frame %d: %v", i, err)
		}
		if sealed {
			t.Fatalf("frame %d sealed before quota", i)
		}
	}
	sealed, err := run.RecordFrame(1010, now)
	if err != nil {
		t.Fatalf("record sealing frame: %v", err)
	}
	if !sealed {
		t.Fatal("expected third frame to seal the position")
	}
	if len(run.Samples) != 1 {
		t.Fatalf("expected 1 sample, got %d", len(run.Samples))
	}
	if run.CurrentIndex != 1 {
		t.Fatalf("expected index 1, got %d", run.CurrentIndex)
	}
	if got := run.Samples[0].Mean(); math.Abs(got-3010.0/3) > 1e-9 {
		t.Fatalf("unexpected sample mean %f", got)
	}
}

func TestRunCompletesOnLastSeal(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	run, _ := NewRun("r1", "center", "w500", testPositions(2), 1, now)

	if _, err := run.RecordFrame(1000, now); err != nil {
		t.Fatalf("record: %v", err)
	}
	if run.Status != StatusActive {
		t.Fatalf("run terminal too early: %s", run.Status)
	}
	if _, err := run.RecordFrame(1001, now); err != nil {
		t.Fatalf("record: %v", err)
	}
	if run.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s", run.Status)
	}
	if run.CurrentIndex != len(run.Positions) {
		t.Fatalf("completed run index %d, want %d", run.CurrentIndex, len(run.Positions))
	}
	if _, err := run.RecordFrame(1002, now); !errors.Is(err, apperrors.ErrNotActive) {
		t.Fatalf("expected not-active after completion, got %v", err)
	}
}

func TestNextRequiresFrames(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	run, _ := NewRun("r1", "center", "w500", testPositions(2), 5, now)

	if err := run.Next(now); !errors.Is(err, apperrors.ErrNoResults) {
		t.Fatalf("expected no-results for empty position, got %v", err)
	}
	if _, err := run.RecordFrame(1000, now); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := run.Next(now); err != nil {
		t.Fatalf("next after one frame: %v", err)
	}
	if len(run.Samples) != 1 || len(run.Samples[0].Frames) != 1 {
		t.Fatalf("expected one sealed sample with one frame, got %+v", run.Samples)
	}
}

func TestPreviousReopensLastSample(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	run, _ := NewRun("r1", "center", "w500", testPositions(3), 1, now)

	// First position is a no-op.
	if err := run.Previous(); err != nil {
		t.Fatalf("previous at start: %v", err)
	}
	if run.CurrentIndex != 0 {
		t.Fatalf("index moved at start: %d", run.CurrentIndex)
	}

	if _, err := run.RecordFrame(1000, now); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := run.Previous(); err != nil {
		t.Fatalf("previous: %v", err)
	}
	if run.CurrentIndex != 0 || len(run.Samples) != 0 {
		t.Fatalf("expected reopened first position, index=%d samples=%d", run.CurrentIndex, len(run.Samples))
	}
}

func TestPreviousDiscardsPendingFrames(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	run, _ := NewRun("r1", "center", "w500", testPositions(2), 3, now)

	for i := 0; i < 3; i++ {
		if _, err := run.RecordFrame(1000, now); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	if _, err := run.RecordFrame(1010, now); err != nil {
		t.Fatalf("record pending: %v", err)
	}
	if run.PendingFrames() != 1 {
		t.Fatalf("expected 1 pending frame, got %d", run.PendingFrames())
	}
	if err := run.Previous(); err != nil {
		t.Fatalf("previous: %v", err)
	}
	if run.PendingFrames() != 0 {
		t.Fatalf("pending frames survived previous: %d", run.PendingFrames())
	}
	if run.CurrentIndex != 0 || len(run.Samples) != 0 {
		t.Fatalf("expected first sample popped, index=%d samples=%d", run.CurrentIndex, len(run.Samples))
	}
}

func TestStopIsIdempotentAndKeepsSamples(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	later := now.Add(time.Minute)
	run, _ := NewRun("r1", "center", "w500", testPositions(3), 1, now)

	if _, err := run.RecordFrame(1000, now); err != nil {
		t.Fatalf("record: %v", err)
	}
	run.Stop(now)
	if run.Status != StatusStopped {
		t.Fatalf("expected stopped, got %s", run.Status)
	}
	if len(run.Samples) != 1 {
		t.Fatalf("stop dropped sealed samples: %d", len(run.Samples))
	}

	run.Stop(later)
	if !run.EndedAt.Equal(now) {
		t.Fatalf("second stop moved end time to %v", run.EndedAt)
	}
}

func TestSimulatedPressure(t *testing.T) {
	t.Parallel()

	if got := SimulatedPressure(0, 0); got != 1000 {
		t.Fatalf("baseline pressure %f", got)
	}
	if got := SimulatedPressure(5, 0); math.Abs(got-1050) > 1e-9 {
		t.Fatalf("pressure at distance 5: %f", got)
	}
	if got := SimulatedPressure(2, -10); math.Abs(got-1010) > 1e-9 {
		t.Fatalf("pressure with noise: %f", got)
	}
}
