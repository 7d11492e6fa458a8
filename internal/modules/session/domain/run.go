package domain

import (
	"fmt"
	"math"
	"time"

	apperrors "senscal/internal/platform/errors"
)

// Status describes the lifecycle of a measurement run. A run exists from the
// moment the controller is constructed; StatusIdle means no run has started
// yet in this session, the two terminal states keep their recorded samples
// around for analysis.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusActive    Status = "active"
	StatusStopped   Status = "stopped"
	StatusCompleted Status = "completed"
)

func (s Status) Terminal() bool {
	return s == StatusStopped || s == StatusCompleted
}

// Position is one target on the sensor grid, copied from the position plan
// when a run starts so the run stays self-contained once persisted.
type Position struct {
	ID       string  `yaml:"id"`
	X        int     `yaml:"x"`
	Y        int     `yaml:"y"`
	OffsetX  int     `yaml:"offset_x"`
	OffsetY  int     `yaml:"offset_y"`
	Distance float64 `yaml:"distance"`
}

// Sample is the sealed measurement for one position. Frames are raw pressure
// readings; once a sample is appended to the run it is never mutated, only
// popped whole by Previous.
type Sample struct {
	PositionID string    `yaml:"position_id"`
	X          int       `yaml:"x"`
	Y          int       `yaml:"y"`
	OffsetX    int       `yaml:"offset_x"`
	OffsetY    int       `yaml:"offset_y"`
	Distance   float64   `yaml:"distance"`
	Frames     []float64 `yaml:"frames"`
	RecordedAt time.Time `yaml:"recorded_at"`
}

func (s Sample) Mean() float64 {
	if len(s.Frames) == 0 {
		return 0
	}
	var sum float64
	for _, f := range s.Frames {
		sum += f
	}
	return sum / float64(len(s.Frames))
}

// Frame is a single pressure reading tied to the run and position it was
// taken for, in the shape published to external consumers.
type Frame struct {
	RunID      string    `json:"run_id"`
	PositionID string    `json:"position_id"`
	X          int       `json:"x"`
	Y          int       `json:"y"`
	Index      int       `json:"index"`
	Pressure   float64   `json:"pressure"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Run holds the full state of one measurement session. CurrentIndex always
// sits in [0, len(Positions)]; it equals len(Positions) exactly when the run
// completed. Frames for the position in progress accumulate in pending and
// only become a Sample when the position seals, so terminal runs never carry
// half-measured positions.
type Run struct {
	ID                string     `yaml:"id"`
	RegionID          string     `yaml:"region_id"`
	WeightID          string     `yaml:"weight_id"`
	FramesPerPosition int        `yaml:"frames_per_position"`
	Positions         []Position `yaml:"positions"`
	Samples           []Sample   `yaml:"samples"`
	Status            Status     `yaml:"status"`
	CurrentIndex      int        `yaml:"current_index"`
	StartedAt         time.Time  `yaml:"started_at"`
	EndedAt           time.Time  `yaml:"ended_at,omitempty"`

	pending []float64
}

func NewRun(id, regionID, weightID string, positions []Position, framesPerPosition int, startedAt time.Time) (Run, error) {
	if weightID == "" {
		return Run{}, fmt.Errorf("%w: weight id is required", apperrors.ErrInvalidParameter)
	}
	if len(positions) == 0 {
		return Run{}, fmt.Errorf("%w: run needs at least one position", apperrors.ErrInvalidParameter)
	}
	if framesPerPosition <= 0 {
		return Run{}, fmt.Errorf("%w: frames per position must be positive", apperrors.ErrInvalidParameter)
	}
	return Run{
		ID:                id,
		RegionID:          regionID,
		WeightID:          weightID,
		FramesPerPosition: framesPerPosition,
		Positions:         append([]Position(nil), positions...),
		Status:            StatusActive,
		StartedAt:         startedAt,
	}, nil
}

// CurrentPosition returns the position being measured. The second return is
// false when every position has sealed.
func (r *Run) CurrentPosition() (Position, bool) {
	if r.CurrentIndex >= len(r.Positions) {
		return Position{}, false
	}
	return r.Positions[r.CurrentIndex], true
}

func (r *Run) PendingFrames() int {
	return len(r.pending)
}

func (r *Run) HasSamples() bool {
	return len(r.Samples) > 0
}

// RecordFrame appends one reading to the position in progress. When the
// reading fills the position's frame quota the sample seals and the run
// advances; sealing the last position completes the run.
func (r *Run) RecordFrame(value float64, now time.Time) (sealed bool, err error) {
	if r.Status != StatusActive {
		return false, apperrors.ErrNotActive
	}
	r.pending = append(r.pending, value)
	if len(r.pending) < r.FramesPerPosition {
		return false, nil
	}
	r.seal(now)
	return true, nil
}

// Next seals the current position with the frames recorded so far. At least
// one frame must exist; a position is never skipped without data.
func (r *Run) Next(now time.Time) error {
	if r.Status != StatusActive {
		return apperrors.ErrNotActive
	}
	if len(r.pending) == 0 {
		return fmt.Errorf("%w: no frames recorded for %s", apperrors.ErrNoResults, r.Positions[r.CurrentIndex].ID)
	}
	r.seal(now)
	return nil
}

// Previous discards the frames in progress and, when a sealed sample exists,
// pops it and steps back so the position can be re-measured. At the first
// position with nothing recorded it is a no-op.
func (r *Run) Previous() error {
	if r.Status != StatusActive {
		return apperrors.ErrNotActive
	}
	r.pending = nil
	if r.CurrentIndex == 0 {
		return nil
	}
	r.CurrentIndex--
	r.Samples = r.Samples[:len(r.Samples)-1]
	return nil
}

// Stop ends the run early, keeping every sealed sample and dropping frames
// in progress. Stopping a terminal run changes nothing.
func (r *Run) Stop(now time.Time) {
	if r.Status.Terminal() {
		return
	}
	r.Status = StatusStopped
	r.EndedAt = now
	r.pending = nil
}

func (r *Run) seal(now time.Time) {
	pos := r.Positions[r.CurrentIndex]
	r.Samples = append(r.Samples, Sample{
		PositionID: pos.ID,
		X:          pos.X,
		Y:          pos.Y,
		OffsetX:    pos.OffsetX,
		OffsetY:    pos.OffsetY,
		Distance:   pos.Distance,
		Frames:     r.pending,
		RecordedAt: now,
	})
	r.pending = nil
	r.CurrentIndex++
	if r.CurrentIndex == len(r.Positions) {
		r.Status = StatusCompleted
		r.EndedAt = now
	}
}

// SimulatedPressure models the reading for a position at the given distance
// from its region base: a 1% rise per grid unit on a 1000-count baseline
// plus bounded noise from the caller.
func SimulatedPressure(distance, noise float64) float64 {
	return 1000*(1+0.01*distance) + noise
}

// Summary is the run condensed for display and logging.
type Summary struct {
	RunID         string
	Status        Status
	Recorded      int
	Total         int
	CurrentIndex  int
	PendingFrames int
}

func (r *Run) Summary() Summary {
	return Summary{
		RunID:         r.ID,
		Status:        r.Status,
		Recorded:      len(r.Samples),
		Total:         len(r.Positions),
		CurrentIndex:  r.CurrentIndex,
		PendingFrames: len(r.pending),
	}
}

// Progress reports sealed positions against the plan total as a ratio.
func (r *Run) Progress() float64 {
	if len(r.Positions) == 0 {
		return 0
	}
	return math.Min(1, float64(len(r.Samples))/float64(len(r.Positions)))
}
