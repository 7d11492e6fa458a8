package out

import (
	"time"

	sessionout "senscal/internal/modules/session/port/out"
)

// StateGuideTimer tracks the guide cadence for pull-based hosts. The TUI
// event loop schedules its own ticks and consults Running to decide whether
// the chain continues, so the timer itself never spawns goroutines.
type StateGuideTimer struct {
	interval time.Duration
	running  bool
	starts   int
	stops    int
}

func NewStateGuideTimer() *StateGuideTimer {
	return &StateGuideTimer{}
}

func (t *StateGuideTimer) Start(interval time.Duration) {
	t.interval = interval
	t.running = true
	t.starts++
}

func (t *StateGuideTimer) Stop() {
	if !t.running {
		return
	}
	t.running = false
	t.stops++
}

func (t *StateGuideTimer) Running() bool {
	return t.running
}

func (t *StateGuideTimer) Interval() time.Duration {
	return t.interval
}

var _ sessionout.GuideTimer = (*StateGuideTimer)(nil)
