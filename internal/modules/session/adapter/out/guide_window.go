package out

import (
	sessionout "senscal/internal/modules/session/port/out"
)

// StateGuideWindow models the guide surface for hosts that render from
// state. Open and Close are idempotent; the host reads IsOpen each frame.
type StateGuideWindow struct {
	open bool
}

func NewStateGuideWindow() *StateGuideWindow {
	return &StateGuideWindow{}
}

func (w *StateGuideWindow) Open() error {
	w.open = true
	return nil
}

func (w *StateGuideWindow) Close() error {
	w.open = false
	return nil
}

func (w *StateGuideWindow) IsOpen() bool {
	return w.open
}

var _ sessionout.GuideWindow = (*StateGuideWindow)(nil)
