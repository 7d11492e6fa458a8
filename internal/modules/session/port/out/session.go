package out

import (
	"context"
	"time"

	"senscal/internal/modules/session/domain"
)

// GuideTimer drives the periodic measurement prompt while a run is active.
// Stop must be safe to call on a stopped timer.
type GuideTimer interface {
	Start(interval time.Duration)
	Stop()
	Running() bool
}

// GuideWindow is the surface that shows the operator where to press. Open
// and Close must both tolerate being called in the state they produce.
type GuideWindow interface {
	Open() error
	Close() error
	IsOpen() bool
}

// StopConfirmer asks the operator whether closing the guide window should
// end the run.
type StopConfirmer interface {
	ConfirmStop(ctx context.Context) (domain.CloseDecision, error)
}

// SampleSource produces one pressure reading for a position. Implementations
// range from the built-in simulator to external driver plugins.
type SampleSource interface {
	ReadFrame(ctx context.Context, pos domain.Position) (float64, error)
}

// FramePublisher pushes each reading to external consumers as it lands.
// Publishing is best effort; the controller logs failures and keeps going.
type FramePublisher interface {
	Publish(ctx context.Context, frame domain.Frame) error
}

// RunStore persists terminal runs and reads them back for analysis.
type RunStore interface {
	Save(ctx context.Context, run domain.Run) (string, error)
	Load(ctx context.Context, id string) (domain.Run, error)
	List(ctx context.Context) ([]domain.Run, error)
}

// RunProjector mirrors a terminal run into the queryable results index.
type RunProjector interface {
	Project(ctx context.Context, run domain.Run) error
}

// AffordanceSink receives the complete control row after every transition.
type AffordanceSink interface {
	Apply(affordances map[domain.Affordance]bool)
}
