package out

import (
	"context"

	"senscal/internal/modules/session/domain"
	sessionout "senscal/internal/modules/session/port/out"
)

// ConfirmerFunc adapts a function to the stop-confirmation port. Interactive
// hosts capture the operator's answer in the closure before reporting the
// window close.
type ConfirmerFunc func(ctx context.Context) (domain.CloseDecision, error)

func (f ConfirmerFunc) ConfirmStop(ctx context.Context) (domain.CloseDecision, error) {
	return f(ctx)
}

// StaticStopConfirmer always answers with the same decision. Headless runs
// use it to stop without prompting.
type StaticStopConfirmer struct {
	Decision domain.CloseDecision
}

func (c StaticStopConfirmer) ConfirmStop(context.Context) (domain.CloseDecision, error) {
	return c.Decision, nil
}

// DecisionBox holds the operator's answer to the stop-confirmation dialog.
// Interactive hosts collect the answer first, store it here, then report the
// window close; the controller reads it back through ConfirmStop.
type DecisionBox struct {
	decision domain.CloseDecision
}

func NewDecisionBox() *DecisionBox {
	return &DecisionBox{decision: domain.DecisionResume}
}

func (b *DecisionBox) Set(d domain.CloseDecision) {
	b.decision = d
}

func (b *DecisionBox) ConfirmStop(context.Context) (domain.CloseDecision, error) {
	return b.decision, nil
}

var (
	_ sessionout.StopConfirmer = ConfirmerFunc(nil)
	_ sessionout.StopConfirmer = StaticStopConfirmer{}
	_ sessionout.StopConfirmer = (*DecisionBox)(nil)
)
