package in

import (
	"context"

	sessiondto "senscal/internal/modules/session/dto"
	sessionin "senscal/internal/modules/session/port/in"
)

// TUIHandler is the session surface the terminal UI drives. Calls happen
// inside the event loop, so each one is short and synchronous.
type TUIHandler struct {
	usecase sessionin.Usecase
}

func NewTUIHandler(usecase sessionin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Start(ctx context.Context, weightID string) (sessiondto.SummaryOutput, error) {
	return h.usecase.Start(ctx, sessiondto.StartInput{WeightID: weightID})
}

func (h TUIHandler) RecordFrame(ctx context.Context) (sessiondto.FrameOutput, error) {
	return h.usecase.RecordFrame(ctx)
}

func (h TUIHandler) Next(ctx context.Context) (sessiondto.SummaryOutput, error) {
	return h.usecase.Next(ctx)
}

func (h TUIHandler) Previous(ctx context.Context) (sessiondto.SummaryOutput, error) {
	return h.usecase.Previous(ctx)
}

func (h TUIHandler) Stop(ctx context.Context) (sessiondto.SummaryOutput, error) {
	return h.usecase.Stop(ctx)
}

func (h TUIHandler) WindowClosed(ctx context.Context) (sessiondto.CloseOutput, error) {
	return h.usecase.WindowClosed(ctx)
}

func (h TUIHandler) Summary(ctx context.Context) (sessiondto.SummaryOutput, error) {
	return h.usecase.Summary(ctx)
}

func (h TUIHandler) Affordances(ctx context.Context) (map[string]bool, error) {
	return h.usecase.Affordances(ctx)
}

func (h TUIHandler) CurrentPosition(ctx context.Context) (sessiondto.PositionOutput, bool, error) {
	return h.usecase.CurrentPosition(ctx)
}

func (h TUIHandler) RefreshPlan(ctx context.Context) error {
	return h.usecase.RefreshPlan(ctx)
}
