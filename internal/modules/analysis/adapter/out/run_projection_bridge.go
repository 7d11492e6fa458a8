package out

import (
	"context"

	"senscal/internal/modules/analysis/dto"
	analysisin "senscal/internal/modules/analysis/port/in"
	sessiondomain "senscal/internal/modules/session/domain"
	sessionout "senscal/internal/modules/session/port/out"
)

// RunProjectionBridge lets the session controller feed terminal runs into
// the results index without knowing about the analysis module.
type RunProjectionBridge struct {
	analysis analysisin.Usecase
}

func NewRunProjectionBridge(analysis analysisin.Usecase) sessionout.RunProjector {
	return &RunProjectionBridge{analysis: analysis}
}

func (b *RunProjectionBridge) Project(ctx context.Context, run sessiondomain.Run) error {
	samples := make([]dto.SampleInput, 0, len(run.Samples))
	for _, sample := range run.Samples {
		samples = append(samples, dto.SampleInput{
			PositionID: sample.PositionID,
			X:          sample.X,
			Y:          sample.Y,
			Distance:   sample.Distance,
			Frames:     sample.Frames,
		})
	}
	return b.analysis.Project(ctx, dto.RunInput{
		ID:        run.ID,
		RegionID:  run.RegionID,
		WeightID:  run.WeightID,
		Status:    string(run.Status),
		StartedAt: run.StartedAt,
		EndedAt:   run.EndedAt,
		Samples:   samples,
	})
}
