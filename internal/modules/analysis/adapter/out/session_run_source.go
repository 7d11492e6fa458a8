package out

import (
	"context"

	"senscal/internal/modules/analysis/domain"
	analysisout "senscal/internal/modules/analysis/port/out"
	sessionout "senscal/internal/modules/session/port/out"
)

// SessionRunSource loads runs for analysis straight from the session
// module's run archive.
type SessionRunSource struct {
	store sessionout.RunStore
}

func NewSessionRunSource(store sessionout.RunStore) analysisout.RunSource {
	return &SessionRunSource{store: store}
}

func (s *SessionRunSource) Load(ctx context.Context, id string) (domain.Run, error) {
	run, err := s.store.Load(ctx, id)
	if err != nil {
		return domain.Run{}, err
	}
	samples := make([]domain.Sample, 0, len(run.Samples))
	for _, sample := range run.Samples {
		samples = append(samples, domain.Sample{
			PositionID: sample.PositionID,
			X:          sample.X,
			Y:          sample.Y,
			Distance:   sample.Distance,
			Frames:     sample.Frames,
		})
	}
	return domain.Run{
		ID:        run.ID,
		RegionID:  run.RegionID,
		WeightID:  run.WeightID,
		Status:    string(run.Status),
		StartedAt: run.StartedAt,
		EndedAt:   run.EndedAt,
		Samples:   samples,
	}, nil
}
