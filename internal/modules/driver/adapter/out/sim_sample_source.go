package out

import (
	"context"
	"math/rand"

	sessiondomain "senscal/internal/modules/session/domain"
	sessionout "senscal/internal/modules/session/port/out"
)

// noiseRange bounds the uniform noise added to each simulated reading.
const noiseRange = 50.0

// SimSampleSource is the builtin sensor: pressure scales with the position's
// distance from its region base plus uniform noise in [-50, 50).
type SimSampleSource struct {
	rng *rand.Rand
}

func NewSimSampleSource(rng *rand.Rand) *SimSampleSource {
	return &SimSampleSource{rng: rng}
}

func (s *SimSampleSource) ReadFrame(_ context.Context, pos sessiondomain.Position) (float64, error) {
	noise := (s.rng.Float64()*2 - 1) * noiseRange
	return sessiondomain.SimulatedPressure(pos.Distance, noise), nil
}

var _ sessionout.SampleSource = (*SimSampleSource)(nil)
