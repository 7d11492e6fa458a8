package domain

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	apperrors "senscal/internal/platform/errors"
)

const gridSize = 64

// maxAttemptsPerPosition bounds the rejection sampling loop so a jitter
// window smaller than the requested count cannot spin forever.
const maxAttemptsPerPosition = 100

// Position is one jittered probe location. Immutable once generated.
type Position struct {
	ID       string  `yaml:"id"`
	X        int     `yaml:"x"`
	Y        int     `yaml:"y"`
	OffsetX  int     `yaml:"offset_x"`
	OffsetY  int     `yaml:"offset_y"`
	Distance float64 `yaml:"distance"`
}

// Plan is an immutable ordered list of probe positions around a region.
type Plan struct {
	RegionID          string     `yaml:"region_id"`
	BaseX             int        `yaml:"base_x"`
	BaseY             int        `yaml:"base_y"`
	Jitter            int        `yaml:"jitter"`
	FramesPerPosition int        `yaml:"frames_per_position"`
	GeneratedAt       time.Time  `yaml:"generated_at"`
	Positions         []Position `yaml:"positions"`
}

type GenerateParams struct {
	RegionID          string
	BaseX             int
	BaseY             int
	Count             int
	Jitter            int
	FramesPerPosition int
}

func (p GenerateParams) Validate() error {
	if p.Count <= 0 {
		return fmt.Errorf("%w: position count must be positive, got %d", apperrors.ErrInvalidParameter, p.Count)
	}
	if p.Jitter <= 0 {
		return fmt.Errorf("%w: jitter range must be positive, got %d", apperrors.ErrInvalidParameter, p.Jitter)
	}
	if p.FramesPerPosition <= 0 {
		return fmt.Errorf("%w: frames per position must be positive, got %d", apperrors.ErrInvalidParameter, p.FramesPerPosition)
	}
	return nil
}

// Generate produces up to Count unique positions by perturbing the base
// coordinate by at most ±Jitter on each axis. Candidates falling outside the
// grid or colliding with an already chosen position are rejected; a position
// slot that exhausts its attempt budget is skipped, so the result may hold
// fewer than Count positions when the jitter window is tight.
func Generate(params GenerateParams, rng *rand.Rand, now time.Time) (Plan, error) {
	if err := params.Validate(); err != nil {
		return Plan{}, err
	}

	used := make(map[[2]int]struct{}, params.Count)
	positions := make([]Position, 0, params.Count)
	for i := 0; i < params.Count; i++ {
		for attempt := 0; attempt < maxAttemptsPerPosition; attempt++ {
			offsetX := rng.Intn(2*params.Jitter+1) - params.Jitter
			offsetY := rng.Intn(2*params.Jitter+1) - params.Jitter
			x := params.BaseX + offsetX
			y := params.BaseY + offsetY
			if x < 0 || x >= gridSize || y < 0 || y >= gridSize {
				continue
			}
			key := [2]int{x, y}
			if _, taken := used[key]; taken {
				continue
			}
			used[key] = struct{}{}
			positions = append(positions, Position{
				ID:       fmt.Sprintf("pos_%d", len(positions)+1),
				X:        x,
				Y:        y,
				OffsetX:  offsetX,
				OffsetY:  offsetY,
				Distance: math.Sqrt(float64(offsetX*offsetX + offsetY*offsetY)),
			})
			break
		}
	}
	if len(positions) == 0 {
		return Plan{}, fmt.Errorf("%w: no positions could be placed on the grid", apperrors.ErrInvalidParameter)
	}

	return Plan{
		RegionID:          params.RegionID,
		BaseX:             params.BaseX,
		BaseY:             params.BaseY,
		Jitter:            params.Jitter,
		FramesPerPosition: params.FramesPerPosition,
		GeneratedAt:       now,
		Positions:         positions,
	}, nil
}
