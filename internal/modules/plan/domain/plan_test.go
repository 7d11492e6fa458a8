package domain_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"senscal/internal/modules/plan/domain"
	apperrors "senscal/internal/platform/errors"
)

func TestGenerateValidatesParams(t *testing.T) {
	t.Parallel()
	base := domain.GenerateParams{RegionID: "center", BaseX: 32, BaseY: 32, Count: 5, Jitter: 2, FramesPerPosition: 10}
	cases := []struct {
		name   string
		mutate func(*domain.GenerateParams)
	}{
		{name: "zero count", mutate: func(p *domain.GenerateParams) { p.Count = 0 }},
		{name: "negative count", mutate: func(p *domain.GenerateParams) { p.Count = -3 }},
		{name: "zero jitter", mutate: func(p *domain.GenerateParams) { p.Jitter = 0 }},
		{name: "zero frames", mutate: func(p *domain.GenerateParams) { p.FramesPerPosition = 0 }},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			params := base
			tc.mutate(&params)
			_, err := domain.Generate(params, rand.New(rand.NewSource(1)), time.Now())
			if !errors.Is(err, apperrors.ErrInvalidParameter) {
				t.Fatalf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestGenerateProducesUniqueJitteredPositions(t *testing.T) {
	t.Parallel()
	params := domain.GenerateParams{RegionID: "center", BaseX: 32, BaseY: 32, Count: 8, Jitter: 3, FramesPerPosition: 10}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	plan, err := domain.Generate(params, rand.New(rand.NewSource(42)), now)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if plan.RegionID != "center" || plan.FramesPerPosition != 10 {
		t.Fatalf("plan header wrong: %+v", plan)
	}
	if !plan.GeneratedAt.Equal(now) {
		t.Fatalf("generated at %v, want %v", plan.GeneratedAt, now)
	}
	if len(plan.Positions) != 8 {
		t.Fatalf("expected 8 positions, got %d", len(plan.Positions))
	}

	seen := map[[2]int]bool{}
	for i, pos := range plan.Positions {
		if seen[[2]int{pos.X, pos.Y}] {
			t.Fatalf("duplicate position at (%d, %d)", pos.X, pos.Y)
		}
		seen[[2]int{pos.X, pos.Y}] = true
		if pos.OffsetX < -3 || pos.OffsetX > 3 || pos.OffsetY < -3 || pos.OffsetY > 3 {
			t.Fatalf("offset out of jitter window: (%d, %d)", pos.OffsetX, pos.OffsetY)
		}
		if pos.X != 32+pos.OffsetX || pos.Y != 32+pos.OffsetY {
			t.Fatalf("position %s not anchored to base: %+v", pos.ID, pos)
		}
		wantDistance := math.Sqrt(float64(pos.OffsetX*pos.OffsetX + pos.OffsetY*pos.OffsetY))
		if math.Abs(pos.Distance-wantDistance) > 1e-9 {
			t.Fatalf("distance %f, want %f", pos.Distance, wantDistance)
		}
		if i == 0 && pos.ID != "pos_1" {
			t.Fatalf("position ids start at pos_1, got %s", pos.ID)
		}
	}
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	t.Parallel()
	params := domain.GenerateParams{RegionID: "center", BaseX: 32, BaseY: 32, Count: 5, Jitter: 2, FramesPerPosition: 10}
	now := time.Now()

	first, err := domain.Generate(params, rand.New(rand.NewSource(7)), now)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := domain.Generate(params, rand.New(rand.NewSource(7)), now)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for i := range first.Positions {
		if first.Positions[i] != second.Positions[i] {
			t.Fatalf("position %d diverged: %+v vs %+v", i, first.Positions[i], second.Positions[i])
		}
	}
}

func TestGenerateCapsAtJitterWindow(t *testing.T) {
	t.Parallel()
	// A 1-cell jitter window holds at most 9 distinct cells.
	params := domain.GenerateParams{RegionID: "center", BaseX: 32, BaseY: 32, Count: 50, Jitter: 1, FramesPerPosition: 10}

	plan, err := domain.Generate(params, rand.New(rand.NewSource(3)), time.Now())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(plan.Positions) > 9 {
		t.Fatalf("expected at most 9 positions, got %d", len(plan.Positions))
	}
	if len(plan.Positions) == 0 {
		t.Fatal("expected at least one position")
	}
}

func TestGenerateClampsToGridEdge(t *testing.T) {
	t.Parallel()
	params := domain.GenerateParams{RegionID: "corner", BaseX: 0, BaseY: 0, Count: 5, Jitter: 2, FramesPerPosition: 10}

	plan, err := domain.Generate(params, rand.New(rand.NewSource(11)), time.Now())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, pos := range plan.Positions {
		if pos.X < 0 || pos.Y < 0 || pos.X >= 64 || pos.Y >= 64 {
			t.Fatalf("position off grid: (%d, %d)", pos.X, pos.Y)
		}
	}
}
