package service_test

import (
	"context"
	"errors"
	"testing"

	"senscal/internal/modules/region/domain"
	"senscal/internal/modules/region/service"
	apperrors "senscal/internal/platform/errors"
)

type fakeStore struct {
	regions []domain.Region
	err     error
}

func (f *fakeStore) Load(context.Context) ([]domain.Region, error) {
	return f.regions, f.err
}

func TestGetFindsRegionByID(t *testing.T) {
	t.Parallel()
	svc := service.NewRegionService(&fakeStore{regions: domain.Defaults()})

	region, err := svc.Get(context.Background(), "top_left")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if region.X != 16 || region.Y != 16 {
		t.Fatalf("unexpected coordinates: (%d, %d)", region.X, region.Y)
	}
}

func TestGetUnknownRegion(t *testing.T) {
	t.Parallel()
	svc := service.NewRegionService(&fakeStore{regions: domain.Defaults()})

	_, err := svc.Get(context.Background(), "nope")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListRejectsInvalidStoredRegion(t *testing.T) {
	t.Parallel()
	svc := service.NewRegionService(&fakeStore{regions: []domain.Region{{ID: "bad", X: 99, Y: 0}}})

	_, err := svc.List(context.Background())
	if !errors.Is(err, apperrors.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}
