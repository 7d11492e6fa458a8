package service

import (
	"context"
	"fmt"

	"senscal/internal/modules/region/domain"
	regionout "senscal/internal/modules/region/port/out"
	apperrors "senscal/internal/platform/errors"
)

type RegionService struct {
	store regionout.RegionStore
}

func NewRegionService(store regionout.RegionStore) *RegionService {
	return &RegionService{store: store}
}

func (s *RegionService) List(ctx context.Context) ([]domain.Region, error) {
	regions, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, region := range regions {
		if err := region.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidParameter, err)
		}
	}
	return regions, nil
}

func (s *RegionService) Get(ctx context.Context, id string) (domain.Region, error) {
	regions, err := s.List(ctx)
	if err != nil {
		return domain.Region{}, err
	}
	for _, region := range regions {
		if region.ID == id {
			return region, nil
		}
	}
	return domain.Region{}, fmt.Errorf("%w: region %s", apperrors.ErrNotFound, id)
}
