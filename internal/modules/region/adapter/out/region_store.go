package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"senscal/internal/modules/region/domain"
	regionout "senscal/internal/modules/region/port/out"
)

// FileRegionStore reads test regions from <workspace>/regions.yaml. When the
// file does not exist the nine built-in regions are returned.
type FileRegionStore struct {
	path string
}

func NewFileRegionStore(workspacePath string) regionout.RegionStore {
	return &FileRegionStore{path: filepath.Join(workspacePath, "regions.yaml")}
}

func (s *FileRegionStore) Load(_ context.Context) ([]domain.Region, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Defaults(), nil
		}
		return nil, fmt.Errorf("read regions: %w", err)
	}
	var regions []domain.Region
	if err := yaml.Unmarshal(raw, &regions); err != nil {
		return nil, fmt.Errorf("decode regions: %w", err)
	}
	if len(regions) == 0 {
		return domain.Defaults(), nil
	}
	return regions, nil
}
