package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"senscal/internal/modules/driver/domain"
	driverout "senscal/internal/modules/driver/port/out"
)

// FileManifestStore reads driver manifests from
// <workspace>/drivers/drivers.json. Relative binary paths resolve against
// the workspace so a workspace can carry its drivers with it.
type FileManifestStore struct {
	basePath string
	path     string
}

func NewFileManifestStore(basePath string) driverout.ManifestStore {
	return &FileManifestStore{basePath: basePath, path: filepath.Join(basePath, "drivers", "drivers.json")}
}

func (s *FileManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Manifest{}, nil
		}
		return nil, fmt.Errorf("read driver manifest store: %w", err)
	}
	var manifests []domain.Manifest
	decoder := json.NewDecoder(bytes.NewReader(b))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&manifests); err != nil {
		return nil, fmt.Errorf("decode driver manifests: %w", err)
	}
	for i := range manifests {
		if manifests[i].Binary != "" && !filepath.IsAbs(manifests[i].Binary) {
			manifests[i].Binary = filepath.Clean(filepath.Join(s.basePath, manifests[i].Binary))
		}
	}
	return manifests, nil
}
