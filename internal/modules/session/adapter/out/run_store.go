package out

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"senscal/internal/modules/session/domain"
	sessionout "senscal/internal/modules/session/port/out"
	apperrors "senscal/internal/platform/errors"
)

// FileRunStore keeps terminal runs as YAML files under
// <workspace>/runs/<year>/<month>/, one file per run named by start time and
// a short id so directory listings sort chronologically.
type FileRunStore struct {
	root string
}

func NewFileRunStore(workspacePath string) *FileRunStore {
	return &FileRunStore{root: filepath.Join(workspacePath, "runs")}
}

func (s *FileRunStore) Save(_ context.Context, run domain.Run) (string, error) {
	dir := filepath.Join(s.root, run.StartedAt.Format("2006"), run.StartedAt.Format("01"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create run dir: %w", err)
	}
	short := run.ID
	if len(short) > 8 {
		short = short[:8]
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.yaml", run.StartedAt.Format("20060102-150405"), short))
	payload, err := yaml.Marshal(run)
	if err != nil {
		return "", fmt.Errorf("marshal run: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("write run: %w", err)
	}
	return path, nil
}

func (s *FileRunStore) Load(ctx context.Context, id string) (domain.Run, error) {
	runs, err := s.List(ctx)
	if err != nil {
		return domain.Run{}, err
	}
	for _, run := range runs {
		if run.ID == id || strings.HasPrefix(run.ID, id) {
			return run, nil
		}
	}
	return domain.Run{}, fmt.Errorf("%w: run %s", apperrors.ErrNotFound, id)
}

func (s *FileRunStore) List(_ context.Context) ([]domain.Run, error) {
	var runs []domain.Run
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".yaml") {
			return nil
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read run %s: %w", path, err)
		}
		var run domain.Run
		if err := yaml.Unmarshal(raw, &run); err != nil {
			return fmt.Errorf("decode run %s: %w", path, err)
		}
		runs = append(runs, run)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.Before(runs[j].StartedAt)
	})
	return runs, nil
}

var _ sessionout.RunStore = (*FileRunStore)(nil)
