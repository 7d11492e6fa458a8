package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"senscal/internal/modules/plan/domain"
	planout "senscal/internal/modules/plan/port/out"
	apperrors "senscal/internal/platform/errors"
)

type FilePlanStore struct {
	path string
}

func NewFilePlanStore(workspacePath string) planout.PlanStore {
	return &FilePlanStore{path: filepath.Join(workspacePath, "plan.yaml")}
}

func (s *FilePlanStore) Save(_ context.Context, plan domain.Plan) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create plan dir: %w", err)
	}
	payload, err := yaml.Marshal(plan)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write plan: %w", err)
	}
	return nil
}

func (s *FilePlanStore) Load(_ context.Context) (domain.Plan, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Plan{}, fmt.Errorf("%w: no position plan generated", apperrors.ErrNotFound)
		}
		return domain.Plan{}, fmt.Errorf("read plan: %w", err)
	}
	var plan domain.Plan
	if err := yaml.Unmarshal(raw, &plan); err != nil {
		return domain.Plan{}, fmt.Errorf("decode plan: %w", err)
	}
	if len(plan.Positions) == 0 {
		return domain.Plan{}, fmt.Errorf("%w: position plan is empty", apperrors.ErrNotFound)
	}
	return plan, nil
}
