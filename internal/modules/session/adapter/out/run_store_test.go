package out_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	out "senscal/internal/modules/session/adapter/out"
	"senscal/internal/modules/session/domain"
	apperrors "senscal/internal/platform/errors"
)

func completedRun(t *testing.T, id string, startedAt time.Time) domain.Run {
	t.Helper()
	run, err := domain.NewRun(id, "center", "default", []domain.Position{
		{ID: "pos_1", X: 32, Y: 32},
	}, 2, startedAt)
	if err != nil {
		t.Fatalf("new run: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := run.RecordFrame(1000+float64(i), startedAt.Add(time.Duration(i)*time.Second)); err != nil {
			t.Fatalf("record frame: %v", err)
		}
	}
	if run.Status != domain.StatusCompleted {
		t.Fatalf("fixture run not completed: %s", run.Status)
	}
	return run
}

func TestSaveAndLoadRun(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := out.NewFileRunStore(dir)
	started := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	run := completedRun(t, "abcdef0123456789", started)

	path, err := store.Save(context.Background(), run)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	want := filepath.Join(dir, "runs", "2026", "03", "20260314-103000-abcdef01.yaml")
	if path != want {
		t.Fatalf("run path %s, want %s", path, want)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("run file missing: %v", err)
	}

	loaded, err := store.Load(context.Background(), run.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.RegionID != "center" || loaded.Status != domain.StatusCompleted {
		t.Fatalf("loaded run differs: %+v", loaded)
	}
	if len(loaded.Samples) != 1 || len(loaded.Samples[0].Frames) != 2 {
		t.Fatalf("samples not round-tripped: %+v", loaded.Samples)
	}
}

func TestLoadByIDPrefix(t *testing.T) {
	t.Parallel()
	store := out.NewFileRunStore(t.TempDir())
	run := completedRun(t, "abcdef0123456789", time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC))
	if _, err := store.Save(context.Background(), run); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load(context.Background(), "abcdef01")
	if err != nil {
		t.Fatalf("load by prefix: %v", err)
	}
	if loaded.ID != run.ID {
		t.Fatalf("loaded %s, want %s", loaded.ID, run.ID)
	}
}

func TestLoadUnknownRun(t *testing.T) {
	t.Parallel()
	store := out.NewFileRunStore(t.TempDir())

	_, err := store.Load(context.Background(), "missing")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListSortsByStartTime(t *testing.T) {
	t.Parallel()
	store := out.NewFileRunStore(t.TempDir())
	later := completedRun(t, strings.Repeat("b", 16), time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC))
	earlier := completedRun(t, strings.Repeat("a", 16), time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	for _, run := range []domain.Run{later, earlier} {
		if _, err := store.Save(context.Background(), run); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	runs, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != earlier.ID || runs[1].ID != later.ID {
		t.Fatalf("runs out of order: %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestListEmptyWorkspace(t *testing.T) {
	t.Parallel()
	store := out.NewFileRunStore(t.TempDir())

	runs, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected no runs, got %d", len(runs))
	}
}
