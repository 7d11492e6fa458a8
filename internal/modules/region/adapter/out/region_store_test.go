package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	out "senscal/internal/modules/region/adapter/out"
)

func TestLoadFallsBackToDefaults(t *testing.T) {
	t.Parallel()
	store := out.NewFileRegionStore(t.TempDir())

	regions, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(regions) != 9 {
		t.Fatalf("expected 9 default regions, got %d", len(regions))
	}
}

func TestLoadReadsWorkspaceFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	payload := "- id: custom\n  name: Custom\n  x: 5\n  y: 7\n  description: bench fixture\n"
	if err := os.WriteFile(filepath.Join(dir, "regions.yaml"), []byte(payload), 0o644); err != nil {
		t.Fatalf("write regions: %v", err)
	}
	store := out.NewFileRegionStore(dir)

	regions, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(regions) != 1 {
		t.Fatalf("expected 1 region, got %d", len(regions))
	}
	if regions[0].ID != "custom" || regions[0].X != 5 || regions[0].Y != 7 {
		t.Fatalf("unexpected region: %+v", regions[0])
	}
}

func TestLoadEmptyFileFallsBackToDefaults(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "regions.yaml"), []byte("[]\n"), 0o644); err != nil {
		t.Fatalf("write regions: %v", err)
	}
	store := out.NewFileRegionStore(dir)

	regions, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(regions) != 9 {
		t.Fatalf("expected default regions for empty file, got %d", len(regions))
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "regions.yaml"), []byte("{not yaml"), 0o644); err != nil {
		t.Fatalf("write regions: %v", err)
	}
	store := out.NewFileRegionStore(dir)

	if _, err := store.Load(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}
