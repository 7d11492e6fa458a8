package out

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"senscal/internal/modules/analysis/domain"
)

func TestResultsIndexUpsertAndList(t *testing.T) {
	t.Parallel()

	index, err := NewSQLiteResultsIndex(filepath.Join(t.TempDir(), "senscal.db"))
	if err != nil {
		t.Fatalf("open index: %v", err)
	}

	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	record := domain.RunRecord{
		ID:           "run-1",
		RegionID:     "center",
		WeightID:     "w500",
		Status:       "completed",
		Samples:      9,
		MeanPressure: 1010.5,
		CV:           0.021,
		Grade:        domain.GradeExcellent,
		StartedAt:    started,
		EndedAt:      started.Add(2 * time.Minute),
	}
	if err := index.Upsert(context.Background(), record); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	// Upserting the same run again must replace, not duplicate.
	record.Status = "stopped"
	if err := index.Upsert(context.Background(), record); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	records, err := index.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	got := records[0]
	if got.Status != "stopped" || got.Grade != domain.GradeExcellent {
		t.Fatalf("unexpected record: %+v", got)
	}
	if !got.StartedAt.Equal(started) {
		t.Fatalf("started_at roundtrip: %v", got.StartedAt)
	}
}
