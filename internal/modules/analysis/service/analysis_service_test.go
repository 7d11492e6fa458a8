package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"senscal/internal/modules/analysis/domain"
	"senscal/internal/platform/clock"
	apperrors "senscal/internal/platform/errors"
)

type fakeSource struct {
	run domain.Run
	err error
}

func (s *fakeSource) Load(context.Context, string) (domain.Run, error) {
	return s.run, s.err
}

type fakeIndex struct {
	records []domain.RunRecord
}

func (i *fakeIndex) Upsert(_ context.Context, record domain.RunRecord) error {
	i.records = append(i.records, record)
	return nil
}

func (i *fakeIndex) List(context.Context) ([]domain.RunRecord, error) {
	return i.records, nil
}

type fakeWriter struct {
	jsonCalls int
	textCalls int
}

func (w *fakeWriter) WriteJSON(context.Context, domain.Report) (string, error) {
	w.jsonCalls++
	return "exports/report.json", nil
}

func (w *fakeWriter) WriteText(context.Context, domain.Report) (string, error) {
	w.textCalls++
	return "exports/report.txt", nil
}

func testRun() domain.Run {
	return domain.Run{
		ID:       "run-1",
		RegionID: "center",
		WeightID: "w500",
		Status:   "completed",
		Samples: []domain.Sample{
			{PositionID: "pos_1", X: 32, Y: 32, Frames: []float64{1000, 1002, 998}},
			{PositionID: "pos_2", X: 48, Y: 16, Frames: []float64{1100, 900, 1000}},
		},
	}
}

func newService(source *fakeSource, index *fakeIndex, writer *fakeWriter) *AnalysisService {
	clk := clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	return NewAnalysisService(clk, source, index, writer)
}

func TestQueryEvaluatesPath(t *testing.T) {
	t.Parallel()

	svc := newService(&fakeSource{run: testRun()}, &fakeIndex{}, &fakeWriter{})

	got, err := svc.Query(context.Background(), "run-1", "positions.0.position_id")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if got != "pos_1" {
		t.Fatalf("query result %q, want pos_1", got)
	}

	grade, err := svc.Query(context.Background(), "run-1", "positions.0.grade")
	if err != nil {
		t.Fatalf("query grade: %v", err)
	}
	if grade != "excellent" {
		t.Fatalf("grade %q, want excellent", grade)
	}
}

func TestQueryUnknownPath(t *testing.T) {
	t.Parallel()

	svc := newService(&fakeSource{run: testRun()}, &fakeIndex{}, &fakeWriter{})
	if _, err := svc.Query(context.Background(), "run-1", "nope.missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not-found for unmatched path, got %v", err)
	}
	if _, err := svc.Query(context.Background(), "run-1", ""); !errors.Is(err, apperrors.ErrInvalidParameter) {
		t.Fatalf("expected invalid parameter for empty path, got %v", err)
	}
}

func TestExportDispatchesOnFormat(t *testing.T) {
	t.Parallel()

	writer := &fakeWriter{}
	svc := newService(&fakeSource{run: testRun()}, &fakeIndex{}, writer)

	if _, err := svc.Export(context.Background(), "run-1", "json"); err != nil {
		t.Fatalf("export json: %v", err)
	}
	if _, err := svc.Export(context.Background(), "run-1", "text"); err != nil {
		t.Fatalf("export text: %v", err)
	}
	if writer.jsonCalls != 1 || writer.textCalls != 1 {
		t.Fatalf("writer calls json=%d text=%d", writer.jsonCalls, writer.textCalls)
	}
	if _, err := svc.Export(context.Background(), "run-1", "pdf"); !errors.Is(err, apperrors.ErrInvalidParameter) {
		t.Fatalf("expected invalid parameter for unknown format, got %v", err)
	}
}

func TestProjectSkipsEmptyRuns(t *testing.T) {
	t.Parallel()

	index := &fakeIndex{}
	svc := newService(&fakeSource{}, index, &fakeWriter{})

	if err := svc.Project(context.Background(), domain.Run{ID: "empty"}); err != nil {
		t.Fatalf("project empty: %v", err)
	}
	if len(index.records) != 0 {
		t.Fatal("empty run was indexed")
	}

	if err := svc.Project(context.Background(), testRun()); err != nil {
		t.Fatalf("project: %v", err)
	}
	if len(index.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(index.records))
	}
	record := index.records[0]
	if record.ID != "run-1" || record.Samples != 2 || record.Grade == "" {
		t.Fatalf("unexpected record: %+v", record)
	}
}
