package out

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"senscal/internal/modules/analysis/domain"
)

func TestWriteTextRendersFullReport(t *testing.T) {
	t.Parallel()

	writer := NewFileReportWriter(t.TempDir())
	report := domain.Report{
		RunID:       "abcdef0123456789",
		RegionID:    "center",
		WeightID:    "w500",
		Status:      "completed",
		GeneratedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Positions: []domain.PositionStats{
			{PositionID: "pos_1", X: 32, Y: 32, Frames: 3, Mean: 1000, CV: 0.01, Grade: domain.GradeExcellent},
		},
		Overall: domain.OverallStats{
			Positions:   1,
			MeanOfMeans: 1000,
			CV:          0.01,
			Grade:       domain.GradeExcellent,
			Frames:      3,
			FrameMean:   1000,
			FrameStd:    2,
			FrameCV:     0.002,
		},
		Recommendation: domain.Recommendation(domain.GradeExcellent),
	}

	path, err := writer.WriteText(context.Background(), report)
	if err != nil {
		t.Fatalf("write text: %v", err)
	}
	if filepath.Base(path) != "report-abcdef01.txt" {
		t.Fatalf("report path %s", path)
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	text := string(payload)
	if !strings.Contains(text, "Overall: positions=1") {
		t.Fatalf("overall line missing:\n%s", text)
	}
	if !strings.Contains(text, "Frames:  count=3 mean=1000.00 std=2.00 cv=0.0020") {
		t.Fatalf("pooled frame line missing:\n%s", text)
	}
	if !strings.Contains(text, report.Recommendation) {
		t.Fatalf("recommendation missing:\n%s", text)
	}
}
