package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"senscal/internal/modules/analysis/domain"
	analysisout "senscal/internal/modules/analysis/port/out"
)

// FileReportWriter renders reports under <workspace>/exports/.
type FileReportWriter struct {
	dir string
}

func NewFileReportWriter(workspacePath string) analysisout.ReportWriter {
	return &FileReportWriter{dir: filepath.Join(workspacePath, "exports")}
}

func (w *FileReportWriter) WriteJSON(_ context.Context, report domain.Report) (string, error) {
	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	return w.write(report, "json", append(payload, '\n'))
}

func (w *FileReportWriter) WriteText(_ context.Context, report domain.Report) (string, error) {
	return w.write(report, "txt", []byte(renderText(report)))
}

func (w *FileReportWriter) write(report domain.Report, ext string, payload []byte) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create exports dir: %w", err)
	}
	short := report.RunID
	if len(short) > 8 {
		short = short[:8]
	}
	path := filepath.Join(w.dir, fmt.Sprintf("report-%s.%s", short, ext))
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

func renderText(report domain.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Local sensitivity report\n")
	fmt.Fprintf(&b, "Run:     %s\n", report.RunID)
	fmt.Fprintf(&b, "Region:  %s\n", report.RegionID)
	fmt.Fprintf(&b, "Weight:  %s\n", report.WeightID)
	fmt.Fprintf(&b, "Status:  %s\n\n", report.Status)
	fmt.Fprintf(&b, "%-10s %4s %4s %8s %10s %10s %8s %-9s\n",
		"position", "x", "y", "dist", "mean", "std", "cv", "grade")
	for _, p := range report.Positions {
		fmt.Fprintf(&b, "%-10s %4d %4d %8.2f %10.2f %10.2f %8.4f %-9s\n",
			p.PositionID, p.X, p.Y, p.Distance, p.Mean, p.StdDev, p.CV, p.Grade)
	}
	fmt.Fprintf(&b, "\nOverall: positions=%d mean=%.2f std=%.2f cv=%.4f grade=%s\n",
		report.Overall.Positions, report.Overall.MeanOfMeans,
		report.Overall.StdOfMeans, report.Overall.CV, report.Overall.Grade)
	fmt.Fprintf(&b, "Frames:  count=%d mean=%.2f std=%.2f cv=%.4f\n",
		report.Overall.Frames, report.Overall.FrameMean,
		report.Overall.FrameStd, report.Overall.FrameCV)
	fmt.Fprintf(&b, "\n%s\n", report.Recommendation)
	return b.String()
}
