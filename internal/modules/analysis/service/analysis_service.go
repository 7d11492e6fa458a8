package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"senscal/internal/modules/analysis/domain"
	analysisout "senscal/internal/modules/analysis/port/out"
	"senscal/internal/platform/clock"
	apperrors "senscal/internal/platform/errors"
)

type AnalysisService struct {
	clock  clock.Clock
	source analysisout.RunSource
	index  analysisout.ResultsIndex
	writer analysisout.ReportWriter
}

func NewAnalysisService(clk clock.Clock, source analysisout.RunSource, index analysisout.ResultsIndex, writer analysisout.ReportWriter) *AnalysisService {
	return &AnalysisService{clock: clk, source: source, index: index, writer: writer}
}

func (s *AnalysisService) Analyze(ctx context.Context, runID string) (domain.Report, error) {
	run, err := s.source.Load(ctx, runID)
	if err != nil {
		return domain.Report{}, err
	}
	return domain.Analyze(run, s.clock.Now())
}

func (s *AnalysisService) Export(ctx context.Context, runID, format string) (string, error) {
	report, err := s.Analyze(ctx, runID)
	if err != nil {
		return "", err
	}
	switch format {
	case "json":
		return s.writer.WriteJSON(ctx, report)
	case "text":
		return s.writer.WriteText(ctx, report)
	default:
		return "", fmt.Errorf("%w: unknown export format %q", apperrors.ErrInvalidParameter, format)
	}
}

func (s *AnalysisService) List(ctx context.Context) ([]domain.RunRecord, error) {
	return s.index.List(ctx)
}

// Query evaluates a gjson path against the run's JSON report, for example
// "overall.grade" or "positions.#(cv>0.1)#.position_id".
func (s *AnalysisService) Query(ctx context.Context, runID, path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: query path is required", apperrors.ErrInvalidParameter)
	}
	report, err := s.Analyze(ctx, runID)
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	result := gjson.GetBytes(payload, path)
	if !result.Exists() {
		return "", fmt.Errorf("%w: path %q matched nothing", apperrors.ErrNotFound, path)
	}
	return result.String(), nil
}

// Project condenses a run into an index row. Runs without samples are
// skipped so the index only ever lists analyzable runs.
func (s *AnalysisService) Project(ctx context.Context, run domain.Run) error {
	if len(run.Samples) == 0 {
		return nil
	}
	report, err := domain.Analyze(run, s.clock.Now())
	if err != nil {
		return err
	}
	return s.index.Upsert(ctx, domain.RunRecord{
		ID:           run.ID,
		RegionID:     run.RegionID,
		WeightID:     run.WeightID,
		Status:       run.Status,
		Samples:      len(run.Samples),
		MeanPressure: report.Overall.MeanOfMeans,
		CV:           report.Overall.CV,
		Grade:        report.Overall.Grade,
		StartedAt:    run.StartedAt,
		EndedAt:      run.EndedAt,
	})
}
