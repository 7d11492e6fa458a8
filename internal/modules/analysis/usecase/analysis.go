package usecase

import (
	"context"

	"senscal/internal/modules/analysis/domain"
	"senscal/internal/modules/analysis/dto"
	analysisin "senscal/internal/modules/analysis/port/in"
	"senscal/internal/modules/analysis/service"
)

type Interactor struct {
	svc *service.AnalysisService
}

func NewInteractor(svc *service.AnalysisService) analysisin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Analyze(ctx context.Context, runID string) (dto.ReportOutput, error) {
	report, err := i.svc.Analyze(ctx, runID)
	if err != nil {
		return dto.ReportOutput{}, err
	}
	return toReportOutput(report), nil
}

func (i *Interactor) Export(ctx context.Context, runID, format string) (string, error) {
	return i.svc.Export(ctx, runID, format)
}

func (i *Interactor) List(ctx context.Context) ([]dto.RunRecordOutput, error) {
	records, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RunRecordOutput, 0, len(records))
	for _, r := range records {
		out = append(out, dto.RunRecordOutput{
			ID:           r.ID,
			RegionID:     r.RegionID,
			WeightID:     r.WeightID,
			Status:       r.Status,
			Samples:      r.Samples,
			MeanPressure: r.MeanPressure,
			CV:           r.CV,
			Grade:        string(r.Grade),
			StartedAt:    r.StartedAt,
			EndedAt:      r.EndedAt,
		})
	}
	return out, nil
}

func (i *Interactor) Query(ctx context.Context, runID, path string) (string, error) {
	return i.svc.Query(ctx, runID, path)
}

func (i *Interactor) Project(ctx context.Context, input dto.RunInput) error {
	return i.svc.Project(ctx, toDomainRun(input))
}

func toDomainRun(input dto.RunInput) domain.Run {
	samples := make([]domain.Sample, 0, len(input.Samples))
	for _, s := range input.Samples {
		samples = append(samples, domain.Sample{
			PositionID: s.PositionID,
			X:          s.X,
			Y:          s.Y,
			Distance:   s.Distance,
			Frames:     s.Frames,
		})
	}
	return domain.Run{
		ID:        input.ID,
		RegionID:  input.RegionID,
		WeightID:  input.WeightID,
		Status:    input.Status,
		StartedAt: input.StartedAt,
		EndedAt:   input.EndedAt,
		Samples:   samples,
	}
}

func toReportOutput(report domain.Report) dto.ReportOutput {
	positions := make([]dto.PositionStatsOutput, 0, len(report.Positions))
	for _, p := range report.Positions {
		positions = append(positions, dto.PositionStatsOutput{
			PositionID: p.PositionID,
			X:          p.X,
			Y:          p.Y,
			Distance:   p.Distance,
			Frames:     p.Frames,
			Mean:       p.Mean,
			StdDev:     p.StdDev,
			CV:         p.CV,
			Grade:      string(p.Grade),
		})
	}
	return dto.ReportOutput{
		RunID:       report.RunID,
		RegionID:    report.RegionID,
		WeightID:    report.WeightID,
		Status:      report.Status,
		GeneratedAt: report.GeneratedAt,
		Positions:   positions,
		Overall: dto.OverallOutput{
			Positions:   report.Overall.Positions,
			MeanOfMeans: report.Overall.MeanOfMeans,
			StdOfMeans:  report.Overall.StdOfMeans,
			CV:          report.Overall.CV,
			Grade:       string(report.Overall.Grade),
			Frames:      report.Overall.Frames,
			FrameMean:   report.Overall.FrameMean,
			FrameStd:    report.Overall.FrameStd,
			FrameCV:     report.Overall.FrameCV,
		},
		Recommendation: report.Recommendation,
	}
}
