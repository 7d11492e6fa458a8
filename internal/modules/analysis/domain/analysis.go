package domain

import (
	"fmt"
	"math"
	"time"

	apperrors "senscal/internal/platform/errors"
)

// Grade buckets a coefficient of variation into a repeatability verdict.
type Grade string

const (
	GradeExcellent Grade = "excellent"
	GradeGood      Grade = "good"
	GradeFair      Grade = "fair"
	GradePoor      Grade = "poor"
)

// CV thresholds for the repeatability grades.
const (
	excellentCV = 0.05
	goodCV      = 0.10
	fairCV      = 0.20
)

func GradeFor(cv float64) Grade {
	switch {
	case cv < excellentCV:
		return GradeExcellent
	case cv < goodCV:
		return GradeGood
	case cv < fairCV:
		return GradeFair
	default:
		return GradePoor
	}
}

// Sample is the analysis view of one sealed position measurement.
type Sample struct {
	PositionID string
	X          int
	Y          int
	Distance   float64
	Frames     []float64
}

// Run is the analysis view of a finished measurement run.
type Run struct {
	ID        string
	RegionID  string
	WeightID  string
	Status    string
	StartedAt time.Time
	EndedAt   time.Time
	Samples   []Sample
}

// PositionStats is the per-position repeatability summary.
type PositionStats struct {
	PositionID string  `json:"position_id"`
	X          int     `json:"x"`
	Y          int     `json:"y"`
	Distance   float64 `json:"distance"`
	Frames     int     `json:"frames"`
	Mean       float64 `json:"mean"`
	StdDev     float64 `json:"std_dev"`
	CV         float64 `json:"cv"`
	Grade      Grade   `json:"grade"`
}

// OverallStats aggregates the run two ways: the spread of position means
// measures sensitivity uniformity over the touched area and drives the
// grade, while the pooled per-frame stats describe the raw signal across
// every recorded frame.
type OverallStats struct {
	Positions   int     `json:"positions"`
	MeanOfMeans float64 `json:"mean_of_means"`
	StdOfMeans  float64 `json:"std_of_means"`
	CV          float64 `json:"cv"`
	Grade       Grade   `json:"grade"`
	Frames      int     `json:"frames"`
	FrameMean   float64 `json:"frame_mean"`
	FrameStd    float64 `json:"frame_std"`
	FrameCV     float64 `json:"frame_cv"`
}

type Report struct {
	RunID          string          `json:"run_id"`
	RegionID       string          `json:"region_id"`
	WeightID       string          `json:"weight_id"`
	Status         string          `json:"status"`
	StartedAt      time.Time       `json:"started_at"`
	EndedAt        time.Time       `json:"ended_at"`
	GeneratedAt    time.Time       `json:"generated_at"`
	Positions      []PositionStats `json:"positions"`
	Overall        OverallStats    `json:"overall"`
	Recommendation string          `json:"recommendation"`
}

// Analyze computes per-position and overall repeatability for a run.
func Analyze(run Run, now time.Time) (Report, error) {
	if len(run.Samples) == 0 {
		return Report{}, fmt.Errorf("%w: run %s has no samples", apperrors.ErrNoResults, run.ID)
	}
	positions := make([]PositionStats, 0, len(run.Samples))
	means := make([]float64, 0, len(run.Samples))
	var allFrames []float64
	for _, sample := range run.Samples {
		mean, std := meanStd(sample.Frames)
		cv := coefficient(mean, std)
		positions = append(positions, PositionStats{
			PositionID: sample.PositionID,
			X:          sample.X,
			Y:          sample.Y,
			Distance:   sample.Distance,
			Frames:     len(sample.Frames),
			Mean:       mean,
			StdDev:     std,
			CV:         cv,
			Grade:      GradeFor(cv),
		})
		means = append(means, mean)
		allFrames = append(allFrames, sample.Frames...)
	}
	overallMean, overallStd := meanStd(means)
	overallCV := coefficient(overallMean, overallStd)
	frameMean, frameStd := meanStd(allFrames)
	grade := GradeFor(overallCV)
	return Report{
		RunID:       run.ID,
		RegionID:    run.RegionID,
		WeightID:    run.WeightID,
		Status:      run.Status,
		StartedAt:   run.StartedAt,
		EndedAt:     run.EndedAt,
		GeneratedAt: now,
		Positions:   positions,
		Overall: OverallStats{
			Positions:   len(positions),
			MeanOfMeans: overallMean,
			StdOfMeans:  overallStd,
			CV:          overallCV,
			Grade:       grade,
			Frames:      len(allFrames),
			FrameMean:   frameMean,
			FrameStd:    frameStd,
			FrameCV:     coefficient(frameMean, frameStd),
		},
		Recommendation: Recommendation(grade),
	}, nil
}

// Recommendation turns the position-to-position grade into the operator
// advice printed at the bottom of a report.
func Recommendation(grade Grade) string {
	switch grade {
	case GradeExcellent:
		return "Local sensitivity is excellent; the sensor responds consistently to small position shifts."
	case GradeGood:
		return "Local sensitivity is good; further tuning could tighten repeatability."
	case GradeFair:
		return "Local sensitivity is fair; check the sensor calibration."
	default:
		return "Local sensitivity is poor; recalibrate the sensor."
	}
}

// meanStd returns the mean and population standard deviation.
func meanStd(values []float64) (mean, std float64) {
	if len(values) == 0 {
		return 0, 0
	}
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}

func coefficient(mean, std float64) float64 {
	if mean == 0 {
		return 0
	}
	return math.Abs(std / mean)
}

// RunRecord is the queryable results-index row for one run.
type RunRecord struct {
	ID           string
	RegionID     string
	WeightID     string
	Status       string
	Samples      int
	MeanPressure float64
	CV           float64
	Grade        Grade
	StartedAt    time.Time
	EndedAt      time.Time
}
