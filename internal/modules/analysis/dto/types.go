package dto

import "time"

type SampleInput struct {
	PositionID string
	X          int
	Y          int
	Distance   float64
	Frames     []float64
}

type RunInput struct {
	ID        string
	RegionID  string
	WeightID  string
	Status    string
	StartedAt time.Time
	EndedAt   time.Time
	Samples   []SampleInput
}

type PositionStatsOutput struct {
	PositionID string
	X          int
	Y          int
	Distance   float64
	Frames     int
	Mean       float64
	StdDev     float64
	CV         float64
	Grade      string
}

type OverallOutput struct {
	Positions   int
	MeanOfMeans float64
	StdOfMeans  float64
	CV          float64
	Grade       string
	Frames      int
	FrameMean   float64
	FrameStd    float64
	FrameCV     float64
}

type ReportOutput struct {
	RunID          string
	RegionID       string
	WeightID       string
	Status         string
	GeneratedAt    time.Time
	Positions      []PositionStatsOutput
	Overall        OverallOutput
	Recommendation string
}

type RunRecordOutput struct {
	ID           string
	RegionID     string
	WeightID     string
	Status       string
	Samples      int
	MeanPressure float64
	CV           float64
	Grade        string
	StartedAt    time.Time
	EndedAt      time.Time
}
