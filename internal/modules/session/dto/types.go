package dto

import "time"

type StartInput struct {
	WeightID string
}

type SummaryOutput struct {
	RunID         string
	Status        string
	Recorded      int
	Total         int
	CurrentIndex  int
	PendingFrames int
	WindowOpen    bool
}

type FrameOutput struct {
	PositionID string
	Index      int
	Pressure   float64
	Sealed     bool
	Summary    SummaryOutput
}

type PositionOutput struct {
	ID       string
	X        int
	Y        int
	OffsetX  int
	OffsetY  int
	Distance float64
}

type SampleOutput struct {
	PositionID string
	X          int
	Y          int
	Distance   float64
	Frames     []float64
	Mean       float64
	RecordedAt time.Time
}

type RunOutput struct {
	ID                string
	RegionID          string
	WeightID          string
	Status            string
	FramesPerPosition int
	StartedAt         time.Time
	EndedAt           time.Time
	Positions         []PositionOutput
	Samples           []SampleOutput
}

type CloseOutput struct {
	Decision string
	Summary  SummaryOutput
}
