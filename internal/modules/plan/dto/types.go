package dto

import "time"

type GenerateInput struct {
	RegionID          string
	Count             int
	Jitter            int
	FramesPerPosition int
}

type PositionOutput struct {
	ID       string
	X        int
	Y        int
	OffsetX  int
	OffsetY  int
	Distance float64
}

type PlanOutput struct {
	RegionID          string
	BaseX             int
	BaseY             int
	Jitter            int
	FramesPerPosition int
	GeneratedAt       time.Time
	Positions         []PositionOutput
}
