package domain

import "fmt"

// GridSize is the sensor array edge length; coordinates run 0..GridSize-1.
const GridSize = 64

// Region is a named base location on the sensor grid around which probe
// positions are generated.
type Region struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	X           int    `yaml:"x"`
	Y           int    `yaml:"y"`
	Description string `yaml:"description"`
}

func (r Region) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("region id is required")
	}
	if r.X < 0 || r.X >= GridSize || r.Y < 0 || r.Y >= GridSize {
		return fmt.Errorf("region %s coordinates out of grid: (%d, %d)", r.ID, r.X, r.Y)
	}
	return nil
}

// Defaults returns the nine built-in test regions: the center, the four
// corners, and the four edge midpoints of the grid.
func Defaults() []Region {
	return []Region{
		{ID: "center", Name: "Center", X: 32, Y: 32, Description: "sensor center"},
		{ID: "top_left", Name: "Top Left", X: 16, Y: 16, Description: "upper-left quadrant"},
		{ID: "top_right", Name: "Top Right", X: 48, Y: 16, Description: "upper-right quadrant"},
		{ID: "bottom_left", Name: "Bottom Left", X: 16, Y: 48, Description: "lower-left quadrant"},
		{ID: "bottom_right", Name: "Bottom Right", X: 48, Y: 48, Description: "lower-right quadrant"},
		{ID: "top_center", Name: "Top Center", X: 32, Y: 16, Description: "upper edge midpoint"},
		{ID: "bottom_center", Name: "Bottom Center", X: 32, Y: 48, Description: "lower edge midpoint"},
		{ID: "left_center", Name: "Left Center", X: 16, Y: 32, Description: "left edge midpoint"},
		{ID: "right_center", Name: "Right Center", X: 48, Y: 32, Description: "right edge midpoint"},
	}
}
