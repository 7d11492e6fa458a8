package dto

type RegionOutput struct {
	ID          string
	Name        string
	X           int
	Y           int
	Description string
}
