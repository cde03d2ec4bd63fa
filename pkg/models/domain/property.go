package domain

import "time"

// Property is a student-housing asset with a set of floorplans.
type Property struct {
	ID         string
	Name       string
	Address    string
	TotalUnits int
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Floorplans []Floorplan
}

// Floorplan is a unit-type template within a property. UnitCount identical
// physical units share the same rent and size attributes.
type Floorplan struct {
	ID            string
	PropertyID    string
	Name          string
	UnitType      string // Studio, 1BR, 2BR, ...
	UnitCount     int
	SquareFootage float64 // per-unit area
	FloorLevel    string
	ViewType      string
	BaseRent      float64 // monthly
	AmenityRent   float64 // monthly
}
