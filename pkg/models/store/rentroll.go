// Package store defines the persistence records shared by the storage
// backends. Records are flat; joins (property -> floorplans, analysis ->
// scenarios) are assembled by the service layer.
package store

import "time"

type Property struct {
	ID         string
	Name       string
	Address    string
	TotalUnits int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Floorplan struct {
	ID            string
	PropertyID    string
	Name          string
	UnitType      string
	UnitCount     int
	SquareFootage float64
	FloorLevel    string
	ViewType      string
	BaseRent      float64
	AmenityRent   float64
}

type Analysis struct {
	ID               string
	PropertyID       string
	Name             string
	Description      string
	OccupancyRate    float64
	ParentAnalysisID string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Scenario struct {
	ID                   string
	AnalysisID           string
	Name                 string
	BaseRentPctAdj       float64
	BaseRentDollarAdj    float64
	AmenityRentPctAdj    float64
	AmenityRentDollarAdj float64
	ConcessionType       string
	ConcessionValue      float64
	Results              *ScenarioResults
	CreatedAt            time.Time
}

// ScenarioResults caches the engine output on a scenario record. Cleared
// whenever the scenario's parameters change.
type ScenarioResults struct {
	TotalAnnualRevenue float64
	AvgRentPerUnit     float64
	RevenuePerSqft     float64
	WeightedAvgRent    float64
}
