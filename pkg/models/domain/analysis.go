package domain

import "time"

// Analysis groups scenarios for one property under a shared occupancy
// assumption. Scenarios within an analysis are compared against each other.
type Analysis struct {
	ID               string
	PropertyID       string
	Name             string
	Description      string
	OccupancyRate    float64 // fraction of units assumed leased, [0,1]
	ParentAnalysisID string  // set when duplicated from another analysis
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Scenarios        []Scenario
}

// Scenario is a named set of rent adjustments and a concession rule applied
// uniformly across a property's floorplans.
type Scenario struct {
	ID         string
	AnalysisID string
	Name       string
	Adjustments
	Results   *ScenarioResults // cached from the last calculation, nil until computed
	CreatedAt time.Time
}
