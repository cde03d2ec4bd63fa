// Package api defines the request and response schemas of the HTTP surface.
package api

import "time"

type Property struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Address    string      `json:"address"`
	TotalUnits int         `json:"total_units"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
	Floorplans []Floorplan `json:"floorplans"`
}

type CreateProperty struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	TotalUnits int    `json:"total_units"`
}

type Floorplan struct {
	ID            string  `json:"id"`
	PropertyID    string  `json:"property_id"`
	Name          string  `json:"name"`
	UnitType      string  `json:"unit_type"`
	UnitCount     int     `json:"unit_count"`
	SquareFootage float64 `json:"square_footage"`
	FloorLevel    string  `json:"floor_level,omitempty"`
	ViewType      string  `json:"view_type,omitempty"`
	BaseRent      float64 `json:"base_rent"`
	AmenityRent   float64 `json:"amenity_rent"`
}

type CreateFloorplan struct {
	PropertyID    string  `json:"property_id"`
	Name          string  `json:"name"`
	UnitType      string  `json:"unit_type"`
	UnitCount     int     `json:"unit_count"`
	SquareFootage float64 `json:"square_footage"`
	FloorLevel    string  `json:"floor_level"`
	ViewType      string  `json:"view_type"`
	BaseRent      float64 `json:"base_rent"`
	AmenityRent   float64 `json:"amenity_rent"`
}

type Analysis struct {
	ID               string     `json:"id"`
	PropertyID       string     `json:"property_id"`
	Name             string     `json:"name"`
	Description      string     `json:"description,omitempty"`
	OccupancyRate    float64    `json:"occupancy_rate"`
	ParentAnalysisID string     `json:"parent_analysis_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	Scenarios        []Scenario `json:"scenarios"`
}

type CreateAnalysis struct {
	PropertyID  string `json:"property_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	// Pointer so an omitted rate can fall back to the 0.95 default without
	// colliding with an explicit zero.
	OccupancyRate *float64 `json:"occupancy_rate"`
}

type Scenario struct {
	ID                   string           `json:"id"`
	AnalysisID           string           `json:"analysis_id"`
	Name                 string           `json:"name"`
	BaseRentPctAdj       float64          `json:"base_rent_pct_adj"`
	BaseRentDollarAdj    float64          `json:"base_rent_dollar_adj"`
	AmenityRentPctAdj    float64          `json:"amenity_rent_pct_adj"`
	AmenityRentDollarAdj float64          `json:"amenity_rent_dollar_adj"`
	ConcessionType       string           `json:"concession_type"`
	ConcessionValue      float64          `json:"concession_value"`
	Results              *ScenarioResults `json:"results,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
}

type CreateScenario struct {
	AnalysisID           string  `json:"analysis_id"`
	Name                 string  `json:"name"`
	BaseRentPctAdj       float64 `json:"base_rent_pct_adj"`
	BaseRentDollarAdj    float64 `json:"base_rent_dollar_adj"`
	AmenityRentPctAdj    float64 `json:"amenity_rent_pct_adj"`
	AmenityRentDollarAdj float64 `json:"amenity_rent_dollar_adj"`
	ConcessionType       string  `json:"concession_type"`
	ConcessionValue      float64 `json:"concession_value"`
}

type ScenarioResults struct {
	TotalAnnualRevenue float64 `json:"total_annual_revenue"`
	AvgRentPerUnit     float64 `json:"avg_rent_per_unit"`
	RevenuePerSqft     float64 `json:"revenue_per_sqft"`
	WeightedAvgRent    float64 `json:"weighted_avg_rent"`
}

type WaterfallStep struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Type  string  `json:"type"`
}

type WaterfallResponse struct {
	Waterfall []WaterfallStep `json:"waterfall"`
}

type Health struct {
	Status string `json:"status"`
}

type Message struct {
	Message string `json:"message"`
}
