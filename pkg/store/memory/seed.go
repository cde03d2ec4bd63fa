package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	records "github.com/stu-tools/rent-atlas/pkg/models/store"
)

// Seed loads two sample student-housing properties, one analysis, and three
// scenarios so the API is usable out of the box.
func Seed(ctx context.Context, s *Store) error {
	now := time.Now().UTC()

	campusViewID := uuid.New().String()
	if err := s.Properties().Put(ctx, records.Property{
		ID:         campusViewID,
		Name:       "Campus View Apartments",
		Address:    "123 University Ave, Austin, TX 78705",
		TotalUnits: 240,
		CreatedAt:  now,
		UpdatedAt:  now,
	}); err != nil {
		return err
	}

	campusViewFloorplans := []records.Floorplan{
		{Name: "A1 - Studio", UnitType: "Studio", UnitCount: 40, SquareFootage: 450,
			FloorLevel: "1-4", ViewType: "Courtyard", BaseRent: 1200, AmenityRent: 50},
		{Name: "B1 - One Bedroom", UnitType: "1BR", UnitCount: 80, SquareFootage: 650,
			FloorLevel: "1-6", ViewType: "Mixed", BaseRent: 1450, AmenityRent: 75},
		{Name: "C1 - Two Bedroom", UnitType: "2BR", UnitCount: 90, SquareFootage: 950,
			FloorLevel: "1-6", ViewType: "Mixed", BaseRent: 1900, AmenityRent: 100},
		{Name: "D1 - Three Bedroom", UnitType: "3BR", UnitCount: 30, SquareFootage: 1250,
			FloorLevel: "2-6", ViewType: "City", BaseRent: 2400, AmenityRent: 125},
	}
	for _, fp := range campusViewFloorplans {
		fp.ID = uuid.New().String()
		fp.PropertyID = campusViewID
		if err := s.Floorplans().Put(ctx, fp); err != nil {
			return err
		}
	}

	heightsID := uuid.New().String()
	if err := s.Properties().Put(ctx, records.Property{
		ID:         heightsID,
		Name:       "University Heights",
		Address:    "456 College Blvd, Austin, TX 78712",
		TotalUnits: 180,
		CreatedAt:  now,
		UpdatedAt:  now,
	}); err != nil {
		return err
	}

	heightsFloorplans := []records.Floorplan{
		{Name: "Studio Deluxe", UnitType: "Studio", UnitCount: 30, SquareFootage: 500,
			FloorLevel: "1-5", ViewType: "Park", BaseRent: 1350, AmenityRent: 60},
		{Name: "One Bed Premium", UnitType: "1BR", UnitCount: 60, SquareFootage: 700,
			FloorLevel: "1-5", ViewType: "Park", BaseRent: 1600, AmenityRent: 85},
		{Name: "Two Bed Luxury", UnitType: "2BR", UnitCount: 70, SquareFootage: 1050,
			FloorLevel: "1-5", ViewType: "Mixed", BaseRent: 2200, AmenityRent: 110},
		{Name: "Four Bed Townhouse", UnitType: "4BR", UnitCount: 20, SquareFootage: 1600,
			FloorLevel: "Ground", ViewType: "Street", BaseRent: 3200, AmenityRent: 150},
	}
	for _, fp := range heightsFloorplans {
		fp.ID = uuid.New().String()
		fp.PropertyID = heightsID
		if err := s.Floorplans().Put(ctx, fp); err != nil {
			return err
		}
	}

	analysisID := uuid.New().String()
	if err := s.Analyses().Put(ctx, records.Analysis{
		ID:            analysisID,
		PropertyID:    campusViewID,
		Name:          "Fall 2024 Leasing Analysis",
		Description:   "Baseline analysis for fall semester leasing period",
		OccupancyRate: 0.95,
		CreatedAt:     now,
		UpdatedAt:     now,
	}); err != nil {
		return err
	}

	seedScenarios := []records.Scenario{
		{Name: "Baseline", ConcessionType: "none"},
		{Name: "Optimistic (+5%)", BaseRentPctAdj: 0.05, AmenityRentPctAdj: 0.05, ConcessionType: "none"},
		{Name: "Pessimistic (1 month free)", ConcessionType: "free_months", ConcessionValue: 1},
	}
	for i, sc := range seedScenarios {
		sc.ID = uuid.New().String()
		sc.AnalysisID = analysisID
		// Stagger creation times so listings keep the authoring order.
		sc.CreatedAt = now.Add(time.Duration(i) * time.Millisecond)
		if err := s.Scenarios().Put(ctx, sc); err != nil {
			return err
		}
	}

	return nil
}
