package analysis

import (
	"github.com/stu-tools/rent-atlas/pkg/models/domain"
	records "github.com/stu-tools/rent-atlas/pkg/models/store"
)

func scenarioAdjustments(rec records.Scenario) domain.Adjustments {
	return domain.Adjustments{
		BaseRentPctAdj:       rec.BaseRentPctAdj,
		BaseRentDollarAdj:    rec.BaseRentDollarAdj,
		AmenityRentPctAdj:    rec.AmenityRentPctAdj,
		AmenityRentDollarAdj: rec.AmenityRentDollarAdj,
		ConcessionType:       domain.ConcessionType(rec.ConcessionType),
		ConcessionValue:      rec.ConcessionValue,
	}
}

func floorplanToDomain(rec records.Floorplan) domain.Floorplan {
	return domain.Floorplan{
		ID:            rec.ID,
		PropertyID:    rec.PropertyID,
		Name:          rec.Name,
		UnitType:      rec.UnitType,
		UnitCount:     rec.UnitCount,
		SquareFootage: rec.SquareFootage,
		FloorLevel:    rec.FloorLevel,
		ViewType:      rec.ViewType,
		BaseRent:      rec.BaseRent,
		AmenityRent:   rec.AmenityRent,
	}
}

func scenarioToDomain(rec records.Scenario) domain.Scenario {
	out := domain.Scenario{
		ID:          rec.ID,
		AnalysisID:  rec.AnalysisID,
		Name:        rec.Name,
		Adjustments: scenarioAdjustments(rec),
		CreatedAt:   rec.CreatedAt,
	}
	if rec.Results != nil {
		out.Results = &domain.ScenarioResults{
			TotalAnnualRevenue: rec.Results.TotalAnnualRevenue,
			AvgRentPerUnit:     rec.Results.AvgRentPerUnit,
			RevenuePerSqft:     rec.Results.RevenuePerSqft,
			WeightedAvgRent:    rec.Results.WeightedAvgRent,
		}
	}
	return out
}

func analysisToDomain(rec records.Analysis) domain.Analysis {
	return domain.Analysis{
		ID:               rec.ID,
		PropertyID:       rec.PropertyID,
		Name:             rec.Name,
		Description:      rec.Description,
		OccupancyRate:    rec.OccupancyRate,
		ParentAnalysisID: rec.ParentAnalysisID,
		CreatedAt:        rec.CreatedAt,
		UpdatedAt:        rec.UpdatedAt,
	}
}
