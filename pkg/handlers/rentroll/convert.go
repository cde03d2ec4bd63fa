package rentroll

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/stu-tools/rent-atlas/pkg/models/api"
	"github.com/stu-tools/rent-atlas/pkg/models/domain"
	records "github.com/stu-tools/rent-atlas/pkg/models/store"
)

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to encode response")
	}
}

func propertyToAPI(rec records.Property, floorplans []records.Floorplan) api.Property {
	out := api.Property{
		ID:         rec.ID,
		Name:       rec.Name,
		Address:    rec.Address,
		TotalUnits: rec.TotalUnits,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
		Floorplans: make([]api.Floorplan, 0, len(floorplans)),
	}
	for _, fp := range floorplans {
		out.Floorplans = append(out.Floorplans, floorplanToAPI(fp))
	}
	return out
}

func floorplanToAPI(rec records.Floorplan) api.Floorplan {
	return api.Floorplan{
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

func floorplanFromRequest(id string, req api.CreateFloorplan) records.Floorplan {
	return records.Floorplan{
		ID:            id,
		PropertyID:    req.PropertyID,
		Name:          req.Name,
		UnitType:      req.UnitType,
		UnitCount:     req.UnitCount,
		SquareFootage: req.SquareFootage,
		FloorLevel:    req.FloorLevel,
		ViewType:      req.ViewType,
		BaseRent:      req.BaseRent,
		AmenityRent:   req.AmenityRent,
	}
}

func analysisToAPI(rec records.Analysis, scenarios []records.Scenario) api.Analysis {
	out := api.Analysis{
		ID:               rec.ID,
		PropertyID:       rec.PropertyID,
		Name:             rec.Name,
		Description:      rec.Description,
		OccupancyRate:    rec.OccupancyRate,
		ParentAnalysisID: rec.ParentAnalysisID,
		CreatedAt:        rec.CreatedAt,
		UpdatedAt:        rec.UpdatedAt,
		Scenarios:        make([]api.Scenario, 0, len(scenarios)),
	}
	for _, sc := range scenarios {
		out.Scenarios = append(out.Scenarios, scenarioToAPI(sc))
	}
	return out
}

func scenarioToAPI(rec records.Scenario) api.Scenario {
	out := api.Scenario{
		ID:                   rec.ID,
		AnalysisID:           rec.AnalysisID,
		Name:                 rec.Name,
		BaseRentPctAdj:       rec.BaseRentPctAdj,
		BaseRentDollarAdj:    rec.BaseRentDollarAdj,
		AmenityRentPctAdj:    rec.AmenityRentPctAdj,
		AmenityRentDollarAdj: rec.AmenityRentDollarAdj,
		ConcessionType:       rec.ConcessionType,
		ConcessionValue:      rec.ConcessionValue,
		CreatedAt:            rec.CreatedAt,
	}
	if rec.Results != nil {
		out.Results = &api.ScenarioResults{
			TotalAnnualRevenue: rec.Results.TotalAnnualRevenue,
			AvgRentPerUnit:     rec.Results.AvgRentPerUnit,
			RevenuePerSqft:     rec.Results.RevenuePerSqft,
			WeightedAvgRent:    rec.Results.WeightedAvgRent,
		}
	}
	return out
}

func scenarioFromRequest(id string, req api.CreateScenario, createdAt time.Time) records.Scenario {
	concessionType := req.ConcessionType
	if concessionType == "" {
		concessionType = string(domain.ConcessionNone)
	}
	return records.Scenario{
		ID:                   id,
		AnalysisID:           req.AnalysisID,
		Name:                 req.Name,
		BaseRentPctAdj:       req.BaseRentPctAdj,
		BaseRentDollarAdj:    req.BaseRentDollarAdj,
		AmenityRentPctAdj:    req.AmenityRentPctAdj,
		AmenityRentDollarAdj: req.AmenityRentDollarAdj,
		ConcessionType:       concessionType,
		ConcessionValue:      req.ConcessionValue,
		CreatedAt:            createdAt,
	}
}

func domainScenarioToAPI(s domain.Scenario) api.Scenario {
	out := api.Scenario{
		ID:                   s.ID,
		AnalysisID:           s.AnalysisID,
		Name:                 s.Name,
		BaseRentPctAdj:       s.BaseRentPctAdj,
		BaseRentDollarAdj:    s.BaseRentDollarAdj,
		AmenityRentPctAdj:    s.AmenityRentPctAdj,
		AmenityRentDollarAdj: s.AmenityRentDollarAdj,
		ConcessionType:       string(s.ConcessionType),
		ConcessionValue:      s.ConcessionValue,
		CreatedAt:            s.CreatedAt,
	}
	if s.Results != nil {
		out.Results = &api.ScenarioResults{
			TotalAnnualRevenue: s.Results.TotalAnnualRevenue,
			AvgRentPerUnit:     s.Results.AvgRentPerUnit,
			RevenuePerSqft:     s.Results.RevenuePerSqft,
			WeightedAvgRent:    s.Results.WeightedAvgRent,
		}
	}
	return out
}

func domainAnalysisToAPI(a domain.Analysis) api.Analysis {
	out := api.Analysis{
		ID:               a.ID,
		PropertyID:       a.PropertyID,
		Name:             a.Name,
		Description:      a.Description,
		OccupancyRate:    a.OccupancyRate,
		ParentAnalysisID: a.ParentAnalysisID,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
		Scenarios:        make([]api.Scenario, 0, len(a.Scenarios)),
	}
	for _, sc := range a.Scenarios {
		out.Scenarios = append(out.Scenarios, domainScenarioToAPI(sc))
	}
	return out
}
