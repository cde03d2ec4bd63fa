// Package analysis orchestrates the revenue engine over stored records:
// lookups, precondition checks, result caching, and analysis duplication.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stu-tools/rent-atlas/pkg/models/domain"
	records "github.com/stu-tools/rent-atlas/pkg/models/store"
	"github.com/stu-tools/rent-atlas/pkg/services/revenue"
	"github.com/stu-tools/rent-atlas/pkg/store"
)

// ErrNoFloorplans is returned when a calculation is requested for a property
// that has no floorplans. The engine itself would return zeros; surfacing the
// precondition keeps an empty rent roll from masquerading as a real result.
var ErrNoFloorplans = errors.New("property has no floorplans")

// ErrAnalysisMismatch is returned when a waterfall is requested for two
// scenarios that do not share a parent analysis.
var ErrAnalysisMismatch = errors.New("scenarios belong to different analyses")

type Service interface {
	// CalculateScenario runs the metrics engine for the scenario, caches the
	// results on the stored record, and returns the updated scenario.
	CalculateScenario(ctx context.Context, scenarioID string) (*domain.Scenario, error)
	// CompareScenarios decomposes the revenue delta from baseline to subject
	// into the five-step attribution waterfall.
	CompareScenarios(ctx context.Context, scenarioID, baselineScenarioID string) ([]domain.WaterfallStep, error)
	// DuplicateAnalysis deep-copies an analysis and its scenarios under a new
	// name, linking the copy to its source.
	DuplicateAnalysis(ctx context.Context, analysisID, newName string) (*domain.Analysis, error)
}

type service struct {
	store store.Store
	now   func() time.Time
}

func NewService(s store.Store) Service {
	return &service{store: s, now: time.Now}
}

func (s *service) CalculateScenario(ctx context.Context, scenarioID string) (*domain.Scenario, error) {
	scenario, analysis, err := s.scenarioWithAnalysis(ctx, scenarioID)
	if err != nil {
		return nil, err
	}

	floorplans, err := s.floorplansForProperty(ctx, analysis.PropertyID)
	if err != nil {
		return nil, err
	}
	if len(floorplans) == 0 {
		return nil, ErrNoFloorplans
	}

	results := revenue.ComputeScenarioMetrics(floorplans, scenarioAdjustments(*scenario), analysis.OccupancyRate)

	scenario.Results = &records.ScenarioResults{
		TotalAnnualRevenue: results.TotalAnnualRevenue,
		AvgRentPerUnit:     results.AvgRentPerUnit,
		RevenuePerSqft:     results.RevenuePerSqft,
		WeightedAvgRent:    results.WeightedAvgRent,
	}
	if err := s.store.Scenarios().Put(ctx, *scenario); err != nil {
		return nil, fmt.Errorf("cache scenario results: %w", err)
	}

	out := scenarioToDomain(*scenario)
	return &out, nil
}

func (s *service) CompareScenarios(ctx context.Context, scenarioID, baselineScenarioID string) ([]domain.WaterfallStep, error) {
	subject, analysis, err := s.scenarioWithAnalysis(ctx, scenarioID)
	if err != nil {
		return nil, err
	}
	baseline, err := s.store.Scenarios().Get(ctx, baselineScenarioID)
	if err != nil {
		return nil, fmt.Errorf("baseline scenario %s: %w", baselineScenarioID, err)
	}
	if baseline.AnalysisID != subject.AnalysisID {
		return nil, ErrAnalysisMismatch
	}

	floorplans, err := s.floorplansForProperty(ctx, analysis.PropertyID)
	if err != nil {
		return nil, err
	}

	return revenue.ComputeWaterfall(
		floorplans,
		scenarioAdjustments(*baseline),
		scenarioAdjustments(*subject),
		analysis.OccupancyRate,
	), nil
}

func (s *service) DuplicateAnalysis(ctx context.Context, analysisID, newName string) (*domain.Analysis, error) {
	original, err := s.store.Analyses().Get(ctx, analysisID)
	if err != nil {
		return nil, fmt.Errorf("analysis %s: %w", analysisID, err)
	}

	now := s.now().UTC()
	copied := records.Analysis{
		ID:               uuid.New().String(),
		PropertyID:       original.PropertyID,
		Name:             newName,
		Description:      fmt.Sprintf("Duplicated from: %s", original.Name),
		OccupancyRate:    original.OccupancyRate,
		ParentAnalysisID: original.ID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.store.Analyses().Put(ctx, copied); err != nil {
		return nil, fmt.Errorf("store duplicated analysis: %w", err)
	}

	scenarios, err := s.store.Scenarios().ListByAnalysis(ctx, analysisID)
	if err != nil {
		return nil, fmt.Errorf("list scenarios of %s: %w", analysisID, err)
	}

	out := analysisToDomain(copied)
	for _, sc := range scenarios {
		sc.ID = uuid.New().String()
		sc.AnalysisID = copied.ID
		sc.CreatedAt = now
		if err := s.store.Scenarios().Put(ctx, sc); err != nil {
			return nil, fmt.Errorf("copy scenario: %w", err)
		}
		out.Scenarios = append(out.Scenarios, scenarioToDomain(sc))
	}

	return &out, nil
}

func (s *service) scenarioWithAnalysis(ctx context.Context, scenarioID string) (*records.Scenario, *records.Analysis, error) {
	scenario, err := s.store.Scenarios().Get(ctx, scenarioID)
	if err != nil {
		return nil, nil, fmt.Errorf("scenario %s: %w", scenarioID, err)
	}
	analysis, err := s.store.Analyses().Get(ctx, scenario.AnalysisID)
	if err != nil {
		return nil, nil, fmt.Errorf("analysis %s: %w", scenario.AnalysisID, err)
	}
	return scenario, analysis, nil
}

func (s *service) floorplansForProperty(ctx context.Context, propertyID string) ([]domain.Floorplan, error) {
	recs, err := s.store.Floorplans().ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("list floorplans of %s: %w", propertyID, err)
	}
	out := make([]domain.Floorplan, 0, len(recs))
	for _, fp := range recs {
		out = append(out, floorplanToDomain(fp))
	}
	return out, nil
}
