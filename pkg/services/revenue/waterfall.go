package revenue

import "github.com/stu-tools/rent-atlas/pkg/models/domain"

// Waterfall step labels, in emission order.
const (
	StepLabelBaseline   = "Baseline"
	StepLabelBaseRent   = "Base Rent Adj"
	StepLabelAmenity    = "Amenity Rent Adj"
	StepLabelConcession = "Concessions"
	StepLabelFinal      = "Final"
)

// ComputeWaterfall attributes the annual-revenue delta between two scenarios
// to three causes, in a fixed order: base-rent adjustments first, then
// amenity-rent adjustments, then concessions. Attribution is order-sensitive,
// so the ordering is not configurable.
//
// Each intermediate engine run uses a fresh parameter value built from the
// baseline with one more group overridden; the concession impact is the
// residual, which by construction equals applying the comparison concession
// on top of the amenity step. The four deltas sum to Final - Baseline within
// the two-decimal rounding of the engine's totals.
func ComputeWaterfall(
	floorplans []domain.Floorplan,
	baseline domain.Adjustments,
	comparison domain.Adjustments,
	occupancyRate float64,
) []domain.WaterfallStep {
	baselineResult := ComputeScenarioMetrics(floorplans, baseline, occupancyRate)
	comparisonResult := ComputeScenarioMetrics(floorplans, comparison, occupancyRate)

	afterBase := baseline.WithBaseRent(comparison.BaseRentPctAdj, comparison.BaseRentDollarAdj)
	afterBaseResult := ComputeScenarioMetrics(floorplans, afterBase, occupancyRate)
	baseRentImpact := afterBaseResult.TotalAnnualRevenue - baselineResult.TotalAnnualRevenue

	afterAmenity := afterBase.WithAmenityRent(comparison.AmenityRentPctAdj, comparison.AmenityRentDollarAdj)
	afterAmenityResult := ComputeScenarioMetrics(floorplans, afterAmenity, occupancyRate)
	amenityRentImpact := afterAmenityResult.TotalAnnualRevenue - afterBaseResult.TotalAnnualRevenue

	concessionImpact := comparisonResult.TotalAnnualRevenue - afterAmenityResult.TotalAnnualRevenue

	return []domain.WaterfallStep{
		{Label: StepLabelBaseline, Value: baselineResult.TotalAnnualRevenue, Type: domain.StepBase},
		{Label: StepLabelBaseRent, Value: baseRentImpact, Type: domain.StepDelta},
		{Label: StepLabelAmenity, Value: amenityRentImpact, Type: domain.StepDelta},
		{Label: StepLabelConcession, Value: concessionImpact, Type: domain.StepDelta},
		{Label: StepLabelFinal, Value: comparisonResult.TotalAnnualRevenue, Type: domain.StepFinal},
	}
}
