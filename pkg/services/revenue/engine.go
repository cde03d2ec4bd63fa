// Package revenue implements the scenario-metrics engine and the waterfall
// decomposer. Both are pure functions over immutable inputs and are safe to
// call from any number of goroutines.
package revenue

import (
	"math"

	"github.com/stu-tools/rent-atlas/pkg/models/domain"
)

// ComputeScenarioMetrics derives aggregate annual revenue metrics for one
// scenario. For each floorplan the base and amenity rents are adjusted
// independently (percentage first, then the flat dollar shift), the
// concession is applied to the summed gross rent, and the net effective rent
// is annualized across the floorplan's units at the given occupancy rate.
//
// The engine performs no input validation; out-of-range values propagate
// arithmetically. An empty floorplan list yields all-zero results.
func ComputeScenarioMetrics(
	floorplans []domain.Floorplan,
	adj domain.Adjustments,
	occupancyRate float64,
) domain.ScenarioResults {
	var (
		totalAnnualRevenue float64
		totalUnits         int
		totalSqft          float64
		weightedRentSum    float64
	)

	for _, fp := range floorplans {
		adjustedBase := applyAdjustment(fp.BaseRent, adj.BaseRentPctAdj, adj.BaseRentDollarAdj)
		adjustedAmenity := applyAdjustment(fp.AmenityRent, adj.AmenityRentPctAdj, adj.AmenityRentDollarAdj)

		grossRent := adjustedBase + adjustedAmenity
		netEffectiveRent := applyConcession(grossRent, adj.ConcessionType, adj.ConcessionValue)

		units := float64(fp.UnitCount)
		totalAnnualRevenue += netEffectiveRent * units * occupancyRate * 12
		totalUnits += fp.UnitCount
		totalSqft += fp.SquareFootage * units
		weightedRentSum += netEffectiveRent * units
	}

	var avgRentPerUnit, revenuePerSqft, weightedAvgRent float64
	if totalUnits > 0 {
		avgRentPerUnit = totalAnnualRevenue / float64(totalUnits) / 12
		weightedAvgRent = weightedRentSum / float64(totalUnits)
	}
	if totalSqft > 0 {
		revenuePerSqft = totalAnnualRevenue / totalSqft
	}

	// Rounding happens only here, at the boundary.
	return domain.ScenarioResults{
		TotalAnnualRevenue: round2(totalAnnualRevenue),
		AvgRentPerUnit:     round2(avgRentPerUnit),
		RevenuePerSqft:     round2(revenuePerSqft),
		WeightedAvgRent:    round2(weightedAvgRent),
	}
}

// applyAdjustment scales a monthly rent by a fractional adjustment and then
// adds a flat dollar shift. The dollar shift is not itself scaled.
func applyAdjustment(value, pctAdj, dollarAdj float64) float64 {
	return value*(1+pctAdj) + dollarAdj
}

// applyConcession converts gross rent into net effective rent. Unrecognized
// concession types pass the gross rent through unchanged; that is a
// deliberate permissive default, not an error.
func applyConcession(grossRent float64, kind domain.ConcessionType, value float64) float64 {
	switch kind {
	case domain.ConcessionPercentage:
		return grossRent * (1 - value)
	case domain.ConcessionDollar:
		return math.Max(0, grossRent-value)
	case domain.ConcessionFreeMonths:
		// Free months spread over a 12-month term. The denominator is fixed
		// at 12; other lease-term lengths are not modeled.
		return grossRent * ((12 - value) / 12)
	default:
		return grossRent
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
