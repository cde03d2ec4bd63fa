package domain

// ConcessionType identifies how a rent discount is applied to gross rent.
// The set is closed; unrecognized values are treated as ConcessionNone.
type ConcessionType string

const (
	ConcessionNone       ConcessionType = "none"
	ConcessionPercentage ConcessionType = "percentage"
	ConcessionDollar     ConcessionType = "dollar"
	ConcessionFreeMonths ConcessionType = "free_months"
)

// Adjustments holds the rent-adjustment and concession parameters of a
// scenario. The zero value is the identity scenario: no adjustments, no
// concession.
type Adjustments struct {
	BaseRentPctAdj       float64 // fractional, 0.05 = +5%
	BaseRentDollarAdj    float64 // flat monthly amount, applied after the pct scaling
	AmenityRentPctAdj    float64
	AmenityRentDollarAdj float64
	ConcessionType       ConcessionType
	ConcessionValue      float64 // meaning depends on ConcessionType
}

// WithBaseRent returns a copy with the base-rent adjustments replaced.
func (a Adjustments) WithBaseRent(pctAdj, dollarAdj float64) Adjustments {
	a.BaseRentPctAdj = pctAdj
	a.BaseRentDollarAdj = dollarAdj
	return a
}

// WithAmenityRent returns a copy with the amenity-rent adjustments replaced.
func (a Adjustments) WithAmenityRent(pctAdj, dollarAdj float64) Adjustments {
	a.AmenityRentPctAdj = pctAdj
	a.AmenityRentDollarAdj = dollarAdj
	return a
}

// ScenarioResults is the aggregate revenue outcome of one scenario.
// All figures are rounded to two decimals when the result is produced.
type ScenarioResults struct {
	TotalAnnualRevenue float64
	AvgRentPerUnit     float64 // monthly, derived from the annual total
	RevenuePerSqft     float64 // annual revenue per unit of aggregate floor area
	WeightedAvgRent    float64 // unit-count-weighted net effective monthly rent
}

// StepType is a rendering hint for a waterfall bar.
type StepType string

const (
	StepBase  StepType = "base"
	StepDelta StepType = "delta"
	StepFinal StepType = "final"
)

// WaterfallStep is one bar of a revenue-delta attribution. Value is an
// absolute revenue for base/final steps and a signed delta otherwise.
type WaterfallStep struct {
	Label string
	Value float64
	Type  StepType
}
