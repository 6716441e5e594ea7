package conversion

import "github.com/ougirez/econdash/internal/domain"

func strPtr(s string) *string { return &s }

// DefaultRatios is the static ratio table used when the store has no row for
// a conversion. Store rows always take precedence.
func DefaultRatios() []domain.ConversionRatio {
	return []domain.ConversionRatio{
		{
			ID: "default-esdm-employment-land", VerticalID: strPtr("esdm"),
			FromMetric: "employment", ToMetric: "land", Ratio: 400,
			PerUnit: string(Employees), OutUnit: string(Sqft),
			Unit: "sq ft per employee", Source: "ESDM manufacturing floor-space norm",
		},
		{
			ID: "default-esdm-land-capital", VerticalID: strPtr("esdm"),
			FromMetric: "land", ToMetric: "capital", Ratio: 6,
			PerUnit: string(Acre), OutUnit: string(USDMillion),
			Unit: "USD million per acre", Source: "ESDM fab and assembly capex benchmark",
		},
		{
			ID:         "default-revenue-employment",
			FromMetric: "revenue", ToMetric: "employment", Ratio: 20,
			PerUnit: string(USDMillion), OutUnit: string(Employees),
			Unit: "employees per USD 1M", Source: "NASSCOM Strategic Review",
		},
		{
			ID:         "default-employment-revenue",
			FromMetric: "employment", ToMetric: "revenue", Ratio: 0.05,
			PerUnit: string(Employees), OutUnit: string(USDMillion),
			Unit: "USD million per employee", Source: "NASSCOM Strategic Review",
		},
		{
			ID:         "default-employment-land",
			FromMetric: "employment", ToMetric: "land", Ratio: 100,
			PerUnit: string(Employees), OutUnit: string(Sqft),
			Unit: "sq ft per employee", Source: "Grade-A office space norm",
		},
		{
			ID:         "default-land-capital",
			FromMetric: "land", ToMetric: "capital", Ratio: 2.5,
			PerUnit: string(Acre), OutUnit: string(USDMillion),
			Unit: "USD million per acre", Source: "State industrial land benchmark",
		},
	}
}

// DefaultPremiums are cost multipliers per geography relative to the state
// average.
func DefaultPremiums() []domain.GeographyPremium {
	return []domain.GeographyPremium{
		{GeographyID: "bengaluru", Multiplier: 1.35, Basis: "metro land and wage premium"},
		{GeographyID: "mysuru", Multiplier: 0.9, Basis: "tier-2 cluster"},
		{GeographyID: "mangaluru", Multiplier: 0.85, Basis: "tier-2 cluster"},
		{GeographyID: "hubballi-dharwad", Multiplier: 0.8, Basis: "tier-2 cluster"},
		{GeographyID: "kalaburagi", Multiplier: 0.7, Basis: "tier-3 cluster"},
	}
}
