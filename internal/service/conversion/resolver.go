package conversion

import (
	"strings"

	"github.com/ougirez/econdash/internal/domain"
	"github.com/ougirez/econdash/internal/pkg/constants"
)

// Context narrows a projection to a vertical and, for cost premiums, a
// geography. Both may be empty.
type Context struct {
	VerticalID  string
	GeographyID string
}

type Resolver struct {
	ratios   []domain.ConversionRatio
	premiums map[string]domain.GeographyPremium
}

// NewResolver builds a resolver over store rows followed by DefaultRatios.
// Store premiums override DefaultPremiums for the same geography.
func NewResolver(ratios []domain.ConversionRatio, premiums []domain.GeographyPremium) *Resolver {
	r := &Resolver{
		ratios:   make([]domain.ConversionRatio, 0, len(ratios)+len(DefaultRatios())),
		premiums: make(map[string]domain.GeographyPremium),
	}
	r.ratios = append(r.ratios, ratios...)
	r.ratios = append(r.ratios, DefaultRatios()...)

	for _, p := range DefaultPremiums() {
		r.premiums[p.GeographyID] = p
	}
	for _, p := range premiums {
		r.premiums[p.GeographyID] = p
	}

	return r
}

// Lookup returns the ratio converting from into to. A ratio bound to
// verticalID wins over a global one; within a level the earlier row wins.
func (r *Resolver) Lookup(verticalID string, from, to domain.Metric) (domain.ConversionRatio, error) {
	f, t := normalize(string(from)), normalize(string(to))

	if verticalID != "" {
		for _, ratio := range r.ratios {
			if !ratio.IsGlobal() && *ratio.VerticalID == verticalID && r.matches(ratio, f, t) {
				return ratio, nil
			}
		}
	}
	for _, ratio := range r.ratios {
		if ratio.IsGlobal() && r.matches(ratio, f, t) {
			return ratio, nil
		}
	}

	return domain.ConversionRatio{}, &constants.RatioNotFoundError{VerticalID: verticalID, From: string(from), To: string(to)}
}

func (r *Resolver) matches(ratio domain.ConversionRatio, from, to string) bool {
	return normalize(ratio.FromMetric) == from && normalize(ratio.ToMetric) == to
}

// Project derives metric to from a known quantity. The known value is first
// rescaled into the ratio's PerUnit; the result is in the ratio's OutUnit.
func (r *Resolver) Project(known Quantity, to domain.Metric, pc Context) (Quantity, error) {
	ratio, err := r.Lookup(pc.VerticalID, known.Metric, to)
	if err != nil {
		return Quantity{}, err
	}

	v := known.Value
	if known.Unit != "" && ratio.PerUnit != "" {
		v, err = Convert(v, known.Unit, Unit(ratio.PerUnit))
		if err != nil {
			return Quantity{}, err
		}
	}

	return Quantity{Metric: to, Value: v * ratio.Ratio, Unit: Unit(ratio.OutUnit)}, nil
}

// Premium is the cost multiplier of a geography, 1.0 when none is recorded.
func (r *Resolver) Premium(geographyID string) float64 {
	if p, ok := r.premiums[geographyID]; ok && p.Multiplier > 0 {
		return p.Multiplier
	}
	return 1.0
}

func (r *Resolver) AdjustCost(base float64, geographyID string) float64 {
	return base * r.Premium(geographyID)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
