package conversion

import (
	"errors"

	"github.com/ougirez/econdash/internal/domain"
	"github.com/ougirez/econdash/internal/pkg/constants"
)

type link struct {
	from, to domain.Metric
}

var chain = []link{
	{domain.MetricRevenue, domain.MetricEmployment},
	{domain.MetricEmployment, domain.MetricLand},
	{domain.MetricLand, domain.MetricCapital},
}

// Backfill walks revenue -> employment -> land -> capital and fills each
// metric that is zero from its non-zero predecessor. A link without a ratio
// is left unset. Derived capital carries the geography premium.
func (r *Resolver) Backfill(totals domain.Totals, mu MetricUnits, pc Context) (domain.Totals, []domain.Derivation) {
	out := totals.Clone()
	var derivations []domain.Derivation

	for _, l := range chain {
		if out[l.to] != 0 || out[l.from] == 0 {
			continue
		}

		ratio, err := r.Lookup(pc.VerticalID, l.from, l.to)
		if err != nil {
			continue
		}

		q, err := r.Project(Quantity{Metric: l.from, Value: out[l.from], Unit: mu.Of(l.from)}, l.to, pc)
		if err != nil {
			continue
		}

		v := q.Value
		if target := mu.Of(l.to); target != "" && q.Unit != "" {
			v, err = Convert(v, q.Unit, target)
			if err != nil {
				continue
			}
		}

		d := domain.Derivation{
			Metric: l.to,
			From:   l.from,
			Unit:   string(mu.Of(l.to)),
			Ratio:  ratio.Ratio,
			Source: ratio.Source,
		}
		if l.to == domain.MetricCapital {
			d.Premium = r.Premium(pc.GeographyID)
			v *= d.Premium
		}
		d.Value = v

		out[l.to] = v
		derivations = append(derivations, d)
	}

	return out, derivations
}

// IsUnavailable reports whether err only means the metric cannot be derived.
func IsUnavailable(err error) bool {
	return errors.Is(err, constants.ErrRatioNotFound)
}
