package dashboard

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/ougirez/econdash/internal/domain"
	"github.com/ougirez/econdash/internal/pkg/constants"
	"github.com/ougirez/econdash/internal/pkg/logger"
	"github.com/ougirez/econdash/internal/pkg/store"
)

type geoPair struct {
	from, to string
}

// Apportion splits a vertical's per-geography totals along the active
// apportionment rules. A rule bound to the vertical replaces the global rule
// for the same pair of geographies.
func (s *Service) Apportion(ctx context.Context, verticalID string, year domain.Year) (*domain.Apportionment, error) {
	var (
		verticals   []domain.Vertical
		geographies []domain.Geography
		rules       []domain.ApportionmentRule
		targets     []domain.Target
		g, gctx     = errgroup.WithContext(ctx)
	)

	g.Go(func() (err error) {
		verticals, err = s.store.ListVerticals(gctx, store.Filter{"id": verticalID})
		if err != nil {
			return fmt.Errorf("store.ListVerticals: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		geographies, err = s.store.ListGeographies(gctx, nil)
		if err != nil {
			return fmt.Errorf("store.ListGeographies: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		rules, err = s.store.ListApportionmentRules(gctx, nil)
		if err != nil {
			return fmt.Errorf("store.ListApportionmentRules: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		targets, err = s.store.ListTargets(gctx, store.Filter{"year": year, "vertical_id": verticalID})
		if err != nil {
			return fmt.Errorf("store.ListTargets: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	v, ok := findVertical(verticals, verticalID)
	if !ok {
		return nil, &constants.NotFoundError{Dimension: string(domain.DimensionVertical), ID: verticalID}
	}

	byID := make(map[string]domain.Geography, len(geographies))
	ids := make([]string, 0, len(geographies))
	for _, geo := range geographies {
		byID[geo.ID] = geo
		ids = append(ids, geo.ID)
	}
	totals := s.aggregator.Aggregate(targets, domain.GroupByGeography, ids)

	res := &domain.Apportionment{
		Vertical:    domain.EntityRef{ID: v.ID, Name: v.Name, Dimension: domain.DimensionVertical},
		Year:        year,
		Allocations: make([]domain.Allocation, 0),
	}

	for _, r := range selectRules(rules, verticalID) {
		from, okFrom := byID[r.FromGeographyID]
		to, okTo := byID[r.ToGeographyID]
		if !okFrom || !okTo {
			logger.Warnf(ctx, "dashboard: apportionment rule %s references unknown geography", r.ID)
			continue
		}

		res.Allocations = append(res.Allocations, domain.Allocation{
			From:       domain.EntityRef{ID: from.ID, Name: from.Name, Dimension: domain.DimensionGeography},
			To:         domain.EntityRef{ID: to.ID, Name: to.Name, Dimension: domain.DimensionGeography},
			Percentage: r.Percentage,
			Basis:      r.Basis,
			Confidence: r.Confidence,
			Totals:     totals[from.ID].Scale(r.Percentage / 100),
		})
	}

	return res, nil
}

// selectRules keeps one active rule per geography pair, preferring the one
// bound to verticalID, ordered by pair.
func selectRules(rules []domain.ApportionmentRule, verticalID string) []domain.ApportionmentRule {
	chosen := make(map[geoPair]domain.ApportionmentRule)
	for _, r := range rules {
		if !r.Active() {
			continue
		}
		specific := r.VerticalID != nil && *r.VerticalID != ""
		if specific && *r.VerticalID != verticalID {
			continue
		}

		p := geoPair{r.FromGeographyID, r.ToGeographyID}
		prev, ok := chosen[p]
		if !ok || (specific && (prev.VerticalID == nil || *prev.VerticalID == "")) {
			chosen[p] = r
		}
	}

	out := make([]domain.ApportionmentRule, 0, len(chosen))
	for _, r := range chosen {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FromGeographyID != out[j].FromGeographyID {
			return out[i].FromGeographyID < out[j].FromGeographyID
		}
		return out[i].ToGeographyID < out[j].ToGeographyID
	})
	return out
}
