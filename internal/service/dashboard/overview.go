package dashboard

import (
	"context"
	"fmt"
	"sort"

	"github.com/ougirez/econdash/internal/domain"
	"github.com/ougirez/econdash/internal/pkg/cache"
	"github.com/ougirez/econdash/internal/pkg/constants"
	"github.com/ougirez/econdash/internal/pkg/store"
	"github.com/ougirez/econdash/internal/service/aggregation"
)

// VerticalOverview returns totals for every core vertical.
func (s *Service) VerticalOverview(ctx context.Context, year domain.Year) ([]domain.VerticalSummary, error) {
	return s.VerticalsByCategory(ctx, year, domain.CategoryCore)
}

func (s *Service) VerticalsByCategory(ctx context.Context, year domain.Year, category string) ([]domain.VerticalSummary, error) {
	switch category {
	case domain.CategoryCore, domain.CategoryDigitizing, domain.CategoryAll:
	default:
		return nil, constants.BadRequestf("unknown category %q", category)
	}

	key := cache.Key("vertical_overview", s.source, year, category)
	var cached []domain.VerticalSummary
	if s.fromCache(ctx, key, &cached) {
		return cached, nil
	}

	all, err := s.store.ListVerticals(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("store.ListVerticals: %w", err)
	}

	verticals := make([]domain.Vertical, 0, len(all))
	ids := make([]string, 0, len(all))
	for _, v := range all {
		if v.InCategory(category) {
			verticals = append(verticals, v)
			ids = append(ids, v.ID)
		}
	}

	totals, counts, err := s.verticalTotals(ctx, year, ids)
	if err != nil {
		return nil, err
	}

	res := make([]domain.VerticalSummary, 0, len(verticals))
	for _, v := range verticals {
		res = append(res, domain.VerticalSummary{
			Vertical:    v,
			Totals:      totals[v.ID],
			TargetCount: counts[v.ID],
		})
	}

	s.toCache(ctx, key, res)
	return res, nil
}

func (s *Service) verticalTotals(ctx context.Context, year domain.Year, ids []string) (map[string]domain.Totals, map[string]int, error) {
	if s.source == SourceView {
		rows, err := s.store.VerticalDistributionView(ctx, year)
		if err != nil {
			return nil, nil, fmt.Errorf("store.VerticalDistributionView: %w", err)
		}

		totals := zeroFilled(ids, s.metrics())
		counts := make(map[string]int, len(rows))
		for _, r := range rows {
			if base, ok := totals[r.VerticalID]; ok {
				totals[r.VerticalID] = merge(base, r.Totals())
				counts[r.VerticalID] = r.TargetCount
			}
		}
		return totals, counts, nil
	}

	rows, err := s.store.ListTargets(ctx, store.Filter{"year": year})
	if err != nil {
		return nil, nil, fmt.Errorf("store.ListTargets: %w", err)
	}

	return s.aggregator.Aggregate(rows, domain.GroupByVertical, ids),
		aggregation.CountRows(rows, domain.GroupByVertical), nil
}

// GeographyOverview returns totals and tier for every geography.
func (s *Service) GeographyOverview(ctx context.Context, year domain.Year) ([]domain.GeographySummary, error) {
	key := cache.Key("geography_overview", s.source, year)
	var cached []domain.GeographySummary
	if s.fromCache(ctx, key, &cached) {
		return cached, nil
	}

	geographies, err := s.store.ListGeographies(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("store.ListGeographies: %w", err)
	}

	ids := make([]string, 0, len(geographies))
	for _, g := range geographies {
		ids = append(ids, g.ID)
	}

	totals, err := s.geographyTotals(ctx, year, ids)
	if err != nil {
		return nil, err
	}

	res := make([]domain.GeographySummary, 0, len(geographies))
	for _, g := range geographies {
		res = append(res, domain.GeographySummary{
			Geography: g,
			Tier:      g.Tier,
			Totals:    totals[g.ID],
		})
	}

	s.toCache(ctx, key, res)
	return res, nil
}

func (s *Service) geographyTotals(ctx context.Context, year domain.Year, ids []string) (map[string]domain.Totals, error) {
	if s.source == SourceView {
		rows, err := s.store.GeographyDashboardView(ctx, year)
		if err != nil {
			return nil, fmt.Errorf("store.GeographyDashboardView: %w", err)
		}

		totals := zeroFilled(ids, s.metrics())
		for _, r := range rows {
			if base, ok := totals[r.GeographyID]; ok {
				totals[r.GeographyID] = merge(base, r.Totals())
			}
		}
		return totals, nil
	}

	rows, err := s.store.ListTargets(ctx, store.Filter{"year": year})
	if err != nil {
		return nil, fmt.Errorf("store.ListTargets: %w", err)
	}

	return s.aggregator.Aggregate(rows, domain.GroupByGeography, ids), nil
}

var tierOrder = map[string]int{
	domain.TierInvestAggressively: 0,
	domain.TierInvestAsAnchor:     1,
	domain.TierInvestLater:        2,
}

// GroupByTier buckets summaries by tier: tier1, tier2, tier3, then any other
// tier alphabetically. Order within a tier is preserved.
func GroupByTier(summaries []domain.GeographySummary, metrics []domain.Metric) []domain.TierGroup {
	groups := make(map[string]*domain.TierGroup)
	order := make([]string, 0)

	for _, gs := range summaries {
		g, ok := groups[gs.Tier]
		if !ok {
			g = &domain.TierGroup{Tier: gs.Tier}
			groups[gs.Tier] = g
			order = append(order, gs.Tier)
		}
		g.Geographies = append(g.Geographies, gs)
	}

	sort.SliceStable(order, func(i, j int) bool {
		ri, iKnown := tierOrder[order[i]]
		rj, jKnown := tierOrder[order[j]]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown != jKnown:
			return iKnown
		}
		return order[i] < order[j]
	})

	out := make([]domain.TierGroup, 0, len(order))
	for _, tier := range order {
		g := groups[tier]
		byID := make(map[string]domain.Totals, len(g.Geographies))
		for _, gs := range g.Geographies {
			byID[gs.Geography.ID] = gs.Totals
		}
		g.Totals = aggregation.Sum(byID, metrics)
		out = append(out, *g)
	}
	return out
}

// GroupedGeographyOverview is GeographyOverview bucketed by tier.
func (s *Service) GroupedGeographyOverview(ctx context.Context, year domain.Year) ([]domain.TierGroup, error) {
	summaries, err := s.GeographyOverview(ctx, year)
	if err != nil {
		return nil, err
	}
	return GroupByTier(summaries, s.metrics()), nil
}
