package dashboard

import (
	"context"
	"fmt"

	"github.com/ougirez/econdash/internal/domain"
	"github.com/ougirez/econdash/internal/pkg/constants"
	"github.com/ougirez/econdash/internal/service/aggregation"
)

// Render produces the payload for the active tab of state.
func (s *Service) Render(ctx context.Context, state domain.AppState) (*domain.ViewPayload, error) {
	if !state.Tab.Valid() {
		return nil, constants.BadRequestf("unknown tab %q", state.Tab)
	}

	res := &domain.ViewPayload{State: state}

	switch state.Tab {
	case domain.TabOverview:
		summary, err := s.Headlines(ctx, state.Year)
		if err != nil {
			return nil, err
		}
		ref, err := s.ReferenceData(ctx)
		if err != nil {
			return nil, err
		}
		res.Summary, res.Reference = summary, ref
	case domain.TabVerticals:
		verticals, err := s.VerticalsByCategory(ctx, state.Year, state.Category)
		if err != nil {
			return nil, err
		}
		res.Verticals = verticals
	case domain.TabGeographies:
		groups, err := s.GroupedGeographyOverview(ctx, state.Year)
		if err != nil {
			return nil, err
		}
		res.Geographies = groups
	case domain.TabFactors:
		factors, err := s.store.ListFactors(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("store.ListFactors: %w", err)
		}
		res.Factors = factors
	}

	return res, nil
}

// Headlines sums every vertical's totals for year.
func (s *Service) Headlines(ctx context.Context, year domain.Year) (*domain.OverviewHeadlines, error) {
	verticals, err := s.VerticalsByCategory(ctx, year, domain.CategoryAll)
	if err != nil {
		return nil, err
	}
	geographies, err := s.GeographyOverview(ctx, year)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Totals, len(verticals))
	for _, v := range verticals {
		byID[v.Vertical.ID] = v.Totals
	}

	return &domain.OverviewHeadlines{
		Totals:         aggregation.Sum(byID, s.metrics()),
		VerticalCount:  len(verticals),
		GeographyCount: len(geographies),
	}, nil
}
