package store

import (
	"context"

	"github.com/ougirez/econdash/internal/domain"
	"github.com/ougirez/econdash/internal/domain/dto"
)

func (s *store) GeographyDashboardView(ctx context.Context, year domain.Year) ([]dto.GeographyDashboardRow, error) {
	return list[dto.GeographyDashboardRow](ctx, s, ViewGeographyDashboard, Filter{"year": year})
}

func (s *store) VerticalDistributionView(ctx context.Context, year domain.Year) ([]dto.VerticalDistributionRow, error) {
	return list[dto.VerticalDistributionRow](ctx, s, ViewVerticalDistribution, Filter{"year": year})
}
