package store

import (
	"context"

	"github.com/ougirez/econdash/internal/domain"
	"github.com/ougirez/econdash/internal/domain/dto"
	"github.com/ougirez/econdash/internal/pkg/store/xpgx"
)

type Pool = xpgx.Pool

// Store is the read-only fact store. Every method returns the full matching
// row set; a failed query surfaces as *constants.StoreError.
type Store interface {
	ListVerticals(ctx context.Context, f Filter) ([]domain.Vertical, error)
	ListGeographies(ctx context.Context, f Filter) ([]domain.Geography, error)
	ListFactors(ctx context.Context, f Filter) ([]domain.Factor, error)
	ListTargets(ctx context.Context, f Filter) ([]domain.Target, error)
	ListConversionRatios(ctx context.Context, f Filter) ([]domain.ConversionRatio, error)
	// ListApportionmentRules only ever returns active rules.
	ListApportionmentRules(ctx context.Context, f Filter) ([]domain.ApportionmentRule, error)
	ListGeographyPremiums(ctx context.Context, f Filter) ([]domain.GeographyPremium, error)

	GeographyDashboardView(ctx context.Context, year domain.Year) ([]dto.GeographyDashboardRow, error)
	VerticalDistributionView(ctx context.Context, year domain.Year) ([]dto.VerticalDistributionRow, error)
}

type store struct {
	pool xpgx.Querier
}

func NewStore(pool xpgx.Querier) Store {
	return &store{pool}
}
