package store

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/ougirez/econdash/internal/domain"
)

func (s *store) ListVerticals(ctx context.Context, f Filter) ([]domain.Vertical, error) {
	return list[domain.Vertical](ctx, s, EntityVerticals, f)
}

func (s *store) ListGeographies(ctx context.Context, f Filter) ([]domain.Geography, error) {
	return list[domain.Geography](ctx, s, EntityGeographies, f)
}

func (s *store) ListFactors(ctx context.Context, f Filter) ([]domain.Factor, error) {
	return list[domain.Factor](ctx, s, EntityFactors, f)
}

func (s *store) ListTargets(ctx context.Context, f Filter) ([]domain.Target, error) {
	return list[domain.Target](ctx, s, EntityTargets, f)
}

func (s *store) ListConversionRatios(ctx context.Context, f Filter) ([]domain.ConversionRatio, error) {
	return list[domain.ConversionRatio](ctx, s, EntityConversionRatios, f)
}

func (s *store) ListApportionmentRules(ctx context.Context, f Filter) ([]domain.ApportionmentRule, error) {
	return list[domain.ApportionmentRule](ctx, s, EntityApportionmentRules, f,
		squirrel.Eq{"status": domain.RuleStatusActive})
}

func (s *store) ListGeographyPremiums(ctx context.Context, f Filter) ([]domain.GeographyPremium, error) {
	return list[domain.GeographyPremium](ctx, s, EntityGeographyPremiums, f)
}
