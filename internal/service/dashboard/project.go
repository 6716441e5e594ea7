package dashboard

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ougirez/econdash/internal/domain"
	"github.com/ougirez/econdash/internal/pkg/constants"
	"github.com/ougirez/econdash/internal/service/conversion"
)

type ProjectRequest struct {
	VerticalID  string  `query:"vertical_id"`
	GeographyID string  `query:"geography_id"`
	Metric      string  `query:"metric" validate:"required"`
	Value       float64 `query:"value" validate:"gte=0"`
	Unit        string  `query:"unit"`
	To          string  `query:"to" validate:"required,nefield=Metric"`
	// Premium applies the geography cost premium to the result.
	Premium bool `query:"premium"`
}

type ProjectResponse struct {
	Known     conversion.Quantity `json:"known"`
	Projected conversion.Quantity `json:"projected"`
	Premium   float64             `json:"premium,omitempty"`
}

// Project converts one known quantity into another metric using the store's
// ratios layered over the defaults.
func (s *Service) Project(ctx context.Context, req ProjectRequest) (*ProjectResponse, error) {
	resolver, err := s.Resolver(ctx)
	if err != nil {
		return nil, err
	}

	known := conversion.Quantity{
		Metric: domain.Metric(req.Metric),
		Value:  req.Value,
		Unit:   conversion.Unit(req.Unit),
	}
	if known.Unit == "" {
		known.Unit = s.units.Of(known.Metric)
	}
	if known.Unit != "" && !known.Unit.Known() {
		return nil, fmt.Errorf("%w: unknown unit %q", constants.ErrUnitMismatch, known.Unit)
	}

	pc := conversion.Context{VerticalID: req.VerticalID, GeographyID: req.GeographyID}
	projected, err := resolver.Project(known, domain.Metric(req.To), pc)
	if err != nil {
		return nil, err
	}

	res := &ProjectResponse{Known: known, Projected: projected}
	if req.Premium {
		res.Premium = resolver.Premium(req.GeographyID)
		res.Projected.Value = resolver.AdjustCost(projected.Value, req.GeographyID)
	}
	return res, nil
}

// Resolver loads the store's ratio and premium tables.
func (s *Service) Resolver(ctx context.Context) (*conversion.Resolver, error) {
	var (
		ratios   []domain.ConversionRatio
		premiums []domain.GeographyPremium
		g, gctx  = errgroup.WithContext(ctx)
	)

	g.Go(func() (err error) {
		ratios, err = s.store.ListConversionRatios(gctx, nil)
		if err != nil {
			return fmt.Errorf("store.ListConversionRatios: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		premiums, err = s.store.ListGeographyPremiums(gctx, nil)
		if err != nil {
			return fmt.Errorf("store.ListGeographyPremiums: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return conversion.NewResolver(ratios, premiums), nil
}
