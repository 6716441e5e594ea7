package dashboard

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ougirez/econdash/internal/domain"
	"github.com/ougirez/econdash/internal/pkg/cache"
	"github.com/ougirez/econdash/internal/pkg/constants"
	"github.com/ougirez/econdash/internal/pkg/store"
	"github.com/ougirez/econdash/internal/service/conversion"
)

// UnattributedName labels the breakdown row collecting facts whose other
// dimension is empty or unknown.
const UnattributedName = "Unattributed"

type detailsInput struct {
	verticals   []domain.Vertical
	geographies []domain.Geography
	targets     []domain.Target
	ratios      []domain.ConversionRatio
	premiums    []domain.GeographyPremium
}

// EntityDetails returns the totals of one vertical or geography for year,
// its breakdown along the other dimension and the chain-projected totals.
// Details always aggregate target rows; the views carry no cross-tab.
func (s *Service) EntityDetails(ctx context.Context, id string, dim domain.Dimension, year domain.Year) (*domain.EntityDetails, error) {
	if dim != domain.DimensionVertical && dim != domain.DimensionGeography {
		return nil, constants.BadRequestf("unknown dimension %q", dim)
	}

	key := cache.Key("details", dim, id, year)
	var cached domain.EntityDetails
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	in, err := s.fetchDetailsInput(ctx, id, dim, year)
	if err != nil {
		return nil, err
	}

	res := &domain.EntityDetails{Year: year}
	pc := conversion.Context{}

	switch dim {
	case domain.DimensionVertical:
		v, ok := findVertical(in.verticals, id)
		if !ok {
			return nil, &constants.NotFoundError{Dimension: string(dim), ID: id}
		}
		res.Entity = domain.EntityRef{ID: v.ID, Name: v.Name, Dimension: dim}
		res.Category = v.Category
		pc.VerticalID = v.ID
	case domain.DimensionGeography:
		g, ok := findGeography(in.geographies, id)
		if !ok {
			return nil, &constants.NotFoundError{Dimension: string(dim), ID: id}
		}
		res.Entity = domain.EntityRef{ID: g.ID, Name: g.Name, Dimension: dim}
		res.Tier = g.Tier
		pc.GeographyID = g.ID
	}

	res.Totals = s.aggregator.Aggregate(in.targets, dim.GroupKey(), []string{id})[id]
	res.Breakdown = s.breakdown(in, dim)

	resolver := conversion.NewResolver(in.ratios, in.premiums)
	res.Projected, res.Derivations = resolver.Backfill(res.Totals, s.units, pc)

	s.toCache(ctx, key, res)
	return res, nil
}

func (s *Service) fetchDetailsInput(ctx context.Context, id string, dim domain.Dimension, year domain.Year) (*detailsInput, error) {
	var (
		in      detailsInput
		g, gctx = errgroup.WithContext(ctx)
	)

	g.Go(func() (err error) {
		in.verticals, err = s.store.ListVerticals(gctx, nil)
		if err != nil {
			return fmt.Errorf("store.ListVerticals: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		in.geographies, err = s.store.ListGeographies(gctx, nil)
		if err != nil {
			return fmt.Errorf("store.ListGeographies: %w", err)
		}
		return nil
	})
	filter := store.Filter{"year": year}
	filter[string(dim.GroupKey())] = id

	g.Go(func() (err error) {
		in.targets, err = s.store.ListTargets(gctx, filter)
		if err != nil {
			return fmt.Errorf("store.ListTargets: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		in.ratios, err = s.store.ListConversionRatios(gctx, nil)
		if err != nil {
			return fmt.Errorf("store.ListConversionRatios: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		in.premiums, err = s.store.ListGeographyPremiums(gctx, nil)
		if err != nil {
			return fmt.Errorf("store.ListGeographyPremiums: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &in, nil
}

// breakdown splits the entity's rows along the other dimension. Rows with an
// empty or unknown other key land in a trailing unattributed row so the
// breakdown always sums to the entity totals.
func (s *Service) breakdown(in *detailsInput, dim domain.Dimension) []domain.BreakdownRow {
	other := dim.Other()
	refs := make([]domain.EntityRef, 0)
	if other == domain.DimensionVertical {
		for _, v := range in.verticals {
			refs = append(refs, domain.EntityRef{ID: v.ID, Name: v.Name, Dimension: other})
		}
	} else {
		for _, g := range in.geographies {
			refs = append(refs, domain.EntityRef{ID: g.ID, Name: g.Name, Dimension: other})
		}
	}

	known := make(map[string]bool, len(refs))
	ids := make([]string, 0, len(refs)+1)
	for _, r := range refs {
		known[r.ID] = true
		ids = append(ids, r.ID)
	}
	ids = append(ids, "")

	key := other.GroupKey()
	rows := make([]domain.Target, 0, len(in.targets))
	for _, t := range in.targets {
		if !known[t.Key(key)] {
			t = t.WithKey(key, "")
		}
		rows = append(rows, t)
	}

	totals := s.aggregator.Aggregate(rows, key, ids)

	out := make([]domain.BreakdownRow, 0)
	for _, r := range refs {
		if t := totals[r.ID]; t.Relevant() {
			out = append(out, domain.BreakdownRow{Entity: r, Totals: t})
		}
	}
	if t := totals[""]; t.Relevant() {
		out = append(out, domain.BreakdownRow{
			Entity: domain.EntityRef{Name: UnattributedName, Dimension: other},
			Totals: t,
		})
	}
	return out
}

func findVertical(vs []domain.Vertical, id string) (domain.Vertical, bool) {
	for _, v := range vs {
		if v.ID == id {
			return v, true
		}
	}
	return domain.Vertical{}, false
}

func findGeography(gs []domain.Geography, id string) (domain.Geography, bool) {
	for _, g := range gs {
		if g.ID == id {
			return g, true
		}
	}
	return domain.Geography{}, false
}
