package dashboard

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ougirez/econdash/internal/domain"
)

// ReferenceData fetches the verticals, geographies and factors lists
// concurrently.
func (s *Service) ReferenceData(ctx context.Context) (*domain.ReferenceData, error) {
	var (
		res     domain.ReferenceData
		g, gctx = errgroup.WithContext(ctx)
	)

	g.Go(func() (err error) {
		res.Verticals, err = s.store.ListVerticals(gctx, nil)
		if err != nil {
			return fmt.Errorf("store.ListVerticals: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		res.Geographies, err = s.store.ListGeographies(gctx, nil)
		if err != nil {
			return fmt.Errorf("store.ListGeographies: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		res.Factors, err = s.store.ListFactors(gctx, nil)
		if err != nil {
			return fmt.Errorf("store.ListFactors: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &res, nil
}
