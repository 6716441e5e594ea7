package dashboard

import (
	"context"
	"fmt"

	"github.com/ougirez/econdash/internal/domain"
	"github.com/ougirez/econdash/internal/pkg/cache"
	"github.com/ougirez/econdash/internal/pkg/logger"
	"github.com/ougirez/econdash/internal/pkg/store"
	"github.com/ougirez/econdash/internal/service/aggregation"
	"github.com/ougirez/econdash/internal/service/conversion"
)

// Source selects where overview totals come from. Both produce the same
// shapes.
type Source string

const (
	// SourceClient aggregates target rows in process.
	SourceClient Source = "client"
	// SourceView reads the store's pre-aggregated views.
	SourceView Source = "view"
)

func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case SourceClient, SourceView:
		return Source(s), nil
	case "":
		return SourceClient, nil
	}
	return "", fmt.Errorf("unknown dashboard source %q", s)
}

type Service struct {
	store      store.Store
	aggregator *aggregation.Aggregator
	units      conversion.MetricUnits
	source     Source
	cache      cache.Cache
}

type Option func(*Service)

func WithSource(src Source) Option {
	return func(s *Service) { s.source = src }
}

func WithCache(c cache.Cache) Option {
	return func(s *Service) {
		if c != nil {
			s.cache = c
		}
	}
}

func WithBuckets(b aggregation.Buckets) Option {
	return func(s *Service) { s.aggregator = aggregation.NewAggregator(b) }
}

func WithMetricUnits(mu conversion.MetricUnits) Option {
	return func(s *Service) {
		if len(mu) > 0 {
			s.units = mu
		}
	}
}

func NewService(st store.Store, opts ...Option) *Service {
	s := &Service{
		store:      st,
		aggregator: aggregation.NewAggregator(nil),
		units:      conversion.DefaultMetricUnits(),
		source:     SourceClient,
		cache:      cache.Noop{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Source() Source {
	return s.source
}

func (s *Service) metrics() []domain.Metric {
	return s.aggregator.Buckets().Metrics()
}

func (s *Service) fromCache(ctx context.Context, key string, dst any) bool {
	found, err := s.cache.Get(ctx, key, dst)
	if err != nil {
		logger.Warnf(ctx, "dashboard: cache get %s: %s", key, err.Error())
		return false
	}
	return found
}

func (s *Service) toCache(ctx context.Context, key string, v any) {
	if err := s.cache.Set(ctx, key, v); err != nil {
		logger.Warnf(ctx, "dashboard: cache set %s: %s", key, err.Error())
	}
}

func zeroFilled(ids []string, metrics []domain.Metric) map[string]domain.Totals {
	out := make(map[string]domain.Totals, len(ids))
	for _, id := range ids {
		out[id] = domain.NewTotals(metrics...)
	}
	return out
}

// merge copies the view's core totals over zero-filled bucket totals.
func merge(base, view domain.Totals) domain.Totals {
	out := base.Clone()
	for m, v := range view {
		out[m] = v
	}
	return out
}
