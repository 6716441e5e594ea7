// Package memstore is an in-memory store.Store backed by a JSON fixture. It
// applies the same filter contract and row validation as the postgres store.
package memstore

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/ougirez/econdash/internal/domain"
	"github.com/ougirez/econdash/internal/domain/dto"
	"github.com/ougirez/econdash/internal/pkg/constants"
	"github.com/ougirez/econdash/internal/pkg/store"
)

type Data struct {
	Verticals            []domain.Vertical             `json:"verticals"`
	Geographies          []domain.Geography            `json:"geographies"`
	Factors              []domain.Factor               `json:"factors"`
	Targets              []domain.Target               `json:"targets"`
	ConversionRatios     []domain.ConversionRatio      `json:"conversion_ratios"`
	ApportionmentRules   []domain.ApportionmentRule    `json:"apportionment_rules"`
	GeographyPremiums    []domain.GeographyPremium     `json:"geography_premiums"`
	GeographyDashboard   []dto.GeographyDashboardRow   `json:"geography_dashboard_view"`
	VerticalDistribution []dto.VerticalDistributionRow `json:"vertical_distribution_view"`
}

type Store struct {
	data Data

	mu       sync.RWMutex
	failures map[string]error
}

var _ store.Store = (*Store)(nil)

func New(data Data) *Store {
	return &Store{data: data, failures: make(map[string]error)}
}

// Load reads a fixture file.
func Load(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}

	var data Data
	if err := sonic.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode fixture %s: %w", path, err)
	}

	return New(data), nil
}

// FailWith makes every read of entity fail with err until cleared with nil.
func (s *Store) FailWith(entity string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, entity)
		return
	}
	s.failures[entity] = err
}

func (s *Store) failure(entity string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.failures[entity]
}

func (s *Store) ListVerticals(ctx context.Context, f store.Filter) ([]domain.Vertical, error) {
	return filterRows(ctx, s, store.EntityVerticals, s.data.Verticals, f, nil)
}

func (s *Store) ListGeographies(ctx context.Context, f store.Filter) ([]domain.Geography, error) {
	return filterRows(ctx, s, store.EntityGeographies, s.data.Geographies, f, nil)
}

func (s *Store) ListFactors(ctx context.Context, f store.Filter) ([]domain.Factor, error) {
	return filterRows(ctx, s, store.EntityFactors, s.data.Factors, f, nil)
}

func (s *Store) ListTargets(ctx context.Context, f store.Filter) ([]domain.Target, error) {
	return filterRows(ctx, s, store.EntityTargets, s.data.Targets, f, nil)
}

func (s *Store) ListConversionRatios(ctx context.Context, f store.Filter) ([]domain.ConversionRatio, error) {
	return filterRows(ctx, s, store.EntityConversionRatios, s.data.ConversionRatios, f, nil)
}

func (s *Store) ListApportionmentRules(ctx context.Context, f store.Filter) ([]domain.ApportionmentRule, error) {
	return filterRows(ctx, s, store.EntityApportionmentRules, s.data.ApportionmentRules, f,
		domain.ApportionmentRule.Active)
}

func (s *Store) ListGeographyPremiums(ctx context.Context, f store.Filter) ([]domain.GeographyPremium, error) {
	return filterRows(ctx, s, store.EntityGeographyPremiums, s.data.GeographyPremiums, f, nil)
}

func (s *Store) GeographyDashboardView(ctx context.Context, year domain.Year) ([]dto.GeographyDashboardRow, error) {
	return filterRows(ctx, s, store.ViewGeographyDashboard, s.data.GeographyDashboard, store.Filter{"year": year}, nil)
}

func (s *Store) VerticalDistributionView(ctx context.Context, year domain.Year) ([]dto.VerticalDistributionRow, error) {
	return filterRows(ctx, s, store.ViewVerticalDistribution, s.data.VerticalDistribution, store.Filter{"year": year}, nil)
}

func filterRows[T any](ctx context.Context, s *Store, entity string, rows []T, f store.Filter, keep func(T) bool) ([]T, error) {
	if err := s.failure(entity); err != nil {
		return nil, constants.NewStoreError(entity, err)
	}

	out := make([]T, 0, len(rows))
	for _, r := range rows {
		ok, err := match(entity, r, f)
		if err != nil {
			return nil, constants.NewStoreError(entity, err)
		}
		if ok && (keep == nil || keep(r)) {
			out = append(out, r)
		}
	}

	return store.ValidRows(ctx, entity, out), nil
}

func match(entity string, row any, f store.Filter) (bool, error) {
	v := reflect.ValueOf(row)
	for field, want := range f {
		fv, ok := fieldByTag(v, field)
		if !ok {
			return false, constants.BadRequestf("unknown %s field %q", entity, field)
		}
		if !matches(fv, want) {
			return false, nil
		}
	}
	return true, nil
}

func fieldByTag(v reflect.Value, tag string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("db") == tag {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func matches(fv reflect.Value, want any) bool {
	var got any
	if fv.Kind() == reflect.Pointer {
		if !fv.IsNil() {
			got = fv.Elem().Interface()
		}
	} else {
		got = fv.Interface()
	}

	wv := reflect.ValueOf(want)
	if want != nil && wv.Kind() == reflect.Slice && fv.Kind() != reflect.Slice {
		for i := 0; i < wv.Len(); i++ {
			if equal(got, wv.Index(i).Interface()) {
				return true
			}
		}
		return false
	}

	return equal(got, want)
}

func equal(got, want any) bool {
	if got == nil || want == nil {
		return got == nil && want == nil
	}
	return fmt.Sprint(got) == fmt.Sprint(want)
}
