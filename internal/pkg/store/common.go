package store

import (
	"context"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/ougirez/econdash/internal/pkg/constants"
	"github.com/ougirez/econdash/internal/pkg/logger"
	"github.com/ougirez/econdash/internal/pkg/store/xpgx"
)

const (
	EntityVerticals          = "verticals"
	EntityGeographies        = "geographies"
	EntityFactors            = "factors"
	EntityTargets            = "targets"
	EntityConversionRatios   = "conversion_ratios"
	EntityApportionmentRules = "apportionment_rules"
	EntityGeographyPremiums  = "geography_premiums"

	ViewGeographyDashboard   = "geography_dashboard_view"
	ViewVerticalDistribution = "vertical_distribution_view"
)

// Filter is a set of field -> value equality constraints. A slice value
// matches any of its elements.
type Filter map[string]any

type table struct {
	name    string
	columns []string
	// exprs overrides the select expression of a column.
	exprs   map[string]string
	orderBy string
}

var tables = map[string]table{
	EntityVerticals: {
		name:    EntityVerticals,
		columns: []string{"id", "name", "category", "parent_id", "primary_metrics"},
		orderBy: "id",
	},
	EntityGeographies: {
		name:    EntityGeographies,
		columns: []string{"id", "name", "tier", "region", "type"},
		exprs: map[string]string{
			"tier":   "coalesce(tier, '') as tier",
			"region": "coalesce(region, '') as region",
			"type":   "coalesce(type, '') as type",
		},
		orderBy: "id",
	},
	EntityFactors: {
		name:    EntityFactors,
		columns: []string{"id", "name", "metrics"},
		orderBy: "id",
	},
	EntityTargets: {
		name:    EntityTargets,
		columns: []string{"id", "vertical_id", "geography_id", "factor_id", "metric", "value", "year", "parent_target_id"},
		exprs: map[string]string{
			"id":           "id::text as id",
			"geography_id": "coalesce(geography_id, '') as geography_id",
		},
		orderBy: "id",
	},
	EntityConversionRatios: {
		name:    EntityConversionRatios,
		columns: []string{"id", "vertical_id", "from_metric", "to_metric", "ratio", "per_unit", "out_unit", "unit", "source"},
		exprs: map[string]string{
			"id":       "id::text as id",
			"per_unit": "coalesce(per_unit, '') as per_unit",
			"out_unit": "coalesce(out_unit, '') as out_unit",
			"unit":     "coalesce(unit, '') as unit",
			"source":   "coalesce(source, '') as source",
		},
		orderBy: "id",
	},
	EntityApportionmentRules: {
		name:    EntityApportionmentRules,
		columns: []string{"id", "from_geography_id", "to_geography_id", "vertical_id", "percentage", "status", "basis", "confidence"},
		exprs: map[string]string{
			"id":         "id::text as id",
			"basis":      "coalesce(basis, '') as basis",
			"confidence": "coalesce(confidence, '') as confidence",
		},
		orderBy: "id",
	},
	EntityGeographyPremiums: {
		name:    EntityGeographyPremiums,
		columns: []string{"geography_id", "multiplier", "basis"},
		exprs: map[string]string{
			"basis": "coalesce(basis, '') as basis",
		},
		orderBy: "geography_id",
	},
	ViewGeographyDashboard: {
		name:    ViewGeographyDashboard,
		columns: []string{"geography_id", "geography_name", "tier", "year", "revenue", "employment", "land", "capital", "target_count"},
		orderBy: "geography_id",
	},
	ViewVerticalDistribution: {
		name:    ViewVerticalDistribution,
		columns: []string{"vertical_id", "vertical_name", "category", "year", "revenue", "employment", "land", "capital", "target_count"},
		orderBy: "vertical_id",
	},
}

func (t table) selectColumns() []string {
	out := make([]string, 0, len(t.columns))
	for _, c := range t.columns {
		if e, ok := t.exprs[c]; ok {
			out = append(out, e)
			continue
		}
		out = append(out, c)
	}
	return out
}

func (t table) hasColumn(c string) bool {
	for _, col := range t.columns {
		if col == c {
			return true
		}
	}
	return false
}

// where turns f into a squirrel condition, rejecting fields the table does
// not have.
func (t table) where(f Filter) (squirrel.Eq, error) {
	eq := make(squirrel.Eq, len(f))
	for k, v := range f {
		if !t.hasColumn(k) {
			return nil, constants.BadRequestf("unknown %s field %q", t.name, k)
		}
		eq[k] = v
	}
	return eq, nil
}

// Columns lists the filterable fields of entity in select order.
func Columns(entity string) []string {
	t, ok := tables[entity]
	if !ok {
		return nil
	}
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Entities lists every entity and view name the store knows about.
func Entities() []string {
	out := make([]string, 0, len(tables))
	for k := range tables {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (s *store) selectQuery(entity string, f Filter, extra ...squirrel.Sqlizer) (squirrel.SelectBuilder, error) {
	t := tables[entity]

	eq, err := t.where(f)
	if err != nil {
		return squirrel.SelectBuilder{}, err
	}

	query := builder().Select(t.selectColumns()...).From(t.name)
	if len(eq) > 0 {
		query = query.Where(eq)
	}
	for _, cond := range extra {
		query = query.Where(cond)
	}
	if t.orderBy != "" {
		query = query.OrderBy(t.orderBy)
	}

	return query, nil
}

func list[T any](ctx context.Context, s *store, entity string, f Filter, extra ...squirrel.Sqlizer) ([]T, error) {
	query, err := s.selectQuery(entity, f, extra...)
	if err != nil {
		return nil, wrapErr(entity, err)
	}

	rows, err := xpgx.Selectx[T](ctx, s.pool, query)
	if err != nil {
		logger.Errorf(ctx, "store: select %s: %s", entity, err.Error())
		return nil, wrapErr(entity, err)
	}

	return ValidRows(ctx, entity, rows), nil
}

func wrapErr(entity string, err error) error {
	return constants.NewStoreError(entity, err)
}

// builder returns a squirrel statement builder with postgres placeholders.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
