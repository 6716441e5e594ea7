package store

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/ougirez/econdash/internal/domain"
	"github.com/ougirez/econdash/internal/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingQuerier struct {
	sqls [][]any
	err  error
}

func (q *recordingQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.sqls = append(q.sqls, append([]any{sql}, args...))
	return nil, q.err
}

func TestSelectQueryBuildsEqualityFilters(t *testing.T) {
	s := &store{}

	query, err := s.selectQuery(EntityTargets, Filter{"year": 2030, "vertical_id": []string{"esdm", "it-exports"}})
	require.NoError(t, err)

	sql, args, err := query.ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id::text as id, vertical_id, coalesce(geography_id, '') as geography_id, factor_id, metric, value, year, parent_target_id "+
			"FROM targets WHERE vertical_id IN ($1,$2) AND year = $3 ORDER BY id",
		sql)
	assert.Equal(t, []any{"esdm", "it-exports", 2030}, args)
}

func TestSelectQueryWithoutFilter(t *testing.T) {
	s := &store{}

	query, err := s.selectQuery(EntityFactors, nil)
	require.NoError(t, err)

	sql, args, err := query.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, name, metrics FROM factors ORDER BY id", sql)
	assert.Empty(t, args)
}

func TestApportionmentRulesAlwaysActive(t *testing.T) {
	q := &recordingQuerier{err: errors.New("boom")}
	s := NewStore(q)

	_, err := s.ListApportionmentRules(context.Background(), Filter{"vertical_id": "esdm"})
	require.Error(t, err)
	require.Len(t, q.sqls, 1)

	assert.Contains(t, q.sqls[0][0], "WHERE vertical_id = $1 AND status = $2")
	assert.Equal(t, []any{"esdm", domain.RuleStatusActive}, q.sqls[0][1:])
}

func TestUnknownFilterFieldIsRejectedWithoutQuery(t *testing.T) {
	q := &recordingQuerier{}
	s := NewStore(q)

	_, err := s.ListVerticals(context.Background(), Filter{"colour": "red"})
	require.Error(t, err)
	assert.Empty(t, q.sqls)
	assert.ErrorIs(t, err, constants.ErrBadRequest)
	assert.True(t, constants.IsStoreError(err))
}

func TestQueryErrorPropagatesUnaltered(t *testing.T) {
	orig := errors.New(`ERROR: relation "targets" does not exist (SQLSTATE 42P01)`)
	s := NewStore(&recordingQuerier{err: orig})

	rows, err := s.ListTargets(context.Background(), Filter{"year": 2030})
	assert.Nil(t, rows)

	var se *constants.StoreError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, EntityTargets, se.Entity)
	assert.Equal(t, orig.Error(), err.Error())
	assert.ErrorIs(t, err, orig)
}

func TestViewsFilterByYear(t *testing.T) {
	q := &recordingQuerier{err: errors.New("boom")}
	s := NewStore(q)

	_, _ = s.GeographyDashboardView(context.Background(), 2030)
	_, _ = s.VerticalDistributionView(context.Background(), 2030)
	require.Len(t, q.sqls, 2)

	assert.Contains(t, q.sqls[0][0], "FROM geography_dashboard_view WHERE year = $1")
	assert.Contains(t, q.sqls[1][0], "FROM vertical_distribution_view WHERE year = $1")
}

func TestValidRowsDropsInvalid(t *testing.T) {
	rows := []domain.Target{
		{ID: "1", VerticalID: "esdm", Metric: "revenue", Year: 2030},
		{ID: "2", Metric: "revenue", Year: 2030},
		{ID: "3", VerticalID: "esdm", Year: 2030},
	}

	got := ValidRows(context.Background(), EntityTargets, rows)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestValidRowsConversionRatio(t *testing.T) {
	rows := []domain.ConversionRatio{
		{FromMetric: "revenue", ToMetric: "employment", Ratio: 20},
		{FromMetric: "revenue", ToMetric: "revenue", Ratio: 1},
		{FromMetric: "land", ToMetric: "capital", Ratio: 0},
	}

	got := ValidRows(context.Background(), EntityConversionRatios, rows)
	require.Len(t, got, 1)
	assert.Equal(t, "employment", got[0].ToMetric)
}

func TestColumnsAndEntities(t *testing.T) {
	assert.Equal(t, []string{"geography_id", "multiplier", "basis"}, Columns(EntityGeographyPremiums))
	assert.Nil(t, Columns("users"))
	assert.Contains(t, Entities(), ViewVerticalDistribution)
}
