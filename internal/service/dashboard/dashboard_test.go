package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ougirez/econdash/internal/domain"
	"github.com/ougirez/econdash/internal/domain/dto"
	"github.com/ougirez/econdash/internal/pkg/constants"
	"github.com/ougirez/econdash/internal/pkg/store"
	"github.com/ougirez/econdash/internal/pkg/store/memstore"
)

func ptr(s string) *string { return &s }

func row(id, vertical, geography, metric string, value float64, year int) domain.Target {
	return domain.Target{
		ID:          id,
		VerticalID:  vertical,
		GeographyID: geography,
		Metric:      metric,
		Value:       domain.NewNumeric(value),
		Year:        year,
	}
}

func fixture() memstore.Data {
	child := row("t8", "it-exports", "bengaluru", "revenue", 20, 2030)
	child.ParentTargetID = ptr("t1")

	return memstore.Data{
		Verticals: []domain.Vertical{
			{ID: "it-exports", Name: "IT Exports", Category: domain.CategoryCore},
			{ID: "esdm", Name: "ESDM", Category: domain.CategoryCore},
			{ID: "agritech", Name: "Agritech", Category: domain.CategoryDigitizing},
		},
		Geographies: []domain.Geography{
			{ID: "bengaluru", Name: "Bengaluru", Tier: domain.TierInvestAsAnchor},
			{ID: "mysuru", Name: "Mysuru", Tier: domain.TierInvestAggressively},
			{ID: "udupi", Name: "Udupi", Tier: "emerging"},
		},
		Factors: []domain.Factor{
			{ID: "land", Name: "Land"},
			{ID: "capital", Name: "Capital"},
		},
		Targets: []domain.Target{
			row("t1", "it-exports", "bengaluru", "revenue", 30, 2030),
			row("t2", "it-exports", "mysuru", "revenue", 10, 2030),
			row("t3", "it-exports", "", "revenue", 5, 2030),
			row("t4", "esdm", "bengaluru", "employment", 1000, 2030),
			row("t5", "agritech", "mysuru", "revenue", 1, 2030),
			row("t6", "it-exports", "bengaluru", "revenue", 100, 2025),
			row("t7", "it-exports", "atlantis", "revenue", 2, 2030),
			child,
		},
		ApportionmentRules: []domain.ApportionmentRule{
			{ID: "r1", FromGeographyID: "bengaluru", ToGeographyID: "mysuru", Percentage: 10, Status: "active"},
			{ID: "r2", FromGeographyID: "bengaluru", ToGeographyID: "mysuru", VerticalID: ptr("it-exports"), Percentage: 25, Status: "active", Basis: "satellite campuses"},
			{ID: "r3", FromGeographyID: "bengaluru", ToGeographyID: "udupi", Percentage: 40, Status: "draft"},
			{ID: "r4", FromGeographyID: "mysuru", ToGeographyID: "bengaluru", VerticalID: ptr("esdm"), Percentage: 50, Status: "active"},
			{ID: "r5", FromGeographyID: "bengaluru", ToGeographyID: "atlantis", Percentage: 5, Status: "active"},
		},
		VerticalDistribution: []dto.VerticalDistributionRow{
			{VerticalID: "it-exports", Year: 2030, Revenue: domain.NewNumeric(47), TargetCount: 4},
			{VerticalID: "esdm", Year: 2030, Employment: domain.NewNumeric(1000), TargetCount: 1},
			{VerticalID: "agritech", Year: 2030, Revenue: domain.NewNumeric(1), TargetCount: 1},
		},
		GeographyDashboard: []dto.GeographyDashboardRow{
			{GeographyID: "bengaluru", Year: 2030, Revenue: domain.NewNumeric(30), Employment: domain.NewNumeric(1000)},
			{GeographyID: "mysuru", Year: 2030, Revenue: domain.NewNumeric(11)},
		},
	}
}

func totals(revenue, employment, land, capital float64) domain.Totals {
	return domain.Totals{
		domain.MetricRevenue:    revenue,
		domain.MetricEmployment: employment,
		domain.MetricLand:       land,
		domain.MetricCapital:    capital,
	}
}

func TestVerticalOverview(t *testing.T) {
	s := NewService(memstore.New(fixture()))

	got, err := s.VerticalOverview(context.Background(), 2030)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "it-exports", got[0].Vertical.ID)
	assert.Equal(t, totals(47, 0, 0, 0), got[0].Totals)
	assert.Equal(t, 4, got[0].TargetCount)
	assert.Equal(t, "esdm", got[1].Vertical.ID)
	assert.Equal(t, totals(0, 1000, 0, 0), got[1].Totals)
}

func TestVerticalsByCategory(t *testing.T) {
	s := NewService(memstore.New(fixture()))
	ctx := context.Background()

	digitizing, err := s.VerticalsByCategory(ctx, 2030, domain.CategoryDigitizing)
	require.NoError(t, err)
	require.Len(t, digitizing, 1)
	assert.Equal(t, "agritech", digitizing[0].Vertical.ID)

	all, err := s.VerticalsByCategory(ctx, 2030, domain.CategoryAll)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = s.VerticalsByCategory(ctx, 2030, "legacy")
	assert.ErrorIs(t, err, constants.ErrBadRequest)
}

func TestYearWithoutFactsIsZeroFilled(t *testing.T) {
	s := NewService(memstore.New(fixture()))

	got, err := s.VerticalOverview(context.Background(), 2040)
	require.NoError(t, err)
	for _, v := range got {
		assert.Equal(t, totals(0, 0, 0, 0), v.Totals, v.Vertical.ID)
	}
}

func TestSourcesAgree(t *testing.T) {
	st := memstore.New(fixture())
	client := NewService(st, WithSource(SourceClient))
	view := NewService(st, WithSource(SourceView))
	ctx := context.Background()

	cv, err := client.VerticalOverview(ctx, 2030)
	require.NoError(t, err)
	vv, err := view.VerticalOverview(ctx, 2030)
	require.NoError(t, err)
	assert.Equal(t, cv, vv)

	cg, err := client.GeographyOverview(ctx, 2030)
	require.NoError(t, err)
	vg, err := view.GeographyOverview(ctx, 2030)
	require.NoError(t, err)
	assert.Equal(t, cg, vg)
}

func TestGeographyOverviewGroupedByTier(t *testing.T) {
	s := NewService(memstore.New(fixture()))

	groups, err := s.GroupedGeographyOverview(context.Background(), 2030)
	require.NoError(t, err)
	require.Len(t, groups, 3)

	assert.Equal(t, domain.TierInvestAggressively, groups[0].Tier)
	assert.Equal(t, "mysuru", groups[0].Geographies[0].Geography.ID)
	assert.Equal(t, totals(11, 0, 0, 0), groups[0].Totals)

	assert.Equal(t, domain.TierInvestAsAnchor, groups[1].Tier)
	assert.Equal(t, totals(30, 1000, 0, 0), groups[1].Totals)

	assert.Equal(t, "emerging", groups[2].Tier)
	assert.Equal(t, totals(0, 0, 0, 0), groups[2].Totals)
}

func TestGroupByTierOrdersUnknownTiersAlphabetically(t *testing.T) {
	in := []domain.GeographySummary{
		{Geography: domain.Geography{ID: "a"}, Tier: "zeta", Totals: totals(1, 0, 0, 0)},
		{Geography: domain.Geography{ID: "b"}, Tier: domain.TierInvestLater, Totals: totals(2, 0, 0, 0)},
		{Geography: domain.Geography{ID: "c"}, Tier: "alpha", Totals: totals(3, 0, 0, 0)},
		{Geography: domain.Geography{ID: "d"}, Tier: domain.TierInvestLater, Totals: totals(4, 0, 0, 0)},
	}

	groups := GroupByTier(in, domain.CoreMetrics())

	require.Len(t, groups, 3)
	assert.Equal(t, []string{domain.TierInvestLater, "alpha", "zeta"},
		[]string{groups[0].Tier, groups[1].Tier, groups[2].Tier})
	assert.Equal(t, 6.0, groups[0].Totals.Revenue())
	assert.Equal(t, "b", groups[0].Geographies[0].Geography.ID)
}

func TestVerticalDetailsBreakdownSumsToTotal(t *testing.T) {
	s := NewService(memstore.New(fixture()))

	got, err := s.EntityDetails(context.Background(), "it-exports", domain.DimensionVertical, 2030)
	require.NoError(t, err)

	assert.Equal(t, "IT Exports", got.Entity.Name)
	assert.Equal(t, domain.CategoryCore, got.Category)
	assert.Equal(t, 47.0, got.Totals.Revenue())

	require.Len(t, got.Breakdown, 3)
	assert.Equal(t, "bengaluru", got.Breakdown[0].Entity.ID)
	assert.Equal(t, 30.0, got.Breakdown[0].Totals.Revenue())
	assert.Equal(t, "mysuru", got.Breakdown[1].Entity.ID)
	assert.Equal(t, UnattributedName, got.Breakdown[2].Entity.Name)
	assert.Equal(t, 7.0, got.Breakdown[2].Totals.Revenue())

	sum := 0.0
	for _, b := range got.Breakdown {
		sum += b.Totals.Revenue()
	}
	assert.InDelta(t, got.Totals.Revenue(), sum, 1e-9)
}

func TestVerticalDetailsProjection(t *testing.T) {
	s := NewService(memstore.New(fixture()))

	got, err := s.EntityDetails(context.Background(), "esdm", domain.DimensionVertical, 2030)
	require.NoError(t, err)

	assert.Equal(t, totals(0, 1000, 0, 0), got.Totals)
	// 1000 employees * 400 sqft, in acres, then 6 USD million per acre.
	assert.InDelta(t, 400000.0/43560, got.Projected.Land(), 1e-9)
	assert.InDelta(t, 400000.0/43560*6, got.Projected.Capital(), 1e-9)
	assert.Equal(t, 0.0, got.Projected.Revenue())
	require.Len(t, got.Derivations, 2)
	assert.Equal(t, domain.MetricLand, got.Derivations[0].Metric)
}

func TestGeographyDetails(t *testing.T) {
	s := NewService(memstore.New(fixture()))

	got, err := s.EntityDetails(context.Background(), "bengaluru", domain.DimensionGeography, 2030)
	require.NoError(t, err)

	assert.Equal(t, domain.TierInvestAsAnchor, got.Tier)
	assert.Equal(t, totals(30, 1000, 0, 0), got.Totals)

	require.Len(t, got.Breakdown, 2)
	assert.Equal(t, "it-exports", got.Breakdown[0].Entity.ID)
	assert.Equal(t, "esdm", got.Breakdown[1].Entity.ID)

	// Derived capital carries the bengaluru premium.
	assert.InDelta(t, 100000.0/43560*2.5*1.35, got.Projected.Capital(), 1e-9)
}

func TestDetailsErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown id", func(t *testing.T) {
		s := NewService(memstore.New(fixture()))
		_, err := s.EntityDetails(ctx, "space", domain.DimensionVertical, 2030)

		var nf *constants.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "space", nf.ID)
		assert.ErrorIs(t, err, constants.ErrNotFound)
	})

	t.Run("unknown dimension", func(t *testing.T) {
		s := NewService(memstore.New(fixture()))
		_, err := s.EntityDetails(ctx, "esdm", domain.Dimension("factor"), 2030)
		assert.ErrorIs(t, err, constants.ErrBadRequest)
	})

	t.Run("store failure", func(t *testing.T) {
		st := memstore.New(fixture())
		boom := errors.New("connection reset by peer")
		st.FailWith(store.EntityTargets, boom)

		_, err := NewService(st).EntityDetails(ctx, "esdm", domain.DimensionVertical, 2030)
		require.Error(t, err)
		assert.True(t, constants.IsStoreError(err))
		assert.ErrorIs(t, err, boom)
	})
}

func TestReferenceData(t *testing.T) {
	st := memstore.New(fixture())
	s := NewService(st)

	got, err := s.ReferenceData(context.Background())
	require.NoError(t, err)
	assert.Len(t, got.Verticals, 3)
	assert.Len(t, got.Geographies, 3)
	assert.Len(t, got.Factors, 2)

	st.FailWith(store.EntityFactors, errors.New("timeout"))
	_, err = s.ReferenceData(context.Background())
	assert.True(t, constants.IsStoreError(err))
}

func TestApportion(t *testing.T) {
	s := NewService(memstore.New(fixture()))

	got, err := s.Apportion(context.Background(), "it-exports", 2030)
	require.NoError(t, err)

	require.Len(t, got.Allocations, 1)
	a := got.Allocations[0]
	assert.Equal(t, "bengaluru", a.From.ID)
	assert.Equal(t, "mysuru", a.To.ID)
	assert.Equal(t, 25.0, a.Percentage)
	assert.Equal(t, "satellite campuses", a.Basis)
	assert.Equal(t, 7.5, a.Totals.Revenue())

	esdm, err := s.Apportion(context.Background(), "esdm", 2030)
	require.NoError(t, err)
	require.Len(t, esdm.Allocations, 2)
	assert.Equal(t, "bengaluru", esdm.Allocations[0].From.ID)
	assert.Equal(t, 10.0, esdm.Allocations[0].Percentage)
	assert.Equal(t, "mysuru", esdm.Allocations[1].From.ID)
	assert.Equal(t, 0.0, esdm.Allocations[1].Totals.Employment())

	_, err = s.Apportion(context.Background(), "space", 2030)
	assert.ErrorIs(t, err, constants.ErrNotFound)
}

func TestProject(t *testing.T) {
	s := NewService(memstore.New(fixture()))
	ctx := context.Background()

	got, err := s.Project(ctx, ProjectRequest{Metric: "revenue", Value: 52.04, To: "employment"})
	require.NoError(t, err)
	assert.InDelta(t, 1040800.0, got.Projected.Value, 1e-6)
	assert.Equal(t, "employees", string(got.Projected.Unit))

	got, err = s.Project(ctx, ProjectRequest{
		GeographyID: "bengaluru", Metric: "land", Value: 10, Unit: "acre", To: "capital", Premium: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1.35, got.Premium)
	assert.InDelta(t, 10*2.5*1.35, got.Projected.Value, 1e-9)

	_, err = s.Project(ctx, ProjectRequest{Metric: "revenue", Value: 1, To: "land"})
	assert.ErrorIs(t, err, constants.ErrRatioNotFound)

	_, err = s.Project(ctx, ProjectRequest{Metric: "revenue", Value: 1, Unit: "furlong", To: "employment"})
	assert.ErrorIs(t, err, constants.ErrUnitMismatch)
}

func TestRender(t *testing.T) {
	s := NewService(memstore.New(fixture()))
	ctx := context.Background()
	state := domain.DefaultAppState(2030)

	overview, err := s.Render(ctx, state)
	require.NoError(t, err)
	require.NotNil(t, overview.Summary)
	assert.Equal(t, 48.0, overview.Summary.Totals.Revenue())
	assert.Equal(t, 3, overview.Summary.VerticalCount)
	assert.Equal(t, 3, overview.Summary.GeographyCount)
	assert.NotNil(t, overview.Reference)

	state, ok := state.SwitchTab(domain.TabVerticals)
	require.True(t, ok)
	state, ok = state.SelectCategory(domain.CategoryDigitizing)
	require.True(t, ok)
	verticals, err := s.Render(ctx, state)
	require.NoError(t, err)
	require.Len(t, verticals.Verticals, 1)
	assert.Nil(t, verticals.Summary)

	state, _ = state.SwitchTab(domain.TabGeographies)
	geographies, err := s.Render(ctx, state)
	require.NoError(t, err)
	assert.Len(t, geographies.Geographies, 3)

	state, _ = state.SwitchTab(domain.TabFactors)
	factors, err := s.Render(ctx, state)
	require.NoError(t, err)
	assert.Len(t, factors.Factors, 2)

	_, err = s.Render(ctx, domain.AppState{Tab: "settings", Year: 2030})
	assert.ErrorIs(t, err, constants.ErrBadRequest)
}

type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	getErr  error
	sets    int
}

func (c *memCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return false, c.getErr
	}
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, sonic.Unmarshal(raw, dst)
}

func (c *memCache) Set(_ context.Context, key string, v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, err := sonic.Marshal(v)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	c.sets++
	return nil
}

func TestCache(t *testing.T) {
	ctx := context.Background()

	t.Run("hit skips the store", func(t *testing.T) {
		st := memstore.New(fixture())
		c := &memCache{entries: make(map[string][]byte)}
		s := NewService(st, WithCache(c))

		first, err := s.VerticalOverview(ctx, 2030)
		require.NoError(t, err)
		assert.Equal(t, 1, c.sets)

		st.FailWith(store.EntityTargets, errors.New("down"))
		second, err := s.VerticalOverview(ctx, 2030)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("errors are not cached", func(t *testing.T) {
		st := memstore.New(fixture())
		c := &memCache{entries: make(map[string][]byte)}
		s := NewService(st, WithCache(c))

		st.FailWith(store.EntityTargets, errors.New("down"))
		_, err := s.VerticalOverview(ctx, 2030)
		require.Error(t, err)
		assert.Zero(t, c.sets)
	})

	t.Run("broken cache never fails a request", func(t *testing.T) {
		c := &memCache{entries: make(map[string][]byte), getErr: errors.New("redis: connection refused")}
		s := NewService(memstore.New(fixture()), WithCache(c))

		got, err := s.VerticalOverview(ctx, 2030)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func TestParseSource(t *testing.T) {
	src, err := ParseSource("")
	require.NoError(t, err)
	assert.Equal(t, SourceClient, src)

	src, err = ParseSource("view")
	require.NoError(t, err)
	assert.Equal(t, SourceView, src)

	_, err = ParseSource("warehouse")
	assert.Error(t, err)
}

func TestDemoFixtureSourcesAgree(t *testing.T) {
	st, err := memstore.Load("../../../configs/fixture.json")
	require.NoError(t, err)
	ctx := context.Background()

	for _, year := range []int{2026, 2030} {
		client := NewService(st, WithSource(SourceClient))
		view := NewService(st, WithSource(SourceView))

		cv, err := client.VerticalsByCategory(ctx, year, domain.CategoryAll)
		require.NoError(t, err)
		vv, err := view.VerticalsByCategory(ctx, year, domain.CategoryAll)
		require.NoError(t, err)
		assert.Equal(t, cv, vv, "verticals %d", year)

		cg, err := client.GeographyOverview(ctx, year)
		require.NoError(t, err)
		vg, err := view.GeographyOverview(ctx, year)
		require.NoError(t, err)
		assert.Equal(t, cg, vg, "geographies %d", year)
	}
}
