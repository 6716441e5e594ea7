package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		name    string
		src     any
		want    float64
		invalid bool
	}{
		{"string", "52.04", 52.04, false},
		{"bytes", []byte(" 12.5 "), 12.5, false},
		{"float", 3.25, 3.25, false},
		{"int64", int64(7), 7, false},
		{"nil", nil, 0, false},
		{"empty string", "", 0, false},
		{"garbage", "n/a", 0, true},
		{"unsupported type", struct{}{}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := ParseNumeric(tt.src)
			assert.Equal(t, tt.want, n.Float64())
			assert.Equal(t, tt.invalid, n.Invalid())
		})
	}
}

func TestNumericJSON(t *testing.T) {
	var rows []struct {
		Value Numeric `json:"value"`
	}
	require.NoError(t, json.Unmarshal([]byte(`[{"value":"52.04"},{"value":1.5},{"value":"x"},{"value":null}]`), &rows))
	require.Len(t, rows, 4)

	assert.Equal(t, 52.04, rows[0].Value.Float64())
	assert.Equal(t, 1.5, rows[1].Value.Float64())
	assert.True(t, rows[2].Value.Invalid())
	assert.Equal(t, 0.0, rows[2].Value.Float64())
	assert.Equal(t, 0.0, rows[3].Value.Float64())

	out, err := json.Marshal(rows[0].Value)
	require.NoError(t, err)
	assert.Equal(t, "52.04", string(out))
}

func TestNumericScan(t *testing.T) {
	var n Numeric
	require.NoError(t, n.Scan("1040.8"))
	assert.Equal(t, 1040.8, n.Float64())

	require.NoError(t, n.Scan("bogus"))
	assert.True(t, n.Invalid())
}

func TestTargetRootAndKey(t *testing.T) {
	parent := "t-1"
	empty := ""
	row := Target{VerticalID: "esdm", GeographyID: "mysuru"}

	assert.True(t, row.IsRoot())
	row.ParentTargetID = &empty
	assert.True(t, row.IsRoot())
	row.ParentTargetID = &parent
	assert.False(t, row.IsRoot())

	assert.Equal(t, "esdm", row.Key(GroupByVertical))
	assert.Equal(t, "mysuru", row.Key(GroupByGeography))
	assert.Equal(t, "", row.Key("factor_id"))
}

func TestParseDimension(t *testing.T) {
	d, err := ParseDimension("Geographies")
	require.NoError(t, err)
	assert.Equal(t, DimensionGeography, d)
	assert.Equal(t, DimensionVertical, d.Other())
	assert.Equal(t, GroupByGeography, d.GroupKey())

	_, err = ParseDimension("factors")
	assert.Error(t, err)
}

func TestTotalsRelevant(t *testing.T) {
	assert.False(t, NewTotals().Relevant())
	assert.True(t, Totals{MetricEmployment: 10}.Relevant())
	assert.False(t, Totals{MetricLand: 10, MetricCapital: 3}.Relevant())
}

func TestAppStateTransitionsArePure(t *testing.T) {
	s := DefaultAppState(2030)

	next, ok := s.SwitchTab(TabGeographies)
	require.True(t, ok)
	assert.Equal(t, TabGeographies, next.Tab)
	assert.Equal(t, TabOverview, s.Tab)

	same, ok := next.SwitchTab("settings")
	assert.False(t, ok)
	assert.Equal(t, next, same)

	next, ok = next.SelectCategory(CategoryDigitizing)
	require.True(t, ok)
	assert.Equal(t, CategoryDigitizing, next.Category)

	_, ok = next.SelectCategory("emerging")
	assert.False(t, ok)

	_, ok = next.SelectYear(0)
	assert.False(t, ok)
	next, ok = next.SelectYear(2026)
	require.True(t, ok)
	assert.Equal(t, 2026, next.Year)
}
