package domain

import (
	"fmt"
	"strings"
)

type Metric string

const (
	MetricRevenue    Metric = "revenue"
	MetricEmployment Metric = "employment"
	MetricLand       Metric = "land"
	MetricCapital    Metric = "capital"
)

// CoreMetrics is the fixed output order of the four dashboard buckets.
func CoreMetrics() []Metric {
	return []Metric{MetricRevenue, MetricEmployment, MetricLand, MetricCapital}
}

// Totals maps a metric bucket to its summed value.
type Totals map[Metric]float64

// NewTotals returns zero-filled totals for metrics, or for CoreMetrics when
// none are given.
func NewTotals(metrics ...Metric) Totals {
	if len(metrics) == 0 {
		metrics = CoreMetrics()
	}
	t := make(Totals, len(metrics))
	for _, m := range metrics {
		t[m] = 0
	}
	return t
}

func (t Totals) Revenue() float64    { return t[MetricRevenue] }
func (t Totals) Employment() float64 { return t[MetricEmployment] }
func (t Totals) Land() float64       { return t[MetricLand] }
func (t Totals) Capital() float64    { return t[MetricCapital] }

func (t Totals) Clone() Totals {
	out := make(Totals, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Scale multiplies every metric by factor.
func (t Totals) Scale(factor float64) Totals {
	out := make(Totals, len(t))
	for k, v := range t {
		out[k] = v * factor
	}
	return out
}

// Relevant is the display filter for breakdown rows.
func (t Totals) Relevant() bool {
	return t.Revenue() > 0 || t.Employment() > 0
}

type GroupKey string

const (
	GroupByVertical  GroupKey = "vertical_id"
	GroupByGeography GroupKey = "geography_id"
)

type Dimension string

const (
	DimensionVertical  Dimension = "vertical"
	DimensionGeography Dimension = "geography"
)

// ParseDimension accepts singular and plural forms.
func ParseDimension(s string) (Dimension, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vertical", "verticals":
		return DimensionVertical, nil
	case "geography", "geographies":
		return DimensionGeography, nil
	}
	return "", fmt.Errorf("unknown dimension %q", s)
}

func (d Dimension) GroupKey() GroupKey {
	if d == DimensionGeography {
		return GroupByGeography
	}
	return GroupByVertical
}

func (d Dimension) Other() Dimension {
	if d == DimensionGeography {
		return DimensionVertical
	}
	return DimensionGeography
}
