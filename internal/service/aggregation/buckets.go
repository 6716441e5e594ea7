package aggregation

import (
	"sort"
	"strings"

	"github.com/ougirez/econdash/internal/domain"
)

// Bucket collects every metric name that counts towards one output metric.
type Bucket struct {
	Metric  domain.Metric `json:"metric"`
	Aliases []string      `json:"aliases"`
}

type Buckets []Bucket

func DefaultBuckets() Buckets {
	return Buckets{
		{Metric: domain.MetricRevenue, Aliases: []string{"revenue"}},
		{Metric: domain.MetricEmployment, Aliases: []string{"employment"}},
		{Metric: domain.MetricLand, Aliases: []string{"land_required", "land"}},
		{Metric: domain.MetricCapital, Aliases: []string{"capital_required", "capital", "funding_amount"}},
	}
}

// BucketsFromConfig applies alias overrides on top of DefaultBuckets. A key
// naming an unknown metric adds a new bucket after the defaults.
func BucketsFromConfig(overrides map[string][]string) Buckets {
	out := DefaultBuckets()
	if len(overrides) == 0 {
		return out
	}

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		aliases := overrides[k]
		if len(aliases) == 0 {
			continue
		}
		m := domain.Metric(normalize(k))

		replaced := false
		for i := range out {
			if out[i].Metric == m {
				out[i].Aliases = append([]string(nil), aliases...)
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, Bucket{Metric: m, Aliases: append([]string(nil), aliases...)})
		}
	}

	return out
}

func (b Buckets) Metrics() []domain.Metric {
	out := make([]domain.Metric, 0, len(b))
	for _, bucket := range b {
		out = append(out, bucket.Metric)
	}
	return out
}

// Resolve maps a raw fact-row metric name to its bucket.
func (b Buckets) Resolve(metric string) (domain.Metric, bool) {
	m, ok := b.index()[normalize(metric)]
	return m, ok
}

// index maps alias -> bucket. An alias listed in two buckets belongs to the
// first one.
func (b Buckets) index() map[string]domain.Metric {
	idx := make(map[string]domain.Metric)
	for _, bucket := range b {
		for _, alias := range bucket.Aliases {
			a := normalize(alias)
			if _, taken := idx[a]; !taken {
				idx[a] = bucket.Metric
			}
		}
	}
	return idx
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
