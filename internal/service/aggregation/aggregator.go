package aggregation

import (
	"github.com/ougirez/econdash/internal/domain"
	"github.com/shopspring/decimal"
)

type Aggregator struct {
	buckets Buckets
}

func NewAggregator(buckets Buckets) *Aggregator {
	if len(buckets) == 0 {
		buckets = DefaultBuckets()
	}
	return &Aggregator{buckets: buckets}
}

func (a *Aggregator) Buckets() Buckets {
	return a.buckets
}

func (a *Aggregator) Aggregate(rows []domain.Target, key domain.GroupKey, entityIDs []string) map[string]domain.Totals {
	return Aggregate(rows, key, entityIDs, a.buckets)
}

// Aggregate sums root rows per entity and bucket. Every id in entityIDs is
// present in the result, zero-filled when nothing matched; rows pointing at
// other entities or unknown metrics are ignored.
func Aggregate(rows []domain.Target, key domain.GroupKey, entityIDs []string, buckets Buckets) map[string]domain.Totals {
	idx := buckets.index()

	sums := make(map[string]map[domain.Metric]decimal.Decimal, len(entityIDs))
	for _, id := range entityIDs {
		sums[id] = make(map[domain.Metric]decimal.Decimal, len(buckets))
	}

	for _, r := range rows {
		if !r.IsRoot() {
			continue
		}
		acc, ok := sums[r.Key(key)]
		if !ok {
			continue
		}
		m, ok := idx[normalize(r.Metric)]
		if !ok {
			continue
		}
		acc[m] = acc[m].Add(r.Value.Decimal())
	}

	out := make(map[string]domain.Totals, len(sums))
	for id, acc := range sums {
		t := domain.NewTotals(buckets.Metrics()...)
		for m, d := range acc {
			t[m] = d.InexactFloat64()
		}
		out[id] = t
	}

	return out
}

// CountRows counts root rows per group key value.
func CountRows(rows []domain.Target, key domain.GroupKey) map[string]int {
	out := make(map[string]int)
	for _, r := range rows {
		if r.IsRoot() {
			out[r.Key(key)]++
		}
	}
	return out
}

func FilterYear(rows []domain.Target, year domain.Year) []domain.Target {
	out := make([]domain.Target, 0, len(rows))
	for _, r := range rows {
		if r.Year == year {
			out = append(out, r)
		}
	}
	return out
}

// Sum adds up totals across entities.
func Sum(totals map[string]domain.Totals, metrics []domain.Metric) domain.Totals {
	acc := make(map[domain.Metric]decimal.Decimal, len(metrics))
	for _, t := range totals {
		for m, v := range t {
			acc[m] = acc[m].Add(decimal.NewFromFloat(v))
		}
	}

	out := domain.NewTotals(metrics...)
	for m, d := range acc {
		out[m] = d.InexactFloat64()
	}
	return out
}
