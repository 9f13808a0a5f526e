package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/marginscope/marginscope/internal/dataset"
)

// totals accumulates the measures shared by every report view.
type totals struct {
	sales  decimal.Decimal
	profit decimal.Decimal
	rows   int
}

func (t *totals) add(r *dataset.Record) {
	t.sales = t.sales.Add(r.Sales)
	t.profit = t.profit.Add(r.Profit)
	t.rows++
}

// groupBy buckets records by the key function and accumulates sales and
// profit per bucket. Map iteration order is undefined; every view sorts its
// result before returning it.
func groupBy[K comparable](recs []dataset.Record, key func(*dataset.Record) K) map[K]*totals {
	groups := make(map[K]*totals)
	for i := range recs {
		k := key(&recs[i])
		t, ok := groups[k]
		if !ok {
			t = &totals{}
			groups[k] = t
		}
		t.add(&recs[i])
	}
	return groups
}

// limit truncates s to at most n entries.
func limit[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
