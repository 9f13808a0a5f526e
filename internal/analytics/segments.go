package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/marginscope/marginscope/internal/dataset"
)

// SegmentSummary is one customer segment with summed sales and profit.
type SegmentSummary struct {
	Segment     string
	TotalSales  decimal.Decimal
	TotalProfit decimal.Decimal
}

// SegmentPerformance sums sales and profit per customer segment, ordered
// by summed profit descending, ties by segment name ascending. No limit:
// datasets typically carry three segments.
func SegmentPerformance(recs []dataset.Record) []SegmentSummary {
	groups := groupBy(recs, func(r *dataset.Record) string { return r.Segment })

	out := make([]SegmentSummary, 0, len(groups))
	for name, t := range groups {
		out = append(out, SegmentSummary{
			Segment:     name,
			TotalSales:  t.sales,
			TotalProfit: t.profit,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].TotalProfit.Cmp(out[j].TotalProfit); c != 0 {
			return c > 0
		}
		return out[i].Segment < out[j].Segment
	})
	return out
}
