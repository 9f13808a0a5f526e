package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/marginscope/marginscope/internal/dataset"
)

// worstProductLimit caps the worst loss-makers view.
const worstProductLimit = 5

// ProductSummary is one product with its summed sales and profit.
type ProductSummary struct {
	Product     string
	TotalSales  decimal.Decimal
	TotalProfit decimal.Decimal
}

// lossProducts returns every product whose summed profit is strictly
// negative, sorted ascending by summed profit (most negative first), ties
// by product name ascending. Zero net profit is not a loss.
func lossProducts(recs []dataset.Record) []ProductSummary {
	groups := groupBy(recs, func(r *dataset.Record) string { return r.ProductName })

	var out []ProductSummary
	for name, t := range groups {
		if !t.profit.IsNegative() {
			continue
		}
		out = append(out, ProductSummary{
			Product:     name,
			TotalSales:  t.sales,
			TotalProfit: t.profit,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].TotalProfit.Cmp(out[j].TotalProfit); c != 0 {
			return c < 0
		}
		return out[i].Product < out[j].Product
	})
	return out
}

// LossMakingProductCount counts the distinct products whose profit summed
// across all their line items is negative.
func LossMakingProductCount(recs []dataset.Record) int {
	return len(lossProducts(recs))
}

// WorstLossProducts returns up to five loss-making products, most negative
// summed profit first. Fewer qualify, fewer return; none qualify, empty.
func WorstLossProducts(recs []dataset.Record) []ProductSummary {
	return limit(lossProducts(recs), worstProductLimit)
}
