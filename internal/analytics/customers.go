package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/marginscope/marginscope/internal/dataset"
)

// rankLimit caps the top/bottom ranking views.
const rankLimit = 10

// CustomerSummary is one customer with summed sales and profit.
type CustomerSummary struct {
	Customer    string
	TotalSales  decimal.Decimal
	TotalProfit decimal.Decimal
}

func customerSummaries(recs []dataset.Record) []CustomerSummary {
	groups := groupBy(recs, func(r *dataset.Record) string { return r.CustomerName })

	out := make([]CustomerSummary, 0, len(groups))
	for name, t := range groups {
		out = append(out, CustomerSummary{
			Customer:    name,
			TotalSales:  t.sales,
			TotalProfit: t.profit,
		})
	}
	return out
}

// TopCustomers returns up to ten customers by summed profit descending,
// ties by customer name ascending.
func TopCustomers(recs []dataset.Record) []CustomerSummary {
	out := customerSummaries(recs)
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].TotalProfit.Cmp(out[j].TotalProfit); c != 0 {
			return c > 0
		}
		return out[i].Customer < out[j].Customer
	})
	return limit(out, rankLimit)
}

// BottomCustomers returns up to ten customers by summed profit ascending,
// ties by customer name ascending.
func BottomCustomers(recs []dataset.Record) []CustomerSummary {
	out := customerSummaries(recs)
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].TotalProfit.Cmp(out[j].TotalProfit); c != 0 {
			return c < 0
		}
		return out[i].Customer < out[j].Customer
	})
	return limit(out, rankLimit)
}
