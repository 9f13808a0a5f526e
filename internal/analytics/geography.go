//-------------------------------------------------------------------------
//
// MarginScope Retail Analytics
//
// Portions copyright (c) 2025 - 2026, the MarginScope authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/marginscope/marginscope/internal/dataset"
)

// StateSummary is one state with summed sales and profit.
type StateSummary struct {
	State       string
	TotalSales  decimal.Decimal
	TotalProfit decimal.Decimal
}

// CitySummary is one (city, state) pair with summed sales and profit.
// City names repeat across states, so the pair is the grouping key.
type CitySummary struct {
	City        string
	State       string
	TotalSales  decimal.Decimal
	TotalProfit decimal.Decimal
}

type cityState struct {
	city  string
	state string
}

// TopStates returns up to ten states by summed profit descending, ties by
// state name ascending.
func TopStates(recs []dataset.Record) []StateSummary {
	groups := groupBy(recs, func(r *dataset.Record) string { return r.State })

	out := make([]StateSummary, 0, len(groups))
	for name, t := range groups {
		out = append(out, StateSummary{
			State:       name,
			TotalSales:  t.sales,
			TotalProfit: t.profit,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].TotalProfit.Cmp(out[j].TotalProfit); c != 0 {
			return c > 0
		}
		return out[i].State < out[j].State
	})
	return limit(out, rankLimit)
}

// TopCities returns up to ten (city, state) pairs by summed profit
// descending, ties by city then state ascending.
func TopCities(recs []dataset.Record) []CitySummary {
	groups := groupBy(recs, func(r *dataset.Record) cityState {
		return cityState{city: r.City, state: r.State}
	})

	out := make([]CitySummary, 0, len(groups))
	for key, t := range groups {
		out = append(out, CitySummary{
			City:        key.city,
			State:       key.state,
			TotalSales:  t.sales,
			TotalProfit: t.profit,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].TotalProfit.Cmp(out[j].TotalProfit); c != 0 {
			return c > 0
		}
		if out[i].City != out[j].City {
			return out[i].City < out[j].City
		}
		return out[i].State < out[j].State
	})
	return limit(out, rankLimit)
}
