//-------------------------------------------------------------------------
//
// MarginScope Retail Analytics
//
// Copyright (c) 2025 - 2026, the MarginScope authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package analytics

import (
	"math"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/marginscope/marginscope/internal/dataset"
)

// DiscountProfit is one discount tier with its summed profit.
type DiscountProfit struct {
	Discount    float64
	TotalProfit decimal.Decimal
}

// DiscountSales is one discount tier with its summed sales.
type DiscountSales struct {
	Discount   float64
	TotalSales decimal.Decimal
}

// DiscountLevels returns the distinct discount tiers observed in the
// dataset, sorted ascending. Tiers are the exact stored values; rendering
// as percentages is done by FormatPercent.
func DiscountLevels(recs []dataset.Record) []float64 {
	seen := make(map[float64]struct{})
	for i := range recs {
		seen[recs[i].Discount] = struct{}{}
	}

	levels := make([]float64, 0, len(seen))
	for d := range seen {
		levels = append(levels, d)
	}
	sort.Float64s(levels)
	return levels
}

// ProfitByDiscount sums profit per discount tier, ordered by discount
// ascending. Grouping uses exact stored-value equality: tiers are discrete
// policy values, not a continuous variable.
func ProfitByDiscount(recs []dataset.Record) []DiscountProfit {
	groups := groupBy(recs, func(r *dataset.Record) float64 { return r.Discount })

	out := make([]DiscountProfit, 0, len(groups))
	for d, t := range groups {
		out = append(out, DiscountProfit{Discount: d, TotalProfit: t.profit})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Discount < out[j].Discount })
	return out
}

// SalesByDiscount sums sales per discount tier, ordered by summed sales
// descending. Equal sales order by discount ascending.
func SalesByDiscount(recs []dataset.Record) []DiscountSales {
	groups := groupBy(recs, func(r *dataset.Record) float64 { return r.Discount })

	out := make([]DiscountSales, 0, len(groups))
	for d, t := range groups {
		out = append(out, DiscountSales{Discount: d, TotalSales: t.sales})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].TotalSales.Cmp(out[j].TotalSales); c != 0 {
			return c > 0
		}
		return out[i].Discount < out[j].Discount
	})
	return out
}

// FormatPercent renders a discount rate as a percentage, rounded to two
// decimal places with trailing zeros trimmed: 0.15 -> "15%", 0.125 -> "12.5%".
func FormatPercent(rate float64) string {
	pct := math.Round(rate*10000) / 100
	return strconv.FormatFloat(pct, 'f', -1, 64) + "%"
}
