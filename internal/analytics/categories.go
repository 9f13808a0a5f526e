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
	"sort"

	"github.com/shopspring/decimal"

	"github.com/marginscope/marginscope/internal/dataset"
)

// CategorySummary is one category with order-level aggregates. Orders is
// the number of (order, category) groups behind the averages.
type CategorySummary struct {
	Category       string
	TotalSales     decimal.Decimal
	TotalProfit    decimal.Decimal
	Orders         int
	AvgOrderProfit decimal.Decimal
}

type orderCategory struct {
	orderID  string
	category string
}

// CategoryPerformance aggregates sales and profit per category with the
// average profit per order. The average weights every order once: line
// items are first collapsed to one figure per (order, category) group, and
// the mean is taken over those groups, never over raw line items. An order
// spanning several categories contributes one group to each.
func CategoryPerformance(recs []dataset.Record) []CategorySummary {
	// Stage 1: one sales/profit figure per (order, category).
	orders := groupBy(recs, func(r *dataset.Record) orderCategory {
		return orderCategory{orderID: r.OrderID, category: r.Category}
	})

	// Stage 2: fold the order-level figures into categories.
	cats := make(map[string]*totals)
	for key, order := range orders {
		c, ok := cats[key.category]
		if !ok {
			c = &totals{}
			cats[key.category] = c
		}
		c.sales = c.sales.Add(order.sales)
		c.profit = c.profit.Add(order.profit)
		c.rows++ // one order-level group
	}

	out := make([]CategorySummary, 0, len(cats))
	for name, c := range cats {
		out = append(out, CategorySummary{
			Category:       name,
			TotalSales:     c.sales,
			TotalProfit:    c.profit,
			Orders:         c.rows,
			AvgOrderProfit: c.profit.Div(decimal.NewFromInt(int64(c.rows))),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}
