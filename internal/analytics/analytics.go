//-------------------------------------------------------------------------
//
// MarginScope Retail Analytics
//
// Copyright (c) 2025 - 2026, the MarginScope authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package analytics computes the report views over a loaded transaction
// dataset. Every function is a pure, deterministic transform of the record
// slice it is given: records are never mutated, empty input yields empty
// output, and groups only exist where at least one record matched. Monetary
// sums use exact decimal arithmetic throughout.
//
// Ranked views break ties on equal summed profit by their grouping key in
// ascending order, so repeated runs over the same dataset are identical.
package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/marginscope/marginscope/internal/dataset"
)

// Stats summarizes a dataset for logging and the API stats endpoint.
type Stats struct {
	Records     int             `json:"records"`
	Orders      int             `json:"orders"`
	Products    int             `json:"products"`
	Customers   int             `json:"customers"`
	TotalSales  decimal.Decimal `json:"total_sales"`
	TotalProfit decimal.Decimal `json:"total_profit"`
}

// Summarize counts the distinct grouping dimensions and sums the monetary
// measures across the whole dataset.
func Summarize(recs []dataset.Record) Stats {
	orders := make(map[string]struct{})
	products := make(map[string]struct{})
	customers := make(map[string]struct{})

	stats := Stats{Records: len(recs)}
	for i := range recs {
		r := &recs[i]
		orders[r.OrderID] = struct{}{}
		products[r.ProductName] = struct{}{}
		customers[r.CustomerName] = struct{}{}
		stats.TotalSales = stats.TotalSales.Add(r.Sales)
		stats.TotalProfit = stats.TotalProfit.Add(r.Profit)
	}

	stats.Orders = len(orders)
	stats.Products = len(products)
	stats.Customers = len(customers)
	return stats
}

// GrandTotals returns the dataset-wide sales and profit sums.
func GrandTotals(recs []dataset.Record) (sales, profit decimal.Decimal) {
	for i := range recs {
		sales = sales.Add(recs[i].Sales)
		profit = profit.Add(recs[i].Profit)
	}
	return sales, profit
}
