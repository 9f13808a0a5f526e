//-------------------------------------------------------------------------
//
// MarginScope Retail Analytics
//
// Portions copyright (c) 2025 - 2026, the MarginScope authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package reports

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/marginscope/marginscope/internal/analytics"
	"github.com/marginscope/marginscope/internal/dataset"
)

// money renders a monetary amount with two decimal places.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func init() {
	Register(Definition{
		Name:        "discount-levels",
		Title:       "Discount Levels",
		Description: "Distinct discount tiers observed, ascending",
		Columns:     []string{"discount"},
		Rows: func(recs []dataset.Record) [][]string {
			levels := analytics.DiscountLevels(recs)
			rows := make([][]string, 0, len(levels))
			for _, d := range levels {
				rows = append(rows, []string{analytics.FormatPercent(d)})
			}
			return rows
		},
	})

	Register(Definition{
		Name:        "profit-by-discount",
		Title:       "Profit by Discount",
		Description: "Summed profit per discount tier, ascending by discount",
		Columns:     []string{"discount", "total_profit"},
		Rows: func(recs []dataset.Record) [][]string {
			groups := analytics.ProfitByDiscount(recs)
			rows := make([][]string, 0, len(groups))
			for _, g := range groups {
				rows = append(rows, []string{
					analytics.FormatPercent(g.Discount),
					money(g.TotalProfit),
				})
			}
			return rows
		},
	})

	Register(Definition{
		Name:        "sales-by-discount",
		Title:       "Sales by Discount",
		Description: "Summed sales per discount tier, best-selling tier first",
		Columns:     []string{"discount", "total_sales"},
		Rows: func(recs []dataset.Record) [][]string {
			groups := analytics.SalesByDiscount(recs)
			rows := make([][]string, 0, len(groups))
			for _, g := range groups {
				rows = append(rows, []string{
					analytics.FormatPercent(g.Discount),
					money(g.TotalSales),
				})
			}
			return rows
		},
	})

	Register(Definition{
		Name:        "loss-product-count",
		Title:       "Loss-Making Product Count",
		Description: "Number of products whose summed profit is negative",
		Columns:     []string{"loss_making_products"},
		Rows: func(recs []dataset.Record) [][]string {
			count := analytics.LossMakingProductCount(recs)
			return [][]string{{strconv.Itoa(count)}}
		},
	})

	Register(Definition{
		Name:        "worst-products",
		Title:       "Worst Loss-Making Products",
		Description: "Up to five products with the most negative summed profit",
		Columns:     []string{"product", "total_sales", "total_profit"},
		Rows: func(recs []dataset.Record) [][]string {
			products := analytics.WorstLossProducts(recs)
			rows := make([][]string, 0, len(products))
			for _, p := range products {
				rows = append(rows, []string{p.Product, money(p.TotalSales), money(p.TotalProfit)})
			}
			return rows
		},
	})

	Register(Definition{
		Name:        "category-performance",
		Title:       "Category Performance",
		Description: "Sales, profit and true per-order profit average by category",
		Columns:     []string{"category", "total_sales", "total_profit", "orders", "avg_profit_per_order"},
		Rows: func(recs []dataset.Record) [][]string {
			cats := analytics.CategoryPerformance(recs)
			rows := make([][]string, 0, len(cats))
			for _, c := range cats {
				rows = append(rows, []string{
					c.Category,
					money(c.TotalSales),
					money(c.TotalProfit),
					strconv.Itoa(c.Orders),
					money(c.AvgOrderProfit),
				})
			}
			return rows
		},
	})

	Register(Definition{
		Name:        "top-customers",
		Title:       "Top Customers by Profit",
		Description: "Up to ten customers with the highest summed profit",
		Columns:     []string{"customer", "total_sales", "total_profit"},
		Rows: func(recs []dataset.Record) [][]string {
			return customerRows(analytics.TopCustomers(recs))
		},
	})

	Register(Definition{
		Name:        "bottom-customers",
		Title:       "Bottom Customers by Profit",
		Description: "Up to ten customers with the lowest summed profit",
		Columns:     []string{"customer", "total_sales", "total_profit"},
		Rows: func(recs []dataset.Record) [][]string {
			return customerRows(analytics.BottomCustomers(recs))
		},
	})

	Register(Definition{
		Name:        "segment-performance",
		Title:       "Segment Performance",
		Description: "Sales and profit by customer segment, most profitable first",
		Columns:     []string{"segment", "total_sales", "total_profit"},
		Rows: func(recs []dataset.Record) [][]string {
			segments := analytics.SegmentPerformance(recs)
			rows := make([][]string, 0, len(segments))
			for _, s := range segments {
				rows = append(rows, []string{s.Segment, money(s.TotalSales), money(s.TotalProfit)})
			}
			return rows
		},
	})

	Register(Definition{
		Name:        "top-states",
		Title:       "Top States by Profit",
		Description: "Up to ten states with the highest summed profit",
		Columns:     []string{"state", "total_sales", "total_profit"},
		Rows: func(recs []dataset.Record) [][]string {
			states := analytics.TopStates(recs)
			rows := make([][]string, 0, len(states))
			for _, s := range states {
				rows = append(rows, []string{s.State, money(s.TotalSales), money(s.TotalProfit)})
			}
			return rows
		},
	})

	Register(Definition{
		Name:        "top-cities",
		Title:       "Top Cities by Profit",
		Description: "Up to ten city and state pairs with the highest summed profit",
		Columns:     []string{"city", "state", "total_sales", "total_profit"},
		Rows: func(recs []dataset.Record) [][]string {
			cities := analytics.TopCities(recs)
			rows := make([][]string, 0, len(cities))
			for _, c := range cities {
				rows = append(rows, []string{c.City, c.State, money(c.TotalSales), money(c.TotalProfit)})
			}
			return rows
		},
	})
}

func customerRows(customers []analytics.CustomerSummary) [][]string {
	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []string{c.Customer, money(c.TotalSales), money(c.TotalProfit)})
	}
	return rows
}
