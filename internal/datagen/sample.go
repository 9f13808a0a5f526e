//-------------------------------------------------------------------------
//
// MarginScope Retail Analytics
//
// Copyright (c) 2025 - 2026, the MarginScope authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/marginscope/marginscope/internal/dataset"
	"github.com/marginscope/marginscope/internal/logging"
)

// Reference data
var segments = []string{"Consumer", "Corporate", "Home Office"}
var segmentWeights = []int{5, 3, 2}

// Discount tiers mirror the pricing levels a retail desk actually offers.
// Weights skew toward small discounts; the deep tiers stay rare.
var discountTiers = []float64{0, 0.1, 0.15, 0.2, 0.3, 0.4, 0.5, 0.7, 0.8}
var discountWeights = []int{30, 15, 12, 20, 8, 6, 5, 2, 2}

type place struct {
	region     string
	state      string
	city       string
	postalCode string
}

var places = []place{
	{"West", "California", "Los Angeles", "90036"},
	{"West", "California", "San Francisco", "94122"},
	{"West", "Washington", "Seattle", "98103"},
	{"West", "Arizona", "Phoenix", "85023"},
	{"West", "Colorado", "Denver", "80219"},
	{"East", "New York", "New York City", "10024"},
	{"East", "Pennsylvania", "Philadelphia", "19140"},
	{"East", "Ohio", "Columbus", "43229"},
	{"East", "Massachusetts", "Boston", "02108"},
	{"East", "New Jersey", "Newark", "07102"},
	{"Central", "Texas", "Houston", "77095"},
	{"Central", "Texas", "Dallas", "75220"},
	{"Central", "Illinois", "Chicago", "60610"},
	{"Central", "Michigan", "Detroit", "48205"},
	{"Central", "Minnesota", "Minneapolis", "55407"},
	{"South", "Florida", "Miami", "33180"},
	{"South", "Georgia", "Atlanta", "30318"},
	{"South", "North Carolina", "Charlotte", "28205"},
	{"South", "Virginia", "Richmond", "23223"},
	{"South", "Tennessee", "Memphis", "38109"},
}

type productLine struct {
	category      string
	subCategories []string
}

var productLines = []productLine{
	{"Furniture", []string{"Bookcases", "Chairs", "Tables", "Furnishings"}},
	{"Office Supplies", []string{"Binders", "Paper", "Storage", "Appliances", "Art", "Labels"}},
	{"Technology", []string{"Phones", "Accessories", "Machines", "Copiers"}},
}

const (
	customerPoolSize = 120
	productPoolSize  = 200
	maxOrderItems    = 5

	// marginPenalty scales how quickly discounting erodes the base margin.
	// With base margins drawn from [0.08, 0.42], every sale at a 50%
	// discount or deeper loses money.
	marginPenalty = 1.25
)

type customer struct {
	name    string
	segment string
}

type product struct {
	name        string
	category    string
	subCategory string
	unitPrice   float64
	baseMargin  float64
}

// Generate produces rows synthetic line items grouped into orders of one to
// five items. Line items within an order share the order fields. The same
// seed always yields the same extract; a zero seed draws one from the clock.
func Generate(rows int, seed uint64) []dataset.Record {
	if rows <= 0 {
		return nil
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	f := NewFakerWithSeed(seed)

	logging.Info().
		Int("rows", rows).
		Uint64("seed", seed).
		Msg("Generating sample extract")

	customers := buildCustomers(f, customerPoolSize)
	products := buildProducts(f, productPoolSize)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	recs := make([]dataset.Record, 0, rows)
	orderSeq := 100000
	for len(recs) < rows {
		orderSeq++

		cust := Choose(f, customers)
		pl := Choose(f, places)
		ordered := midnight(f.DateRange(start, end))
		shipped := ordered.AddDate(0, 0, f.Int(1, 7))
		orderID := fmt.Sprintf("US-%d-%06d", ordered.Year(), orderSeq)
		postal := f.NullableString(pl.postalCode, 0.05)

		items := f.Int(1, maxOrderItems)
		if remaining := rows - len(recs); items > remaining {
			items = remaining
		}

		for i := 0; i < items; i++ {
			prod := Choose(f, products)
			qty := f.Int(1, 5)
			discount := ChooseWeighted(f, discountTiers, discountWeights)

			gross := prod.unitPrice * float64(qty) * (1 - discount)
			margin := prod.baseMargin - discount*marginPenalty

			recs = append(recs, dataset.Record{
				OrderID:      orderID,
				OrderDate:    ordered,
				ShipDate:     shipped,
				CustomerName: cust.name,
				Segment:      cust.segment,
				Region:       pl.region,
				State:        pl.state,
				City:         pl.city,
				PostalCode:   postal,
				Category:     prod.category,
				SubCategory:  prod.subCategory,
				ProductName:  prod.name,
				Sales:        cents(gross),
				Quantity:     qty,
				Discount:     discount,
				Profit:       cents(gross * margin),
			})
		}
	}

	return recs
}

// buildCustomers draws a fixed pool so the same names recur across orders.
func buildCustomers(f *Faker, n int) []customer {
	pool := make([]customer, n)
	for i := range pool {
		pool[i] = customer{
			name:    f.Name(),
			segment: ChooseWeighted(f, segments, segmentWeights),
		}
	}
	return pool
}

// buildProducts draws a fixed catalog so products accumulate sales across
// many orders. Price and base margin stay with the product.
func buildProducts(f *Faker, n int) []product {
	pool := make([]product, n)
	for i := range pool {
		line := Choose(f, productLines)
		pool[i] = product{
			name:        f.ProductName(),
			category:    line.category,
			subCategory: Choose(f, line.subCategories),
			unitPrice:   f.Price(4, 500),
			baseMargin:  f.Float64(0.08, 0.42),
		}
	}
	return pool
}

// midnight drops the time-of-day component so dates round-trip through the
// extract format unchanged.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// cents rounds v to whole cents and returns it as an exact decimal.
func cents(v float64) decimal.Decimal {
	return decimal.New(int64(math.Round(v*100)), -2)
}
