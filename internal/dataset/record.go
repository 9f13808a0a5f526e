//-------------------------------------------------------------------------
//
// MarginScope Retail Analytics
//
// Copyright (c) 2025 - 2026, the MarginScope authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package dataset defines the transaction record model and reads the
// tabular extract it is loaded from.
package dataset

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is one product line item within an order. An order is the set of
// records sharing an OrderID; it may span several categories.
type Record struct {
	OrderID      string
	OrderDate    time.Time
	ShipDate     time.Time
	CustomerName string
	Segment      string
	Region       string
	State        string
	City         string
	PostalCode   string
	Category     string
	SubCategory  string
	ProductName  string
	Sales        decimal.Decimal
	Quantity     int
	Discount     float64
	Profit       decimal.Decimal
}

// Columns is the canonical extract column order. Readers accept any column
// order; writers emit this one.
var Columns = []string{
	"order_id",
	"order_date",
	"ship_date",
	"customer_name",
	"segment",
	"region",
	"state",
	"city",
	"postal_code",
	"category",
	"sub_category",
	"product_name",
	"sales",
	"quantity",
	"discount",
	"profit",
}
