package reports_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/marginscope/marginscope/internal/dataset"
	"github.com/marginscope/marginscope/internal/reports"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// storefrontDataset covers every grouping dimension with small
// hand-checkable numbers. Order US-1 spans two categories.
func storefrontDataset() []dataset.Record {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return []dataset.Record{
		{
			OrderID: "US-1", OrderDate: day, ShipDate: day.AddDate(0, 0, 3),
			CustomerName: "Ann Chang", Segment: "Consumer",
			Region: "West", State: "California", City: "Los Angeles", PostalCode: "90001",
			Category: "Furniture", SubCategory: "Chairs", ProductName: "Swivel Chair",
			Sales: dec("100.00"), Quantity: 2, Discount: 0, Profit: dec("20.50"),
		},
		{
			OrderID: "US-1", OrderDate: day, ShipDate: day.AddDate(0, 0, 3),
			CustomerName: "Ann Chang", Segment: "Consumer",
			Region: "West", State: "California", City: "Los Angeles", PostalCode: "90001",
			Category: "Technology", SubCategory: "Phones", ProductName: "Handset",
			Sales: dec("50.25"), Quantity: 1, Discount: 0.1, Profit: dec("-5.25"),
		},
		{
			OrderID: "US-2", OrderDate: day.AddDate(0, 0, 1), ShipDate: day.AddDate(0, 0, 5),
			CustomerName: "Bo Reyes", Segment: "Corporate",
			Region: "South", State: "Texas", City: "Austin", PostalCode: "73301",
			Category: "Furniture", SubCategory: "Tables", ProductName: "Oak Table",
			Sales: dec("10.00"), Quantity: 1, Discount: 0, Profit: dec("0.50"),
		},
	}
}

func TestBuildRowWidths(t *testing.T) {
	recs := storefrontDataset()

	for _, def := range reports.All() {
		t.Run(def.Name, func(t *testing.T) {
			table := def.Build(recs)

			if table.Name != def.Name {
				t.Errorf("Table name mismatch: expected '%s', got '%s'", def.Name, table.Name)
			}
			if table.Title != def.Title {
				t.Errorf("Table title mismatch: expected '%s', got '%s'", def.Title, table.Title)
			}
			if !reflect.DeepEqual(table.Columns, def.Columns) {
				t.Errorf("Table columns mismatch: expected %v, got %v", def.Columns, table.Columns)
			}
			for i, row := range table.Rows {
				if len(row) != len(def.Columns) {
					t.Errorf("Row %d: expected %d cells, got %d (%v)",
						i, len(def.Columns), len(row), row)
				}
			}
		})
	}
}

func TestBuildEmptyDataset(t *testing.T) {
	for _, def := range reports.All() {
		t.Run(def.Name, func(t *testing.T) {
			table := def.Build(nil)

			// The loss counter is a scalar and reports zero; every
			// grouped view yields no rows at all.
			if def.Name == "loss-product-count" {
				want := [][]string{{"0"}}
				if !reflect.DeepEqual(table.Rows, want) {
					t.Errorf("Expected %v, got %v", want, table.Rows)
				}
				return
			}
			if len(table.Rows) != 0 {
				t.Errorf("Expected no rows for empty dataset, got %v", table.Rows)
			}
		})
	}
}

func TestDiscountLevelsTable(t *testing.T) {
	table := buildReport(t, "discount-levels")

	want := [][]string{{"0%"}, {"10%"}}
	if !reflect.DeepEqual(table.Rows, want) {
		t.Errorf("Expected rows %v, got %v", want, table.Rows)
	}
}

func TestProfitByDiscountTable(t *testing.T) {
	table := buildReport(t, "profit-by-discount")

	want := [][]string{
		{"0%", "21.00"},
		{"10%", "-5.25"},
	}
	if !reflect.DeepEqual(table.Rows, want) {
		t.Errorf("Expected rows %v, got %v", want, table.Rows)
	}
}

func TestSalesByDiscountTable(t *testing.T) {
	table := buildReport(t, "sales-by-discount")

	want := [][]string{
		{"0%", "110.00"},
		{"10%", "50.25"},
	}
	if !reflect.DeepEqual(table.Rows, want) {
		t.Errorf("Expected rows %v, got %v", want, table.Rows)
	}
}

func TestWorstProductsTable(t *testing.T) {
	table := buildReport(t, "worst-products")

	want := [][]string{{"Handset", "50.25", "-5.25"}}
	if !reflect.DeepEqual(table.Rows, want) {
		t.Errorf("Expected rows %v, got %v", want, table.Rows)
	}
}

func TestCategoryPerformanceTable(t *testing.T) {
	table := buildReport(t, "category-performance")

	// Furniture spans orders US-1 and US-2, so its per-order average is
	// 21.00 / 2. Technology has the single losing US-1 order group.
	want := [][]string{
		{"Furniture", "110.00", "21.00", "2", "10.50"},
		{"Technology", "50.25", "-5.25", "1", "-5.25"},
	}
	if !reflect.DeepEqual(table.Rows, want) {
		t.Errorf("Expected rows %v, got %v", want, table.Rows)
	}
}

func TestTopCustomersTable(t *testing.T) {
	table := buildReport(t, "top-customers")

	want := [][]string{
		{"Ann Chang", "150.25", "15.25"},
		{"Bo Reyes", "10.00", "0.50"},
	}
	if !reflect.DeepEqual(table.Rows, want) {
		t.Errorf("Expected rows %v, got %v", want, table.Rows)
	}
}

func TestTopCitiesTable(t *testing.T) {
	table := buildReport(t, "top-cities")

	want := [][]string{
		{"Los Angeles", "California", "150.25", "15.25"},
		{"Austin", "Texas", "10.00", "0.50"},
	}
	if !reflect.DeepEqual(table.Rows, want) {
		t.Errorf("Expected rows %v, got %v", want, table.Rows)
	}
}

func buildReport(t *testing.T, name string) reports.Table {
	t.Helper()

	def, err := reports.Get(name)
	if err != nil {
		t.Fatalf("Failed to get report: %v", err)
	}
	return def.Build(storefrontDataset())
}
