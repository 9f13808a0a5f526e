package analytics

import (
	"testing"

	"github.com/marginscope/marginscope/internal/dataset"
)

func TestCategoryPerformanceOrderLevelAverage(t *testing.T) {
	// One order with two line items (profit 50 and -20) collapses to a
	// single order-level profit of 30; the category average is 30, not
	// the naive per-line-item 15.
	recs := []dataset.Record{
		{OrderID: "O1", Category: "Furniture", Sales: dec("100"), Profit: dec("50")},
		{OrderID: "O1", Category: "Furniture", Sales: dec("40"), Profit: dec("-20")},
	}

	got := CategoryPerformance(recs)

	if len(got) != 1 {
		t.Fatalf("Expected 1 category, got %d", len(got))
	}
	c := got[0]
	if c.Category != "Furniture" {
		t.Errorf("Expected category 'Furniture', got '%s'", c.Category)
	}
	if c.Orders != 1 {
		t.Errorf("Expected 1 order, got %d", c.Orders)
	}
	if !c.TotalSales.Equal(dec("140")) {
		t.Errorf("Expected total sales 140, got %s", c.TotalSales)
	}
	if !c.TotalProfit.Equal(dec("30")) {
		t.Errorf("Expected total profit 30, got %s", c.TotalProfit)
	}
	if !c.AvgOrderProfit.Equal(dec("30")) {
		t.Errorf("Expected average order profit 30, got %s", c.AvgOrderProfit)
	}
}

func TestCategoryPerformanceWeightsOrdersOnce(t *testing.T) {
	// Order A has three line items of profit 10 (order profit 30), order
	// B has one item of profit 10. The average counts each order once:
	// (30 + 10) / 2 = 20. A per-line average would report 10.
	recs := []dataset.Record{
		{OrderID: "A", Category: "Office", Profit: dec("10")},
		{OrderID: "A", Category: "Office", Profit: dec("10")},
		{OrderID: "A", Category: "Office", Profit: dec("10")},
		{OrderID: "B", Category: "Office", Profit: dec("10")},
	}

	got := CategoryPerformance(recs)

	if len(got) != 1 {
		t.Fatalf("Expected 1 category, got %d", len(got))
	}
	if got[0].Orders != 2 {
		t.Errorf("Expected 2 orders, got %d", got[0].Orders)
	}
	if !got[0].AvgOrderProfit.Equal(dec("20")) {
		t.Errorf("Expected average order profit 20, got %s", got[0].AvgOrderProfit)
	}
}

func TestCategoryPerformanceOrderSpanningCategories(t *testing.T) {
	// One order across two categories contributes one order-level group
	// to each category.
	recs := []dataset.Record{
		{OrderID: "O1", Category: "Furniture", Sales: dec("100"), Profit: dec("10")},
		{OrderID: "O1", Category: "Technology", Sales: dec("300"), Profit: dec("60")},
		{OrderID: "O2", Category: "Technology", Sales: dec("200"), Profit: dec("20")},
	}

	got := CategoryPerformance(recs)

	if len(got) != 2 {
		t.Fatalf("Expected 2 categories, got %d", len(got))
	}
	// Sorted by category name ascending.
	if got[0].Category != "Furniture" || got[1].Category != "Technology" {
		t.Fatalf("Unexpected category order: %s, %s", got[0].Category, got[1].Category)
	}
	if got[0].Orders != 1 {
		t.Errorf("Furniture: expected 1 order, got %d", got[0].Orders)
	}
	if got[1].Orders != 2 {
		t.Errorf("Technology: expected 2 orders, got %d", got[1].Orders)
	}
	if !got[1].TotalProfit.Equal(dec("80")) {
		t.Errorf("Technology: expected profit 80, got %s", got[1].TotalProfit)
	}
	if !got[1].AvgOrderProfit.Equal(dec("40")) {
		t.Errorf("Technology: expected average order profit 40, got %s", got[1].AvgOrderProfit)
	}
}

func TestCategoryPerformanceEmpty(t *testing.T) {
	if got := CategoryPerformance(nil); len(got) != 0 {
		t.Errorf("Expected empty result for empty input, got %d categories", len(got))
	}
}
