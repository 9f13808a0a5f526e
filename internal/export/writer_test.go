package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/marginscope/marginscope/internal/reports"
)

func sampleTable() reports.Table {
	return reports.Table{
		Name:    "top-customers",
		Title:   "Top Customers by Profit",
		Columns: []string{"customer", "total_sales", "total_profit"},
		Rows: [][]string{
			{"Ann Chang", "150.25", "15.25"},
			{"Bo \"Big\" Reyes", "10.00", "0.50"},
		},
	}
}

func TestWriteTableCSV(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteTable(dir, sampleTable(), FormatCSV)
	if err != nil {
		t.Fatalf("WriteTable failed: %v", err)
	}
	if filepath.Base(path) != "top-customers.csv" {
		t.Errorf("Expected file top-customers.csv, got %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read exported file: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d: %q", len(lines), string(data))
	}
	if lines[0] != "customer,total_sales,total_profit" {
		t.Errorf("Unexpected header line: %q", lines[0])
	}
	if lines[1] != "Ann Chang,150.25,15.25" {
		t.Errorf("Unexpected first row: %q", lines[1])
	}
	// encoding/csv must quote the embedded quotes
	if lines[2] != `"Bo ""Big"" Reyes",10.00,0.50` {
		t.Errorf("Unexpected second row: %q", lines[2])
	}
}

func TestWriteTableJSON(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteTable(dir, sampleTable(), FormatJSON)
	if err != nil {
		t.Fatalf("WriteTable failed: %v", err)
	}
	if filepath.Base(path) != "top-customers.json" {
		t.Errorf("Expected file top-customers.json, got %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read exported file: %v", err)
	}

	var objects []map[string]string
	if err := json.Unmarshal(data, &objects); err != nil {
		t.Fatalf("Exported JSON does not parse: %v", err)
	}

	want := []map[string]string{
		{"customer": "Ann Chang", "total_sales": "150.25", "total_profit": "15.25"},
		{"customer": "Bo \"Big\" Reyes", "total_sales": "10.00", "total_profit": "0.50"},
	}
	if !reflect.DeepEqual(objects, want) {
		t.Errorf("Expected %v, got %v", want, objects)
	}

	if !strings.Contains(string(data), "  \"customer\"") {
		t.Error("Expected two-space indentation in JSON output")
	}
}

func TestWriteTableEmptyRows(t *testing.T) {
	dir := t.TempDir()
	table := reports.Table{
		Name:    "worst-products",
		Title:   "Worst Loss-Making Products",
		Columns: []string{"product", "total_sales", "total_profit"},
	}

	csvPath, err := WriteTable(dir, table, FormatCSV)
	if err != nil {
		t.Fatalf("WriteTable csv failed: %v", err)
	}
	data, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("Failed to read exported file: %v", err)
	}
	if got := string(data); got != "product,total_sales,total_profit\n" {
		t.Errorf("Expected header-only csv, got %q", got)
	}

	jsonPath, err := WriteTable(dir, table, FormatJSON)
	if err != nil {
		t.Fatalf("WriteTable json failed: %v", err)
	}
	data, err = os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("Failed to read exported file: %v", err)
	}
	if got := strings.TrimSpace(string(data)); got != "[]" {
		t.Errorf("Expected empty json array, got %q", got)
	}
}

func TestWriteTableUnknownFormat(t *testing.T) {
	if _, err := WriteTable(t.TempDir(), sampleTable(), Format("xml")); err == nil {
		t.Error("Expected error for unknown format, got nil")
	}
}

func TestWriteTableCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "reports")

	if _, err := WriteTable(dir, sampleTable(), FormatCSV); err != nil {
		t.Fatalf("WriteTable failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "top-customers.csv")); err != nil {
		t.Errorf("Expected exported file in created directory: %v", err)
	}
}

func TestWriteAll(t *testing.T) {
	dir := t.TempDir()
	tables := []reports.Table{
		sampleTable(),
		{
			Name:    "discount-levels",
			Title:   "Discount Levels",
			Columns: []string{"discount"},
			Rows:    [][]string{{"0%"}, {"15%"}},
		},
	}

	paths, err := WriteAll(dir, tables, FormatCSV)
	if err != nil {
		t.Fatalf("WriteAll failed: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("Expected 2 paths, got %d", len(paths))
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("Expected exported file %s: %v", path, err)
		}
	}
}
