//-------------------------------------------------------------------------
//
// MarginScope Retail Analytics
//
// Copyright (c) 2025 - 2026, the MarginScope authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Accepted date layouts. Extracts come in ISO or US form.
var dateLayouts = []string{"2006-01-02", "1/2/2006"}

var errMissingValue = errors.New("value is required")

// RowError reports a validation failure for a single extract row.
// Row is 1-based and counts the header, so it matches the file line for
// extracts without embedded newlines.
type RowError struct {
	Row   int
	Field string
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: invalid %s: %v", e.Row, e.Field, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// ReadFile reads and validates a transaction extract from path.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open extract: %w", err)
	}
	defer f.Close()

	recs, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// Read parses a transaction extract. The first row must be a header; column
// names are matched case-insensitively with spaces and dashes normalized to
// underscores, so "Order ID" and "order_id" both bind. Validation is fatal:
// the first bad row aborts the read and no partial dataset is returned.
func Read(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("extract is empty: header row is required")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, cell := range header {
		if name := normalizeColumn(cell); name != "" {
			cols[name] = i
		}
	}
	for _, name := range Columns {
		if name == "postal_code" {
			continue // optional, some extracts omit it
		}
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}

	var recs []Record
	rowNum := 1 // header
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", rowNum+1, err)
		}
		rowNum++

		rec, err := parseRecord(cols, row, rowNum)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	return recs, nil
}

// WriteFile writes records as an extract CSV at path.
func WriteFile(path string, recs []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create extract: %w", err)
	}

	if err := Write(f, recs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write writes records in the canonical column order, header first.
func Write(w io.Writer, recs []Record) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i := range recs {
		if err := writer.Write(recordFields(&recs[i])); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func recordFields(r *Record) []string {
	return []string{
		r.OrderID,
		r.OrderDate.Format(dateLayouts[0]),
		r.ShipDate.Format(dateLayouts[0]),
		r.CustomerName,
		r.Segment,
		r.Region,
		r.State,
		r.City,
		r.PostalCode,
		r.Category,
		r.SubCategory,
		r.ProductName,
		r.Sales.String(),
		strconv.Itoa(r.Quantity),
		strconv.FormatFloat(r.Discount, 'f', -1, 64),
		r.Profit.String(),
	}
}

func normalizeColumn(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

type rowReader struct {
	cols map[string]int
	row  []string
	num  int
}

func parseRecord(cols map[string]int, row []string, num int) (Record, error) {
	rr := rowReader{cols: cols, row: row, num: num}
	rec := Record{
		PostalCode: rr.cell("postal_code"),
	}

	var err error
	if rec.OrderID, err = rr.text("order_id"); err != nil {
		return Record{}, err
	}
	if rec.OrderDate, err = rr.date("order_date"); err != nil {
		return Record{}, err
	}
	if rec.ShipDate, err = rr.date("ship_date"); err != nil {
		return Record{}, err
	}
	if rec.CustomerName, err = rr.text("customer_name"); err != nil {
		return Record{}, err
	}
	if rec.Segment, err = rr.text("segment"); err != nil {
		return Record{}, err
	}
	if rec.Region, err = rr.text("region"); err != nil {
		return Record{}, err
	}
	if rec.State, err = rr.text("state"); err != nil {
		return Record{}, err
	}
	if rec.City, err = rr.text("city"); err != nil {
		return Record{}, err
	}
	if rec.Category, err = rr.text("category"); err != nil {
		return Record{}, err
	}
	if rec.SubCategory, err = rr.text("sub_category"); err != nil {
		return Record{}, err
	}
	if rec.ProductName, err = rr.text("product_name"); err != nil {
		return Record{}, err
	}
	if rec.Sales, err = rr.money("sales"); err != nil {
		return Record{}, err
	}
	if rec.Sales.IsNegative() {
		return Record{}, rr.fail("sales", errors.New("must not be negative"))
	}
	if rec.Quantity, err = rr.quantity("quantity"); err != nil {
		return Record{}, err
	}
	if rec.Discount, err = rr.discount("discount"); err != nil {
		return Record{}, err
	}
	if rec.Profit, err = rr.money("profit"); err != nil {
		return Record{}, err
	}

	return rec, nil
}

func (r *rowReader) fail(field string, err error) *RowError {
	return &RowError{Row: r.num, Field: field, Err: err}
}

// cell returns the trimmed value of a column, or "" when the column is
// absent or the row is short.
func (r *rowReader) cell(name string) string {
	idx, ok := r.cols[name]
	if !ok || idx >= len(r.row) {
		return ""
	}
	return strings.TrimSpace(r.row[idx])
}

func (r *rowReader) text(field string) (string, error) {
	v := r.cell(field)
	if v == "" {
		return "", r.fail(field, errMissingValue)
	}
	return v, nil
}

func (r *rowReader) date(field string) (time.Time, error) {
	s, err := r.text(field)
	if err != nil {
		return time.Time{}, err
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, r.fail(field, fmt.Errorf("unrecognized date %q", s))
}

func (r *rowReader) money(field string) (decimal.Decimal, error) {
	s, err := r.text(field)
	if err != nil {
		return decimal.Decimal{}, err
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, r.fail(field, fmt.Errorf("not a monetary amount: %q", s))
	}
	return d, nil
}

func (r *rowReader) discount(field string) (float64, error) {
	s, err := r.text(field)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, r.fail(field, fmt.Errorf("not a rate: %q", s))
	}
	if v < 0 || v >= 1 {
		return 0, r.fail(field, fmt.Errorf("rate %v outside [0, 1)", v))
	}
	return v, nil
}

func (r *rowReader) quantity(field string) (int, error) {
	s, err := r.text(field)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, r.fail(field, fmt.Errorf("not an integer: %q", s))
	}
	if n < 1 {
		return 0, r.fail(field, fmt.Errorf("must be at least 1, got %d", n))
	}
	return n, nil
}
