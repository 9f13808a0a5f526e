//-------------------------------------------------------------------------
//
// MarginScope Retail Analytics
//
// Copyright (c) 2025 - 2026, the MarginScope authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package reports names the analytic views and renders them as tables for
// the terminal, file export and the HTTP API. The analytics package holds
// the aggregation semantics; this package only formats and catalogs.
package reports

import (
	"github.com/marginscope/marginscope/internal/dataset"
)

// Table is one rendered report: ordered rows of formatted cells under
// labelled columns. Rendering surfaces consume tables without
// re-aggregating.
type Table struct {
	Name    string     `json:"name"`
	Title   string     `json:"title"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Definition describes one report in the catalog.
type Definition struct {
	// Name identifies the report on the CLI and in API paths.
	Name string

	// Title is the human heading used by terminal output.
	Title string

	// Description is a one-line summary for catalog listings.
	Description string

	// Columns labels the rendered cells, in order.
	Columns []string

	// Rows computes and formats the view over the dataset.
	Rows func(recs []dataset.Record) [][]string
}

// Build runs the view and assembles the rendered table.
func (d Definition) Build(recs []dataset.Record) Table {
	return Table{
		Name:    d.Name,
		Title:   d.Title,
		Columns: d.Columns,
		Rows:    d.Rows(recs),
	}
}
