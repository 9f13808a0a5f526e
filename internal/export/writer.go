//-------------------------------------------------------------------------
//
// MarginScope Retail Analytics
//
// Copyright (c) 2025 - 2026, the MarginScope authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package export writes report tables to files for dashboard hand-off.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/marginscope/marginscope/internal/logging"
	"github.com/marginscope/marginscope/internal/reports"
)

// Format selects the artifact encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// WriteTable writes one table to <dir>/<name>.<format> and returns the
// path. The directory is created if absent.
func WriteTable(dir string, table reports.Table, format Format) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.%s", table.Name, format))

	var err error
	switch format {
	case FormatCSV:
		err = writeCSV(path, table)
	case FormatJSON:
		err = writeJSON(path, table)
	default:
		return "", fmt.Errorf("unknown export format: %s", format)
	}
	if err != nil {
		return "", err
	}

	logging.Debug().
		Str("report", table.Name).
		Str("path", path).
		Msg("Report exported")

	return path, nil
}

// WriteAll writes every table and returns the written paths.
func WriteAll(dir string, tables []reports.Table, format Format) ([]string, error) {
	paths := make([]string, 0, len(tables))
	for _, table := range tables {
		path, err := WriteTable(dir, table, format)
		if err != nil {
			return nil, fmt.Errorf("exporting %s: %w", table.Name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeCSV(path string, table reports.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(table.Columns); err != nil {
		f.Close()
		return fmt.Errorf("writing header: %w", err)
	}
	for _, row := range table.Rows {
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("writing row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flushing csv: %w", err)
	}
	return f.Close()
}

// writeJSON renders the rows as an array of objects keyed by column
// label, the shape dashboard tooling ingests directly.
func writeJSON(path string, table reports.Table) error {
	objects := make([]map[string]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		obj := make(map[string]string, len(table.Columns))
		for i, col := range table.Columns {
			obj[col] = row[i]
		}
		objects = append(objects, obj)
	}

	data, err := json.MarshalIndent(objects, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}
