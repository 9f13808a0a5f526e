package reports_test

import (
	"reflect"
	"testing"

	"github.com/marginscope/marginscope/internal/reports"
)

func TestRunnerSerial(t *testing.T) {
	recs := storefrontDataset()
	defs := reports.All()

	results := reports.Runner{}.Run(recs, defs)

	if len(results) != len(defs) {
		t.Fatalf("Expected %d results, got %d", len(defs), len(results))
	}
	for i, res := range results {
		if res.Table.Name != defs[i].Name {
			t.Errorf("Result %d: expected '%s', got '%s'", i, defs[i].Name, res.Table.Name)
		}
		if res.Duration < 0 {
			t.Errorf("Result %d: negative duration %v", i, res.Duration)
		}
	}
}

func TestRunnerParallelMatchesSerial(t *testing.T) {
	recs := storefrontDataset()
	defs := reports.All()

	serial := reports.Runner{}.Run(recs, defs)
	parallel := reports.Runner{Parallel: true, Workers: 4}.Run(recs, defs)

	if len(parallel) != len(serial) {
		t.Fatalf("Expected %d results, got %d", len(serial), len(parallel))
	}
	for i := range serial {
		if !reflect.DeepEqual(parallel[i].Table, serial[i].Table) {
			t.Errorf("Report '%s': parallel table differs from serial", serial[i].Table.Name)
		}
	}
}

func TestRunnerPreservesGivenOrder(t *testing.T) {
	recs := storefrontDataset()

	// Deliberately out of registration order.
	var defs []reports.Definition
	for _, name := range []string{"top-cities", "discount-levels", "segment-performance"} {
		def, err := reports.Get(name)
		if err != nil {
			t.Fatalf("Failed to get report: %v", err)
		}
		defs = append(defs, def)
	}

	results := reports.Runner{Parallel: true, Workers: 2}.Run(recs, defs)

	for i, def := range defs {
		if results[i].Table.Name != def.Name {
			t.Errorf("Result %d: expected '%s', got '%s'", i, def.Name, results[i].Table.Name)
		}
	}
}

func TestRunnerNoDefinitions(t *testing.T) {
	results := reports.Runner{Parallel: true}.Run(storefrontDataset(), nil)
	if len(results) != 0 {
		t.Errorf("Expected no results, got %d", len(results))
	}
}
