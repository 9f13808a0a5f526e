package reports

import (
	"runtime"
	"sync"
	"time"

	"github.com/marginscope/marginscope/internal/dataset"
	"github.com/marginscope/marginscope/internal/logging"
)

// Result pairs a built table with the time the build took.
type Result struct {
	Table    Table
	Duration time.Duration
}

// Runner builds report tables from a dataset snapshot. The zero value
// builds serially; set Parallel to fan definitions out over a bounded
// worker pool. Results come back in the order the definitions were
// given regardless of execution order.
type Runner struct {
	Parallel bool
	Workers  int // max concurrent builds when Parallel, defaults to GOMAXPROCS
}

// Run builds every definition over recs. The record slice is shared
// read-only between builds, so parallel execution needs no locking.
func (r Runner) Run(recs []dataset.Record, defs []Definition) []Result {
	results := make([]Result, len(defs))

	build := func(i int) {
		start := time.Now()
		table := defs[i].Build(recs)
		results[i] = Result{Table: table, Duration: time.Since(start)}

		logging.Debug().
			Str("report", table.Name).
			Int("rows", len(table.Rows)).
			Dur("duration", results[i].Duration).
			Msg("Report built")
	}

	if !r.Parallel || len(defs) < 2 {
		for i := range defs {
			build(i)
		}
		return results
	}

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(defs) {
		workers = len(defs)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				build(i)
			}
		}()
	}

	for i := range defs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}
