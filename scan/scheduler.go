package scan

import (
	"context"
	"fmt"
	"sync"

	"github.com/lepinkainen/mediacheck/probe"
)

// Scheduler drives the engine over every task with a bounded pool of
// workers. Each worker owns one file end-to-end; its probes run sequentially
// inside that worker. Verdicts complete in no particular order.
type Scheduler struct {
	Engine  *Engine
	Workers int
	Summary *Summary

	// OnStart and OnVerdict stream scheduling events to an optional UI.
	// Both are invoked from worker goroutines and must be safe for
	// concurrent use.
	OnStart   func(workerID int, task FileTask)
	OnVerdict func(workerID int, v Verdict)
}

// Run evaluates all tasks and blocks until every verdict has been recorded.
func (s *Scheduler) Run(ctx context.Context, tasks []FileTask) {
	workers := s.Workers
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan FileTask)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for task := range jobs {
				if s.OnStart != nil {
					s.OnStart(id, task)
				}
				v := s.evaluate(ctx, task)
				s.Summary.Record(v)
				if s.OnVerdict != nil {
					s.OnVerdict(id, v)
				}
			}
		}(i)
	}

	for _, task := range tasks {
		jobs <- task
	}
	close(jobs)
	wg.Wait()
}

// evaluate isolates per-file failures: a panic anywhere in probe
// orchestration becomes a DAMAGED verdict with an internal diagnostic entry
// instead of taking down the pool.
func (s *Scheduler) evaluate(ctx context.Context, task FileTask) (v Verdict) {
	defer func() {
		if r := recover(); r != nil {
			v = Verdict{
				Path:   task.Path,
				Mode:   s.Engine.Mode,
				Result: ResultDamaged,
				Trail: []probe.Outcome{{
					Tool:   "internal",
					RC:     -1,
					Stderr: fmt.Sprintf("unexpected error: %v", r),
					Class:  probe.DecodeFailure,
				}},
			}
		}
	}()
	return s.Engine.Evaluate(ctx, task)
}
