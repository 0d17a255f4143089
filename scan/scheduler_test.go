package scan

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lepinkainen/mediacheck/probe"
)

func makeTasks(videos, others int) []FileTask {
	var tasks []FileTask
	for i := 0; i < videos; i++ {
		tasks = append(tasks, FileTask{
			Path: fmt.Sprintf("/data/clip%03d.mp4", i),
			Kind: KindVideo,
			Ext:  ".mp4",
		})
	}
	for i := 0; i < others; i++ {
		tasks = append(tasks, FileTask{
			Path: fmt.Sprintf("/data/notes%03d.txt", i),
			Kind: KindOther,
			Ext:  ".txt",
		})
	}
	return tasks
}

func TestSchedulerConservation(t *testing.T) {
	engine, _ := newStubEngine(ModeFast, map[string]probe.Classification{
		"container": probe.Success,
	})
	// The stub appends to a shared slice; serialize access for this test.
	var mu sync.Mutex
	inner := engine.run
	engine.run = func(ctx context.Context, req probe.Request) probe.Outcome {
		mu.Lock()
		defer mu.Unlock()
		return inner(ctx, req)
	}

	tasks := makeTasks(30, 5)
	summary := NewSummary(len(tasks))
	sched := &Scheduler{Engine: engine, Workers: 4, Summary: summary}

	sched.Run(context.Background(), tasks)

	c := summary.Snapshot()
	if c.Processed != len(tasks) {
		t.Errorf("Processed = %d, expected %d", c.Processed, len(tasks))
	}
	if c.OK+c.Damaged+c.Skipped != len(tasks) {
		t.Errorf("ok+damaged+skipped = %d, expected %d", c.OK+c.Damaged+c.Skipped, len(tasks))
	}
	if c.OK != 30 || c.Skipped != 5 || c.Damaged != 0 {
		t.Errorf("Counts = ok %d damaged %d skipped %d, expected 30/0/5", c.OK, c.Damaged, c.Skipped)
	}
}

// scriptedEngine builds an engine whose probe outcomes depend on the path,
// so different worker counts can be compared on the same file set.
func scriptedEngine(mode Mode) *Engine {
	engine := NewEngine(mode, time.Second)
	engine.run = func(_ context.Context, req probe.Request) probe.Outcome {
		path := req.Args[len(req.Args)-1]
		if req.Tool == "ffmpeg" {
			// ffmpeg's input path sits after -i, not last
			for i, arg := range req.Args {
				if arg == "-i" {
					path = req.Args[i+1]
					break
				}
			}
		}
		out := probe.Outcome{Tool: req.Tool, Args: req.Args}
		if strings.Contains(path, "bad") {
			out.RC = 1
			out.Class = probe.DecodeFailure
		} else {
			out.Class = probe.Success
		}
		return out
	}
	return engine
}

func TestSchedulerWorkerCountInsensitive(t *testing.T) {
	var tasks []FileTask
	for i := 0; i < 20; i++ {
		name := fmt.Sprintf("/data/clip%03d.mp4", i)
		if i%4 == 0 {
			name = fmt.Sprintf("/data/bad%03d.mp4", i)
		}
		tasks = append(tasks, FileTask{Path: name, Kind: KindVideo, Ext: ".mp4"})
	}
	tasks = append(tasks, makeTasks(0, 3)...)

	results := func(workers int) map[string]Result {
		summary := NewSummary(len(tasks))
		got := make(map[string]Result)
		var mu sync.Mutex

		sched := &Scheduler{
			Engine:  scriptedEngine(ModeMedium),
			Workers: workers,
			Summary: summary,
			OnVerdict: func(_ int, v Verdict) {
				mu.Lock()
				got[v.Path] = v.Result
				mu.Unlock()
			},
		}
		sched.Run(context.Background(), tasks)
		return got
	}

	serial := results(1)
	parallel := results(8)

	if len(serial) != len(tasks) || len(parallel) != len(tasks) {
		t.Fatalf("Expected %d verdicts, got %d serial / %d parallel", len(tasks), len(serial), len(parallel))
	}
	for path, want := range serial {
		if got := parallel[path]; got != want {
			t.Errorf("Verdict for %s differs: workers=1 %v, workers=8 %v", path, want, got)
		}
	}
}

func TestSchedulerPanicIsolation(t *testing.T) {
	engine := NewEngine(ModeFast, time.Second)
	engine.run = func(_ context.Context, req probe.Request) probe.Outcome {
		path := req.Args[len(req.Args)-1]
		if strings.Contains(path, "boom") {
			panic("orchestration bug")
		}
		return probe.Outcome{Tool: req.Tool, Args: req.Args, Class: probe.Success}
	}

	tasks := []FileTask{
		{Path: "/data/fine1.mp4", Kind: KindVideo, Ext: ".mp4"},
		{Path: "/data/boom.mp4", Kind: KindVideo, Ext: ".mp4"},
		{Path: "/data/fine2.mp4", Kind: KindVideo, Ext: ".mp4"},
	}

	summary := NewSummary(len(tasks))
	verdicts := make(map[string]Verdict)
	var mu sync.Mutex

	sched := &Scheduler{
		Engine:  engine,
		Workers: 2,
		Summary: summary,
		OnVerdict: func(_ int, v Verdict) {
			mu.Lock()
			verdicts[v.Path] = v
			mu.Unlock()
		},
	}
	sched.Run(context.Background(), tasks)

	c := summary.Snapshot()
	if c.Processed != 3 || c.OK != 2 || c.Damaged != 1 {
		t.Fatalf("Counts = processed %d ok %d damaged %d, expected 3/2/1", c.Processed, c.OK, c.Damaged)
	}

	v := verdicts["/data/boom.mp4"]
	if v.Result != ResultDamaged {
		t.Errorf("Panicking task should be DAMAGED, got %v", v.Result)
	}
	if len(v.Trail) != 1 || v.Trail[0].Tool != "internal" {
		t.Fatalf("Expected a single internal trail entry, got %+v", v.Trail)
	}
	if !strings.Contains(v.Trail[0].Stderr, "orchestration bug") {
		t.Errorf("Internal entry should carry the panic message, got %q", v.Trail[0].Stderr)
	}
}

func TestSchedulerZeroWorkersStillRuns(t *testing.T) {
	engine, _ := newStubEngine(ModeFast, map[string]probe.Classification{
		"container": probe.Success,
	})
	tasks := makeTasks(3, 0)
	summary := NewSummary(len(tasks))

	sched := &Scheduler{Engine: engine, Workers: 0, Summary: summary}
	sched.Run(context.Background(), tasks)

	if c := summary.Snapshot(); c.Processed != 3 {
		t.Errorf("Processed = %d, expected 3", c.Processed)
	}
}
