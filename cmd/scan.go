package cmd

import (
	"context"
	"fmt"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lepinkainen/mediacheck/probe"
	"github.com/lepinkainen/mediacheck/scan"
	"github.com/lepinkainen/mediacheck/types"
	"github.com/lepinkainen/mediacheck/ui"
	"github.com/lepinkainen/mediacheck/utils"
)

// ScanCmd runs the read-only integrity scan over a directory tree. Files are
// classified as OK, damaged or skipped by delegating container parsing and
// frame decoding to ffprobe, exiftool and ffmpeg; nothing under the root is
// ever written to.
type ScanCmd struct {
	Root        string `name:"root" required:"" type:"existingdir" help:"Root directory to scan"`
	Mode        string `help:"Verification depth" enum:"fast,medium,slow" default:"medium"`
	Workers     int    `help:"Number of parallel workers (0 = auto)" default:"0"`
	Timeout     int    `help:"Per-probe timeout in seconds" default:"120"`
	IncludeExts string `name:"include-exts" help:"Comma-separated extension allowlist replacing the built-in image/video sets"`
	ListDamaged bool   `name:"list-damaged" help:"List every damaged file with its diagnostic trail"`
	TUI         bool   `name:"tui" help:"Show the live dashboard instead of the single-line progress"`
}

// Run executes the scan command.
func (cmd *ScanCmd) Run(appCtx *types.AppContext) error {
	version := types.DefaultVersion
	if appCtx != nil {
		version = appCtx.Version
	}

	mode, err := scan.ParseMode(cmd.Mode)
	if err != nil {
		return err
	}

	allow := scan.DefaultAllowlist()
	if cmd.IncludeExts != "" {
		allow, err = scan.AllowlistFromCSV(cmd.IncludeExts)
		if err != nil {
			return fmt.Errorf("invalid --include-exts: %w", err)
		}
	}

	fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("MediaCheck %s", version)))

	tools := probe.DetectTools()
	printToolReport(tools)
	if !tools.AnyUsable() {
		fmt.Printf("%s\n", ui.WarnStyle.Render("⚠️  No external tools found; every probe will fail as a launch error"))
	}

	fmt.Printf("\nMode: %s\n%s\n\n", mode, ui.InfoStyle.Render(mode.Basis()))

	tasks, err := scan.Discover(cmd.Root, allow)
	if err != nil {
		return fmt.Errorf("failed to enumerate %s: %w", cmd.Root, err)
	}
	if len(tasks) == 0 {
		fmt.Println("No files found.")
		return nil
	}

	workers := cmd.Workers
	if workers <= 0 {
		if utils.IsNetworkDrive(cmd.Root) {
			workers = 1
			fmt.Printf("%s\n", ui.WarnStyle.Render("⚠️  Network drive detected, using 1 worker"))
		} else {
			workers = defaultWorkers()
		}
	}

	fmt.Println(ui.ProcessingStyle.Render(
		fmt.Sprintf("Scanning %d files with %d workers:", len(tasks), workers)))

	engine := scan.NewEngine(mode, time.Duration(cmd.Timeout)*time.Second)
	summary := scan.NewSummary(len(tasks))
	sched := &scan.Scheduler{Engine: engine, Workers: workers, Summary: summary}

	interrupted := false
	if cmd.TUI {
		interrupted, err = runWithDashboard(sched, tasks, workers, version)
	} else {
		err = runWithProgressLine(sched, tasks, summary)
	}
	if err != nil {
		return err
	}

	printSummary(cmd.Root, mode, summary.Snapshot(), interrupted)
	if cmd.ListDamaged {
		printDamaged(summary.Damaged())
	}
	return nil
}

// defaultWorkers clamps the CPU count into the 2..8 range; probe processes
// are I/O heavy and more than eight decoders saturate most disks.
func defaultWorkers() int {
	n := runtime.NumCPU()
	if n < 2 {
		return 2
	}
	if n > 8 {
		return 8
	}
	return n
}

// runWithProgressLine is the default output mode: a single continuously
// overwritten progress line, redrawn from counter snapshots.
func runWithProgressLine(sched *scan.Scheduler, tasks []scan.FileTask, summary *scan.Summary) error {
	prog := ui.NewProgress(len(tasks))
	done := make(chan struct{})
	rendered := make(chan struct{})

	go func() {
		defer close(rendered)
		prog.Watch(summary.Snapshot, done)
	}()

	sched.Run(context.Background(), tasks)
	close(done)
	<-rendered
	return nil
}

// runWithDashboard streams scheduling events into the bubbletea dashboard.
// The returned bool reports whether the user quit before the scan finished;
// counters recorded up to that point are valid but partial.
func runWithDashboard(sched *scan.Scheduler, tasks []scan.FileTask, workers int, version string) (bool, error) {
	model := ui.NewScanModel(len(tasks), workers, version)
	p := tea.NewProgram(model)

	sched.OnStart = func(id int, task scan.FileTask) {
		p.Send(ui.WorkerStartedMsg{WorkerID: id, Path: task.Path})
	}
	sched.OnVerdict = func(id int, v scan.Verdict) {
		p.Send(ui.VerdictMsg{WorkerID: id, Verdict: v})
	}

	go func() {
		sched.Run(context.Background(), tasks)
		p.Send(ui.ScanDoneMsg{})
	}()

	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("dashboard error: %w", err)
	}
	if m, ok := final.(ui.ScanModel); ok && !m.Finished() {
		return true, nil
	}
	return false, nil
}

func printToolReport(tools probe.Toolset) {
	fmt.Println("External tools:")
	report := func(name string, ok bool) {
		if ok {
			fmt.Printf("  %-9s %s\n", name+":", ui.SuccessStyle.Render("OK"))
		} else {
			fmt.Printf("  %-9s %s\n", name+":", ui.ErrorStyle.Render("MISSING"))
		}
	}
	report("ffprobe", tools.FFprobe)
	report("ffmpeg", tools.FFmpeg)
	report("exiftool", tools.Exiftool)

	if len(utils.MissingTools()) > 0 {
		fmt.Printf("  %s\n", ui.InfoStyle.Render(utils.InstallInstructions()))
	}
}

func printSummary(root string, mode scan.Mode, c scan.Counts, interrupted bool) {
	header := "Scan complete"
	if interrupted {
		header = "Scan interrupted"
	}
	fmt.Printf("\n%s\n", ui.HeaderStyle.Render(header))
	fmt.Printf("Root: %s\n", root)
	fmt.Printf("Mode: %s\n", mode)
	if interrupted {
		fmt.Printf("%s\n", ui.WarnStyle.Render(
			fmt.Sprintf("⚠️  Stopped after %d of %d files; totals below are partial", c.Processed, c.Total)))
	}
	line := fmt.Sprintf("Total: %d | OK/skipped: %d | damaged: %d", c.Total, c.Passed(), c.Damaged)
	if c.Damaged > 0 {
		fmt.Printf("%s\n", ui.ErrorStyle.Render(line))
	} else {
		fmt.Printf("%s\n", ui.SuccessStyle.Render(line))
	}
}

// printDamaged lists each damaged file with its diagnostic trail: one line
// per probe attempted, showing tool, return code, classification and how
// much error output the tool produced.
func printDamaged(damaged []scan.Verdict) {
	if len(damaged) == 0 {
		return
	}
	fmt.Printf("\n%s\n", ui.ErrorStyle.Render("-- Damaged files --"))
	for _, v := range damaged {
		fmt.Printf("[DAMAGED] %s (%s, %dms)\n", v.Path, v.Mode, v.Elapsed.Milliseconds())
		for _, out := range v.Trail {
			fmt.Printf("    %-9s rc=%-3d %-14s err_len=%d\n",
				out.Tool, out.RC, out.Class, len(out.Stderr))
		}
	}
}
