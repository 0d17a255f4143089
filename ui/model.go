package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lepinkainen/mediacheck/probe"
	"github.com/lepinkainen/mediacheck/scan"
)

// DamagedEntry is one damaged file in the dashboard list.
type DamagedEntry struct {
	Path   string
	Detail string
}

func (d DamagedEntry) FilterValue() string { return d.Path }
func (d DamagedEntry) Title() string       { return d.Path }
func (d DamagedEntry) Description() string {
	if d.Detail == "" {
		return "damaged"
	}
	return d.Detail
}

// WorkerState tracks what each worker is currently probing.
type WorkerState struct {
	ID          int
	CurrentFile string
	Status      string // "idle", "probing", "done"
}

// ScanModel is the live dashboard shown with --tui: an overall progress bar,
// per-worker status lines and a scrolling list of damaged files.
type ScanModel struct {
	// Scan state
	totalFiles int
	processed  int
	okFiles    int
	damaged    int
	workers    map[int]*WorkerState

	// UI components
	overallProgress progress.Model
	damagedList     list.Model

	// Layout
	width  int
	height int

	// Control state
	done     bool
	quitting bool

	// Version for display
	Version string
}

// NewScanModel creates the dashboard model for a scan of numFiles across
// numWorkers workers.
func NewScanModel(numFiles, numWorkers int, version string) ScanModel {
	workers := make(map[int]*WorkerState, numWorkers)
	for i := 0; i < numWorkers; i++ {
		workers[i] = &WorkerState{ID: i, Status: "idle"}
	}

	damagedList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	damagedList.Title = "Damaged Files"
	damagedList.SetShowStatusBar(false)

	return ScanModel{
		totalFiles:      numFiles,
		workers:         workers,
		overallProgress: progress.New(progress.WithDefaultGradient()),
		damagedList:     damagedList,
		Version:         version,
	}
}

// Init implements tea.Model
func (m ScanModel) Init() tea.Cmd {
	return nil
}

// Finished reports whether the scan ran to completion before the program
// exited. False on the final model means the user quit mid-scan and any
// totals read afterwards are partial.
func (m ScanModel) Finished() bool {
	return m.done
}

// Update implements tea.Model
func (m ScanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.damagedList.SetSize(msg.Width-4, msg.Height/2)

	case WorkerStartedMsg:
		if worker, ok := m.workers[msg.WorkerID]; ok {
			worker.CurrentFile = msg.Path
			worker.Status = "probing"
		}

	case VerdictMsg:
		m.processed++
		switch msg.Verdict.Result {
		case scan.ResultOK, scan.ResultSkipped:
			m.okFiles++
		case scan.ResultDamaged:
			m.damaged++
			m.damagedList.InsertItem(len(m.damagedList.Items()), DamagedEntry{
				Path:   msg.Verdict.Path,
				Detail: trailSummary(msg.Verdict.Trail),
			})
		}
		if worker, ok := m.workers[msg.WorkerID]; ok {
			worker.CurrentFile = ""
			worker.Status = "idle"
		}

	case ScanDoneMsg:
		m.done = true
		for _, worker := range m.workers {
			worker.Status = "done"
			worker.CurrentFile = ""
		}
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model
func (m ScanModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	header := HeaderStyle.Render(fmt.Sprintf("MediaCheck %s", m.Version))

	overallPercent := 0.0
	if m.totalFiles > 0 {
		overallPercent = float64(m.processed) / float64(m.totalFiles)
	}
	overallView := fmt.Sprintf("Progress: %s (%d/%d) | OK: %d | damaged: %d",
		m.overallProgress.ViewAs(overallPercent),
		m.processed, m.totalFiles,
		m.okFiles, m.damaged)

	workerViews := []string{"Workers:"}
	for i := 0; i < len(m.workers); i++ {
		worker := m.workers[i]
		line := fmt.Sprintf("  Worker %d: %-8s %s", i+1, worker.Status, worker.CurrentFile)
		workerViews = append(workerViews, line)
	}

	controls := "Controls: [q] Quit"

	sections := []string{
		header,
		overallView,
		strings.Join(workerViews, "\n"),
		m.damagedList.View(),
		controls,
	}

	return strings.Join(sections, "\n\n")
}

// trailSummary condenses a diagnostic trail to the first failing probe.
func trailSummary(trail []probe.Outcome) string {
	for _, out := range trail {
		if out.Class != probe.Success {
			return fmt.Sprintf("%s rc=%d (%s)", out.Tool, out.RC, out.Class)
		}
	}
	return ""
}
