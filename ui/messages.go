package ui

import "github.com/lepinkainen/mediacheck/scan"

// TUI message types for worker communication

// WorkerStartedMsg reports that a worker picked up a file.
type WorkerStartedMsg struct {
	WorkerID int
	Path     string
}

// VerdictMsg reports one completed verdict.
type VerdictMsg struct {
	WorkerID int
	Verdict  scan.Verdict
}

// ScanDoneMsg reports that every task has been evaluated.
type ScanDoneMsg struct{}
