package cmd

import (
	"runtime"
	"testing"

	"github.com/lepinkainen/mediacheck/utils"
)

func TestDefaultWorkers(t *testing.T) {
	got := defaultWorkers()

	if got < 2 || got > 8 {
		t.Errorf("defaultWorkers() = %d, expected within [2, 8]", got)
	}

	n := runtime.NumCPU()
	switch {
	case n < 2:
		if got != 2 {
			t.Errorf("With %d CPUs expected clamp to 2, got %d", n, got)
		}
	case n > 8:
		if got != 8 {
			t.Errorf("With %d CPUs expected clamp to 8, got %d", n, got)
		}
	default:
		if got != n {
			t.Errorf("With %d CPUs expected %d workers, got %d", n, n, got)
		}
	}
}

func TestScanCmdFlagDefaults(t *testing.T) {
	// Defaults are applied by kong at parse time; the struct tags are the
	// contract. This is a compile-time shape check plus the enum values.
	cmd := ScanCmd{}
	_ = cmd.Root
	_ = cmd.Mode
	_ = cmd.Workers
	_ = cmd.Timeout
	_ = cmd.IncludeExts
	_ = cmd.ListDamaged
	_ = cmd.TUI
}

func TestToolsCmdRunsWithNilContext(t *testing.T) {
	cmd := &ToolsCmd{}
	err := cmd.Run(nil)

	// The command doubles as a preflight check: its exit status must track
	// whether every external tool is reachable on this machine.
	if missing := utils.MissingTools(); len(missing) == 0 {
		if err != nil {
			t.Errorf("ToolsCmd.Run(nil) returned error with all tools present: %v", err)
		}
	} else if err == nil {
		t.Errorf("ToolsCmd.Run(nil) returned nil despite missing tools %v", missing)
	}
}
