package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Return codes reserved for outcomes the probed tool never produced itself:
// a forced kill on timeout and a process that could not be started at all.
const (
	rcTimeout     = 124
	rcLaunchError = 125
)

// Classification is the verdict-relevant category of a single probe run.
type Classification int

const (
	Success Classification = iota
	DecodeFailure
	Timeout
	LaunchError
)

func (c Classification) String() string {
	switch c {
	case Success:
		return "success"
	case DecodeFailure:
		return "decode-failure"
	case Timeout:
		return "timeout"
	case LaunchError:
		return "launch-error"
	default:
		return "unknown"
	}
}

// Outcome is the immutable record of one external tool invocation.
type Outcome struct {
	Tool    string
	Args    []string
	RC      int
	Stdout  string
	Stderr  string
	Elapsed time.Duration
	Class   Classification
}

// Request describes one external tool invocation. The file path is part of
// Args; different tools place it in different positions (ffmpeg wants it
// after -i, ffprobe and exiftool take it last).
type Request struct {
	Tool    string
	Args    []string
	Timeout time.Duration

	// ErrorMarker reclassifies a zero-exit outcome as DecodeFailure when the
	// marker appears in either captured stream. exiftool reports many
	// problems as "Error: ..." lines while still exiting 0.
	ErrorMarker string

	// StrictStderr reclassifies a zero-exit outcome as DecodeFailure when
	// stderr is non-empty. ffprobe/ffmpeg run with -v error, so anything on
	// stderr is a decode-level complaint even if the exit code is clean.
	StrictStderr bool
}

// Classify maps a return code to its classification. The mapping is fixed
// regardless of which tool produced the code.
func Classify(rc int) Classification {
	switch rc {
	case 0:
		return Success
	case rcTimeout:
		return Timeout
	case rcLaunchError:
		return LaunchError
	default:
		return DecodeFailure
	}
}

// Run spawns the requested tool, waits for it to exit (or kills it on
// timeout), and returns a classified outcome. It is attempted exactly once
// and never returns an error: launch failures and timeouts become outcomes
// like any other so the scan can keep going.
func Run(ctx context.Context, req Request) Outcome {
	start := time.Now()

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, req.Tool, req.Args...)

	// Capture raw bytes; tool output encoding is not trustworthy,
	// especially on Windows consoles with legacy codepages.
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	out := Outcome{
		Tool:    req.Tool,
		Args:    req.Args,
		Stdout:  DecodeOutput(stdout.Bytes()),
		Stderr:  DecodeOutput(stderr.Bytes()),
		Elapsed: time.Since(start),
	}

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		// Forcibly terminated; partial output is kept but the run failed.
		out.RC = rcTimeout
		if strings.TrimSpace(out.Stderr) == "" {
			out.Stderr = fmt.Sprintf("timeout after %s", req.Timeout)
		}
	case err == nil:
		out.RC = 0
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			out.RC = exitErr.ExitCode()
		} else {
			// Binary missing, permission denied, etc.
			out.RC = rcLaunchError
			out.Stderr = err.Error()
		}
	}

	out.Class = Classify(out.RC)
	if out.Class == Success {
		out.Class = recheckOutput(req, out)
	}
	return out
}

// recheckOutput demotes a clean exit to DecodeFailure when the captured
// streams contradict it.
func recheckOutput(req Request, out Outcome) Classification {
	if req.StrictStderr && strings.TrimSpace(out.Stderr) != "" {
		return DecodeFailure
	}
	if req.ErrorMarker != "" &&
		(strings.Contains(out.Stdout, req.ErrorMarker) || strings.Contains(out.Stderr, req.ErrorMarker)) {
		return DecodeFailure
	}
	return Success
}
