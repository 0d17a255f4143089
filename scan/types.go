package scan

import (
	"fmt"
	"time"

	"github.com/lepinkainen/mediacheck/probe"
)

// Kind is the media family a file belongs to, detected from its extension.
type Kind int

const (
	KindImage Kind = iota
	KindVideo
	KindOther // outside the active allowlist; never probed
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	default:
		return "other"
	}
}

// FileTask is one enumerated file waiting for verification. Created once
// during discovery and consumed exactly once by a worker.
type FileTask struct {
	Path string
	Kind Kind
	Ext  string
}

// Mode selects which probes run and how their outcomes combine.
type Mode int

const (
	ModeFast Mode = iota
	ModeMedium
	ModeSlow
)

// ParseMode maps the CLI mode name to its Mode value.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "fast":
		return ModeFast, nil
	case "medium":
		return ModeMedium, nil
	case "slow":
		return ModeSlow, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (want fast, medium or slow)", s)
	}
}

func (m Mode) String() string {
	switch m {
	case ModeFast:
		return "fast"
	case ModeMedium:
		return "medium"
	default:
		return "slow"
	}
}

// Basis is the one-line explanation of what the mode does and what it can
// miss, printed before scanning starts.
func (m Mode) Basis() string {
	switch m {
	case ModeFast:
		return "fast: container/metadata probing only (ffprobe + exiftool), no pixel decoding; quickest, may miss deep corruption"
	case ModeMedium:
		return "medium: fast checks plus first-frame decode via ffmpeg; catches most decode-level errors, blind past the first frame"
	default:
		return "slow: full decode of every stream (all frames and audio samples) to a null sink; strictest and slowest, images are equivalent to medium"
	}
}

// Result is the final per-file classification.
type Result int

const (
	ResultOK Result = iota
	ResultDamaged
	ResultSkipped
)

func (r Result) String() string {
	switch r {
	case ResultOK:
		return "ok"
	case ResultDamaged:
		return "damaged"
	default:
		return "skipped"
	}
}

// Verdict is the outcome of evaluating one FileTask under one mode, with the
// ordered diagnostic trail of every probe that was attempted.
type Verdict struct {
	Path    string
	Mode    Mode
	Result  Result
	Trail   []probe.Outcome
	Elapsed time.Duration
}
