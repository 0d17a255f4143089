package scan

import (
	"context"
	"time"

	"github.com/lepinkainen/mediacheck/probe"
)

// Engine reduces the probe outcomes for one file to a verdict according to
// the configured mode. Evaluate is deterministic given the outcomes the
// probes return.
type Engine struct {
	Mode    Mode
	Timeout time.Duration

	// run is swappable so the tier rules can be tested without ffmpeg.
	run func(context.Context, probe.Request) probe.Outcome
}

// NewEngine creates an engine for the given mode with a per-probe timeout.
func NewEngine(mode Mode, timeout time.Duration) *Engine {
	return &Engine{Mode: mode, Timeout: timeout, run: probe.Run}
}

// containerRequest asks ffprobe to parse format and stream metadata without
// decoding anything. -v error keeps stderr quiet unless something is wrong.
func (e *Engine) containerRequest(path string) probe.Request {
	return probe.Request{
		Tool: "ffprobe",
		Args: []string{
			"-v", "error",
			"-show_entries", "format=format_name:stream=codec_name,codec_type",
			"-of", "json",
			path,
		},
		Timeout:      e.Timeout,
		StrictStderr: true,
	}
}

// metadataRequest asks exiftool for a fast tag read. exiftool exits 0 for
// many broken files but prints "Error: ..." instead of tags, hence the
// marker check.
func (e *Engine) metadataRequest(path string) probe.Request {
	return probe.Request{
		Tool:         "exiftool",
		Args:         []string{"-fast", "-fast2", "-n", "-S", "-s", "-s", "-s", path},
		Timeout:      e.Timeout,
		ErrorMarker:  "Error",
		StrictStderr: true,
	}
}

// firstFrameRequest decodes exactly one video frame (or the sole frame of a
// still image) to a null sink, audio disabled.
func (e *Engine) firstFrameRequest(path string) probe.Request {
	return probe.Request{
		Tool: "ffmpeg",
		Args: []string{
			"-v", "error", "-hide_banner", "-nostdin",
			"-i", path,
			"-frames:v", "1", "-an", "-f", "null", "-",
		},
		Timeout:      e.Timeout,
		StrictStderr: true,
	}
}

// fullDecodeRequest decodes every mapped stream, all frames and all audio
// samples, to a null sink.
func (e *Engine) fullDecodeRequest(path string) probe.Request {
	return probe.Request{
		Tool: "ffmpeg",
		Args: []string{
			"-v", "error", "-hide_banner", "-nostdin",
			"-i", path,
			"-map", "0", "-f", "null", "-",
		},
		Timeout:      e.Timeout,
		StrictStderr: true,
	}
}

// Evaluate runs the mode's probe sequence for one task and reduces the
// outcomes to a verdict. Files outside the allowlist are skipped without
// spawning anything.
func (e *Engine) Evaluate(ctx context.Context, task FileTask) Verdict {
	start := time.Now()

	v := Verdict{Path: task.Path, Mode: e.Mode}
	if task.Kind == KindOther {
		v.Result = ResultSkipped
		v.Elapsed = time.Since(start)
		return v
	}

	fastOK := e.fastTier(ctx, task.Path, &v.Trail)

	var ok bool
	switch e.Mode {
	case ModeFast:
		// Either container or metadata parsing is sufficient.
		ok = fastOK

	case ModeMedium:
		// First-frame decode runs even when the fast tier already failed,
		// so the trail always explains both layers.
		first := e.attempt(ctx, e.firstFrameRequest(task.Path), &v.Trail)
		ok = fastOK && first

	case ModeSlow:
		// Full decode is authoritative; the fast and first-frame outcomes
		// ride along as context for damaged reports.
		e.attempt(ctx, e.firstFrameRequest(task.Path), &v.Trail)
		ok = e.attempt(ctx, e.fullDecodeRequest(task.Path), &v.Trail)
	}

	v.Result = ResultDamaged
	if ok {
		v.Result = ResultOK
	}
	v.Elapsed = time.Since(start)
	return v
}

// fastTier runs the container probe and, only if it failed, the metadata
// probe. A passing file owes no second opinion.
func (e *Engine) fastTier(ctx context.Context, path string, trail *[]probe.Outcome) bool {
	if e.attempt(ctx, e.containerRequest(path), trail) {
		return true
	}
	return e.attempt(ctx, e.metadataRequest(path), trail)
}

func (e *Engine) attempt(ctx context.Context, req probe.Request, trail *[]probe.Outcome) bool {
	out := e.run(ctx, req)
	*trail = append(*trail, out)
	return out.Class == probe.Success
}
