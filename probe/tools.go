package probe

import "os/exec"

// Toolset records which external verification tools are reachable in PATH.
// A missing tool never aborts a scan; probes against it simply come back as
// launch errors. The set exists so the pre-flight report can warn up front.
type Toolset struct {
	FFprobe  bool
	FFmpeg   bool
	Exiftool bool
}

// DetectTools checks PATH for the external tools the tiers rely on.
func DetectTools() Toolset {
	return Toolset{
		FFprobe:  toolAvailable("ffprobe"),
		FFmpeg:   toolAvailable("ffmpeg"),
		Exiftool: toolAvailable("exiftool"),
	}
}

// AnyUsable reports whether at least one probe path remains for the fast
// tier's OR-rule.
func (t Toolset) AnyUsable() bool {
	return t.FFprobe || t.FFmpeg || t.Exiftool
}

func toolAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
