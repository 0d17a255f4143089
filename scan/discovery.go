package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// Built-in extension sets. RAW still formats are included on the image side
// because exiftool and ffprobe both understand their containers.
var (
	defaultImageExts = extSet(
		".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff", ".webp",
		".heic", ".heif", ".dng", ".cr2", ".cr3", ".nef", ".arw", ".raf", ".rw2", ".orf",
	)
	defaultVideoExts = extSet(
		".mp4", ".m4v", ".mov", ".avi", ".mkv", ".webm", ".wmv", ".flv",
		".mts", ".m2ts", ".ts", ".3gp", ".3gpp", ".mxf", ".mpg", ".mpeg", ".vob",
	)
)

func extSet(exts ...string) map[string]bool {
	m := make(map[string]bool, len(exts))
	for _, e := range exts {
		m[e] = true
	}
	return m
}

// Allowlist is the active set of extensions eligible for probing, split by
// media family. Files matching neither set are enumerated but skipped.
type Allowlist struct {
	Image map[string]bool
	Video map[string]bool
}

// DefaultAllowlist returns the built-in image and video extension sets.
func DefaultAllowlist() Allowlist {
	return Allowlist{Image: defaultImageExts, Video: defaultVideoExts}
}

// AllowlistFromCSV builds an allowlist from a user-supplied comma-separated
// extension list. Entries are case-insensitive and a leading dot is optional.
// The custom set replaces both built-in sets, so every matching file is
// probed; image-vs-video kind detection still prefers the image set.
func AllowlistFromCSV(csv string) (Allowlist, error) {
	exts := make(map[string]bool)
	for _, raw := range strings.Split(csv, ",") {
		e := strings.ToLower(strings.TrimSpace(raw))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts[e] = true
	}
	if len(exts) == 0 {
		return Allowlist{}, fmt.Errorf("no extensions in %q", csv)
	}
	return Allowlist{Image: exts, Video: exts}, nil
}

// Classify determines the media kind for a path from its extension.
func (a Allowlist) Classify(path string) (Kind, string) {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case a.Image[ext]:
		return KindImage, ext
	case a.Video[ext]:
		return KindVideo, ext
	default:
		return KindOther, ext
	}
}

// Discover walks root and returns a task for every regular file, including
// ones outside the allowlist (they surface as SKIPPED verdicts so the final
// totals account for the whole tree). Unreadable entries are passed over
// without stopping the walk; the scan itself never writes anything.
func Discover(root string, allow Allowlist) ([]FileTask, error) {
	var tasks []FileTask

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		kind, ext := allow.Classify(path)
		tasks = append(tasks, FileTask{Path: path, Kind: kind, Ext: ext})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return tasks, nil
}
