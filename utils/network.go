package utils

import (
	"path/filepath"
	"strings"
)

// IsNetworkDrive reports whether a path looks like it lives on a
// network-mounted filesystem. Probing thousands of files over SMB/NFS with
// many workers mostly thrashes the link, so the scanner drops to a single
// worker when the root matches.
func IsNetworkDrive(path string) bool {
	// Windows UNC paths, checked before Abs normalizes the slashes
	if strings.HasPrefix(path, "//") || strings.HasPrefix(path, "\\\\") {
		return true
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	// Common network mount points per platform
	networkPrefixes := []string{
		"/mnt/",     // Linux NFS/SMB mounts
		"/media/",   // Linux removable/network media
		"/Volumes/", // macOS network volumes
	}
	for _, prefix := range networkPrefixes {
		if strings.HasPrefix(absPath, prefix) {
			return true
		}
	}

	return false
}
