package utils

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ScannerTools are the external binaries the verification tiers shell out to.
var ScannerTools = []string{"ffprobe", "ffmpeg", "exiftool"}

// MissingTools returns the scanner tools not found in PATH. A missing tool
// is reported, not fatal: probes against it come back as launch errors.
func MissingTools() []string {
	var missing []string
	for _, tool := range ScannerTools {
		if _, err := exec.LookPath(tool); err != nil {
			missing = append(missing, tool)
		}
	}
	return missing
}

// ValidateScannerDependencies returns an error naming every missing external
// tool together with installation instructions.
func ValidateScannerDependencies() error {
	missing := MissingTools()
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%s not found in PATH. %s", strings.Join(missing, ", "), InstallInstructions())
}

// InstallInstructions returns platform-specific installation instructions
// for ffmpeg (which ships ffprobe) and exiftool.
func InstallInstructions() string {
	switch runtime.GOOS {
	case "darwin":
		return "Install with: brew install ffmpeg exiftool"
	case "linux":
		return "Install with: apt-get install ffmpeg libimage-exiftool-perl (Ubuntu/Debian) or yum install ffmpeg perl-Image-ExifTool (CentOS/RHEL)"
	case "windows":
		return "Download from https://ffmpeg.org/download.html and https://exiftool.org and add both to PATH"
	default:
		return "Download from https://ffmpeg.org/download.html and https://exiftool.org"
	}
}
