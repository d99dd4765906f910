//go:build windows

package subprocrun

import (
	"os"
	"path/filepath"
	"strings"
)

// executableExtensions mirrors the default %PATHEXT% search order; Windows
// has no executable permission bit, so PATH resolution instead matches on
// extension.
var executableExtensions = []string{".exe", ".cmd", ".bat", ".com"}

func isExecutableMode(info os.FileInfo) bool {
	ext := strings.ToLower(filepath.Ext(info.Name()))
	for _, candidate := range executableExtensions {
		if ext == candidate {
			return true
		}
	}
	return false
}
