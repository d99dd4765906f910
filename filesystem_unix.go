//go:build !windows

package subprocrun

import "os"

// isExecutableMode reports whether info's permission bits grant execute to
// someone. This mirrors what the kernel itself checks at exec(2) time
// closely enough for PATH search purposes; a false positive here just means
// the subsequent spawn fails with SpawnFailedError instead.
func isExecutableMode(info os.FileInfo) bool {
	return info.Mode()&0o111 != 0
}
