//go:build windows

package subprocrun

import "os/exec"

// decodeExitStatus on Windows: the status word *is* the exit code, per
// spec.md §4.7.
func decodeExitStatus(state *exec.Cmd, waitErr error) ExitStatus {
	return exitedStatus(int32(state.ProcessState.ExitCode()))
}
