//go:build !windows

package subprocrun

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// decodeExitStatus classifies a terminated child's os.ProcessState into
// ExitStatus, per spec.md §4.7: exactly one of WIFSIGNALED/WIFEXITED holds,
// a stopped status is a contract error. syscall.WaitStatus and
// golang.org/x/sys/unix.WaitStatus share an identical uint32 layout on every
// POSIX GOOS Go supports, so the raw word is reinterpreted as the ecosystem
// type instead of hand-rolling the bit masking spec.md spells out.
func decodeExitStatus(state *exec.Cmd, waitErr error) ExitStatus {
	ws, ok := state.ProcessState.Sys().(syscall.WaitStatus)
	if !ok {
		panic("subprocrun: unexpected ProcessState.Sys() type")
	}
	status := unix.WaitStatus(ws)

	switch {
	case status.Signaled():
		return signalledStatus(int32(status.Signal()))
	case status.Exited():
		return exitedStatus(int32(status.ExitStatus()))
	default:
		panic("subprocrun: unexpected exit status (process stopped)")
	}
}
