//go:build !windows

package subprocrun

import "syscall"

// newSysProcAttr sets pgid 0 (the child becomes the leader of a new
// process group) when requested, per spec.md §4.4 step 2's SETPGROUP flag.
//
// The rest of step 1-2's discipline (an empty signal mask and SIG_DFL
// disposition for every modifiable signal in the child) is not
// something os/exec exposes a flag for, because Go's runtime already
// provides it unconditionally as part of its own fork/exec implementation:
// syscall.forkAndExecInChild unblocks every signal in the forked child
// before calling execve, and execve itself resets any non-ignored signal
// handler to its default disposition (POSIX exec(2) semantics). There is
// nothing this package needs to add on top.
func newSysProcAttr(startNewProcessGroup bool) *syscall.SysProcAttr {
	if !startNewProcessGroup {
		return &syscall.SysProcAttr{}
	}
	return &syscall.SysProcAttr{
		Setpgid: true,
		Pgid:    0,
	}
}
