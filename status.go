package subprocrun

import (
	"fmt"
	"os/exec"
)

// ExitStatusKind discriminates the two ways a POSIX child can terminate, or
// the single way a Windows child does.
type ExitStatusKind int

const (
	// Exited means the child returned from main / called exit(code).
	Exited ExitStatusKind = iota
	// Signalled means a signal terminated the child (POSIX only).
	Signalled
)

// ExitStatus is the sum of Exited{Code} and (POSIX only) Signalled{Signal},
// per spec.md §3.
type ExitStatus struct {
	Kind   ExitStatusKind
	Code   int32 // valid when Kind == Exited
	Signal int32 // valid when Kind == Signalled
}

func exitedStatus(code int32) ExitStatus {
	return ExitStatus{Kind: Exited, Code: code}
}

func signalledStatus(sig int32) ExitStatus {
	return ExitStatus{Kind: Signalled, Signal: sig}
}

// Success reports whether the child exited with code 0. A signalled child
// is never a success.
func (s ExitStatus) Success() bool {
	return s.Kind == Exited && s.Code == 0
}

func (s ExitStatus) String() string {
	switch s.Kind {
	case Exited:
		return fmt.Sprintf("terminated(%d)", s.Code)
	case Signalled:
		return fmt.Sprintf("signalled(%d)", s.Signal)
	default:
		return "unknown exit status"
	}
}

// classifyWaitResult distinguishes a plain nonzero exit (*exec.ExitError,
// not itself a failure; ProcessState is still populated and decodable)
// from a genuine reap failure, which is reported as a WaitpidSyscallError
// per spec.md §4.6/§7 rather than swallowed.
func classifyWaitResult(cmd *exec.Cmd, waitErr error) (ExitStatus, error) {
	if waitErr != nil {
		if _, isExitError := waitErr.(*exec.ExitError); !isExitError {
			return ExitStatus{}, &WaitpidSyscallError{Errno: waitErr}
		}
	}
	return decodeExitStatus(cmd, waitErr), nil
}
