package subprocrun

import (
	"fmt"

	"github.com/pkg/errors"
)

// MissingExecutableProgramError reports that PathResolver could not locate
// argv[0] on any of the three lookup paths.
type MissingExecutableProgramError struct {
	Program string
}

func (e *MissingExecutableProgramError) Error() string {
	return fmt.Sprintf("subprocrun: executable program %q not found", e.Program)
}

// WorkingDirectoryUnsupportedError reports that the host lacks a spawn-time
// chdir action, so a WorkingDirectory could not be honored.
type WorkingDirectoryUnsupportedError struct{}

func (e *WorkingDirectoryUnsupportedError) Error() string {
	return "subprocrun: host does not support spawn-time working directory change"
}

// SpawnFailedError reports that the OS spawn primitive returned nonzero.
type SpawnFailedError struct {
	Errno error
	Argv  []string
}

func (e *SpawnFailedError) Error() string {
	return fmt.Sprintf("subprocrun: spawn of %v failed: %v", e.Argv, e.Errno)
}

func (e *SpawnFailedError) Unwrap() error { return e.Errno }

// PipeSyscallError reports that pipe creation failed during Launch.
type PipeSyscallError struct {
	Errno error
}

func (e *PipeSyscallError) Error() string {
	return fmt.Sprintf("subprocrun: pipe creation failed: %v", e.Errno)
}

func (e *PipeSyscallError) Unwrap() error { return e.Errno }

// CloseSyscallError reports that closing a known-open file descriptor failed.
type CloseSyscallError struct {
	Errno error
}

func (e *CloseSyscallError) Error() string {
	return fmt.Sprintf("subprocrun: close failed: %v", e.Errno)
}

func (e *CloseSyscallError) Unwrap() error { return e.Errno }

// ReadSyscallError reports a non-EINTR read failure on a captured stream.
// It travels inside the stream's Result rather than aborting Wait.
type ReadSyscallError struct {
	Errno error
}

func (e *ReadSyscallError) Error() string {
	return fmt.Sprintf("subprocrun: read failed: %v", e.Errno)
}

func (e *ReadSyscallError) Unwrap() error { return e.Errno }

// WaitpidSyscallError reports that reaping the child failed for a reason
// other than EINTR.
type WaitpidSyscallError struct {
	Errno error
}

func (e *WaitpidSyscallError) Error() string {
	return fmt.Sprintf("subprocrun: waitpid failed: %v", e.Errno)
}

func (e *WaitpidSyscallError) Unwrap() error { return e.Errno }

// IllegalUTF8Error reports that captured bytes were not valid UTF-8 when a
// caller asked for a decoded string view.
type IllegalUTF8Error struct {
	Stream string
}

func (e *IllegalUTF8Error) Error() string {
	return fmt.Sprintf("subprocrun: %s is not valid UTF-8", e.Stream)
}

// NonZeroExitError reports that CheckNonZeroExit's child exited non-zero or
// was signalled.
type NonZeroExitError struct {
	Result *ResultModel
}

func (e *NonZeroExitError) Error() string {
	return fmt.Sprintf("subprocrun: %s", e.Result.Description())
}

// wrapf threads the ambient error-wrapping stack (pkg/errors) through
// instead of bare fmt.Errorf, for errors expected to cross a package
// boundary with a meaningful stack: spawn failures, pipe allocation and
// close failures, and working-directory resolution failures.
func wrapf(err error, format string, args ...any) error {
	return errors.Wrapf(err, format, args...)
}
