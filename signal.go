package subprocrun

// Signal is a cross-platform signal number, per spec.md §4.6/§6: delivered
// to -pid when the process runs in its own group, else to pid. On Windows,
// SIGINT maps onto the host interrupt primitive and anything else onto a
// forced terminate.
type Signal int32

// The subset of POSIX signal numbers ProcessHandle.Signal is documented to
// accept; values match Linux/BSD numbering, used verbatim on POSIX and
// pattern-matched on Windows.
const (
	SIGHUP  Signal = 1
	SIGINT  Signal = 2
	SIGQUIT Signal = 3
	SIGKILL Signal = 9
	SIGTERM Signal = 15
)
