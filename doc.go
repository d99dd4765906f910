/*
Package subprocrun spawns and supervises a child process across the
lifecycle of a single run: resolve argv[0], spawn, optionally capture or
stream stdout/stderr, wait for termination, and decode the result.

The core type is ProcessHandle: construct one with New, call Launch once to
start the child and get back its stdin, then Wait any number of times from
any number of goroutines to get the same ResultModel. Signal delivers a
signal to the child (or its whole process group, if it was started with
Config.StartNewProcessGroup).

OutputRedirection controls what happens to stdout/stderr: NoRedirect
inherits the parent's, Collect buffers both streams in memory, and Stream
additionally calls back with each chunk as it arrives.

For a single call-and-forget invocation, Popen and CheckNonZeroExit avoid
the Launch/Wait dance entirely.

# OS compatibility

On POSIX hosts, Signal uses kill(2) against either the child's pid or its
whole process group. On Windows, SIGINT is translated into a Ctrl+C console
control event and anything else into a forced TerminateProcess, since
Windows has no native signal delivery between unrelated processes.
*/
package subprocrun
