package subprocrun

import (
	"strings"
	"unicode/utf8"

	"github.com/gospawn/subprocrun/internal/result"
)

// ResultModel is the frozen, shareable outcome of one launch: argv,
// environment, exit status, and each captured stream as a fallible byte
// value, per spec.md §3/§4.7.
type ResultModel struct {
	Argv        []string
	Environment []string
	ExitStatus  ExitStatus
	Stdout      result.Result[[]byte]
	Stderr      result.Result[[]byte]
}

// StdoutString decodes Stdout as UTF-8, failing with IllegalUTF8Error on
// invalid sequences, or with the capture's own error if the capture failed.
func (r *ResultModel) StdoutString() (string, error) {
	return decodeUTF8("stdout", r.Stdout)
}

// StderrString decodes Stderr as UTF-8, failing with IllegalUTF8Error on
// invalid sequences, or with the capture's own error if the capture failed.
func (r *ResultModel) StderrString() (string, error) {
	return decodeUTF8("stderr", r.Stderr)
}

func decodeUTF8(stream string, r result.Result[[]byte]) (string, error) {
	if r.Err != nil {
		return "", r.Err
	}
	if !utf8.Valid(r.Value) {
		return "", &IllegalUTF8Error{Stream: stream}
	}
	return string(r.Value), nil
}

// LastStdoutLines returns the last n lines of decoded stdout, or "" if
// n <= 0 or decoding fails. Mirrors the teacher's Process.LastOutputLines,
// useful for error reporting without re-decoding the whole buffer twice.
func (r *ResultModel) LastStdoutLines(n int) string {
	if n <= 0 {
		return ""
	}
	out, err := r.StdoutString()
	if err != nil {
		return ""
	}
	lines := strings.Split(out, "\n")
	if n > len(lines) {
		n = len(lines)
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}

// Description renders a one-line summary followed by indented captured
// output, per spec.md §6: "terminated(<code>):" or "signalled(<sig>):"
// followed by the shell-escaped argv (sandbox-exec argv prefix stripped for
// tidiness), then indented output.
func (r *ResultModel) Description() string {
	var b strings.Builder

	b.WriteString(r.ExitStatus.String())
	b.WriteString(": ")
	b.WriteString(shellEscapeArgv(stripSandboxExecPrefix(r.Argv)))

	if out, err := r.StdoutString(); err == nil && out != "" {
		b.WriteString("\n")
		b.WriteString(indent(out))
	}
	if errOut, err := r.StderrString(); err == nil && errOut != "" {
		b.WriteString("\n")
		b.WriteString(indent(errOut))
	}

	return b.String()
}

// stripSandboxExecPrefix drops the first three arguments of a sandbox-exec
// invocation (the program itself, "-f", and the profile path) so
// Description() renders the command the sandbox wraps, not the sandbox
// invocation, per spec.md §6.
func stripSandboxExecPrefix(argv []string) []string {
	if len(argv) > 0 && argv[0] == "sandbox-exec" && len(argv) >= 3 {
		return argv[3:]
	}
	return argv
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "    " + l
	}
	return strings.Join(lines, "\n")
}
