package subprocrun

import (
	"testing"

	"github.com/gospawn/subprocrun/internal/result"
	"github.com/stretchr/testify/require"
)

func TestStdoutStringDecodesValidUTF8(t *testing.T) {
	r := &ResultModel{Stdout: result.Ok([]byte("hello"))}
	out, err := r.StdoutString()
	require.NoError(t, err)
	require.Equal(t, "hello", out)
}

func TestStdoutStringRejectsInvalidUTF8(t *testing.T) {
	r := &ResultModel{Stdout: result.Ok([]byte{0xff, 0xfe})}
	_, err := r.StdoutString()
	require.Error(t, err)

	var illegal *IllegalUTF8Error
	require.ErrorAs(t, err, &illegal)
	require.Equal(t, "stdout", illegal.Stream)
}

func TestStdoutStringPropagatesReadError(t *testing.T) {
	readErr := &ReadSyscallError{}
	r := &ResultModel{Stdout: result.Failed[[]byte](nil, readErr)}
	_, err := r.StdoutString()
	require.Equal(t, readErr, err)
}

func TestLastStdoutLinesReturnsTail(t *testing.T) {
	r := &ResultModel{Stdout: result.Ok([]byte("a\nb\nc\nd"))}
	require.Equal(t, "c\nd", r.LastStdoutLines(2))
	require.Equal(t, "", r.LastStdoutLines(0))
}

func TestDescriptionRendersStatusAndArgv(t *testing.T) {
	r := &ResultModel{
		Argv:       []string{"echo", "hi there"},
		ExitStatus: exitedStatus(0),
		Stdout:     result.Ok([]byte("hi there\n")),
		Stderr:     result.Ok[[]byte](nil),
	}
	desc := r.Description()
	require.Contains(t, desc, "terminated(0): echo 'hi there'")
	require.Contains(t, desc, "    hi there")
}

func TestDescriptionStripsSandboxExecPrefix(t *testing.T) {
	argv := stripSandboxExecPrefix([]string{"sandbox-exec", "-f", "profile.sb", "echo", "hi"})
	require.Equal(t, []string{"echo", "hi"}, argv)
}

func TestExitStatusSuccess(t *testing.T) {
	require.True(t, exitedStatus(0).Success())
	require.False(t, exitedStatus(1).Success())
	require.False(t, signalledStatus(9).Success())
}
