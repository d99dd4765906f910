package subprocrun

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func requireUnix(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestPopenCollectsStdoutOnZeroExit(t *testing.T) {
	requireUnix(t)

	result, err := Popen([]string{"/bin/sh", "-c", "echo hello"}, nil)
	require.NoError(t, err)

	out, err := result.StdoutString()
	require.NoError(t, err)
	require.Equal(t, "hello\n", out)
	require.True(t, result.ExitStatus.Success())
}

func TestPopenCollectsStderrSeparatelyByDefault(t *testing.T) {
	requireUnix(t)

	result, err := Popen([]string{"/bin/sh", "-c", "echo out; echo err 1>&2"}, nil)
	require.NoError(t, err)

	out, err := result.StdoutString()
	require.NoError(t, err)
	require.Equal(t, "out\n", out)

	errOut, err := result.StderrString()
	require.NoError(t, err)
	require.Equal(t, "err\n", errOut)
}

func TestCheckNonZeroExitReturnsStdoutOnSuccess(t *testing.T) {
	requireUnix(t)

	out, err := CheckNonZeroExit([]string{"/bin/sh", "-c", "echo ok"}, nil)
	require.NoError(t, err)
	require.Equal(t, "ok\n", out)
}

func TestCheckNonZeroExitFailsOnNonZeroExit(t *testing.T) {
	requireUnix(t)

	_, err := CheckNonZeroExit([]string{"/bin/sh", "-c", "exit 7"}, nil)
	require.Error(t, err)

	var nz *NonZeroExitError
	require.ErrorAs(t, err, &nz)
	require.Equal(t, int32(7), nz.Result.ExitStatus.Code)
}

func TestPopenMissingExecutable(t *testing.T) {
	_, err := Popen([]string{"subprocrun-definitely-not-a-real-binary"}, nil)
	require.Error(t, err)

	var missing *MissingExecutableProgramError
	require.ErrorAs(t, err, &missing)
}

func TestPopenNilEnvInheritsParentEnvironment(t *testing.T) {
	requireUnix(t)
	t.Setenv("SUBPROCRUN_ENV_PROBE", "present")

	result, err := Popen([]string{"/bin/sh", "-c", "echo ${SUBPROCRUN_ENV_PROBE:-absent}"}, nil)
	require.NoError(t, err)

	out, err := result.StdoutString()
	require.NoError(t, err)
	require.Equal(t, "present\n", out)
}

func TestPopenNonNilEmptyEnvReplacesParentEnvironment(t *testing.T) {
	requireUnix(t)
	t.Setenv("SUBPROCRUN_ENV_PROBE", "present")

	result, err := Popen([]string{"/bin/sh", "-c", "echo ${SUBPROCRUN_ENV_PROBE:-absent}"}, map[string]string{})
	require.NoError(t, err)

	out, err := result.StdoutString()
	require.NoError(t, err)
	require.Equal(t, "absent\n", out)
}
