package subprocrun

import (
	"os"
	"os/exec"

	"github.com/gospawn/subprocrun/internal/abspath"
)

// spawnInputs assembles everything the platform-specific spawn path needs:
// the resolved executable, the file-descriptor topology for the three
// standard streams, and the process-group policy. stdoutWrite and
// stderrWrite are each nil when that stream is not captured (both are nil
// under NoRedirect); stderrWrite is always nil when mergeStderr is set
// (stdout's write end is reused for both).
type spawnInputs struct {
	execPath             abspath.AbsolutePath
	argv                 []string
	env                  []string
	workingDirectory     *abspath.AbsolutePath
	startNewProcessGroup bool

	stdinRead               *os.File
	stdoutWrite, stderrWrite *os.File
	mergeStderr             bool
}

// spawn builds and starts the *exec.Cmd for in, applying the discipline
// described in spec.md §4.4 on top of os/exec: argv[0] rewritten to the
// resolved absolute path when a working directory was supplied (step 7),
// the process-group SysProcAttr (step 2), and the stdin/stdout/stderr
// topology (steps 5–6). The returned error is already a SpawnFailedError.
func spawn(in spawnInputs) (*exec.Cmd, error) {
	cmd := &exec.Cmd{
		Path: in.execPath.PathString(),
		Args: append([]string{}, in.argv...),
	}

	if in.workingDirectory != nil {
		cmd.Dir = in.workingDirectory.PathString()
		// Spec.md §4.4 step 7: the spawn-time chdir can change the CWD
		// before argv[0] resolution on some platforms, so argv[0] is
		// rewritten to the already-resolved absolute path.
		cmd.Args[0] = in.execPath.PathString()
	}

	if in.env != nil {
		// in.env is nil only when Config.Env itself was nil (inherit the
		// parent's environment); a non-nil but empty Config.Env must
		// still replace it with an empty environment, so the check here
		// is nil-ness, not length.
		cmd.Env = in.env
	}

	cmd.SysProcAttr = newSysProcAttr(in.startNewProcessGroup)

	cmd.Stdin = in.stdinRead

	if in.stdoutWrite != nil {
		cmd.Stdout = in.stdoutWrite
	} else {
		cmd.Stdout = os.Stdout
	}

	switch {
	case in.mergeStderr:
		cmd.Stderr = cmd.Stdout
	case in.stderrWrite != nil:
		cmd.Stderr = in.stderrWrite
	default:
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Start(); err != nil {
		return nil, &SpawnFailedError{Errno: wrapf(err, "starting %s", in.execPath.PathString()), Argv: in.argv}
	}
	return cmd, nil
}
