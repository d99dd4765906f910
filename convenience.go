package subprocrun

// Popen is the one-shot convenience wrapper from spec.md §4.8: launch argv
// with env, close stdin immediately since there is nothing for a one-shot
// caller to write, collect both streams, and wait.
func Popen(argv []string, env map[string]string) (*ResultModel, error) {
	p := New(Config{
		Argv:        argv,
		Env:         env,
		Redirection: Collect{},
	})

	stdin, err := p.Launch()
	if err != nil {
		return nil, err
	}
	_ = stdin.Close()

	return p.Wait()
}

// CheckNonZeroExit runs argv with env and requires a zero, unsignalled
// exit, per spec.md §4.8. On success it returns stdout decoded as UTF-8.
// On a nonzero or signalled exit it fails with NonZeroExitError, carrying
// the full ResultModel so the caller can inspect stderr and the exact exit
// status; invalid UTF-8 on a successful exit fails with IllegalUTF8Error.
func CheckNonZeroExit(argv []string, env map[string]string) (string, error) {
	result, err := Popen(argv, env)
	if err != nil {
		return "", err
	}
	if !result.ExitStatus.Success() {
		return "", &NonZeroExitError{Result: result}
	}
	return result.StdoutString()
}
