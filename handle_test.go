package subprocrun

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLaunchPanicsOnSecondCall(t *testing.T) {
	requireUnix(t)

	p := New(Config{Argv: []string{"/bin/sh", "-c", "true"}})
	stdin, err := p.Launch()
	require.NoError(t, err)
	_ = stdin.Close()
	_, _ = p.Wait()

	require.Panics(t, func() {
		_, _ = p.Launch()
	})
}

func TestWaitPanicsBeforeLaunch(t *testing.T) {
	p := New(Config{Argv: []string{"/bin/sh", "-c", "true"}})
	require.Panics(t, func() {
		_, _ = p.Wait()
	})
}

func TestConcurrentWaitersObserveSameResult(t *testing.T) {
	requireUnix(t)

	p := New(Config{
		Argv:        []string{"/bin/sh", "-c", "echo concurrent"},
		Redirection: Collect{},
	})
	stdin, err := p.Launch()
	require.NoError(t, err)
	_ = stdin.Close()

	const waiters = 8
	results := make([]*ResultModel, waiters)
	var wg sync.WaitGroup
	wg.Add(waiters)
	for i := 0; i < waiters; i++ {
		go func(i int) {
			defer wg.Done()
			r, err := p.Wait()
			require.NoError(t, err)
			results[i] = r
		}(i)
	}
	wg.Wait()

	for i := 1; i < waiters; i++ {
		require.Same(t, results[0], results[i])
	}
}

func TestSignalTerminatesChild(t *testing.T) {
	requireUnix(t)

	p := New(Config{
		Argv:                 []string{"/bin/sh", "-c", "trap '' TERM; sleep 30"},
		StartNewProcessGroup: true,
	})
	stdin, err := p.Launch()
	require.NoError(t, err)
	_ = stdin.Close()

	p.Signal(SIGKILL)

	result, err := p.Wait()
	require.NoError(t, err)
	require.Equal(t, Signalled, result.ExitStatus.Kind)
}

func TestResultFutureMatchesWait(t *testing.T) {
	requireUnix(t)

	p := New(Config{Argv: []string{"/bin/sh", "-c", "true"}})
	stdin, err := p.Launch()
	require.NoError(t, err)
	_ = stdin.Close()

	var future *ResultModel
	done := make(chan struct{})
	go func() {
		future = p.ResultFuture()
		close(done)
	}()

	waited, err := p.Wait()
	require.NoError(t, err)
	<-done

	require.Same(t, waited, future)
}

func TestCollectMergeStderrJoinsBothStreamsOnStdout(t *testing.T) {
	requireUnix(t)

	p := New(Config{
		Argv:        []string{"/bin/sh", "-c", "echo out-line; echo err-line 1>&2"},
		Redirection: Collect{MergeStderr: true},
	})
	stdin, err := p.Launch()
	require.NoError(t, err)
	_ = stdin.Close()

	result, err := p.Wait()
	require.NoError(t, err)

	out, err := result.StdoutString()
	require.NoError(t, err)
	require.Contains(t, out, "out-line\n")
	require.Contains(t, out, "err-line\n")

	errOut, err := result.StderrString()
	require.NoError(t, err)
	require.Empty(t, errOut)
}

func TestLargeOutputDoesNotDeadlock(t *testing.T) {
	requireUnix(t)

	const wantBytes = 1048576

	p := New(Config{
		Argv:        []string{"/bin/sh", "-c", "yes | head -c 1048576"},
		Redirection: Collect{},
	})
	stdin, err := p.Launch()
	require.NoError(t, err)
	_ = stdin.Close()

	result, err := p.Wait()
	require.NoError(t, err)
	require.True(t, result.ExitStatus.Success())
	require.Equal(t, wantBytes, len(result.Stdout.Value))
}

func TestStreamCallbacksObserveOutput(t *testing.T) {
	requireUnix(t)

	var stdoutChunks [][]byte
	var mu sync.Mutex

	p := New(Config{
		Argv: []string{"/bin/sh", "-c", "echo streamed"},
		Redirection: Stream{
			OnStdout: func(b []byte) {
				mu.Lock()
				defer mu.Unlock()
				stdoutChunks = append(stdoutChunks, append([]byte(nil), b...))
			},
		},
	})
	stdin, err := p.Launch()
	require.NoError(t, err)
	_ = stdin.Close()

	result, err := p.Wait()
	require.NoError(t, err)

	out, err := result.StdoutString()
	require.NoError(t, err)
	require.Equal(t, "streamed\n", out)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, stdoutChunks)
}
