package subprocrun

import (
	"io"
	"os/exec"
	"sync"
	"sync/atomic"

	"github.com/gospawn/subprocrun/internal/abspath"
	"github.com/gospawn/subprocrun/internal/result"
	"github.com/nixpare/broadcaster"
)

// ProcessHandle is the public façade over the whole lifecycle: construct,
// Launch, Wait, Signal, and the Pid/Launched observers, per spec.md §4.6.
// It enforces single-launch and is safe for concurrent Wait/Signal calls
// once launched.
type ProcessHandle struct {
	cfg Config

	resolver *PathResolver
	sink     Sink

	launchMu sync.Mutex
	launched bool

	pid int32 // atomic; 0 until a successful spawn

	lifecycle *lifecycleState

	cmd              *exec.Cmd
	stdinPipe        *pipePair
	ownsProcessGroup bool

	reapOnce sync.Once
	reapErr  error

	resultFeed *broadcaster.Broadcaster[*ResultModel]
	stdoutFeed *broadcaster.Broadcaster[[]byte]
	stderrFeed *broadcaster.Broadcaster[[]byte]
}

// New constructs a ProcessHandle. It panics if cfg.Argv is empty or
// cfg.Argv[0] is empty. That is a contract violation, not a recoverable
// failure, per spec.md §4.6.
func New(cfg Config) *ProcessHandle {
	if len(cfg.Argv) == 0 || cfg.Argv[0] == "" {
		panic("subprocrun: Config.Argv must be non-empty with a non-empty Argv[0]")
	}
	return &ProcessHandle{
		cfg:        cfg,
		resolver:   defaultPathResolver,
		sink:       DefaultSink,
		lifecycle:  newLifecycleState(),
		resultFeed: broadcaster.NewBroadcaster[*ResultModel](),
		stdoutFeed: broadcaster.NewBroadcaster[[]byte](),
		stderrFeed: broadcaster.NewBroadcaster[[]byte](),
	}
}

// Pid returns the native process id, or 0 before a successful spawn.
func (p *ProcessHandle) Pid() int32 { return atomic.LoadInt32(&p.pid) }

// Launched reports whether Launch has been called successfully-or-not; it
// latches true on the first call regardless of Launch's outcome, per
// spec.md §3's "once true, never returns to false".
func (p *ProcessHandle) Launched() bool {
	p.launchMu.Lock()
	defer p.launchMu.Unlock()
	return p.launched
}

func (p *ProcessHandle) flipLaunchLatch() bool {
	p.launchMu.Lock()
	defer p.launchMu.Unlock()
	if p.launched {
		return false
	}
	p.launched = true
	return true
}

// ResultFuture blocks until the ResultModel has been broadcast and returns
// it, exactly like Wait but sourced from the ambient resultFeed broadcaster
// instead of the lifecycle state machine. It exists so code that already
// holds a reference to a ProcessHandle across goroutine boundaries has a
// second, independent way to observe completion without touching the
// lifecycle mutex. Ordinary callers should use Wait.
func (p *ProcessHandle) ResultFuture() *ResultModel {
	return p.resultFeed.Get()
}

// Launch resolves argv[0], spawns the child, and starts capture. It
// returns a writable stream for the child's stdin; closing it closes
// stdin. Launch may be called at most once per ProcessHandle. A second
// call is a contract error (spec.md §4.6), reported as a panic rather than
// an error return.
func (p *ProcessHandle) Launch() (io.WriteCloser, error) {
	if !p.flipLaunchLatch() {
		panic("subprocrun: Launch called more than once")
	}

	if p.cfg.Verbose {
		p.sink.Info().Str("argv", shellEscapeArgv(p.cfg.Argv)).Msg("launching")
	}

	execPath, ok := p.resolver.Resolve(p.cfg.Argv[0], p.cfg.WorkingDirectory)
	if !ok {
		return nil, &MissingExecutableProgramError{Program: p.cfg.Argv[0]}
	}

	redirect := p.cfg.redirection()

	stdinPipe, err := openPipe()
	if err != nil {
		return nil, err
	}

	stdoutPipe, stderrPipe, err := p.openCapturePipes(redirect, stdinPipe)
	if err != nil {
		return nil, err
	}

	in := p.buildSpawnInputs(execPath, redirect, stdinPipe, stdoutPipe, stderrPipe)

	cmd, err := spawn(in)
	if err != nil {
		var cleanup multiErrorBuilder
		cleanup.append(stdinPipe.closeBoth())
		if stdoutPipe != nil {
			cleanup.append(stdoutPipe.closeBoth())
		}
		if stderrPipe != nil {
			cleanup.append(stderrPipe.closeBoth())
		}
		if cerr := cleanup.build(); cerr != nil {
			p.sink.Debug().Err(cerr).Msg("closing pipes after failed spawn")
		}
		return nil, err
	}

	p.cmd = cmd
	p.stdinPipe = stdinPipe
	p.ownsProcessGroup = p.cfg.StartNewProcessGroup
	atomic.StoreInt32(&p.pid, int32(cmd.Process.Pid))

	// Step 10 / §4.2: the parent closes the remote end of stdin, and the
	// local (unused) end of each output pipe, now that the child has its
	// own duplicated copy from Start.
	if err := stdinPipe.closeRead(); err != nil {
		p.sink.Debug().Err(err).Msg("closing parent's stdin read end")
	}
	if stdoutPipe != nil {
		if err := stdoutPipe.closeWrite(); err != nil {
			p.sink.Debug().Err(err).Msg("closing parent's stdout write end")
		}
	}
	if stderrPipe != nil {
		if err := stderrPipe.closeWrite(); err != nil {
			p.sink.Debug().Err(err).Msg("closing parent's stderr write end")
		}
	}

	p.beginCapture(redirect, stdoutPipe, stderrPipe)

	return stdinPipe.writeEnd, nil
}

func (p *ProcessHandle) openCapturePipes(redirect OutputRedirection, stdinPipe *pipePair) (stdoutPipe, stderrPipe *pipePair, err error) {
	if !redirect.captures() {
		return nil, nil, nil
	}

	stdoutPipe, err = openPipe()
	if err != nil {
		if cerr := stdinPipe.closeBoth(); cerr != nil {
			p.sink.Debug().Err(cerr).Msg("closing stdin pipe after failed stdout pipe allocation")
		}
		return nil, nil, err
	}

	if redirect.mergeStderr() {
		return stdoutPipe, nil, nil
	}

	stderrPipe, err = openPipe()
	if err != nil {
		var cleanup multiErrorBuilder
		cleanup.append(stdinPipe.closeBoth())
		cleanup.append(stdoutPipe.closeBoth())
		if cerr := cleanup.build(); cerr != nil {
			p.sink.Debug().Err(cerr).Msg("closing pipes after failed stderr pipe allocation")
		}
		return nil, nil, err
	}

	return stdoutPipe, stderrPipe, nil
}

func (p *ProcessHandle) buildSpawnInputs(execPath abspath.AbsolutePath, redirect OutputRedirection, stdinPipe, stdoutPipe, stderrPipe *pipePair) spawnInputs {
	in := spawnInputs{
		execPath:             execPath,
		argv:                 append([]string{}, p.cfg.Argv...),
		env:                  p.cfg.envSlice(),
		workingDirectory:     p.cfg.WorkingDirectory,
		startNewProcessGroup: p.cfg.StartNewProcessGroup,
		stdinRead:            stdinPipe.readEnd,
		mergeStderr:          redirect.captures() && redirect.mergeStderr(),
	}
	if stdoutPipe != nil {
		in.stdoutWrite = stdoutPipe.writeEnd
	}
	if stderrPipe != nil {
		in.stderrWrite = stderrPipe.writeEnd
	}
	return in
}

// beginCapture starts one reader goroutine per allocated output pipe,
// after first publishing Capturing, per spec.md §4.5's publication-ordering
// requirement.
func (p *ProcessHandle) beginCapture(redirect OutputRedirection, stdoutPipe, stderrPipe *pipePair) {
	if !redirect.captures() {
		p.lifecycle.skipCapturing()
		return
	}

	count := 0
	if stdoutPipe != nil {
		count++
	}
	if stderrPipe != nil {
		count++
	}

	var join sync.WaitGroup
	join.Add(count)

	rv := newReaderRendezvous(count, p.lifecycle.publishResultPending)

	p.lifecycle.beginCapturing(&join)

	var onStdout, onStderr func([]byte)
	if stream, ok := redirect.(Stream); ok {
		onStdout, onStderr = stream.OnStdout, stream.OnStderr
	}

	if stdoutPipe != nil {
		go func() {
			defer join.Done()
			defer p.stdoutFeed.Close()
			r := drain(stdoutPipe.readEnd, fanOutChunk(onStdout, p.stdoutFeed))
			rv.arriveStdout(r)
		}()
	}
	if stderrPipe != nil {
		go func() {
			defer join.Done()
			defer p.stderrFeed.Close()
			r := drain(stderrPipe.readEnd, fanOutChunk(onStderr, p.stderrFeed))
			rv.arriveStderr(r)
		}()
	}
}

// fanOutChunk composes the caller's Stream callback (if any) with
// publishing a copy of the chunk to the ambient per-stream broadcaster.
// The broadcasters are the unexported stdoutFeed/stderrFeed fields and
// ProcessHandle has no method that exposes them, so only code inside this
// package can subscribe to them.
func fanOutChunk(onChunk func([]byte), feed *broadcaster.Broadcaster[[]byte]) func([]byte) {
	return func(b []byte) {
		if onChunk != nil {
			onChunk(b)
		}
		cp := append([]byte(nil), b...)
		feed.Send(cp)
	}
}

// Wait blocks until the child terminates and returns its ResultModel. It
// is idempotent: all callers, concurrent or sequential, observe the same
// ResultModel once it exists, per spec.md §4.6/§8 invariant 2.
func (p *ProcessHandle) Wait() (*ResultModel, error) {
	if !p.Launched() {
		panic("subprocrun: Wait called before Launch")
	}

	for {
		snap := p.lifecycle.snapshot()
		switch snap.phase {
		case phaseIdle:
			panic("subprocrun: Wait observed Idle after Launch")
		case phaseCapturing:
			snap.join.Wait()
			continue
		case phaseResultPending:
			model, err := p.reap(snap.stdout, snap.stderr)
			return model, err
		case phaseComplete:
			return snap.complete, nil
		}
	}
}

func (p *ProcessHandle) reap(stdout, stderr result.Result[[]byte]) (*ResultModel, error) {
	p.reapOnce.Do(func() {
		waitErr := p.cmd.Wait()

		if p.stdinPipe != nil {
			// Invariant: no fd created by Launch survives Wait's return.
			_ = p.stdinPipe.closeWrite()
		}

		exitStatus, syscallErr := classifyWaitResult(p.cmd, waitErr)
		if syscallErr != nil {
			p.reapErr = syscallErr
		}

		model := &ResultModel{
			Argv:        append([]string{}, p.cfg.Argv...),
			Environment: p.cfg.envSlice(),
			ExitStatus:  exitStatus,
			Stdout:      stdout,
			Stderr:      stderr,
		}

		p.lifecycle.publishComplete(model)
		p.resultFeed.Send(model)
	})

	return p.lifecycle.snapshot().complete, p.reapErr
}

// Signal delivers sig to the child: to -Pid when the process owns its own
// group, else to Pid directly. It never returns an error to the caller;
// delivery failure is logged to the diagnostic sink and otherwise ignored,
// matching spec.md §4.6.
func (p *ProcessHandle) Signal(sig Signal) {
	if !p.Launched() {
		panic("subprocrun: Signal called before Launch")
	}
	pid := int(p.Pid())
	if pid == 0 {
		return
	}
	if err := deliverSignal(pid, p.ownsProcessGroup, sig); err != nil {
		p.sink.Debug().Err(err).Int("pid", pid).Msg("signal delivery failed")
	}
}
