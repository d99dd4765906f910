package subprocrun

import (
	"sync"

	"github.com/gospawn/subprocrun/internal/result"
)

// phase is the LifecycleState discriminant from spec.md §3:
// Idle → Capturing → ResultPending → Complete.
type phase int

const (
	phaseIdle phase = iota
	phaseCapturing
	phaseResultPending
	phaseComplete
)

// lifecycleState is the single mutex-serialized state machine tracking
// capture progress and the terminal result for one launch. The launched
// latch lives outside this struct (in ProcessHandle) so Wait can read it
// without reentering this lock, per spec.md §9's re-architecture note.
type lifecycleState struct {
	mu    sync.Mutex
	phase phase

	// join is the Capturing-phase token: the reader goroutines' completion
	// gate. Dropped (set nil) on the transition out of Capturing.
	join *sync.WaitGroup

	stdout, stderr result.Result[[]byte]
	complete       *ResultModel
}

func newLifecycleState() *lifecycleState {
	return &lifecycleState{phase: phaseIdle}
}

// beginCapturing transitions Idle → Capturing and records the join token.
// Callers must call this, and observe it land, before starting any reader
// goroutine. This is spec.md §4.5's publication-ordering requirement,
// guarding against a child so fast its readers would try to publish
// ResultPending while the launcher is still notionally in Idle.
func (s *lifecycleState) beginCapturing(join *sync.WaitGroup) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != phaseIdle {
		panic("subprocrun: lifecycle left Idle more than once")
	}
	s.phase = phaseCapturing
	s.join = join
}

// skipCapturing transitions Idle → ResultPending directly, for
// OutputRedirection == NoRedirect, per spec.md §3's "capture phase is
// vacuous" invariant.
func (s *lifecycleState) skipCapturing() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != phaseIdle {
		panic("subprocrun: lifecycle left Idle more than once")
	}
	s.phase = phaseResultPending
	s.stdout = result.Ok[[]byte](nil)
	s.stderr = result.Ok[[]byte](nil)
}

// publishResultPending transitions Capturing → ResultPending. It must be
// called at most once, by the rendezvous's last-arriving reader.
func (s *lifecycleState) publishResultPending(stdout, stderr result.Result[[]byte]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != phaseCapturing {
		panic("subprocrun: publishResultPending observed out of order")
	}
	s.phase = phaseResultPending
	s.stdout, s.stderr = stdout, stderr
	s.join = nil
}

// snapshot is a point-in-time copy of the state, taken under the lock and
// then acted on outside it (spec.md §4.6: "under the state lock briefly,
// then releasing during waits").
type snapshot struct {
	phase          phase
	join           *sync.WaitGroup
	stdout, stderr result.Result[[]byte]
	complete       *ResultModel
}

func (s *lifecycleState) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return snapshot{
		phase:    s.phase,
		join:     s.join,
		stdout:   s.stdout,
		stderr:   s.stderr,
		complete: s.complete,
	}
}

// publishComplete transitions ResultPending → Complete. It reports whether
// this call performed the transition (true) or a concurrent caller already
// had (false), the "first caller observing the reap" invariant from
// spec.md §3.
func (s *lifecycleState) publishComplete(r *ResultModel) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == phaseComplete {
		return false
	}
	if s.phase != phaseResultPending {
		panic("subprocrun: publishComplete observed out of order")
	}
	s.phase = phaseComplete
	s.complete = r
	return true
}

// readerRendezvous is the small auxiliary structure, under its own mutex,
// that lets two independent reader goroutines (stdout, stderr) agree on
// which of them is last to finish so exactly one of them publishes
// ResultPending, per spec.md §4.5's "Dual-reader rendezvous".
type readerRendezvous struct {
	mu        sync.Mutex
	remaining int

	stdout, stderr         result.Result[[]byte]
	haveStdout, haveStderr bool

	onDone func(stdout, stderr result.Result[[]byte])
}

// newReaderRendezvous builds a rendezvous expecting exactly count arrivals
// (1 when only one of stdout/stderr is captured, 2 when both are).
func newReaderRendezvous(count int, onDone func(stdout, stderr result.Result[[]byte])) *readerRendezvous {
	return &readerRendezvous{remaining: count, onDone: onDone}
}

func (rv *readerRendezvous) arriveStdout(r result.Result[[]byte]) {
	rv.arrive(&rv.stdout, &rv.haveStdout, r)
}

func (rv *readerRendezvous) arriveStderr(r result.Result[[]byte]) {
	rv.arrive(&rv.stderr, &rv.haveStderr, r)
}

func (rv *readerRendezvous) arrive(slot *result.Result[[]byte], have *bool, r result.Result[[]byte]) {
	rv.mu.Lock()
	*slot = r
	*have = true
	rv.remaining--
	done := rv.remaining <= 0

	var stdout, stderr result.Result[[]byte]
	if done {
		stdout, stderr = rv.stdout, rv.stderr
		if !rv.haveStdout {
			// Sole arrival with no partner (e.g. stderr was never
			// captured because it was merged into stdout): per spec.md
			// §9's open question, this is the terminal publication with a
			// success-empty partner, not an error.
			stdout = result.Ok[[]byte](nil)
		}
		if !rv.haveStderr {
			stderr = result.Ok[[]byte](nil)
		}
	}
	rv.mu.Unlock()

	if done {
		rv.onDone(stdout, stderr)
	}
}
