//go:build !windows

package subprocrun

import "golang.org/x/sys/unix"

// deliverSignal sends sig to the target: -pid when the process owns its own
// group (so the whole group is reached), else pid directly. Delivery
// failure is silently ignored from the caller's perspective, per spec.md
// §4.6. It is, however, logged to the diagnostic sink.
func deliverSignal(pid int, ownsProcessGroup bool, sig Signal) error {
	target := pid
	if ownsProcessGroup {
		target = -pid
	}
	return unix.Kill(target, unix.Signal(sig))
}
