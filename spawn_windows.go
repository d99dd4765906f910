//go:build windows

package subprocrun

import "syscall"

// newSysProcAttr on Windows uses CREATE_NEW_PROCESS_GROUP so the child does
// not receive Ctrl+C events sent to the parent's console group, the closest
// Windows analogue of spec.md §4.4's process-group policy.
func newSysProcAttr(startNewProcessGroup bool) *syscall.SysProcAttr {
	if !startNewProcessGroup {
		return &syscall.SysProcAttr{}
	}
	return &syscall.SysProcAttr{
		CreationFlags: windowsCreateNewProcessGroup,
	}
}

const windowsCreateNewProcessGroup = 0x00000200
