//go:build windows

package subprocrun

import "golang.org/x/sys/windows"

// deliverSignal on Windows maps SIGINT onto the console Ctrl+C control
// event and anything else onto a forced TerminateProcess, per spec.md
// §4.6. This replaces the teacher's hand-rolled
// syscall.LoadDLL("kernel32.dll") + FindProc dance
// (FreeConsole/AttachConsole/GenerateConsoleCtrlEvent) with
// golang.org/x/sys/windows's typed wrappers over the same kernel32 exports.
func deliverSignal(pid int, ownsProcessGroup bool, sig Signal) error {
	if sig == SIGINT {
		return generateCtrlCEvent(pid)
	}
	return terminateProcess(pid)
}

func generateCtrlCEvent(pid int) error {
	if err := windows.FreeConsole(); err != nil {
		return err
	}
	if err := windows.AttachConsole(uint32(pid)); err != nil {
		return err
	}
	return windows.GenerateConsoleCtrlEvent(windows.CTRL_C_EVENT, 0)
}

func terminateProcess(pid int) error {
	handle, err := windows.OpenProcess(windows.PROCESS_TERMINATE, false, uint32(pid))
	if err != nil {
		return err
	}
	defer windows.CloseHandle(handle)

	return windows.TerminateProcess(handle, 1)
}
