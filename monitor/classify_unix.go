//go:build !windows

package monitor

import (
	"os"
	"syscall"
)

// classify disambiguates ordinary exit from signal death the same way
// the teacher's Executable.Wait() does: ProcessState.ExitCode() is -1
// when the child died from a signal, so spot that case and extract the
// signal number from the raw wait status instead.
func classify(state *os.ProcessState) TerminationStatus {
	exitCode := state.ExitCode()
	if exitCode != -1 {
		return Exited(exitCode)
	}

	if status, ok := state.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return SignaledOrException(int(status.Signal()))
	}

	return Exited(exitCode)
}
