//go:build windows

package monitor

import "os"

// classify on Windows: os/exec reports abnormal termination (including
// unhandled-exception exit) purely through ExitCode(), with no separate
// "signaled" bit, so every completion is an ordinary Exited — matching
// spec §9's note that SignaledOrException on Windows is reserved for a
// narrower future case this library does not currently detect.
func classify(state *os.ProcessState) TerminationStatus {
	return Exited(state.ExitCode())
}
