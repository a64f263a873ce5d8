package teardown

import "syscall"

// Signal is the platform-neutral signal identifier used in Step values.
// On POSIX this is exactly syscall.Signal (so SIGTERM/SIGINT/SIGKILL pass
// through unchanged, matching the teacher's direct use of syscall.Signal
// in Executable.Kill()); on Windows only the subset defined in
// signal_windows.go is meaningful, since Windows has no real signal
// delivery beyond TerminateProcess/console control events.
type Signal = syscall.Signal
