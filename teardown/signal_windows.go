//go:build windows

package teardown

import "syscall"

// Windows' syscall package defines only this subset of portable signal
// constants; there is no SIGUSR1/SIGUSR2 equivalent. A Send(SIGTERM, ...)
// step on Windows is honored as a best-effort console CTRL_BREAK_EVENT by
// spawner's Killer; anything stronger degrades straight to ForceKill.
const (
	SIGHUP  = syscall.SIGHUP
	SIGINT  = syscall.SIGINT
	SIGQUIT = syscall.SIGQUIT
	SIGTERM = syscall.SIGTERM
	SIGKILL = syscall.SIGKILL
)
