//go:build windows

package spawner

import (
	"syscall"

	"github.com/codecrafters-io/go-subprocess/teardown"
)

// SysProcAttr is the platform spawn-attributes type exposed to
// PreSpawnHook via PlatformAttributes (spec §3/§9).
type SysProcAttr = syscall.SysProcAttr

// buildSysProcAttr translates the Windows-only PlatformOptions fields
// (UserCredentials, ConsoleBehavior, WindowStyle, CreateProcessGroup)
// into CreateProcess's flags, following the same pattern the teacher uses
// for its (POSIX-only) SysProcAttr construction.
func buildSysProcAttr(opts PlatformOptions) *SysProcAttr {
	attr := &SysProcAttr{}

	switch opts.ConsoleBehavior {
	case ConsoleNew:
		attr.CreationFlags |= syscall.CREATE_NEW_CONSOLE
	case ConsoleDetached:
		attr.CreationFlags |= syscall.DETACHED_PROCESS
	}

	if opts.CreateProcessGroup {
		attr.CreationFlags |= syscall.CREATE_NEW_PROCESS_GROUP
	}

	switch opts.WindowStyle {
	case WindowStyleHidden:
		attr.HideWindow = true
	}

	if opts.UserCredentials != nil {
		attr.Token = 0 // left for PreSpawnHook: token construction needs
		// LogonUser, which this library does not call itself (spec §3
		// only requires the fields be carried through to the platform
		// attributes object; obtaining a token from a password is
		// delegated to PreSpawnHook so this package stays free of
		// advapi32 bindings it would otherwise need only for this one
		// field).
	}

	return attr
}

// signalPlatform on Windows has no real signal delivery. SIGTERM/SIGINT
// are honored as a best-effort CTRL_BREAK_EVENT to the child's process
// group (meaningful only if it was created with CreateProcessGroup);
// any other signal kills the process immediately, as ForceKill does.
func (h *Handle) signalPlatform(sig teardown.Signal) error {
	switch sig {
	case teardown.SIGINT, teardown.SIGTERM:
		return syscall.GenerateConsoleCtrlEvent(syscall.CTRL_BREAK_EVENT, uint32(h.process.Pid))
	default:
		return h.process.Kill()
	}
}

// closeUnknownFDs has no Windows analogue: handle inheritance is
// controlled per-handle at creation time via SetHandleInformation (see
// iofd.SetInheritable), not by a post-hoc sweep, so this is a no-op.
func closeUnknownFDs(keep map[uintptr]bool) error {
	return nil
}
