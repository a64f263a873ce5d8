//go:build !windows

package iofd

import (
	"os"
	"syscall"
)

func dupFile(f *os.File) (*os.File, error) {
	newFd, err := syscall.Dup(int(f.Fd()))
	if err != nil {
		return nil, err
	}
	syscall.CloseOnExec(newFd)
	return os.NewFile(uintptr(newFd), f.Name()), nil
}

// setCloseOnExec sets or clears FD_CLOEXEC on fd. Clearing it is needed
// only for a Handle that is handed directly to a child as its child-side
// fd without going through os/exec's own Stdin/Stdout/Stderr/ExtraFiles
// plumbing (which already clears FD_CLOEXEC for those three slots right
// before exec). Spawning in this library always goes through os/exec, so
// nothing in the library itself calls this; it is reached only through
// Handle.SetCloseOnExec/SetInheritable.
func setCloseOnExec(f *os.File, enabled bool) error {
	flag := 0
	if enabled {
		flag = syscall.FD_CLOEXEC
	}
	_, _, errno := syscall.Syscall(syscall.SYS_FCNTL, f.Fd(), syscall.F_SETFD, uintptr(flag))
	if errno != 0 {
		return errno
	}
	return nil
}
