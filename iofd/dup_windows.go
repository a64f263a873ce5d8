//go:build windows

package iofd

import (
	"os"
	"syscall"
)

func dupFile(f *os.File) (*os.File, error) {
	proc, err := syscall.GetCurrentProcess()
	if err != nil {
		return nil, err
	}

	var dup syscall.Handle
	src := syscall.Handle(f.Fd())
	if err := syscall.DuplicateHandle(proc, src, proc, &dup, 0, true, syscall.DUPLICATE_SAME_ACCESS); err != nil {
		return nil, err
	}
	return os.NewFile(uintptr(dup), f.Name()), nil
}

// setCloseOnExec toggles HANDLE_FLAG_INHERIT, the Windows analogue of
// FD_CLOEXEC: Windows handles are inheritable by default only when marked
// so, the inverse of POSIX's FD_CLOEXEC-by-default-off model.
func setCloseOnExec(f *os.File, enabled bool) error {
	flag := uint32(0)
	if !enabled {
		flag = syscall.HANDLE_FLAG_INHERIT
	}
	return syscall.SetHandleInformation(syscall.Handle(f.Fd()), syscall.HANDLE_FLAG_INHERIT, flag)
}
