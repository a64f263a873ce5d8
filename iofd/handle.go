// Package iofd implements the two leaf components of the execution core's
// I/O plumbing: Handle (FdHandle in the spec) and Pipe. Everything above
// this package — InputSource, OutputSink, the Spawner — is built out of
// these two primitives, the same way the teacher's stdio_handler package
// is built directly out of *os.File and github.com/creack/pty.
package iofd

import (
	"os"
	"sync"

	"github.com/codecrafters-io/go-subprocess/procerr"
)

// Handle owns exactly one OS file descriptor, with an idempotent Close:
// per spec §4.1, a second Close is a silent no-op rather than an error,
// and Close is reported once even when called from multiple goroutines
// racing to tear down the same spawn.
type Handle struct {
	file     *os.File
	once     sync.Once
	closeErr error
}

// NewHandle wraps an already-open *os.File.
func NewHandle(f *os.File) *Handle {
	return &Handle{file: f}
}

// File returns the underlying *os.File. It is nil if the Handle has never
// held one (e.g. a None InputSource's parent side).
func (h *Handle) File() *os.File {
	if h == nil {
		return nil
	}
	return h.file
}

// Fd returns the raw descriptor, or ^uintptr(0) if the handle is nil/closed.
func (h *Handle) Fd() uintptr {
	if h == nil || h.file == nil {
		return ^uintptr(0)
	}
	return h.file.Fd()
}

// Close closes the handle. The first call's result is cached and returned
// (in redacted form — a plain nil) to all subsequent callers; only the
// first caller observes a real close error, matching the "close errors are
// reported once" rule in spec §4.1.
func (h *Handle) Close() error {
	if h == nil || h.file == nil {
		return nil
	}
	var err error
	h.once.Do(func() {
		h.closeErr = h.file.Close()
		if h.closeErr != nil {
			err = procerr.New(procerr.IoError, "close", h.closeErr)
		}
	})
	return err
}

// CloseReportingError behaves like Close but returns the first Close's
// error to every caller, for the one caller (the orchestrator's cleanup
// path) that needs to know whether the close actually failed.
func (h *Handle) CloseReportingError() error {
	if h == nil || h.file == nil {
		return nil
	}
	h.once.Do(func() {
		h.closeErr = h.file.Close()
	})
	if h.closeErr != nil {
		return procerr.New(procerr.IoError, "close", h.closeErr)
	}
	return nil
}

// Dup duplicates the underlying descriptor into a new Handle that owns an
// independent OS-level reference (so closing one does not close the
// other).
func (h *Handle) Dup() (*Handle, error) {
	if h == nil || h.file == nil {
		return nil, procerr.New(procerr.IoError, "dup on nil handle", nil)
	}
	dupped, err := dupFile(h.file)
	if err != nil {
		return nil, procerr.New(procerr.IoError, "dup", err)
	}
	return NewHandle(dupped), nil
}

// SetCloseOnExec marks the descriptor close-on-exec (the default for every
// descriptor Go itself opens) or clears the flag so a child process that
// inherits it via raw fd number (not via os/exec's Stdin/Stdout/Stderr)
// keeps it open across exec.
func (h *Handle) SetCloseOnExec(closeOnExec bool) error {
	if h == nil || h.file == nil {
		return nil
	}
	if err := setCloseOnExec(h.file, closeOnExec); err != nil {
		return procerr.New(procerr.IoError, "set close-on-exec", err)
	}
	return nil
}

// SetInheritable is the inverse framing of SetCloseOnExec, matching the
// spec's naming (§4.1): an inheritable descriptor is one with
// close-on-exec cleared.
func (h *Handle) SetInheritable(inheritable bool) error {
	return h.SetCloseOnExec(!inheritable)
}
