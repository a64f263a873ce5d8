package applog

import "sync/atomic"

var current atomic.Pointer[Logger]

// SetGlobal installs the logger every component in this module pulls its
// tracing output from via Global(). Passing nil disables tracing (the
// default).
func SetGlobal(l *Logger) {
	current.Store(l)
}

// Global returns the currently installed logger, or nil if none was set —
// every Logger method is nil-safe, so callers never need to check.
func Global() *Logger {
	return current.Load()
}
