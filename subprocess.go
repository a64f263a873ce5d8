// Package subprocess is a cross-platform subprocess execution core: spawn
// a child, wire its stdin/stdout/stderr to any combination of files, byte
// buffers, and streaming readers/writers, and observe its termination —
// all under one structured-concurrency scope so that a cancelled or
// failed run still tears the child down deterministically.
//
// The package is organized the way the teacher splits responsibilities
// across tester_utils' executable package, but generalized: iofd owns raw
// descriptor lifetime, iosource/iosink own the polymorphic stdin/stdout/
// stderr variants, spawner resolves and starts the child, monitor reaps
// it, teardown drives a caller-defined kill sequence, and this package's
// RunCollected/RunWithBody/RunWriterBody orchestrate all of them under one
// cancellation domain.
package subprocess

import (
	"github.com/codecrafters-io/go-subprocess/internal/applog"
	"github.com/codecrafters-io/go-subprocess/iosink"
	"github.com/codecrafters-io/go-subprocess/iosource"
	"github.com/codecrafters-io/go-subprocess/monitor"
	"github.com/codecrafters-io/go-subprocess/procerr"
	"github.com/codecrafters-io/go-subprocess/spawner"
	"github.com/codecrafters-io/go-subprocess/teardown"
)

// Re-exported spec-named types, so callers never need to import the
// subpackages that happen to host them.
type (
	Configuration      = spawner.Configuration
	Executable         = spawner.Executable
	Arguments          = spawner.Arguments
	Environment        = spawner.Environment
	PlatformOptions    = spawner.PlatformOptions
	PlatformAttributes = spawner.PlatformAttributes
	PreSpawnHook       = spawner.PreSpawnHook
	ResourceLimits     = spawner.ResourceLimits
	UserCredentials    = spawner.UserCredentials
	ConsoleBehavior    = spawner.ConsoleBehavior
	WindowStyle        = spawner.WindowStyle
	ProcessIdentifier  = spawner.ProcessIdentifier

	TerminationStatus = monitor.TerminationStatus

	Step   = teardown.Step
	Signal = teardown.Signal

	InputSource = iosource.Source
	OutputSink  = iosink.Sink

	StandardInputWriter = iosource.Writer

	Error = procerr.Error
	Kind  = procerr.Kind
)

var (
	ByName       = spawner.ByName
	ByPath       = spawner.ByPath
	NewArguments = spawner.NewArguments
	InheritWith  = spawner.InheritWith
	Inherit      = spawner.Inherit
	Replace      = spawner.Replace

	Exited              = monitor.Exited
	SignaledOrException = monitor.SignaledOrException

	SendSignal = teardown.Send
	KillStep   = teardown.Kill

	NoInput           = iosource.None
	InputFromFd       = iosource.FromFd
	InputFromBytes    = iosource.FromBytes
	InputFromReader   = iosource.FromReader
	NewWriterInput    = iosource.NewWriterSource

	DiscardOutput = iosink.Discard
	OutputToFd    = iosink.ToFd
	CollectBytes  = iosink.CollectBytes
	CollectString = iosink.CollectString
	StreamOutput  = iosink.Stream

	IsKind = procerr.Of
	KindOf = procerr.KindOf
)

const (
	ExecutableNotFound    = procerr.ExecutableNotFound
	SpawnFailed           = procerr.SpawnFailed
	PermissionDenied      = procerr.PermissionDenied
	IoError               = procerr.IoError
	ResourceExhausted     = procerr.ResourceExhausted
	InvalidUtf8           = procerr.InvalidUtf8
	WriterClosed          = procerr.WriterClosed
	StreamAlreadyConsumed = procerr.StreamAlreadyConsumed
	Cancelled             = procerr.Cancelled
	HookFailed            = procerr.HookFailed
	TeardownError         = procerr.TeardownError

	SIGHUP  = teardown.SIGHUP
	SIGINT  = teardown.SIGINT
	SIGQUIT = teardown.SIGQUIT
	SIGTERM = teardown.SIGTERM
	SIGKILL = teardown.SIGKILL
)

// EnableDebugLogging turns on the colorized stderr tracing the spawner and
// teardown sequencer emit (spawn and teardown signal events), matching the
// teacher's own IsDebug-gated logger. Disabled by default; call
// DisableDebugLogging to turn it back off.
func EnableDebugLogging(prefix string) {
	applog.SetGlobal(applog.New(true, prefix))
}

// DisableDebugLogging turns off tracing installed by EnableDebugLogging.
func DisableDebugLogging() {
	applog.SetGlobal(nil)
}
