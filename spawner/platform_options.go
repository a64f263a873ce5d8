package spawner

import (
	"github.com/codecrafters-io/go-subprocess/teardown"
)

// ConsoleBehavior is the Windows-only startup console disposition (spec §3).
type ConsoleBehavior int

const (
	ConsoleInherit ConsoleBehavior = iota
	ConsoleNew
	ConsoleDetached
)

// WindowStyle mirrors STARTUPINFO.wShowWindow (spec §3, Windows only).
type WindowStyle int

const (
	WindowStyleNormal WindowStyle = iota
	WindowStyleHidden
	WindowStyleMinimized
	WindowStyleMaximized
)

// UserCredentials is the Windows-only named-user spawn option (spec §3).
type UserCredentials struct {
	Username string
	Domain   string
	Password string
}

// ResourceLimits is an additive PlatformOptions field (SPEC_FULL.md's
// DOMAIN STACK): Linux-only memory limiting enforced via cgroup2, adapted
// from the teacher's executable/cgroup_linux.go. The spec's PlatformOptions
// table (§3) is explicitly non-exhaustive ("each optional"), so this slots
// in alongside CloseUnknownFds/TeardownSequence rather than displacing
// anything the spec names.
type ResourceLimits struct {
	// MemoryLimitBytes, if non-zero, kills the child (and reports
	// ResourceExhausted from Monitor) if its cgroup's memory.max is
	// exceeded. Zero disables the limit. Linux only; a no-op elsewhere.
	MemoryLimitBytes int64
}

// PlatformAttributes is the "platform-native spawn attributes" object
// passed to PreSpawnHook (spec §3/§9): valid only until the spawn
// primitive returns. SysProcAttr is the *syscall.SysProcAttr (POSIX) or
// *syscall.SysProcAttr (Windows, distinct type) this spawn will use;
// mutating it here reaches the real spawn call.
type PlatformAttributes struct {
	SysProcAttr *SysProcAttr
}

// PreSpawnHook is invoked with mutable access to the platform spawn
// attributes just before the actual spawn (spec §3/§4.5 step 5). A
// returned error aborts the spawn with HookFailed and — per invariant 7 —
// guarantees no child process is created.
type PreSpawnHook func(*PlatformAttributes) error

// PlatformOptions holds every optional field from spec §3's table.
type PlatformOptions struct {
	UserID              *uint32
	GroupID             *uint32
	SupplementaryGroups []uint32
	ProcessGroupID      *int
	CreateSession       bool
	CloseUnknownFds     bool
	TeardownSequence    []teardown.Step
	PreSpawnHook        PreSpawnHook
	ResourceLimits      ResourceLimits

	// Windows-only fields.
	UserCredentials    *UserCredentials
	ConsoleBehavior    ConsoleBehavior
	WindowStyle        WindowStyle
	CreateProcessGroup bool
}
