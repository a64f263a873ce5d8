//go:build !windows

package spawner

import (
	"os"
	"strconv"
	"syscall"

	"github.com/codecrafters-io/go-subprocess/teardown"
)

// SysProcAttr is the platform spawn-attributes type exposed to
// PreSpawnHook via PlatformAttributes (spec §3/§9).
type SysProcAttr = syscall.SysProcAttr

// buildSysProcAttr translates PlatformOptions' uid/gid/groups/pgid/session
// fields into the POSIX os/exec knobs, following the same
// Credential/Setpgid pattern the teacher's Executable.Start() uses.
func buildSysProcAttr(opts PlatformOptions) *SysProcAttr {
	attr := &SysProcAttr{}

	if opts.UserID != nil || opts.GroupID != nil || len(opts.SupplementaryGroups) > 0 {
		cred := &syscall.Credential{}
		if opts.UserID != nil {
			cred.Uid = *opts.UserID
		}
		if opts.GroupID != nil {
			cred.Gid = *opts.GroupID
		}
		cred.Groups = opts.SupplementaryGroups
		attr.Credential = cred
	}

	if opts.CreateSession {
		attr.Setsid = true
	}

	if opts.ProcessGroupID != nil {
		attr.Setpgid = true
		attr.Pgid = *opts.ProcessGroupID
	} else if !opts.CreateSession {
		// Placed in its own process group by default so that a
		// teardown signal targeting the group (spec §4.7, "signal the
		// whole process group to reach grandchildren") never also hits
		// this library's own process.
		attr.Setpgid = true
		attr.Pgid = 0
		// With CreateSession the child is already the leader of a new
		// group, and setpgid on a session leader fails, so it is skipped.
	}

	return attr
}

// signalPlatform delivers a real POSIX signal to the child. When the
// child was placed in its own process group, the signal is sent to the
// whole group (negative pid), matching the teacher's Executable.Kill(),
// so that a shell-script child's own children are reached too.
func (h *Handle) signalPlatform(sig teardown.Signal) error {
	pid := h.process.Pid
	if err := syscall.Kill(-pid, sig); err != nil {
		return syscall.Kill(pid, sig)
	}
	return nil
}

// closeUnknownFDs marks every open file descriptor other than keep as
// close-on-exec, so the upcoming exec() atomically drops anything not
// explicitly wired to the child (spec §3 CloseUnknownFds). This is done
// by marking CLOEXEC rather than literally closing in the child: Go's
// runtime forks and execs through a restricted async-signal-safe path
// that does not allow arbitrary Go code between fork and exec, so CLOEXEC
// is the only way to reach this guarantee without reimplementing
// os/exec's internals. Every fd Go itself opens is already CLOEXEC by
// default; this only matters for fds inherited non-CLOEXEC from whatever
// launched this process.
func closeUnknownFDs(keep map[uintptr]bool) error {
	entries, err := os.ReadDir("/dev/fd")
	if err != nil {
		// Not fatal: best-effort on platforms/sandboxes without /dev/fd.
		return nil
	}

	for _, entry := range entries {
		fd, err := strconv.Atoi(entry.Name())
		if err != nil || fd < 0 {
			continue
		}
		ufd := uintptr(fd)
		if keep[ufd] {
			continue
		}
		// Ignore the fd /dev/fd itself opened to list this directory.
		if _, err := syscall.Syscall(syscall.SYS_FCNTL, ufd, syscall.F_SETFD, syscall.FD_CLOEXEC); err != 0 {
			continue
		}
	}
	return nil
}
