package spawner

import (
	"context"
	"os"
	"os/exec"
	"time"

	"github.com/codecrafters-io/go-subprocess/teardown"
)

// Handle is the live process handle Spawn returns: the raw OS process plus
// a single background reaper goroutine, shared by monitor (which wants the
// raw *os.ProcessState to classify exit vs signal) and teardown (which
// only needs Signal/ForceKill/Alive/WaitUntil). Keeping exactly one
// goroutine call cmd.Wait() mirrors the teacher's Executable, which also
// reaps exactly once and fans the result out to every other caller.
type Handle struct {
	Identifier ProcessIdentifier

	cmd     *exec.Cmd
	process *os.Process

	done    chan struct{}
	state   *os.ProcessState
	waitErr error

	cgroup    *cgroupManager
	cgroupErr error
}

// newHandle starts the background reaper. Must be called exactly once,
// immediately after cmd.Start() succeeds.
func newHandle(cmd *exec.Cmd) *Handle {
	h := &Handle{
		Identifier: ProcessIdentifier{Pid: cmd.Process.Pid},
		cmd:        cmd,
		process:    cmd.Process,
		done:       make(chan struct{}),
	}
	go h.reap()
	return h
}

func (h *Handle) reap() {
	h.waitErr = h.cmd.Wait()
	h.state = h.cmd.ProcessState
	close(h.done)
}

// Done is closed once the child has been reaped.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Result returns the raw wait outcome; only valid after Done() is closed.
func (h *Handle) Result() (*os.ProcessState, error) {
	<-h.done
	return h.state, h.waitErr
}

// Alive reports whether the reaper has observed the child's exit yet.
// Like any such check, it is inherently racy against the instant the
// child actually exits — callers use it only to short-circuit an
// already-finished teardown sequence, never to gate correctness.
func (h *Handle) Alive() bool {
	select {
	case <-h.done:
		return false
	default:
		return true
	}
}

// Signal implements teardown.Killer.
func (h *Handle) Signal(sig teardown.Signal) error {
	return h.signalPlatform(sig)
}

// ForceKill implements teardown.Killer.
func (h *Handle) ForceKill() error {
	return h.process.Kill()
}

// CgroupError reports a non-fatal failure to install the configured
// memory limit (the child still runs, just unconstrained).
func (h *Handle) CgroupError() error {
	return h.cgroupErr
}

// WasOOMKilled reports whether the cgroup memory limit (if any was
// configured) fired for this child; monitor consults this to decide
// between an ordinary SignaledOrException status and ResourceExhausted.
func (h *Handle) WasOOMKilled() bool {
	if h.cgroup == nil {
		return false
	}
	return h.cgroup.wasOOMKilled()
}

// Cleanup releases any resources Spawn attached to this handle (the
// memory-limiting cgroup, on Linux). Safe to call even if no limit was
// configured. Called by the Execution Orchestrator during teardown.
func (h *Handle) Cleanup() {
	if h.cgroup != nil {
		h.cgroup.cleanup()
	}
}

// WaitUntil implements teardown.Waiter: blocks until reaped, ctx is done,
// or deadline passes, returning whether the child was reaped in time.
func (h *Handle) WaitUntil(ctx context.Context, deadline time.Time) bool {
	timer := time.NewTimer(time.Until(deadline))
	defer timer.Stop()
	select {
	case <-h.done:
		return true
	case <-ctx.Done():
		return false
	case <-timer.C:
		return false
	}
}
