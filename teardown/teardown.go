// Package teardown implements the Teardown Sequencer (spec §4.7): a
// caller-ordered sequence of signal-then-wait steps, run in an
// uncancellable scope, that ends in an unconditional kill if the child is
// still alive after the last step.
//
// This is a generalization of the teacher's Executable.Kill(), which
// hard-codes exactly one step (SIGTERM, wait up to a fixed timeout, then
// SIGKILL). Here the intermediate steps are caller-supplied; only the
// trailing kill remains fixed, per spec.
package teardown

import (
	"context"
	"time"

	"github.com/codecrafters-io/go-subprocess/internal/applog"
)

// stepKind distinguishes the two Step variants from spec §4.7.
type stepKind int

const (
	stepSend stepKind = iota
	stepKill
)

// Step is one entry in a teardown sequence: either "send this signal, then
// wait up to NextStepDelay for the child to exit" or an unconditional kill.
type Step struct {
	kind          stepKind
	signal        Signal
	nextStepDelay time.Duration
}

// Send builds a Step that delivers signal and waits up to nextStepDelay
// before moving on to the next step (or the implicit final kill).
func Send(signal Signal, nextStepDelay time.Duration) Step {
	return Step{kind: stepSend, signal: signal, nextStepDelay: nextStepDelay}
}

// Kill builds a Step that unconditionally and immediately force-kills the
// child. A Sequence always behaves as though this were appended as its
// final step, whether or not the caller included one explicitly.
func Kill() Step {
	return Step{kind: stepKill}
}

// Prober reports whether the child is still alive, without blocking.
type Prober interface {
	Alive() bool
}

// Killer is the platform-specific half of a sequence: deliver a signal, or
// force-kill outright. Implementations live in spawner (which owns the
// live *os.Process / pid) so this package stays platform-agnostic.
type Killer interface {
	Signal(Signal) error
	ForceKill() error
}

// Waiter blocks until the child has exited or the deadline/ctx elapses,
// returning true if the child exited before the deadline.
type Waiter interface {
	WaitUntil(ctx context.Context, deadline time.Time) bool
}

// Run executes steps in order against target, against an uncancellable
// scope per spec §4.7 ("the sequencer's own operation is not itself
// subject to external cancellation — a caller-requested teardown always
// runs to completion"). It returns once the child has exited, appending
// an implicit final Kill if steps doesn't end in one or the child is
// still alive after the last step.
//
// ctx is used only to bound blocking waits against a goroutine leak if the
// process table itself wedges; it does NOT let a caller abort teardown
// early. Pass context.Background() for the common case.
func Run(ctx context.Context, steps []Step, target Killer, wait Waiter, probe Prober) error {
	for _, step := range steps {
		if !probe.Alive() {
			return nil
		}

		switch step.kind {
		case stepKill:
			return forceKillAndWait(ctx, target, wait)
		case stepSend:
			applog.Global().Debugf("teardown: sending signal %v", step.signal)
			if err := target.Signal(step.signal); err != nil {
				continue
			}
			deadline := deadlineFrom(step.nextStepDelay)
			if wait.WaitUntil(ctx, deadline) {
				return nil
			}
		}
	}

	if !probe.Alive() {
		return nil
	}
	return forceKillAndWait(ctx, target, wait)
}

func forceKillAndWait(ctx context.Context, target Killer, wait Waiter) error {
	applog.Global().Debugf("teardown: force-killing")
	if err := target.ForceKill(); err != nil {
		return err
	}
	// ForceKill is expected to be followed by the child's exit; give the
	// reaper a generous, fixed budget rather than hanging forever on a
	// wedged process table.
	wait.WaitUntil(ctx, deadlineFrom(30*time.Second))
	return nil
}

func deadlineFrom(d time.Duration) time.Time {
	return time.Now().Add(d)
}
