package subprocess

import (
	"context"

	"github.com/codecrafters-io/go-subprocess/monitor"
	"github.com/codecrafters-io/go-subprocess/procerr"
	"github.com/codecrafters-io/go-subprocess/spawner"
	"github.com/codecrafters-io/go-subprocess/teardown"
)

// runOutcome is the internal join result shared by RunCollected and
// RunWithBody before each shapes it into its own public result type.
type runOutcome struct {
	capturedStdout []byte
	capturedStderr []byte
	status         TerminationStatus
}

// run is the Execution Orchestrator (spec §4.8): spawn the child, close
// the child-side fd copies, then join the monitor, the input driver, both
// output capturers, and (if present) the body under one cancellation
// domain. A body that returns an error, or ctx cancellation, tears the
// child down (if still alive) before run returns; a body that returns
// normally, or no body at all, waits for the child to exit on its own and
// for both capturers to reach EOF. Either way the child's actual
// TerminationStatus is always what gets reported, even when the overall
// result is an error.
func run(ctx context.Context, cfg Configuration, stdin *InputSource, stdout, stderr *OutputSink, body func(context.Context, *Execution) error) (runOutcome, error) {
	childStdin, err := stdin.ChildFd()
	if err != nil {
		return runOutcome{}, err
	}
	childStdout, err := stdout.ChildFd()
	if err != nil {
		closeIfErr(stdin, nil, nil)
		return runOutcome{}, err
	}
	childStderr, err := stderr.ChildFd()
	if err != nil {
		closeIfErr(stdin, stdout, nil)
		return runOutcome{}, err
	}

	handle, err := spawner.Spawn(cfg, childStdin, childStdout, childStderr)
	if err != nil {
		closeIfErr(stdin, stdout, stderr)
		return runOutcome{}, err
	}

	// The child has inherited its copies of these descriptors; the parent
	// drops its own reference to each immediately, per invariant 1 — this
	// runs unconditionally from here on, regardless of how the run ends.
	closeChildEndIfConfigured(stdin, stdout, stderr)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	exec := &Execution{handle: handle, stdout: stdout, stderr: stderr, teardownSteps: teardownSequenceFor(cfg)}

	driveDone := make(chan error, 1)
	go func() { driveDone <- stdin.Drive(runCtx) }()

	// The capturers get their own context so that cancelling the driver and
	// body on a normal finish never cuts off output still in the pipes.
	captureCtx, cancelCapture := context.WithCancel(ctx)
	defer cancelCapture()

	stdoutDone := make(chan captureResult, 1)
	go func() {
		data, err := stdout.Capture(captureCtx)
		stdoutDone <- captureResult{data, err}
	}()

	stderrDone := make(chan captureResult, 1)
	go func() {
		data, err := stderr.Capture(captureCtx)
		stderrDone <- captureResult{data, err}
	}()

	// bodyDone is only ever written to when a body was actually given to
	// run; RunCollected passes no body, and treating "no body" as "body
	// already returned" would make the select below fire on the body
	// case immediately, tearing the child down microseconds after spawn.
	// bodySelect stays nil (and so is never chosen by select) whenever
	// there is no body to wait for.
	bodyDone := make(chan error, 1)
	var bodySelect <-chan error
	if body != nil {
		bodySelect = bodyDone
		go func() { bodyDone <- body(runCtx, exec) }()
	}

	monitorDone := make(chan monitorResult, 1)
	go func() {
		status, err := monitor.Wait(context.Background(), handle)
		monitorDone <- monitorResult{status, err}
	}()

	var bodyErr error
	var cancelled bool

	select {
	case <-ctx.Done():
		cancelled = true
		cancel()
		runTeardown(context.Background(), handle, exec.teardownSteps)
		if body != nil {
			bodyErr = <-bodyDone
		}
	case bodyErr = <-bodySelect:
		cancel()
		if bodyErr != nil {
			cancelCapture()
			runTeardown(context.Background(), handle, exec.teardownSteps)
		}
	case mr := <-monitorDone:
		// Child exited on its own; let the rest converge naturally (the
		// capturers see EOF, the input driver sees a broken pipe) instead
		// of force-killing an already-dead process.
		cancel()
		if body != nil {
			bodyErr = <-bodyDone
		}
		handle.Cleanup()
		<-driveDone
		out := <-stdoutDone
		errOut := <-stderrDone
		outcome := runOutcome{capturedStdout: out.data, capturedStderr: errOut.data, status: mr.status}
		if mr.err != nil {
			return outcome, mr.err
		}
		if bodyErr != nil {
			return outcome, bodyErr
		}
		return outcome, nil
	}

	<-driveDone
	stdoutRes := <-stdoutDone
	stderrRes := <-stderrDone
	mr := <-monitorDone
	handle.Cleanup()

	outcome := runOutcome{capturedStdout: stdoutRes.data, capturedStderr: stderrRes.data, status: mr.status}

	if cancelled {
		return outcome, procerr.New(procerr.Cancelled, "execution cancelled", ctx.Err())
	}
	if bodyErr != nil {
		return outcome, bodyErr
	}
	if mr.err != nil {
		return outcome, mr.err
	}
	return outcome, nil
}

type captureResult struct {
	data []byte
	err  error
}

type monitorResult struct {
	status TerminationStatus
	err    error
}

// runTeardown drives the Teardown Sequencer (spec §4.7) against handle in
// an uncancellable scope: ctx here only bounds a pathological hang against
// a wedged process table, it is never the caller's own cancellation.
func runTeardown(ctx context.Context, handle *spawner.Handle, steps []Step) error {
	if err := teardown.Run(ctx, steps, handle, handle, handle); err != nil {
		return procerr.New(procerr.TeardownError, "tearing down child process", err)
	}
	return nil
}
