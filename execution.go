package subprocess

import (
	"context"
	"io"
	"time"

	"github.com/codecrafters-io/go-subprocess/iosink"
	"github.com/codecrafters-io/go-subprocess/iosource"
	"github.com/codecrafters-io/go-subprocess/monitor"
	"github.com/codecrafters-io/go-subprocess/procerr"
	"github.com/codecrafters-io/go-subprocess/spawner"
	"github.com/codecrafters-io/go-subprocess/teardown"
)

// Execution is the live handle available to a run's body (spec §4.9): the
// running child plus the operations that reach across the cancellation
// domain boundary — signaling, an early teardown request, and the two
// streaming accessors.
type Execution struct {
	handle *spawner.Handle
	stdout *iosink.Sink
	stderr *iosink.Sink

	teardownSteps []Step
}

// Identifier returns the child's platform process identity.
func (e *Execution) Identifier() ProcessIdentifier {
	return e.handle.Identifier
}

// SendSignal delivers sig to the child immediately, independent of any
// configured TeardownSequence.
func (e *Execution) SendSignal(sig Signal) error {
	if err := e.handle.Signal(sig); err != nil {
		return procerr.New(procerr.IoError, "sending signal", err)
	}
	return nil
}

// Terminate runs the configured TeardownSequence (or the default
// SIGINT-then-SIGTERM sequence if none was configured) against the child
// immediately, without waiting for the body to return. Ordinarily
// teardown only runs when the body returns an error or the run is
// cancelled; this
// lets the body request it early (e.g. on a sentinel line of output).
func (e *Execution) Terminate() error {
	return runTeardown(context.Background(), e.handle, e.teardownSteps)
}

// StreamStdout returns the stdout stream sink's read end exactly once.
// Only valid when the run was configured with StreamOutput() for stdout.
func (e *Execution) StreamStdout() (io.ReadCloser, error) {
	return e.stdout.ConsumeReadEnd()
}

// StreamStderr returns the stderr stream sink's read end exactly once.
func (e *Execution) StreamStderr() (io.ReadCloser, error) {
	return e.stderr.ConsumeReadEnd()
}

// CollectedResult is the outcome of RunCollected: the child's full
// stdout/stderr (shape determined by which CollectBytes/CollectString/
// Discard/etc sink each was configured with) plus its TerminationStatus.
type CollectedResult struct {
	Stdout []byte
	Stderr []byte
	Status TerminationStatus
}

// ExecutionResult is the outcome of RunWithBody/RunWriterBody: whatever
// the body returned, plus the child's TerminationStatus.
type ExecutionResult[R any] struct {
	Body   R
	Status TerminationStatus
}

// defaultTeardownSequence is used whenever PlatformOptions.TeardownSequence
// is empty: SIGINT, then SIGTERM, then the sequencer's own implicit final
// kill, with the spec's recommended 500ms grace period between steps
// (spec §6: "SIGINT -> SIGTERM -> SIGKILL with implementation-defined
// delays (recommended 500 ms / 500 ms)").
func defaultTeardownSequence() []Step {
	return []Step{
		teardown.Send(SIGINT, 500*time.Millisecond),
		teardown.Send(SIGTERM, 500*time.Millisecond),
	}
}

// RunCollected implements spec §4.9's run_collected: spawn, fully buffer
// stdout/stderr per the configured sinks, and wait for exit — no body, no
// early access to the running child.
func RunCollected(ctx context.Context, cfg Configuration, stdin *InputSource, stdout, stderr *OutputSink) (CollectedResult, error) {
	result, err := run(ctx, cfg, stdin, stdout, stderr, nil)
	if err != nil {
		return CollectedResult{}, err
	}
	return CollectedResult{Stdout: result.capturedStdout, Stderr: result.capturedStderr, Status: result.status}, nil
}

// RunWithBody implements spec §4.9's run_with_body: spawn, and concurrently
// run body against the live Execution while stdout/stderr are driven per
// their configured sinks. The child is torn down if body returns an error
// or ctx is cancelled, even though body's own error is still what's
// returned to the caller (the spec's documented ordering: body's error
// takes precedence over a clean exit status, but teardown still happens).
func RunWithBody[R any](ctx context.Context, cfg Configuration, stdin *InputSource, stdout, stderr *OutputSink, body func(context.Context, *Execution) (R, error)) (ExecutionResult[R], error) {
	var bodyResult R
	var bodyErr error

	result, err := run(ctx, cfg, stdin, stdout, stderr, func(bodyCtx context.Context, exec *Execution) error {
		bodyResult, bodyErr = body(bodyCtx, exec)
		return bodyErr
	})
	if err != nil {
		return ExecutionResult[R]{}, err
	}
	if bodyErr != nil {
		return ExecutionResult[R]{Status: result.status}, bodyErr
	}
	return ExecutionResult[R]{Body: bodyResult, Status: result.status}, nil
}

// RunWriterBody implements spec §4.9's run_writer_body: identical to
// RunWithBody, but stdin is always the Writer variant and the body
// receives the StandardInputWriter directly instead of having to pull it
// back out of the Execution/InputSource itself.
func RunWriterBody[R any](ctx context.Context, cfg Configuration, stdout, stderr *OutputSink, body func(context.Context, *Execution, *StandardInputWriter) (R, error)) (ExecutionResult[R], error) {
	stdin, writer := iosource.NewWriterSource()
	return RunWithBody(ctx, cfg, stdin, stdout, stderr, func(bodyCtx context.Context, exec *Execution) (R, error) {
		return body(bodyCtx, exec, writer)
	})
}

// RunDetached implements spec §4.9's run_detached: spawn and return
// immediately with a handle the caller can signal/teardown/await later,
// without this call itself blocking on the child's exit. Unlike the other
// three entry points, the returned Execution's cancellation domain is the
// caller's own responsibility — call Wait to join it.
type DetachedExecution struct {
	*Execution
}

// Wait blocks until the child exits and returns its TerminationStatus.
func (d *DetachedExecution) Wait(ctx context.Context) (TerminationStatus, error) {
	return monitor.Wait(ctx, d.handle)
}

func RunDetached(cfg Configuration, stdin *InputSource, stdout, stderr *OutputSink) (*DetachedExecution, error) {
	childStdin, err := stdin.ChildFd()
	if err != nil {
		return nil, err
	}
	childStdout, err := stdout.ChildFd()
	if err != nil {
		closeIfErr(stdin, nil, nil)
		return nil, err
	}
	childStderr, err := stderr.ChildFd()
	if err != nil {
		closeIfErr(stdin, stdout, nil)
		return nil, err
	}

	handle, err := spawner.Spawn(cfg, childStdin, childStdout, childStderr)
	if err != nil {
		closeIfErr(stdin, stdout, stderr)
		return nil, err
	}

	closeChildEndIfConfigured(stdin, stdout, stderr)

	go func() {
		_ = stdin.Drive(context.Background())
	}()

	exec := &Execution{handle: handle, stdout: stdout, stderr: stderr, teardownSteps: teardownSequenceFor(cfg)}
	return &DetachedExecution{Execution: exec}, nil
}

func teardownSequenceFor(cfg Configuration) []Step {
	if len(cfg.PlatformOptions.TeardownSequence) > 0 {
		return cfg.PlatformOptions.TeardownSequence
	}
	return defaultTeardownSequence()
}

func closeIfErr(stdin *InputSource, stdout, stderr *OutputSink) {
	if stdin != nil {
		if end, _ := stdin.ParentEnd(); end != nil {
			end.Close()
		}
	}
	if stdout != nil {
		if end, _ := stdout.ParentEnd(); end != nil {
			end.Close()
		}
	}
	if stderr != nil {
		if end, _ := stderr.ParentEnd(); end != nil {
			end.Close()
		}
	}
}

func closeChildEndIfConfigured(stdin *InputSource, stdout, stderr *OutputSink) {
	if stdin.CloseAfterSpawn() {
		stdin.CloseChildEnd()
	}
	if stdout.CloseAfterSpawn() {
		stdout.CloseChildEnd()
	}
	if stderr.CloseAfterSpawn() {
		stderr.CloseChildEnd()
	}
}
