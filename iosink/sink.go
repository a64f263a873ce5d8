// Package iosink implements OutputSink: the execution core's polymorphic
// consumer for a child's stdout/stderr. Like iosource, variants are a
// closed tag with per-variant fields rather than an open interface (spec
// §9), mirroring the teacher's one-type-per-strategy stdio_handler design.
package iosink

import (
	"context"
	"io"
	"os"
	"sync/atomic"
	"unicode/utf8"

	"github.com/codecrafters-io/go-subprocess/iofd"
	"github.com/codecrafters-io/go-subprocess/procerr"
)

type kind int

const (
	kindDiscard kind = iota
	kindFd
	kindCollectBytes
	kindCollectString
	kindStream
)

// Sink is an OutputSink value. Construct one with Discard, ToFd,
// CollectBytes, CollectString, or Stream.
type Sink struct {
	kind            kind
	fd              *iofd.Handle
	closeAfterSpawn bool
	limit           int64

	pipe     *iofd.Pipe
	childEnd *iofd.Handle
	consumed atomic.Bool
}

// Discard directs the child's output to the null device.
func Discard() *Sink {
	return &Sink{kind: kindDiscard}
}

// ToFd binds the child's output directly to an already-open handle.
func ToFd(fd *iofd.Handle, closeAfterSpawn bool) *Sink {
	return &Sink{kind: kindFd, fd: fd, closeAfterSpawn: closeAfterSpawn}
}

// CollectBytes buffers up to limit bytes of the child's output in memory,
// per spec §4.4's `CollectBytes(limit)` variant.
func CollectBytes(limit int64) *Sink {
	return &Sink{kind: kindCollectBytes, limit: limit, pipe: iofd.NewPipe()}
}

// CollectString behaves like CollectBytes but validates the captured bytes
// as UTF-8 text before Capture returns them; Capture's caller then decodes
// with string(b) rather than re-validating.
func CollectString(limit int64) *Sink {
	return &Sink{kind: kindCollectString, limit: limit, pipe: iofd.NewPipe()}
}

// Stream delivers the child's output to the caller as it arrives rather
// than buffering it in full, per spec §4.4's `Stream` variant. Its
// Capture is a no-op; the caller instead calls ConsumeReadEnd exactly once.
func Stream() *Sink {
	return &Sink{kind: kindStream, pipe: iofd.NewPipe()}
}

// IsCollecting reports whether the orchestrator should run a capture task
// for this sink. Stream sinks are consumed directly by the caller instead.
func (s *Sink) IsCollecting() bool {
	return s.kind == kindCollectBytes || s.kind == kindCollectString
}

// ChildFd returns the descriptor the Spawner should bind as the child's
// output, allocating a pipe if this variant needs one.
func (s *Sink) ChildFd() (*iofd.Handle, error) {
	switch s.kind {
	case kindDiscard:
		f, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
		if err != nil {
			return nil, procerr.New(procerr.IoError, "open null device for output", err)
		}
		s.childEnd = iofd.NewHandle(f)
		return s.childEnd, nil
	case kindFd:
		return s.fd, nil
	default:
		return s.pipe.WriteEnd()
	}
}

// CloseAfterSpawn reports whether the Spawner/orchestrator should close
// its reference to ChildFd() immediately after the child inherits it.
func (s *Sink) CloseAfterSpawn() bool {
	switch s.kind {
	case kindDiscard:
		return true
	case kindFd:
		return s.closeAfterSpawn
	default:
		return true
	}
}

// ParentEnd returns the parent-side read end, for cleanup before Capture
// ever runs (e.g. spawn failed). Returns nil for Discard/Fd.
func (s *Sink) ParentEnd() (*iofd.Handle, error) {
	switch s.kind {
	case kindDiscard, kindFd:
		return nil, nil
	default:
		return s.pipe.ReadEnd()
	}
}

// CloseChildEnd closes this sink's reference to the fd ChildFd()
// returned, once the child process has inherited it. The orchestrator
// calls this immediately after spawn whenever CloseAfterSpawn() is true.
func (s *Sink) CloseChildEnd() error {
	switch s.kind {
	case kindDiscard:
		return s.childEnd.Close()
	case kindFd:
		return s.fd.Close()
	default:
		return s.pipe.CloseWrite()
	}
}

// ConsumeReadEnd returns the stream sink's read end exactly once; per
// invariant 3 (spec §3) a second attempt is a StreamAlreadyConsumed
// contract violation, distinct from a runtime I/O error. Only valid on a
// Stream sink.
func (s *Sink) ConsumeReadEnd() (io.ReadCloser, error) {
	if s.kind != kindStream {
		return nil, procerr.New(procerr.StreamAlreadyConsumed, "ConsumeReadEnd called on a non-streaming sink", nil)
	}
	if !s.consumed.CompareAndSwap(false, true) {
		return nil, procerr.New(procerr.StreamAlreadyConsumed, "stream read end already consumed", nil)
	}
	r, err := s.pipe.ReadEnd()
	if err != nil {
		return nil, err
	}
	s.pipe.TakeReadEnd()
	return r.File(), nil
}

// Capture runs the parent-side half of a collecting sink: read until EOF
// or the configured limit, whichever comes first (spec §4.4's "Limit
// semantics"), then close the read end. It is a no-op for Discard/Fd/
// Stream.
func (s *Sink) Capture(ctx context.Context) ([]byte, error) {
	if !s.IsCollecting() {
		return nil, nil
	}

	r, err := s.pipe.ReadEnd()
	if err != nil {
		return nil, err
	}
	defer s.pipe.CloseRead()

	type readResult struct {
		data []byte
		err  error
	}
	done := make(chan readResult, 1)

	go func() {
		limited := io.LimitReader(r.File(), s.limit)
		data, readErr := io.ReadAll(limited)
		if readErr != nil && !isBenignTeardownRead(r.File(), readErr) {
			done <- readResult{err: procerr.New(procerr.IoError, "read output", readErr)}
			return
		}
		done <- readResult{data: data}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return nil, res.err
		}
		if s.kind == kindCollectString && !utf8.Valid(res.data) {
			return nil, procerr.New(procerr.InvalidUtf8, "captured output", nil)
		}
		return res.data, nil
	case <-ctx.Done():
		// Closing our read end truncates the child's write and unblocks
		// the goroutine above; per the spec's documented open question,
		// this truncation is not itself an error, but cancellation still
		// is — the orchestrator maps this to Cancelled.
		s.pipe.CloseRead()
		<-done
		return nil, procerr.New(procerr.Cancelled, "output capture", ctx.Err())
	}
}

// isBenignTeardownRead (platform-specific, see sink_unix.go/sink_windows.go)
// reports whether err is the "read end closed out from under a PTY-backed
// fd" EIO case the teacher's isTTY special-case in executable/utils.go
// carves out, rather than a genuine I/O failure. Capture only calls it on a
// collecting sink's own pipe read end, which is never a terminal, so it
// reports false there; an Fd-bound sink (including a PTY bound via ToFd)
// is not read by Capture at all.
