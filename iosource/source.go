// Package iosource implements InputSource: the execution core's
// polymorphic producer for a child's stdin. Variants are modeled as a
// closed, compile-time-enumerated tag with per-variant fields (spec §9:
// "model as tagged variants... not as open polymorphism"), the same way
// the teacher's stdio_handler package has one concrete type per I/O
// strategy instead of a single type branching on an interface{} payload.
package iosource

import (
	"context"
	"io"
	"os"

	"github.com/codecrafters-io/go-subprocess/iofd"
	"github.com/codecrafters-io/go-subprocess/procerr"
)

type kind int

const (
	kindNone kind = iota
	kindFd
	kindBytes
	kindReader
	kindWriter
)

// Source is an InputSource value. Construct one with None, FromFd,
// FromBytes, FromReader, or NewWriterSource.
type Source struct {
	kind            kind
	fd              *iofd.Handle
	closeAfterSpawn bool
	bytes           []byte
	reader          io.Reader
	writer          *Writer

	pipe     *iofd.Pipe
	childEnd *iofd.Handle
}

// None returns a source whose child reads from the null device, per spec
// §4.3's `None` variant.
func None() *Source {
	return &Source{kind: kindNone}
}

// FromFd binds the child's stdin directly to an already-open handle. If
// closeAfterSpawn is true, the parent closes its reference to fd once the
// child has inherited it (the common case); if false, the caller retains
// ownership and must close it itself.
func FromFd(fd *iofd.Handle, closeAfterSpawn bool) *Source {
	return &Source{kind: kindFd, fd: fd, closeAfterSpawn: closeAfterSpawn}
}

// FromBytes returns a source that writes buf to the child over a fresh
// pipe and then closes the write end, per spec §4.3's `Bytes` variant.
func FromBytes(buf []byte) *Source {
	return &Source{kind: kindBytes, bytes: buf, pipe: iofd.NewPipe()}
}

// FromReader returns a source that streams r to the child over a fresh
// pipe, closing the write end when r is exhausted. This is this core's Go
// rendering of the spec's `Stream(async seq of chunks)` variant: Go has no
// native async-sequence type, so an io.Reader — the idiomatic "lazy
// sequence of bytes" — fills that role instead, same as os/exec itself
// accepts an io.Reader for Cmd.Stdin.
func FromReader(r io.Reader) *Source {
	return &Source{kind: kindReader, reader: r, pipe: iofd.NewPipe()}
}

// NewWriterSource returns a source whose child reads from a fresh pipe
// that the *caller* drives via the returned Writer, per spec §4.3/§4.9's
// `Writer` variant.
func NewWriterSource() (*Source, *Writer) {
	w := newWriter()
	return &Source{kind: kindWriter, writer: w, pipe: iofd.NewPipe()}, w
}

// ChildFd returns the descriptor the Spawner should bind as the child's
// stdin, allocating a pipe if this variant needs one.
func (s *Source) ChildFd() (*iofd.Handle, error) {
	switch s.kind {
	case kindNone:
		f, err := os.OpenFile(os.DevNull, os.O_RDONLY, 0)
		if err != nil {
			return nil, procerr.New(procerr.IoError, "open null device for stdin", err)
		}
		s.childEnd = iofd.NewHandle(f)
		return s.childEnd, nil
	case kindFd:
		return s.fd, nil
	default:
		return s.pipe.ReadEnd()
	}
}

// CloseAfterSpawn reports whether the Spawner/orchestrator should close
// its reference to ChildFd() immediately after the child inherits it.
func (s *Source) CloseAfterSpawn() bool {
	switch s.kind {
	case kindNone:
		return true
	case kindFd:
		return s.closeAfterSpawn
	default:
		return true
	}
}

// ParentEnd returns the parent-side write end to close if spawn fails
// before Drive ever runs. Returns nil for None/Fd, which have none.
func (s *Source) ParentEnd() (*iofd.Handle, error) {
	switch s.kind {
	case kindNone, kindFd:
		return nil, nil
	default:
		return s.pipe.WriteEnd()
	}
}

// CloseChildEnd closes this source's reference to the fd ChildFd()
// returned, once the child process has inherited it. The orchestrator
// calls this immediately after spawn whenever CloseAfterSpawn() is true.
func (s *Source) CloseChildEnd() error {
	switch s.kind {
	case kindNone:
		return s.childEnd.Close()
	case kindFd:
		return s.fd.Close()
	default:
		return s.pipe.CloseRead()
	}
}

// Drive runs the parent-side half of this source: writing remaining bytes
// until the source is exhausted, then closing the write end. It is a
// no-op for None and Fd. It is fail-fast (spec §4.3): the first write
// error closes the write end and is returned immediately, without
// attempting to flush anything further.
func (s *Source) Drive(ctx context.Context) error {
	switch s.kind {
	case kindNone, kindFd:
		return nil
	case kindBytes:
		return s.driveBytes()
	case kindReader:
		return s.driveReader(ctx)
	case kindWriter:
		return s.driveWriter(ctx)
	default:
		return nil
	}
}

func (s *Source) driveBytes() error {
	w, err := s.pipe.WriteEnd()
	if err != nil {
		return err
	}
	defer s.pipe.CloseWrite()

	if err := writeFull(w.File(), s.bytes); err != nil {
		return procerr.New(procerr.IoError, "write stdin bytes", err)
	}
	return nil
}

func (s *Source) driveReader(ctx context.Context) error {
	w, err := s.pipe.WriteEnd()
	if err != nil {
		return err
	}
	defer s.pipe.CloseWrite()

	done := make(chan error, 1)
	go func() {
		_, copyErr := io.Copy(w.File(), s.reader)
		done <- copyErr
	}()

	select {
	case copyErr := <-done:
		if copyErr != nil {
			return procerr.New(procerr.IoError, "write stdin stream", copyErr)
		}
		return nil
	case <-ctx.Done():
		// Closing the write end unblocks the in-flight Write in the
		// goroutine above; it will report an error on done, which we
		// deliberately don't wait for here so cancellation is prompt.
		s.pipe.CloseWrite()
		return procerr.New(procerr.Cancelled, "stdin stream driver", ctx.Err())
	}
}

func (s *Source) driveWriter(ctx context.Context) error {
	w, err := s.pipe.WriteEnd()
	if err != nil {
		return err
	}
	defer s.pipe.CloseWrite()

	return s.writer.pump(ctx, w.File())
}

// writeFull retries partial writes until every byte of buf is accepted by
// w, per spec §4.3: "Partial writes are retried until the entire chunk is
// consumed."
func writeFull(w io.Writer, buf []byte) error {
	for len(buf) > 0 {
		n, err := w.Write(buf)
		if err != nil {
			return err
		}
		buf = buf[n:]
	}
	return nil
}
