package iosource

import (
	"context"
	"io"
	"sync"

	"github.com/codecrafters-io/go-subprocess/procerr"
)

// Writer is the StandardInputWriter of spec §4.9: a handle exposed to a
// writer-mode body that serializes concurrent Write calls into a single
// ordered stream onto the child's stdin pipe.
type Writer struct {
	mu       sync.Mutex
	requests chan writeRequest
	closed   bool
	closeErr error
}

type writeRequest struct {
	data  []byte
	reply chan error
}

func newWriter() *Writer {
	return &Writer{requests: make(chan writeRequest)}
}

// Write appends bytes, blocking until the pipe has accepted them (or the
// write fails). Bytes from one Write call are contiguous in the pipe, and
// concurrent Write calls from different goroutines are ordered relative to
// each other, per spec §4.9's concurrency rule.
func (w *Writer) Write(p []byte) (int, error) {
	// Copy: the caller may reuse p after Write returns.
	data := make([]byte, len(p))
	copy(data, p)
	reply := make(chan error, 1)

	// Hold the lock across the (possibly blocking) send so a concurrent
	// Finish can't close w.requests between our closed-check and our
	// send — that race would otherwise panic on a send to a closed
	// channel.
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return 0, procerr.New(procerr.WriterClosed, "write after Finish", nil)
	}
	w.requests <- writeRequest{data: data, reply: reply}
	w.mu.Unlock()

	if err := <-reply; err != nil {
		return 0, err
	}
	return len(p), nil
}

// WriteString encodes s as UTF-8 bytes and writes it.
func (w *Writer) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

// ReadFrom consumes r until EOF, writing each chunk it reads to the pipe in
// order, matching spec §4.9's `write(stream)` overload.
func (w *Writer) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, 32*1024)
	var total int64
	for {
		n, readErr := r.Read(buf)
		if n > 0 {
			if _, writeErr := w.Write(buf[:n]); writeErr != nil {
				return total, writeErr
			}
			total += int64(n)
		}
		if readErr == io.EOF {
			return total, nil
		}
		if readErr != nil {
			return total, readErr
		}
	}
}

// Finish closes the parent write end. Further writes fail with
// WriterClosed, per spec §4.9.
func (w *Writer) Finish() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()
	close(w.requests)
	return nil
}

// pump is Drive's writer-mode implementation: it serializes writeRequests
// onto file in arrival order until Finish closes the request channel or
// ctx is cancelled.
func (w *Writer) pump(ctx context.Context, file io.Writer) error {
	for {
		select {
		case req, ok := <-w.requests:
			if !ok {
				return nil
			}
			err := writeFull(file, req.data)
			req.reply <- err
			if err != nil {
				return procerr.New(procerr.IoError, "write stdin", err)
			}
		case <-ctx.Done():
			return procerr.New(procerr.Cancelled, "stdin writer pump", ctx.Err())
		}
	}
}
