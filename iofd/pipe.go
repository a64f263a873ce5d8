package iofd

import (
	"os"
	"sync"

	"github.com/codecrafters-io/go-subprocess/procerr"
)

// Pipe is a lazily allocated (read-end, write-end) pair, each a Handle. It
// is created on demand the first time either end is requested (spec
// §4.2); both ends start out live, and the Pipe tracks which of them have
// already been transferred to an owner (child or parent) so that idempotent
// teardown only closes what's actually still outstanding.
type Pipe struct {
	mu         sync.Mutex
	readEnd    *Handle
	writeEnd   *Handle
	opened     bool
	openErr    error
	readOwned  bool
	writeOwned bool
}

// NewPipe returns an unopened Pipe. The OS pipe() call happens lazily on
// the first ReadEnd()/WriteEnd()/TakeReadEnd()/TakeWriteEnd() access.
func NewPipe() *Pipe {
	return &Pipe{}
}

func (p *Pipe) ensureOpen() error {
	if p.opened {
		return p.openErr
	}
	r, w, err := os.Pipe()
	if err != nil {
		p.openErr = procerr.New(procerr.ResourceExhausted, "pipe", err)
	} else {
		p.readEnd = NewHandle(r)
		p.writeEnd = NewHandle(w)
	}
	p.opened = true
	return p.openErr
}

// ReadEnd returns the pipe's read-end Handle, allocating the pipe if this
// is the first access.
func (p *Pipe) ReadEnd() (*Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ensureOpen(); err != nil {
		return nil, err
	}
	return p.readEnd, nil
}

// WriteEnd returns the pipe's write-end Handle, allocating the pipe if this
// is the first access.
func (p *Pipe) WriteEnd() (*Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ensureOpen(); err != nil {
		return nil, err
	}
	return p.writeEnd, nil
}

// TakeReadEnd transfers ownership of the read end to the caller (e.g. a
// streaming OutputSink handing it to the caller, per invariant 1: a pipe
// end deliberately handed to the caller is exempt from the orchestrator's
// close-everything-before-return rule). Close is still safe to call
// afterwards; it's the Pipe's own bookkeeping that stops treating the end
// as something it must close.
func (p *Pipe) TakeReadEnd() *Handle {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.ensureOpen()
	p.readOwned = true
	return p.readEnd
}

// TakeWriteEnd transfers ownership of the write end to the caller.
func (p *Pipe) TakeWriteEnd() *Handle {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.ensureOpen()
	p.writeOwned = true
	return p.writeEnd
}

// CloseRead closes the read end unless ownership of it was already handed
// out via TakeReadEnd.
func (p *Pipe) CloseRead() error {
	p.mu.Lock()
	owned := p.readOwned
	end := p.readEnd
	p.mu.Unlock()
	if owned || end == nil {
		return nil
	}
	return end.CloseReportingError()
}

// CloseWrite closes the write end unless ownership of it was already handed
// out via TakeWriteEnd.
func (p *Pipe) CloseWrite() error {
	p.mu.Lock()
	owned := p.writeOwned
	end := p.writeEnd
	p.mu.Unlock()
	if owned || end == nil {
		return nil
	}
	return end.CloseReportingError()
}

// Close closes both ends the Pipe still owns. Idempotent — see
// invariant 1: "Every Pipe created is closed on both ends before the
// orchestrator returns... except ends deliberately handed to the caller".
func (p *Pipe) Close() error {
	err1 := p.CloseRead()
	err2 := p.CloseWrite()
	if err1 != nil {
		return err1
	}
	return err2
}
