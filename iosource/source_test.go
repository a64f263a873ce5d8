package iosource

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codecrafters-io/go-subprocess/iofd"
	"github.com/codecrafters-io/go-subprocess/procerr"
)

func TestNoneSourceReadsFromNullDevice(t *testing.T) {
	s := None()
	fd, err := s.ChildFd()
	require.NoError(t, err)

	buf := make([]byte, 16)
	n, err := fd.File().Read(buf)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, 0, n)
	assert.True(t, s.CloseAfterSpawn())
}

func TestFromBytesDrivesFullPayloadThenClosesWriteEnd(t *testing.T) {
	payload := []byte("the quick brown fox")
	s := FromBytes(payload)

	childFd, err := s.ChildFd()
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- s.Drive(context.Background()) }()

	got, err := io.ReadAll(childFd.File())
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	assert.NoError(t, <-done)
}

func TestFromReaderStreamsUntilExhausted(t *testing.T) {
	payload := bytes.Repeat([]byte("chunk "), 10_000)
	s := FromReader(bytes.NewReader(payload))

	childFd, err := s.ChildFd()
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- s.Drive(context.Background()) }()

	got, err := io.ReadAll(childFd.File())
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	assert.NoError(t, <-done)
}

func TestFromReaderDriveRespectsCancellation(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	s := FromReader(r)

	childFd, err := s.ChildFd()
	require.NoError(t, err)
	defer childFd.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = s.Drive(ctx)
	assert.True(t, procerr.Of(err, procerr.Cancelled))
}

func TestWriterSourcePumpsWritesInOrder(t *testing.T) {
	s, writer := NewWriterSource()

	childFd, err := s.ChildFd()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- s.Drive(ctx) }()

	go func() {
		writer.WriteString("first ")
		writer.WriteString("second ")
		writer.WriteString("third")
		writer.Finish()
	}()

	got, err := io.ReadAll(childFd.File())
	require.NoError(t, err)
	assert.Equal(t, "first second third", string(got))
	assert.NoError(t, <-done)
}

func TestWriteAfterFinishFails(t *testing.T) {
	s, writer := NewWriterSource()
	_, err := s.ChildFd()
	require.NoError(t, err)

	go func() { s.Drive(context.Background()) }()

	require.NoError(t, writer.Finish())

	_, err = writer.Write([]byte("too late"))
	assert.True(t, procerr.Of(err, procerr.WriterClosed))
}

func TestFromFdBindsDirectlyWithoutAPipe(t *testing.T) {
	f, err := os.Open(os.DevNull)
	require.NoError(t, err)

	handle := iofd.NewHandle(f)
	s := FromFd(handle, false)

	fd, err := s.ChildFd()
	require.NoError(t, err)
	assert.Equal(t, handle, fd)
	assert.False(t, s.CloseAfterSpawn())
}

func TestWriteFullRetriesPartialWrites(t *testing.T) {
	w := &stubPartialWriter{chunkSize: 3}
	err := writeFull(w, []byte("abcdefghij"))
	require.NoError(t, err)
	assert.Equal(t, "abcdefghij", string(w.written))
}

type stubPartialWriter struct {
	chunkSize int
	written   []byte
}

func (w *stubPartialWriter) Write(p []byte) (int, error) {
	n := len(p)
	if n > w.chunkSize {
		n = w.chunkSize
	}
	w.written = append(w.written, p[:n]...)
	return n, nil
}

