package iosink

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codecrafters-io/go-subprocess/iofd"
	"github.com/codecrafters-io/go-subprocess/procerr"
)

func TestDiscardWritesToNullDevice(t *testing.T) {
	s := Discard()
	fd, err := s.ChildFd()
	require.NoError(t, err)
	defer fd.Close()

	n, err := fd.File().Write([]byte("anything"))
	require.NoError(t, err)
	assert.Equal(t, len("anything"), n)
	assert.True(t, s.CloseAfterSpawn())
	assert.False(t, s.IsCollecting())
}

func TestCollectBytesCapturesUntilEOF(t *testing.T) {
	s := CollectBytes(1024)
	assert.True(t, s.IsCollecting())

	childFd, err := s.ChildFd()
	require.NoError(t, err)

	go func() {
		childFd.File().Write([]byte("hello world"))
		childFd.Close()
	}()

	data, err := s.Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))
}

func TestCollectBytesTruncatesAtLimit(t *testing.T) {
	s := CollectBytes(5)
	childFd, err := s.ChildFd()
	require.NoError(t, err)

	go func() {
		childFd.File().Write([]byte("more than five bytes"))
		childFd.Close()
	}()

	data, err := s.Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "more ", string(data))
}

func TestCollectStringRejectsInvalidUTF8(t *testing.T) {
	s := CollectString(1024)
	childFd, err := s.ChildFd()
	require.NoError(t, err)

	go func() {
		childFd.File().Write([]byte{0xff, 0xfe, 0xfd})
		childFd.Close()
	}()

	_, err = s.Capture(context.Background())
	assert.True(t, procerr.Of(err, procerr.InvalidUtf8))
}

func TestStreamSinkConsumeReadEndExactlyOnce(t *testing.T) {
	s := Stream()
	_, err := s.ChildFd()
	require.NoError(t, err)

	r1, err := s.ConsumeReadEnd()
	require.NoError(t, err)
	defer r1.Close()

	_, err = s.ConsumeReadEnd()
	assert.True(t, procerr.Of(err, procerr.StreamAlreadyConsumed))
}

func TestStreamSinkCaptureIsNoOp(t *testing.T) {
	s := Stream()
	data, err := s.Capture(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, data)
}

func TestCaptureCancellationReturnsCancelled(t *testing.T) {
	s := CollectBytes(1024)
	_, err := s.ChildFd()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Capture(ctx)
	assert.True(t, procerr.Of(err, procerr.Cancelled))
}

func TestToFdBindsDirectly(t *testing.T) {
	f, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	require.NoError(t, err)
	handle := iofd.NewHandle(f)

	s := ToFd(handle, true)
	fd, err := s.ChildFd()
	require.NoError(t, err)
	assert.Equal(t, handle, fd)
	assert.True(t, s.CloseAfterSpawn())
}
