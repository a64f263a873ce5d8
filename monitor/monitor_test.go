package monitor

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codecrafters-io/go-subprocess/iofd"
	"github.com/codecrafters-io/go-subprocess/spawner"
)

func devNullHandles(t *testing.T) (*iofd.Handle, *iofd.Handle, *iofd.Handle) {
	t.Helper()
	in, err := os.Open(os.DevNull)
	require.NoError(t, err)
	out, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	require.NoError(t, err)
	errFile, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	require.NoError(t, err)
	return iofd.NewHandle(in), iofd.NewHandle(out), iofd.NewHandle(errFile)
}

func TestWaitReportsSuccessfulExit(t *testing.T) {
	stdin, stdout, stderr := devNullHandles(t)
	cfg := spawner.Configuration{
		Executable:  spawner.ByPath("/bin/true"),
		Environment: spawner.Inherit(),
	}

	handle, err := spawner.Spawn(cfg, stdin, stdout, stderr)
	require.NoError(t, err)

	status, err := Wait(context.Background(), handle)
	require.NoError(t, err)
	assert.True(t, status.IsSuccess())
}

func TestWaitReportsNonZeroExit(t *testing.T) {
	stdin, stdout, stderr := devNullHandles(t)
	cfg := spawner.Configuration{
		Executable:  spawner.ByPath("/bin/false"),
		Environment: spawner.Inherit(),
	}

	handle, err := spawner.Spawn(cfg, stdin, stdout, stderr)
	require.NoError(t, err)

	status, err := Wait(context.Background(), handle)
	require.NoError(t, err)
	assert.False(t, status.IsSuccess())
	assert.True(t, status.ExitedNormally())
	assert.Equal(t, 1, status.Code())
}

func TestWaitReturnsContextErrorWithoutKillingChild(t *testing.T) {
	stdin, stdout, stderr := devNullHandles(t)
	cfg := spawner.Configuration{
		Executable:  spawner.ByPath("/bin/sleep"),
		Arguments:   spawner.NewArguments("0.2"),
		Environment: spawner.Inherit(),
	}

	handle, err := spawner.Spawn(cfg, stdin, stdout, stderr)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = Wait(ctx, handle)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// The child was never signaled by Wait; it should still be alive and
	// go on to exit normally on its own a little later.
	assert.True(t, handle.Alive())

	status, err := Wait(context.Background(), handle)
	require.NoError(t, err)
	assert.True(t, status.IsSuccess())
}
