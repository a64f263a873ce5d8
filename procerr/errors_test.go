package procerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessageFormatting(t *testing.T) {
	err := New(IoError, "reading stdout", fmt.Errorf("broken pipe"))
	assert.Equal(t, "io error: reading stdout: broken pipe", err.Error())

	bare := New(Cancelled, "", nil)
	assert.Equal(t, "cancelled", bare.Error())

	noMessage := New(SpawnFailed, "", fmt.Errorf("permission denied"))
	assert.Equal(t, "spawn failed: permission denied", noMessage.Error())
}

func TestErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("underlying failure")
	err := New(IoError, "", cause)
	assert.Same(t, cause, errors.Unwrap(err))
}

func TestErrorIsMatchesByKindOnly(t *testing.T) {
	a := New(WriterClosed, "first write", nil)
	b := New(WriterClosed, "second write, different message", nil)
	c := New(IoError, "first write", nil)

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, c))
}

func TestOfAndKindOf(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", New(HookFailed, "rejected", nil))

	assert.True(t, Of(wrapped, HookFailed))
	assert.False(t, Of(wrapped, TeardownError))

	kind, ok := KindOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, HookFailed, kind)

	_, ok = KindOf(fmt.Errorf("plain error"))
	assert.False(t, ok)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "executable not found", ExecutableNotFound.String())
	assert.Equal(t, "unknown", Kind(999).String())
}
