package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitedIsSuccessOnlyWithZeroCode(t *testing.T) {
	assert.True(t, Exited(0).IsSuccess())
	assert.False(t, Exited(1).IsSuccess())
	assert.True(t, Exited(0).ExitedNormally())
}

func TestSignaledOrExceptionIsNeverSuccess(t *testing.T) {
	status := SignaledOrException(9)
	assert.False(t, status.IsSuccess())
	assert.False(t, status.ExitedNormally())
	assert.Equal(t, 9, status.Code())
}

func TestStringRendersBothVariants(t *testing.T) {
	assert.Equal(t, "exited(0)", Exited(0).String())
	assert.Equal(t, "signaled(15)", SignaledOrException(15).String())
}
