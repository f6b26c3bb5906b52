package instance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireIsExclusive(t *testing.T) {
	dir := t.TempDir()

	first, err := Acquire(dir)
	require.NoError(t, err)
	defer first.Release()

	_, err = Acquire(dir)
	assert.ErrorIs(t, err, ErrAlreadyRunning)
}

func TestReleaseAllowsReacquire(t *testing.T) {
	dir := t.TempDir()

	first, err := Acquire(dir)
	require.NoError(t, err)
	require.NoError(t, first.Release())
	require.NoError(t, first.Release())

	second, err := Acquire(dir)
	require.NoError(t, err)
	second.Shutdown()
}
