package daemon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDetachPaths(t *testing.T) {
	runtime := t.TempDir()
	state := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", runtime)
	t.Setenv("XDG_STATE_HOME", state)

	paths, err := DefaultDetachPaths()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(runtime, "windowkey.pid"), paths.PidFile)
	assert.Equal(t, filepath.Join(state, "windowkey", "windowkey.log"), paths.LogFile)
}

func TestStop_NoPidFile(t *testing.T) {
	dir := t.TempDir()

	_, err := Stop(DetachPaths{PidFile: filepath.Join(dir, "windowkey.pid")})

	assert.ErrorIs(t, err, ErrNotRunning)
}

func TestStop_GarbagePidFile(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "windowkey.pid")
	require.NoError(t, os.WriteFile(pidFile, []byte("not a pid\n"), 0o644))

	_, err := Stop(DetachPaths{PidFile: pidFile})

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotRunning)
}

func TestIsChild_ParentProcess(t *testing.T) {
	assert.False(t, IsChild())
}
