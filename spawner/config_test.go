package spawner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codecrafters-io/go-subprocess/procerr"
)

func TestByPathResolvesWithoutSearching(t *testing.T) {
	path, err := ByPath("/usr/bin/env").resolve("/nonexistent")
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/env", path)
}

func TestByNameScansSearchPathInOrder(t *testing.T) {
	dir := t.TempDir()
	binPath := filepath.Join(dir, "my-tool")
	require.NoError(t, os.WriteFile(binPath, []byte("#!/bin/sh\n"), 0755))

	path, err := ByName("my-tool").resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, binPath, path)
}

func TestByNameSkipsNonExecutableCandidates(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "script"), []byte("echo hi"), 0644))

	_, err := ByName("script").resolve(dir)
	assert.True(t, procerr.Of(err, procerr.ExecutableNotFound))
}

func TestByNameNotFoundAnywhereInSearchPath(t *testing.T) {
	_, err := ByName("definitely-not-a-real-binary").resolve("/usr/bin" + string(os.PathListSeparator) + "/bin")
	assert.True(t, procerr.Of(err, procerr.ExecutableNotFound))
}

func TestInheritWithOverlaysParentEnvironment(t *testing.T) {
	t.Setenv("GO_SUBPROCESS_TEST_VAR", "parent-value")

	env := InheritWith(map[string]string{"EXTRA_VAR": "extra-value"})
	envp, _ := env.resolve("PATH")

	assert.Contains(t, envp, "EXTRA_VAR=extra-value")
	assert.Contains(t, envp, "GO_SUBPROCESS_TEST_VAR=parent-value")
}

func TestReplaceDiscardsParentEnvironment(t *testing.T) {
	t.Setenv("GO_SUBPROCESS_TEST_VAR", "parent-value")

	env := Replace(map[string]string{"ONLY_VAR": "only-value"})
	envp, searchPath := env.resolve("PATH")

	assert.Equal(t, []string{"ONLY_VAR=only-value"}, envp)
	assert.Empty(t, searchPath)
}

func TestReplaceWithoutPathDisablesByNameResolution(t *testing.T) {
	env := Replace(map[string]string{"FOO": "bar"})
	_, searchPath := env.resolve("PATH")

	_, err := ByName("ls").resolve(searchPath)
	assert.True(t, procerr.Of(err, procerr.ExecutableNotFound))
}
