package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayered_FirstHitWins(t *testing.T) {
	l := Layered{
		MapEnviron{"A": "overlay"},
		MapEnviron{"A": "base", "B": "base-b"},
	}

	v, ok := l.Lookup("A")
	require.True(t, ok)
	assert.Equal(t, "overlay", v)

	v, ok = l.Lookup("B")
	require.True(t, ok)
	assert.Equal(t, "base-b", v)

	_, ok = l.Lookup("C")
	assert.False(t, ok)
}

func TestLayeredEnviron_WritesGoToBase(t *testing.T) {
	base := MapEnviron{}
	env := LayeredEnviron{Overlays: Layered{MapEnviron{"X": "1"}}, Base: base}

	require.NoError(t, env.Setenv("Y", "2"))
	assert.Equal(t, "2", base["Y"])
	assert.Equal(t, "1", Get(env, "X"))
	assert.Equal(t, "2", Get(env, "Y"))
}

func TestGet_NilSource(t *testing.T) {
	assert.Equal(t, "", Get(nil, "ANY"))
}

func TestLoadProfile_ResolvesFileCommandPathsAgainstProfileDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "runner.yaml")
	content := "env:\n" +
		"  GITHUB_OUTPUT: out/output.txt\n" +
		"  GITHUB_STATE: /abs/state\n" +
		"  RUNNER_OS: Linux\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	env, err := LoadProfile(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "out", "output.txt"), env[KeyOutput])
	assert.Equal(t, "/abs/state", env[KeyState])
	assert.Equal(t, "Linux", env["RUNNER_OS"], "non file-command values are kept verbatim")
}

func TestLoadProfile_RejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	require.NoError(t, os.WriteFile(path, []byte("envs:\n  A: b\n"), 0o644))

	_, err := LoadProfile(path)
	require.Error(t, err)
}

func TestLoadProfile_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	env, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Empty(t, env)
}

func TestLoadProfile_Missing(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
