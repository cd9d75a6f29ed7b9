package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSettingsSeedOverride(t *testing.T) {
	path := writeSettings(t, "seed = 3\n")
	s, err := loadSettings(&flags{settings: path})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), s.Seed)

	s, err = loadSettings(&flags{settings: path, seed: 9})
	require.NoError(t, err)
	assert.Equal(t, uint64(9), s.Seed)

	_, err = loadSettings(&flags{settings: writeSettings(t, "nonsense = true\n")})
	assert.Error(t, err)
}

func TestExportCommand(t *testing.T) {
	path := writeSettings(t, "dimensions = [40, 30]\nmax_meshes = 20\n")
	out := filepath.Join(t.TempDir(), "cube.png")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"export", "--settings", path, "--seed", "7", "--out", out})
	require.NoError(t, cmd.Execute())
	assert.FileExists(t, out)
}

func TestExportCommandDefaultName(t *testing.T) {
	dir := t.TempDir()
	path := writeSettings(t, "dimensions = [20, 20]\nmax_meshes = 5\nexport_dir = '"+filepath.ToSlash(dir)+"'\n")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"export", "--settings", path, "--seed", "11"})
	require.NoError(t, cmd.Execute())

	matches, err := filepath.Glob(filepath.Join(dir, "shader-cube-*-11.png"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestRejectsArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"export", "extra"})
	assert.Error(t, cmd.Execute())
}
