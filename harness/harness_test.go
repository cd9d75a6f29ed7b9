package harness

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"shader_cube/sketch"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallSettings() sketch.Settings {
	s := sketch.DefaultSettings()
	s.Dimensions = [2]int{48, 32}
	s.MaxMeshes = 50
	s.Seed = 1234
	return s
}

func TestExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.png")
	require.NoError(t, Export(smallSettings(), sketch.NewShaderCube, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 48, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())
}

func TestExportIsReproducible(t *testing.T) {
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.png"), filepath.Join(dir, "b.png")
	require.NoError(t, Export(smallSettings(), sketch.NewShaderCube, a))
	require.NoError(t, Export(smallSettings(), sketch.NewShaderCube, b))

	ba, err := os.ReadFile(a)
	require.NoError(t, err)
	bb, err := os.ReadFile(b)
	require.NoError(t, err)
	assert.Equal(t, ba, bb)
}

type recordingSketch struct {
	calls []string
}

func (s *recordingSketch) Resize(p sketch.ResizeProps) {
	s.calls = append(s.calls, "resize")
}

func (s *recordingSketch) Render(p sketch.RenderProps) error {
	s.calls = append(s.calls, "render")
	return nil
}

func (s *recordingSketch) Unload() {
	s.calls = append(s.calls, "unload")
}

func TestExportLifecycle(t *testing.T) {
	rec := &recordingSketch{}
	var props sketch.Props
	setup := func(p sketch.Props) (sketch.Sketch, error) {
		props = p
		return rec, nil
	}
	err := Export(smallSettings(), setup, filepath.Join(t.TempDir(), "x.png"))
	// the recording sketch never draws, so there is no frame to save
	assert.Error(t, err)
	assert.Equal(t, []string{"resize", "render", "unload"}, rec.calls)
	assert.Equal(t, uint64(1234), props.Random.Seed())
}

func TestExportSetupFailures(t *testing.T) {
	out := filepath.Join(t.TempDir(), "x.png")

	err := Export(smallSettings(), func(sketch.Props) (sketch.Sketch, error) {
		return nil, errors.New("no palette")
	}, out)
	assert.ErrorContains(t, err, "no palette")

	err = Export(smallSettings(), func(sketch.Props) (sketch.Sketch, error) {
		panic("device lost")
	}, out)
	assert.ErrorContains(t, err, "device lost")

	err = Export(smallSettings(), func(sketch.Props) (sketch.Sketch, error) {
		return nil, nil
	}, out)
	assert.Error(t, err)

	bad := smallSettings()
	bad.Dimensions = [2]int{0, 0}
	assert.Error(t, Export(bad, sketch.NewShaderCube, out))
	assert.NoFileExists(t, out)
}

func TestExportPath(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	assert.Equal(t, filepath.Join("out", "shader-cube-2024.03.09-14.05.07-42.png"), ExportPath("out", 42, now))
}

func TestPlayhead(t *testing.T) {
	assert.Equal(t, float32(0), playhead(0))
	assert.InDelta(t, 0.5, playhead(2500*time.Millisecond), 1e-6)
}

func TestIsSettingsChange(t *testing.T) {
	path := filepath.Join(string(filepath.Separator), "tmp", "settings.toml")
	assert.True(t, isSettingsChange(fsnotify.Event{Name: path, Op: fsnotify.Write}, path))
	assert.True(t, isSettingsChange(fsnotify.Event{Name: path, Op: fsnotify.Create}, path))
	assert.False(t, isSettingsChange(fsnotify.Event{Name: path, Op: fsnotify.Chmod}, path))
	assert.False(t, isSettingsChange(fsnotify.Event{Name: path + ".swp", Op: fsnotify.Write}, path))
}

func TestSettingsWatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("seed = 1\n"), 0o644))

	w, err := newSettingsWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("seed = 2\n"), 0o644))
	select {
	case <-w.C:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}
}

