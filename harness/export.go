package harness

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"shader_cube/raster"
	"shader_cube/sketch"
	"time"
)

const EXPORT_PREFIX = "shader-cube"

// Export runs a sketch once without a window: setup, resize to the configured dimensions, render and unload. The
// frame is written to path as PNG.
func Export(s sketch.Settings, setup sketch.SetupFunc, path string) error {
	if err := s.Validate(); err != nil {
		return err
	}
	r := raster.New(s.Attributes.Antialias)
	rnd := sketch.NewRandom(s.Seed)
	start := time.Now()
	sk, err := safeSetup(setup, sketch.Props{Renderer: r, Settings: s, Random: rnd})
	if err != nil {
		return err
	}
	defer sk.Unload()

	sk.Resize(sketch.ResizeProps{
		PixelRatio:     1,
		ViewportWidth:  s.Dimensions[0],
		ViewportHeight: s.Dimensions[1],
	})
	if err := sk.Render(sketch.RenderProps{}); err != nil {
		return fmt.Errorf("rendering export: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating export directory: %w", err)
		}
	}
	if err := r.SavePNG(path); err != nil {
		return err
	}
	log.Printf("Exported seed %d in %v", rnd.Seed(), time.Since(start))
	return nil
}

// ExportPath names an export by time and seed, so repeated exports never overwrite each other.
func ExportPath(dir string, seed uint64, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s-%s-%d.png", EXPORT_PREFIX, now.Format("2006.01.02-15.04.05"), seed))
}

// safeSetup turns a panic during setup into an error. The Vulkan layer panics on API failures.
func safeSetup(setup sketch.SetupFunc, p sketch.Props) (sk sketch.Sketch, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("sketch setup failed: %v", rec)
		}
	}()
	sk, err = setup(p)
	if err != nil {
		return nil, fmt.Errorf("sketch setup failed: %w", err)
	}
	if sk == nil {
		return nil, fmt.Errorf("sketch setup returned no sketch")
	}
	return sk, nil
}
