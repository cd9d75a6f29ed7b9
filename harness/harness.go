// Package harness drives sketches: it owns the window, calls the lifecycle callbacks and handles export and reload.
package harness

import (
	"fmt"
	"log"
	"shader_cube/sketch"
	"time"

	"github.com/veandco/go-sdl2/sdl"
)

// IDLE_WAIT_MS bounds how long the loop blocks for events while nothing needs drawing, so reloads are noticed.
const IDLE_WAIT_MS = 100

type Options struct {
	// SettingsPath is watched for changes when set
	SettingsPath string
	Settings     sketch.Settings
	Setup        sketch.SetupFunc
}

// runner holds the state of one windowed session. All fields are owned by the loop thread.
type runner struct {
	opts     Options
	settings sketch.Settings
	canvas   canvas

	renderer sketch.Renderer
	sketch   sketch.Sketch
	seed     uint64

	start       time.Time
	frame       int
	needsRender bool
	minimized   bool
	close       bool
}

// Run opens a window sized to fit the display and runs the sketch in it until the window is closed or Escape is
// pressed. Without animation the sketch only renders after setup, resizes and exposes. Ctrl+S exports the current
// seed at full size through the software renderer.
func Run(opts Options) error {
	if err := opts.Settings.Validate(); err != nil {
		return err
	}
	c, err := newCanvas(opts.Settings)
	if err != nil {
		return err
	}
	defer c.Destroy()

	r := &runner{
		opts:     opts,
		settings: opts.Settings,
		canvas:   c,
	}
	if err := r.startSketch(); err != nil {
		return err
	}
	defer r.unload()

	var reload <-chan struct{}
	if opts.SettingsPath != "" {
		w, err := newSettingsWatcher(opts.SettingsPath)
		if err != nil {
			return err
		}
		defer w.Close()
		reload = w.C
	}
	return r.loop(reload)
}

// startSketch creates a renderer, runs setup and resizes to the current viewport.
func (r *runner) startSketch() (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("creating renderer failed: %v", rec)
		}
	}()
	r.renderer = r.canvas.NewRenderer(r.settings)
	rnd := sketch.NewRandom(r.settings.Seed)
	sk, err := safeSetup(r.opts.Setup, sketch.Props{Renderer: r.renderer, Settings: r.settings, Random: rnd})
	if err != nil {
		r.renderer.Dispose()
		r.renderer = nil
		return err
	}
	r.sketch = sk
	r.seed = rnd.Seed()
	r.start = time.Now()
	r.frame = 0
	r.resize()
	log.Printf("Started sketch with seed %d", r.seed)
	return nil
}

func (r *runner) unload() {
	if r.sketch == nil {
		return
	}
	r.sketch.Unload()
	r.sketch = nil
	r.renderer = nil
}

func (r *runner) resize() {
	vp := r.canvas.Viewport()
	if vp.ViewportWidth <= 0 || vp.ViewportHeight <= 0 {
		return
	}
	r.sketch.Resize(vp)
	r.needsRender = true
}

func (r *runner) loop(reload <-chan struct{}) error {
	frameDur := time.Second / time.Duration(r.settings.Fps)
	frames := 0
	t0 := time.Now()
	for !r.close {
		for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
			r.handle(ev)
		}
		select {
		case <-reload:
			r.reload()
		default:
		}
		if r.close {
			break
		}

		if r.minimized || !(r.settings.Animate || r.needsRender) {
			// Sleep until an event changes something
			if ev := sdl.WaitEventTimeout(IDLE_WAIT_MS); ev != nil {
				r.handle(ev)
			}
			continue
		}

		frameStart := time.Now()
		if err := r.render(); err != nil {
			return err
		}
		frames++
		if r.settings.Animate {
			if rest := frameDur - time.Since(frameStart); rest > 0 {
				time.Sleep(rest)
			}
		}
	}
	dt := time.Since(t0)
	log.Printf("Elapsed: %v, rendered %d frames", dt, frames)
	return nil
}

func (r *runner) render() error {
	r.needsRender = false
	elapsed := time.Since(r.start)
	props := sketch.RenderProps{
		Time:  elapsed,
		Frame: r.frame,
	}
	if r.settings.Animate {
		props.Playhead = playhead(elapsed)
	}
	if err := r.sketch.Render(props); err != nil {
		return fmt.Errorf("rendering frame %d: %w", r.frame, err)
	}
	r.frame++
	return r.canvas.Present(r.renderer)
}

// playhead loops through [0, 1) once per second.
func playhead(t time.Duration) float32 {
	return float32(t%time.Second) / float32(time.Second)
}

func (r *runner) handle(event sdl.Event) {
	switch ev := event.(type) {
	case *sdl.QuitEvent:
		r.close = true
	case *sdl.WindowEvent:
		switch ev.Event {
		case sdl.WINDOWEVENT_SIZE_CHANGED:
			r.resize()
		case sdl.WINDOWEVENT_EXPOSED:
			r.needsRender = true
		case sdl.WINDOWEVENT_MINIMIZED:
			r.setMinimized(true)
		case sdl.WINDOWEVENT_RESTORED:
			r.setMinimized(false)
			r.needsRender = true
		case sdl.WINDOWEVENT_CLOSE:
			r.close = true
		}
	case *sdl.KeyboardEvent:
		if ev.Type != sdl.KEYDOWN || ev.Repeat != 0 {
			return
		}
		switch {
		case ev.Keysym.Sym == sdl.K_ESCAPE:
			r.close = true
		case ev.Keysym.Sym == sdl.K_s && isCtrl(ev.Keysym.Mod):
			r.export()
		}
	}
}

func isCtrl(mod uint16) bool {
	return mod&uint16(sdl.KMOD_CTRL|sdl.KMOD_GUI) != 0
}

func (r *runner) setMinimized(m bool) {
	r.minimized = m
	r.canvas.SetMinimized(m)
}

// export renders the running sketch again at full size. Errors are logged, they must not end the session.
func (r *runner) export() {
	s := r.settings
	s.Seed = r.seed
	path := ExportPath(s.ExportDir, r.seed, time.Now())
	log.Printf("Exporting %dx%d to %s", s.Dimensions[0], s.Dimensions[1], path)
	if err := Export(s, r.opts.Setup, path); err != nil {
		log.Printf("Export failed: %v", err)
	}
}

// reload unloads the sketch, reads the settings again and reruns setup on the same window. Invalid settings keep the
// running sketch.
func (r *runner) reload() {
	s, err := sketch.LoadSettings(r.opts.SettingsPath)
	if err != nil {
		log.Printf("Ignoring settings change: %v", err)
		return
	}
	if s.Context != r.settings.Context {
		log.Printf("Context changed from '%s' to '%s', restart to apply", r.settings.Context, s.Context)
		s.Context = r.settings.Context
	}
	log.Printf("Settings changed, reloading sketch")
	r.unload()
	r.settings = s
	if err := r.startSketch(); err != nil {
		log.Printf("Reload failed: %v", err)
		r.close = true
	}
}
