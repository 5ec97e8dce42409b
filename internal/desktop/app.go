// Package desktop runs the simulation in a GLFW window with OpenGL rendering
// and oto audio.
package desktop

import (
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"nebula/internal/audio"
	"nebula/internal/config"
	"nebula/internal/game"
	"nebula/internal/hud"
	"nebula/internal/render"
)

// Volumes for cues and the background drone.
const (
	cueVolume   = 0.6
	droneVolume = 0.25
)

// Options are frontend switches that are not simulation settings.
type Options struct {
	Verbose bool
}

// Run opens the window and blocks until it is closed.
func Run(cfg config.Settings, opts Options) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	window, err := initWindow(cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	if opts.Verbose {
		log.Printf("OpenGL %s", gl.GoStr(gl.GetString(gl.VERSION)))
	}

	fbW, fbH := window.GetFramebufferSize()
	sim, err := game.New(cfg.Config, float64(fbW), float64(fbH))
	if err != nil {
		return err
	}

	var snd *audio.System
	if !cfg.Mute {
		snd, err = audio.New(cueVolume)
		if err != nil {
			log.Printf("audio init failed (continuing without sound): %v", err)
		} else {
			snd.Attach(sim.Bus)
			snd.StartAmbient(droneVolume)
			defer snd.Close()
		}
	}

	rend, err := render.New()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()
	if err := rend.Resize(fbW, fbH); err != nil {
		return fmt.Errorf("renderer: %w", err)
	}

	var toasts hud.Toasts
	toasts.Attach(sim.Bus)

	input := NewInput()
	window.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		input.inside = entered
	})
	if x, y := window.GetCursorPos(); x >= 0 && y >= 0 {
		w, h := window.GetSize()
		input.inside = x < float64(w) && y < float64(h)
	}

	var (
		clock  game.Clock
		canvas game.Canvas
		lines  []hud.Line
		stats  frameStats
	)
	for !window.ShouldClose() {
		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}

		fbW, fbH = window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			// Minimised. The clock is not stepped, so the next frame's raw
			// delta carries this time into the ability timers.
			glfw.WaitEventsTimeout(0.1)
			continue
		}
		dt := clock.Step(glfw.GetTime())
		sim.Resize(float64(fbW), float64(fbH))
		if err := rend.Resize(fbW, fbH); err != nil {
			return fmt.Errorf("renderer: %w", err)
		}

		input.Apply(window, sim, fbW, fbH)
		sim.Tick(clock.Raw)
		toasts.Update(dt)

		sim.Draw(&canvas)
		scale := textScale(window, fbW)
		lines = hud.Layout(lines[:0], hud.ViewOf(sim, &toasts), metrics(rend, scale), fbW, fbH)
		rend.Frame(&canvas, lines, float32(scale))

		window.SwapBuffers()

		if opts.Verbose {
			stats.add(dt, len(sim.Particles))
		}
	}
	return nil
}

// textScale grows the HUD font on high-DPI framebuffers.
func textScale(window *glfw.Window, fbW int) int {
	winW, _ := window.GetSize()
	if winW <= 0 || fbW <= winW {
		return 1
	}
	return max(1, fbW/winW)
}

func metrics(r *render.Renderer, scale int) hud.Metrics {
	cw, ch := r.GlyphSize()
	return hud.Metrics{CharW: cw * scale, LineH: (ch + 3) * scale, Margin: 10 * scale}
}

// frameStats logs frame rate and particle count once a second.
type frameStats struct {
	elapsed time.Duration
	frames  int
}

func (f *frameStats) add(dt float64, particles int) {
	f.elapsed += time.Duration(dt * float64(time.Second))
	f.frames++
	if f.elapsed < time.Second {
		return
	}
	log.Printf("fps=%.1f particles=%d", float64(f.frames)/f.elapsed.Seconds(), particles)
	f.elapsed = 0
	f.frames = 0
}
