// Package terminal runs the simulation full-screen in a terminal with tcell.
// Each cell stands for a CellW x CellH block of simulation pixels.
package terminal

import (
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"nebula/internal/audio"
	"nebula/internal/config"
	"nebula/internal/game"
	"nebula/internal/hud"
)

// ParticleStep is how many particles +/- add or remove.
const ParticleStep = 25

const frameInterval = 16 * time.Millisecond

var hudMetrics = hud.Metrics{CharW: 1, LineH: 1, Margin: 1}

// App ties a screen to a simulation. It is driven from a single goroutine.
type App struct {
	screen tcell.Screen
	sim    *game.Sim
	raster *Raster
	toasts hud.Toasts

	canvas game.Canvas
	lines  []hud.Line
}

// New sizes a simulation to an initialized screen.
func New(screen tcell.Screen, cfg game.Config) (*App, error) {
	cols, rows := screen.Size()
	w, h := max(cols, 1)*CellW, max(rows, 1)*CellH
	sim, err := game.New(cfg, float64(w), float64(h))
	if err != nil {
		return nil, err
	}
	a := &App{screen: screen, sim: sim, raster: NewRaster(cols, rows)}
	a.toasts.Attach(sim.Bus)
	return a, nil
}

func (a *App) Sim() *game.Sim { return a.sim }

// HandleEvent applies one terminal event. It returns false when the user
// asked to quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventMouse:
		x, y := ev.Position()
		a.pointAt(x, y)
	case *tcell.EventFocus:
		if !ev.Focused {
			a.sim.ClearPointer()
		}
	case *tcell.EventResize:
		a.screen.Sync()
		a.resize()
	}
	return true
}

func (a *App) handleKey(k tcell.Key, ch rune) bool {
	switch k {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}
	switch ch {
	case 'q', 'Q':
		return false
	case 'a', 'A':
		a.sim.SetMode(game.ModeAttract)
	case 'r', 'R':
		a.sim.SetMode(game.ModeRepel)
	case ' ':
		a.sim.TriggerSupernova()
	case 'd', 'D':
		a.sim.ActivateDoubleHole()
	case 't', 'T':
		a.sim.ActivateTimeWarp()
	case '+', '=':
		_ = a.sim.SetParticleCount(min(len(a.sim.Particles)+ParticleStep, game.MaxParticleCount))
	case '-', '_':
		_ = a.sim.SetParticleCount(max(len(a.sim.Particles)-ParticleStep, 0))
	}
	return true
}

// pointAt moves the pointer to the centre of cell (x, y).
func (a *App) pointAt(x, y int) {
	a.sim.SetPointer((float64(x)+0.5)*CellW, (float64(y)+0.5)*CellH)
}

func (a *App) resize() {
	cols, rows := a.screen.Size()
	a.raster.Resize(cols, rows)
	a.sim.Resize(float64(cols*CellW), float64(rows*CellH))
}

// Step advances the simulation by dt seconds and redraws the screen.
func (a *App) Step(dt float64) {
	a.sim.Tick(dt)
	a.toasts.Update(min(dt, game.MaxFrameDelta))
	a.draw()
	a.screen.Show()
}

func (a *App) draw() {
	a.sim.Draw(&a.canvas)
	a.raster.Replay(&a.canvas)
	a.raster.Blit(a.screen)

	a.lines = hud.Layout(a.lines[:0], hud.ViewOf(a.sim, &a.toasts), hudMetrics, a.raster.Cols, a.raster.Rows)
	for _, l := range a.lines {
		a.text(l)
	}
}

// text writes a HUD line over the raster, keeping each cell's background.
func (a *App) text(l hud.Line) {
	r, g, b := l.Col.Floats()
	k := float32(l.Alpha)
	fg := toColor(rgb{r * k, g * k, b * k})
	x := l.X
	for _, ch := range l.Text {
		if l.Y >= 0 && l.Y < a.raster.Rows && x >= 0 && x < a.raster.Cols {
			cr, cg, cb := a.raster.Color(x, l.Y)
			bg := toColor(rgb{cr * 0.35, cg * 0.35, cb * 0.35})
			a.screen.SetContent(x, l.Y, ch, nil, tcell.StyleDefault.Foreground(fg).Background(bg).Bold(true))
		}
		x++
	}
}

// Options are frontend switches that are not simulation settings.
type Options struct {
	Verbose bool
}

// Run takes over the terminal until the user quits.
func Run(cfg config.Settings, opts Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	screen.EnableMouse()
	screen.EnableFocus()
	screen.HideCursor()

	app, err := New(screen, cfg.Config)
	if err != nil {
		screen.Fini()
		return err
	}

	// Audio failures are reported after the screen is restored.
	var audioErr error
	var snd *audio.System
	if !cfg.Mute {
		if snd, audioErr = audio.New(0.6); audioErr == nil {
			snd.Attach(app.sim.Bus)
			snd.StartAmbient(0.25)
		}
	}

	frames := app.loop()

	snd.Close()
	screen.Fini()
	if audioErr != nil {
		log.Printf("audio init failed (continued without sound): %v", audioErr)
	}
	if opts.Verbose {
		log.Printf("terminal session ended after %d frames", frames)
	}
	return nil
}

func (a *App) loop() int {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pumpEvents(a.screen.PollEvent, events, done)

	start := time.Now()
	var clock game.Clock
	frames := 0
	for {
		select {
		case ev := <-events:
			if !a.HandleEvent(ev) {
				return frames
			}
		case <-ticker.C:
			clock.Step(time.Since(start).Seconds())
			a.Step(clock.Raw)
			frames++
		}
	}
}

// pumpEvents forwards polled events until poll returns nil or done closes.
func pumpEvents(poll func() tcell.Event, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}
