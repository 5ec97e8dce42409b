package desktop

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"nebula/internal/game"
)

// ParticleStep is how many particles +/- add or remove.
const ParticleStep = 25

type Input struct {
	prevKeys map[glfw.Key]bool
	inside   bool
}

func NewInput() *Input {
	return &Input{prevKeys: make(map[glfw.Key]bool)}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// anyJustPressed edge-triggers on the first of keys; every key's state is
// still recorded.
func (in *Input) anyJustPressed(window *glfw.Window, keys ...glfw.Key) bool {
	hit := false
	for _, k := range keys {
		if in.JustPressed(window, k) {
			hit = true
		}
	}
	return hit
}

// cursorPos converts the cursor to framebuffer pixels.
func cursorPos(window *glfw.Window, fbW, fbH int) (float64, float64, bool) {
	cx, cy := window.GetCursorPos()
	winW, winH := window.GetSize()
	if winW <= 0 || winH <= 0 {
		return 0, 0, false
	}
	return cx * float64(fbW) / float64(winW), cy * float64(fbH) / float64(winH), true
}

// Apply forwards pointer and key state to the simulation.
func (in *Input) Apply(window *glfw.Window, s *game.Sim, fbW, fbH int) {
	if in.inside {
		if x, y, ok := cursorPos(window, fbW, fbH); ok {
			s.SetPointer(x, y)
		}
	} else {
		s.ClearPointer()
	}

	if in.JustPressed(window, glfw.KeyA) {
		s.SetMode(game.ModeAttract)
	}
	if in.JustPressed(window, glfw.KeyR) {
		s.SetMode(game.ModeRepel)
	}
	if in.JustPressed(window, glfw.KeySpace) {
		s.TriggerSupernova()
	}
	if in.JustPressed(window, glfw.KeyD) {
		s.ActivateDoubleHole()
	}
	if in.JustPressed(window, glfw.KeyT) {
		s.ActivateTimeWarp()
	}
	if in.anyJustPressed(window, glfw.KeyEqual, glfw.KeyKPAdd) {
		_ = s.SetParticleCount(min(len(s.Particles)+ParticleStep, game.MaxParticleCount))
	}
	if in.anyJustPressed(window, glfw.KeyMinus, glfw.KeyKPSubtract) {
		_ = s.SetParticleCount(max(len(s.Particles)-ParticleStep, 0))
	}
}
