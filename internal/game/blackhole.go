package game

import "math"

// holeTuning holds the per-kind animation speeds (per 16 ms frame).
type holeTuning struct {
	rotSpeed   float64
	pulseSpeed float64
	pulseAmp   float64
	diskScale  float64 // accretion disk radius as a multiple of size
	disk, rim  RGB
}

var (
	permanentHole = holeTuning{rotSpeed: 0.005, pulseSpeed: 0.05, pulseAmp: 3, diskScale: 2.0, disk: Palette.HoleDisk, rim: Palette.HoleRim}
	temporaryHole = holeTuning{rotSpeed: 0.02, pulseSpeed: 0.12, pulseAmp: 5, diskScale: 2.5, disk: Palette.TempHoleDisk, rim: Palette.TempHoleRim}
)

// BlackHole is a point attractor with a pulsing radius.
type BlackHole struct {
	X, Y      float64
	Size      float64 // base radius
	Temporary bool

	Rotation float64
	Pulse    float64
	Age      float64 // frames since creation
}

func NewBlackHole(x, y float64, temporary bool) *BlackHole {
	size := HoleSize
	if temporary {
		size = TempHoleSize
	}
	return &BlackHole{X: x, Y: y, Size: size, Temporary: temporary}
}

func (h *BlackHole) tuning() *holeTuning {
	if h.Temporary {
		return &temporaryHole
	}
	return &permanentHole
}

// Update advances rotation and pulse phase; dt is in seconds.
func (h *BlackHole) Update(dt float64) {
	if dt <= 0 {
		return
	}
	frames := dt / BaseFrame
	t := h.tuning()
	h.Rotation = math.Mod(h.Rotation+t.rotSpeed*frames, 2*math.Pi)
	h.Pulse = math.Mod(h.Pulse+t.pulseSpeed*frames, 2*math.Pi)
	h.Age += frames
}

// PulseSize is the base size plus the current sinusoidal oscillation.
func (h *BlackHole) PulseSize() float64 {
	return h.Size + math.Sin(h.Pulse)*h.tuning().pulseAmp
}

// PullRadius is the distance within which particles feel the hole.
func (h *BlackHole) PullRadius() float64 {
	return h.PulseSize() * HolePullScale
}

// Draw renders the accretion disk and the core. Temporary holes grow in with
// an elastic overshoot.
func (h *BlackHole) Draw(cv *Canvas) {
	t := h.tuning()
	scale := 1.0
	if h.Temporary {
		scale = EaseOutElastic(h.Age / HoleSpawnInFrames)
	}
	size := h.PulseSize() * scale
	if size <= 0 {
		return
	}
	cv.Sprite(ShapeDisk, h.X, h.Y, size*t.diskScale, t.disk, 0.35, h.Rotation)
	cv.Sprite(ShapeHole, h.X, h.Y, size, t.rim, 0.8, 0)
}
