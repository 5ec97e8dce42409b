package audio

import "math"

// drone is an endless slow pad over a minor progression. It streams
// straight into the device, so Read never returns EOF.
type drone struct {
	t     float64
	seed  uint64
	chord int
	lp    float64
}

var droneChords = [][]float64{
	{110.0, 130.81, 164.81}, // Am
	{87.31, 110.0, 130.81},  // F
	{98.0, 123.47, 146.83},  // G
	{82.41, 103.83, 123.47}, // E
}

const droneBar = 8.0 // seconds per chord

func newDrone(seed uint64) *drone {
	if seed == 0 {
		seed = 1
	}
	return &drone{seed: seed}
}

func (d *drone) Read(p []byte) (int, error) {
	frames := len(p) / frameBytes
	for i := 0; i < frames; i++ {
		l, r := d.next()
		putStereoLR(p, i, l, r)
	}
	return frames * frameBytes, nil
}

func (d *drone) next() (float64, float64) {
	bar := int(d.t / droneBar)
	chord := droneChords[bar%len(droneChords)]
	pos := math.Mod(d.t, droneBar) / droneBar
	env := 0.55 + 0.45*math.Sin(math.Pi*pos)

	s := pad(d.t, chord, env)
	d.lp = d.lp*0.995 + lcg(&d.seed)*0.005
	air := d.lp * 0.6

	d.t += 1.0 / SampleRate
	wob := 0.08 * math.Sin(2*math.Pi*0.07*d.t)
	return softSat(s*(1+wob) + air), softSat(s*(1-wob) + air)
}

// pad is three detuned FM voices per chord note.
func pad(t float64, chord []float64, env float64) float64 {
	s := 0.0
	detunes := [3]float64{-0.003, 0.0, 0.004}
	for _, freq := range chord {
		for _, dt := range detunes {
			f := freq * (1 + dt)
			vib := 1 + 0.003*math.Sin(2*math.Pi*(0.21+f*0.0007)*t)
			s += fm(t, f*vib, 1.45, 0.7*env) * env * 0.05
		}
	}
	return s
}
