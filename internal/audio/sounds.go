package audio

import "math"

// Generate synthesizes a cue. seed varies the noise so repeats differ.
func Generate(kind Sound, seed uint64) []byte {
	switch kind {
	case SoundSupernova:
		return genSupernova(seed)
	case SoundLevelUp:
		return bell([]float64{440, 554.37, 659.25, 880, 1108.73}, 0.09, 0.25, 3.5, 5.5, 0.28)
	case SoundUnlock:
		return bell([]float64{523.25, 659.25, 783.99, 1046.5}, 0.075, 0.3, 2.756, 5.0, 0.34)
	case SoundAchievement:
		return bell([]float64{783.99, 1174.66}, 0.11, 0.35, 2.0, 3.0, 0.3)
	case SoundDoubleHole:
		return genImplosion()
	case SoundTimeWarp:
		return genWarp()
	case SoundExpire:
		return genExpire()
	}
	return nil
}

// genSupernova is a deep boom: a falling sub sine, a noise crack at the
// start, a band-passed body and a long rumble tail.
func genSupernova(seed uint64) []byte {
	const dur = 1.1
	n := int(dur * SampleRate)
	buf := makeBuf(n)
	if seed == 0 {
		seed = 1
	}
	lp1, lp2, rum := 0.0, 0.0, 0.0
	subPhase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)

		subFreq := 90 * math.Pow(16.0/90.0, p*2.6)
		subPhase += 2 * math.Pi * subFreq / SampleRate
		sub := math.Sin(subPhase) * math.Exp(-p*3.2) * 0.78

		crack := 0.0
		if p < 0.018 {
			crack = lcg(&seed) * (1 - p/0.018) * 0.6
		}

		raw := lcg(&seed)
		lp1 = lp1*0.76 + raw*0.24
		lp2 = lp2*0.975 + raw*0.025
		body := (lp1 - lp2) * math.Exp(-p*4.0) * 0.47

		rum = rum*0.95 + lcg(&seed)*0.05
		rumble := rum * math.Exp(-p*1.5) * 0.26

		// Slow stereo drift so the tail feels wide.
		pan := 0.5 + 0.35*math.Sin(2*math.Pi*0.9*p)
		s := softSat((sub + crack + body + rumble) * 0.86)
		putStereoLR(buf, i, s*(1-0.3*pan), s*(0.7+0.3*pan))
	}
	return buf
}

// genImplosion: a rising FM sweep that collapses into a low thud.
func genImplosion() []byte {
	n := int(0.55 * SampleRate)
	buf := makeBuf(n)
	phase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		freq := 110 + 520*p*p
		phase += 2 * math.Pi * freq / SampleRate
		env := adsr(p, 0.6, 0.3, 0.2, 0.1)
		s := math.Sin(phase+2.4*(1-p)*math.Sin(2*math.Pi*freq*0.5*t)) * env * 0.4
		if p > 0.82 {
			s += math.Sin(2*math.Pi*55*t) * math.Exp(-(p-0.82)*30) * 0.5
		}
		putStereo(buf, i, softSat(s))
	}
	return buf
}

// genWarp: a detuned pad whose pitch bends down, like tape slowing.
func genWarp() []byte {
	n := int(0.9 * SampleRate)
	buf := makeBuf(n)
	chord := [3]float64{261.63, 329.63, 392.0}
	var phases [3]float64
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		bend := math.Pow(0.5, p)
		env := adsr(p, 0.08, 0.3, 0.5, 0.4)
		l, r := 0.0, 0.0
		for k, f := range chord {
			phases[k] += 2 * math.Pi * f * bend / SampleRate
			v := math.Sin(phases[k] + 0.8*env*math.Sin(phases[k]*1.5))
			if k%2 == 0 {
				l += v * 0.2
				r += v * 0.14
			} else {
				l += v * 0.14
				r += v * 0.2
			}
		}
		putStereoLR(buf, i, softSat(l*env), softSat(r*env))
	}
	return buf
}

// genExpire: short descending blip.
func genExpire() []byte {
	n := SampleRate * 120 / 1000
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.01, 0.5, 0.0, 0.2)
		s := fm(t, 880-500*p, 1.0, 0.8) * env * 0.3
		putStereo(buf, i, softSat(s))
	}
	return buf
}
