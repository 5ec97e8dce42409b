package audio

import "math"

// Samples are float32 little-endian, interleaved stereo: 8 bytes per frame.
const frameBytes = 8

func makeBuf(frames int) []byte { return make([]byte, frames*frameBytes) }

// putStereo writes a [-1,1] sample to both channels of frame i.
func putStereo(buf []byte, i int, sample float64) {
	putStereoLR(buf, i, sample, sample)
}

func putStereoLR(buf []byte, i int, left, right float64) {
	lv := math.Float32bits(float32(left))
	rv := math.Float32bits(float32(right))
	o := i * frameBytes
	buf[o] = byte(lv)
	buf[o+1] = byte(lv >> 8)
	buf[o+2] = byte(lv >> 16)
	buf[o+3] = byte(lv >> 24)
	buf[o+4] = byte(rv)
	buf[o+5] = byte(rv >> 8)
	buf[o+6] = byte(rv >> 16)
	buf[o+7] = byte(rv >> 24)
}

// frameAt decodes frame i back into left and right samples.
func frameAt(buf []byte, i int) (float64, float64) {
	o := i * frameBytes
	l := uint32(buf[o]) | uint32(buf[o+1])<<8 | uint32(buf[o+2])<<16 | uint32(buf[o+3])<<24
	r := uint32(buf[o+4]) | uint32(buf[o+5])<<8 | uint32(buf[o+6])<<16 | uint32(buf[o+7])<<24
	return float64(math.Float32frombits(l)), float64(math.Float32frombits(r))
}

// softSat saturates smoothly instead of clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr is an envelope at normalized progress [0,1]; attack, decay and
// release are fractions of the whole duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm is a two-operator FM sample.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances seed and returns white noise in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// bell mixes a staircase of ringing FM notes, each starting step seconds
// after the previous one.
func bell(notes []float64, step, tail, ratio, index, gain float64) []byte {
	noteStep := int(step * SampleRate)
	total := len(notes)*noteStep + int(tail*SampleRate)
	mix := make([]float64, total)
	for fi, freq := range notes {
		start := fi * noteStep
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			np := float64(j) / float64(dur)
			env := adsr(np, 0.003, 0.6, 0.05, 0.3)
			s := fm(t, freq, ratio, index*env) * env * gain
			s += math.Sin(2*math.Pi*freq*2*t) * env * gain * 0.25
			mix[start+j] += s
		}
	}
	buf := makeBuf(total)
	for i, s := range mix {
		putStereo(buf, i, softSat(s))
	}
	return buf
}
