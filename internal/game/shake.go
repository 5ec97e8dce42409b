package game

// Shake is a decaying screen-space jitter.
type Shake struct {
	X, Y      float64 // current offset in pixels
	Timer     float64 // seconds left
	Intensity float64 // max offset
}

// Add starts a shake, keeping the stronger of the current and new values.
func (s *Shake) Add(intensity, duration float64) {
	if intensity > s.Intensity {
		s.Intensity = intensity
	}
	if duration > s.Timer {
		s.Timer = duration
	}
}

// Update decays the shake and picks a fresh offset.
func (s *Shake) Update(dt float64, r *Rand) {
	if s.Timer <= 0 {
		*s = Shake{}
		return
	}
	s.Timer -= dt
	if s.Timer < 0 {
		s.Timer = 0
	}
	t := s.Timer
	mag := s.Intensity * (t / (t + 0.08))
	s.X = r.RangeF(-mag, mag)
	s.Y = r.RangeF(-mag, mag)
}
