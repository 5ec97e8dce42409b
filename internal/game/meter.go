package game

import "math"

// Meter is a value held inside [0, Max].
type Meter struct {
	Value float64
	Max   float64
}

func NewMeter(value, max float64) Meter {
	return Meter{Value: clampF(value, 0, max), Max: max}
}

// Add moves the value by delta (negative drains) and clamps it.
func (m *Meter) Add(delta float64) {
	m.Value = clampF(m.Value+delta, 0, m.Max)
}

// Spend takes amount if the meter holds at least that much.
func (m *Meter) Spend(amount float64) bool {
	if m.Value < amount {
		return false
	}
	m.Value -= amount
	return true
}

func (m *Meter) Fraction() float64 {
	if m.Max <= 0 {
		return 0
	}
	return clampF(m.Value/m.Max, 0, 1)
}

// Rounded is the value as shown on the numeric displays.
func (m *Meter) Rounded() int {
	return int(math.Round(m.Value))
}

// MeterColor returns green/yellow/red based on fraction.
func MeterColor(frac float64) RGB {
	if frac > 0.6 {
		return RGB{R: 60, G: 220, B: 60}
	}
	if frac > 0.3 {
		return RGB{R: 220, G: 220, B: 60}
	}
	return RGB{R: 220, G: 60, B: 60}
}
