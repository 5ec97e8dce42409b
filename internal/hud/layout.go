package hud

import (
	"fmt"

	"nebula/internal/game"
)

// Line is one run of text at a position in frontend units.
type Line struct {
	X, Y  int
	Text  string
	Col   game.RGB
	Alpha float64
}

// Metrics sizes the layout: a glyph advance, a line advance and the margin
// kept from the surface edges. The desktop passes pixels, the terminal
// passes cells.
type Metrics struct {
	CharW, LineH int
	Margin       int
}

// Badge is an achievement as shown in the list.
type Badge struct {
	Name   string
	Goal   string
	Earned bool
}

// Power is an ability as shown in the help row.
type Power struct {
	Name     string
	Key      string
	Unlocked bool
	Active   bool
}

// View is the snapshot the HUD is laid out from.
type View struct {
	Readout   game.Readout
	Badges    []Badge
	Abilities []Power
	Toasts    []Toast
}

var (
	colText   = game.RGB{R: 200, G: 210, B: 235}
	colDim    = game.RGB{R: 110, G: 115, B: 140}
	colEarned = game.RGB{R: 90, G: 230, B: 120}
	colActive = game.RGB{R: 255, G: 210, B: 90}
	colToast  = game.RGB{R: 255, G: 255, B: 255}
)

// ViewOf captures what the HUD needs from the simulation.
func ViewOf(s *game.Sim, ts *Toasts) View {
	v := View{Readout: s.Readout()}
	for _, a := range game.Achievements {
		v.Badges = append(v.Badges, Badge{Name: a.String(), Goal: a.Goal(), Earned: s.Prog.Earned(a)})
	}
	for _, a := range []game.Ability{game.AbilityDoubleHole, game.AbilityTimeWarp} {
		v.Abilities = append(v.Abilities, Power{
			Name:     a.String(),
			Key:      a.Key(),
			Unlocked: s.Prog.Unlocked(a),
			Active:   s.Active(a),
		})
	}
	if ts != nil {
		v.Toasts = ts.Active()
	}
	return v
}

// Layout appends the HUD lines for a w×h surface to dst.
func Layout(dst []Line, v View, m Metrics, w, h int) []Line {
	r := v.Readout
	x, y := m.Margin, m.Margin
	add := func(text string, col game.RGB) {
		dst = append(dst, Line{X: x, Y: y, Text: text, Col: col, Alpha: 1})
		y += m.LineH
	}

	add(fmt.Sprintf("Power:  %d", r.Power), game.MeterColor(float64(r.Power)/game.PowerMax))
	add(fmt.Sprintf("Health: %d", r.Health), game.MeterColor(float64(r.Health)/game.HealthMax))
	add(fmt.Sprintf("Level:  %d  (%d/%d xp)", r.Level, r.Experience, r.Threshold), colText)
	add(fmt.Sprintf("Mode:   %s", r.Mode), colText)
	add(fmt.Sprintf("Particles: %d", r.Particles), colDim)

	// Achievements, right-aligned.
	y = m.Margin
	right := func(text string, col game.RGB) {
		x = w - m.Margin - len(text)*m.CharW
		if x < m.Margin {
			x = m.Margin
		}
		add(text, col)
	}
	right("Achievements", colText)
	for _, b := range v.Badges {
		if b.Earned {
			right("* "+b.Name, colEarned)
		} else {
			right(b.Name+": "+b.Goal, colDim)
		}
	}

	// Controls along the bottom.
	x = m.Margin
	y = h - m.Margin - 2*m.LineH
	help := "[A] attract  [R] repel  [Space] supernova  [+/-] particles"
	add(help, colDim)
	row := ""
	for i, a := range v.Abilities {
		if i > 0 {
			row += "  "
		}
		switch {
		case a.Active:
			row += fmt.Sprintf("[%s] %s (active)", a.Key, a.Name)
		case a.Unlocked:
			row += fmt.Sprintf("[%s] %s", a.Key, a.Name)
		default:
			row += fmt.Sprintf("[%s] locked", a.Key)
		}
	}
	col := colDim
	for _, a := range v.Abilities {
		if a.Active {
			col = colActive
		}
	}
	add(row, col)

	// Toasts, centered, newest at the bottom of the stack.
	y = h / 3
	for _, t := range v.Toasts {
		x = (w - len(t.Text)*m.CharW) / 2
		if x < 0 {
			x = 0
		}
		dst = append(dst, Line{X: x, Y: y, Text: t.Text, Col: colToast, Alpha: t.Alpha()})
		y += m.LineH
	}
	return dst
}
