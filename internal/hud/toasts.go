package hud

import "nebula/internal/game"

// Notification timing, in seconds.
const (
	ToastVisible = 2.0
	ToastFade    = 1.0
	MaxToasts    = 5
)

// Toast is a transient notification.
type Toast struct {
	Text string
	Age  float64
}

// Alpha is 1 while visible, then falls linearly to 0 over the fade.
func (t Toast) Alpha() float64 {
	if t.Age <= ToastVisible {
		return 1
	}
	a := 1 - (t.Age-ToastVisible)/ToastFade
	if a < 0 {
		return 0
	}
	return a
}

// Toasts is the stack of live notifications, oldest first.
type Toasts struct {
	items []Toast
}

// Attach shows every EventNotify as a toast.
func (ts *Toasts) Attach(bus *game.EventBus) {
	bus.Subscribe(game.EventNotify, func(e game.Event) { ts.Push(e.Text) })
}

func (ts *Toasts) Push(text string) {
	if text == "" {
		return
	}
	if len(ts.items) >= MaxToasts {
		copy(ts.items, ts.items[1:])
		ts.items = ts.items[:len(ts.items)-1]
	}
	ts.items = append(ts.items, Toast{Text: text})
}

// Update ages every toast by dt seconds and drops the expired ones.
func (ts *Toasts) Update(dt float64) {
	out := ts.items[:0]
	for _, t := range ts.items {
		t.Age += dt
		if t.Age >= ToastVisible+ToastFade {
			continue
		}
		out = append(out, t)
	}
	ts.items = out
}

func (ts *Toasts) Active() []Toast {
	return ts.items
}
