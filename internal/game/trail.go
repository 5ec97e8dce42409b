package game

// Point is a 2D position.
type Point struct {
	X, Y float64
}

// Trail is a fixed-size FIFO of recent positions; pushing onto a full trail
// evicts the oldest entry.
type Trail struct {
	buf   [TrailLength]Point
	start int
	n     int
}

func (t *Trail) Push(x, y float64) {
	if t.n < TrailLength {
		t.buf[(t.start+t.n)%TrailLength] = Point{X: x, Y: y}
		t.n++
		return
	}
	t.buf[t.start] = Point{X: x, Y: y}
	t.start = (t.start + 1) % TrailLength
}

func (t *Trail) Len() int { return t.n }

// At returns the i-th entry, 0 being the oldest.
func (t *Trail) At(i int) Point {
	return t.buf[(t.start+i)%TrailLength]
}

func (t *Trail) Clear() {
	t.start = 0
	t.n = 0
}
