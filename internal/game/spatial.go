package game

import "math"

// maxGridCells bounds the bucket table; tiny cells are widened to fit.
const maxGridCells = 1 << 16

// spatialGrid buckets particle indices into square cells so neighbour
// queries only visit the 3x3 block around a cell.
type spatialGrid struct {
	cell       float64
	cols, rows int
	heads      []int32 // first index per cell, -1 when empty
	next       []int32 // next index in the same cell
}

// Build indexes ps over a w×h surface with the given cell size.
func (g *spatialGrid) Build(ps []Particle, w, h, cell float64) {
	if floor := math.Sqrt(w * h / maxGridCells); cell < floor || math.IsNaN(cell) {
		cell = floor
	}
	if cell <= 0 {
		cell = 1
	}
	g.cell = cell
	g.cols = int(w/cell) + 1
	g.rows = int(h/cell) + 1
	n := g.cols * g.rows
	if cap(g.heads) < n {
		g.heads = make([]int32, n)
	}
	g.heads = g.heads[:n]
	for i := range g.heads {
		g.heads[i] = -1
	}
	if cap(g.next) < len(ps) {
		g.next = make([]int32, len(ps))
	}
	g.next = g.next[:len(ps)]

	for i := range ps {
		c := g.cellOf(ps[i].X, ps[i].Y)
		g.next[i] = g.heads[c]
		g.heads[c] = int32(i)
	}
}

func (g *spatialGrid) coords(x, y float64) (int, int) {
	cx := clampInt(int(x/g.cell), 0, g.cols-1)
	cy := clampInt(int(y/g.cell), 0, g.rows-1)
	return cx, cy
}

func (g *spatialGrid) cellOf(x, y float64) int {
	cx, cy := g.coords(x, y)
	return cy*g.cols + cx
}

// Pairs calls fn once for every unordered pair (i, j), i < j, whose cells
// touch. Callers still filter by exact distance.
func (g *spatialGrid) Pairs(ps []Particle, fn func(i, j int)) {
	for i := range ps {
		cx, cy := g.coords(ps[i].X, ps[i].Y)
		for y := max(cy-1, 0); y <= min(cy+1, g.rows-1); y++ {
			for x := max(cx-1, 0); x <= min(cx+1, g.cols-1); x++ {
				for j := g.heads[y*g.cols+x]; j >= 0; j = g.next[j] {
					if int(j) > i {
						fn(i, int(j))
					}
				}
			}
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
