package game

import "testing"

func TestSpatialGridMatchesBruteForce(t *testing.T) {
	r := NewRand(42)
	ps := make([]Particle, 300)
	for i := range ps {
		ps[i].Reset(640, 480, r)
	}
	const maxDist = 60.0

	want := 0
	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			if dist2(ps[i].X, ps[i].Y, ps[j].X, ps[j].Y) < maxDist*maxDist {
				want++
			}
		}
	}

	var g spatialGrid
	g.Build(ps, 640, 480, maxDist)
	got := 0
	seen := map[[2]int]bool{}
	g.Pairs(ps, func(i, j int) {
		if i >= j || seen[[2]int{i, j}] {
			t.Fatalf("pair (%d,%d) repeated or unordered", i, j)
		}
		seen[[2]int{i, j}] = true
		if dist2(ps[i].X, ps[i].Y, ps[j].X, ps[j].Y) < maxDist*maxDist {
			got++
		}
	})
	if got != want {
		t.Fatalf("close pairs got=%d want=%d", got, want)
	}
}

func TestLinksOnlyBetweenCloseParticles(t *testing.T) {
	ps := []Particle{{X: 10, Y: 10}, {X: 40, Y: 10}, {X: 300, Y: 300}}
	var cv Canvas
	cv.Begin(400, 400)
	var g spatialGrid
	drawLinks(&cv, &g, ps, 100)
	if n := cv.Count(ShapeLine); n != 1 {
		t.Fatalf("links got=%d want=1", n)
	}
}

func TestSpatialGridCapsTinyCells(t *testing.T) {
	r := NewRand(3)
	ps := make([]Particle, 50)
	for i := range ps {
		ps[i].Reset(800, 600, r)
	}
	var g spatialGrid
	g.Build(ps, 800, 600, 1e-6)
	if n := g.cols * g.rows; n > 2*maxGridCells {
		t.Fatalf("grid cells got=%d want<=%d", n, 2*maxGridCells)
	}

	var cv Canvas
	cv.Begin(800, 600)
	drawLinks(&cv, &g, ps, 1e-6)
	if n := cv.Count(ShapeLine); n != 0 {
		t.Fatalf("links at 1e-6 got=%d want=0", n)
	}
}
