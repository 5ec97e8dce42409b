package game

import "testing"

func TestCanvasBatchesMatchingCalls(t *testing.T) {
	var cv Canvas
	cv.Begin(100, 100)
	cv.Sprite(ShapeDot, 1, 1, 2, Palette.Star, 1, 0)
	cv.Sprite(ShapeDot, 2, 2, 2, Palette.Star, 1, 0)
	cv.SetBlend(BlendLighter)
	cv.Sprite(ShapeDot, 3, 3, 2, Palette.Star, 1, 0)
	cv.SetBlend(BlendNormal)
	cv.Line(0, 0, 10, 10, Palette.Line, 0.5)

	passes := cv.Passes()
	if len(passes) != 3 {
		t.Fatalf("passes = %d, want 3", len(passes))
	}
	if passes[0].Count() != 2 || passes[1].Blend != BlendLighter || passes[2].Shape != ShapeLine {
		t.Fatalf("unexpected passes: %+v", passes)
	}
	if got := passes[0].Buf[2]; got != 4 {
		t.Fatalf("sprite size = %f, want diameter 4", got)
	}
}

func TestCanvasSkipsInvisible(t *testing.T) {
	var cv Canvas
	cv.Begin(100, 100)
	cv.Sprite(ShapeGlow, 1, 1, 2, Palette.Star, 0, 0)
	cv.Sprite(ShapeGlow, 1, 1, 0, Palette.Star, 1, 0)
	cv.Line(0, 0, 1, 1, Palette.Line, -1)
	cv.Fade(Palette.Background, 0)
	if len(cv.Passes()) != 0 {
		t.Fatalf("invisible calls recorded %d passes", len(cv.Passes()))
	}
}

func TestCanvasBeginReusesBuffers(t *testing.T) {
	var cv Canvas
	cv.Begin(100, 100)
	cv.Fade(Palette.Background, 0.1)
	cv.Sprite(ShapeDot, 1, 1, 2, Palette.Star, 1, 0)
	cv.SetBlend(BlendLighter)
	cv.OffsetX = 3

	cv.Begin(200, 100)
	if len(cv.Passes()) != 0 || cv.BlendMode() != BlendNormal || cv.OffsetX != 0 {
		t.Fatalf("begin did not reset the frame")
	}
	cv.Sprite(ShapeSquare, 1, 1, 2, Palette.Star, 2, 0)
	p := cv.Passes()[0]
	if p.Shape != ShapeSquare || p.Count() != 1 {
		t.Fatalf("reused pass = %+v", p)
	}
	if p.Buf[6] != 1 {
		t.Fatalf("alpha = %f, want clamped to 1", p.Buf[6])
	}
}

func TestEasingEndpoints(t *testing.T) {
	for _, f := range []func(float64) float64{EaseOutCubic, EaseOutElastic} {
		if f(0) != 0 || f(1) != 1 {
			t.Fatalf("endpoints = %f, %f", f(0), f(1))
		}
		if f(-1) != 0 || f(2) != 1 {
			t.Fatalf("out-of-range input not clamped")
		}
	}
	if got := EaseOutCubic(0.5); got != 0.875 {
		t.Fatalf("EaseOutCubic(0.5) = %f, want 0.875", got)
	}
	overshoot := false
	for i := 1; i < 100; i++ {
		if EaseOutElastic(float64(i)/100) > 1 {
			overshoot = true
		}
	}
	if !overshoot {
		t.Fatalf("EaseOutElastic never overshoots")
	}
}

func TestHSLWrapsHue(t *testing.T) {
	if HSL(0, 1, 0.5) != HSL(360, 1, 0.5) || HSL(-120, 1, 0.5) != HSL(240, 1, 0.5) {
		t.Fatalf("hue not wrapped")
	}
	if c := HSL(0, 1, 0.5); c.R != 255 || c.G != 0 || c.B != 0 {
		t.Fatalf("HSL(0,1,.5) = %+v, want red", c)
	}
}
