package terminal

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"nebula/internal/game"
)

// Simulation pixels per terminal cell.
const (
	CellW = 8
	CellH = 16
)

// ramp maps brightness to glyph density, darkest first.
var ramp = []rune(" .:-=+*#%@")

type rgb struct{ r, g, b float32 }

func (c rgb) luma() float32 { return 0.299*c.r + 0.587*c.g + 0.114*c.b }

// Raster accumulates canvas passes into one colour per cell. It is never
// cleared between frames; the canvas's fade pass does that gradually.
type Raster struct {
	Cols, Rows int
	acc        []rgb
}

func NewRaster(cols, rows int) *Raster {
	r := &Raster{}
	r.Resize(cols, rows)
	return r
}

// Resize reallocates the buffer when the grid changes.
func (r *Raster) Resize(cols, rows int) {
	cols, rows = max(cols, 0), max(rows, 0)
	if cols == r.Cols && rows == r.Rows && r.acc != nil {
		return
	}
	r.Cols, r.Rows = cols, rows
	r.acc = make([]rgb, cols*rows)
}

func (r *Raster) at(c, row int) *rgb {
	if c < 0 || row < 0 || c >= r.Cols || row >= r.Rows {
		return nil
	}
	return &r.acc[row*r.Cols+c]
}

func clamp1(v float32) float32 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}

// blend composites col at coverage a onto one cell.
func (r *Raster) blend(c, row int, col rgb, a float32, mode game.Blend) {
	p := r.at(c, row)
	if p == nil || a <= 0 {
		return
	}
	a = clamp1(a)
	if mode == game.BlendLighter {
		p.r = clamp1(p.r + col.r*a)
		p.g = clamp1(p.g + col.g*a)
		p.b = clamp1(p.b + col.b*a)
		return
	}
	p.r += (col.r - p.r) * a
	p.g += (col.g - p.g) * a
	p.b += (col.b - p.b) * a
}

// Replay rasterizes every pass of cv in order.
func (r *Raster) Replay(cv *game.Canvas) {
	ox, oy := float32(cv.OffsetX), float32(cv.OffsetY)
	for _, p := range cv.Passes() {
		switch p.Shape {
		case game.ShapeFade:
			for i := 0; i+game.FadeStride <= len(p.Buf); i += game.FadeStride {
				r.fade(rgb{p.Buf[i], p.Buf[i+1], p.Buf[i+2]}, p.Buf[i+3])
			}
		case game.ShapeLine:
			for i := 0; i+game.LineStride <= len(p.Buf); i += game.LineStride {
				rec := p.Buf[i : i+game.LineStride]
				r.line(rec[0]+ox, rec[1]+oy, rec[2]+ox, rec[3]+oy, rgb{rec[4], rec[5], rec[6]}, rec[7], p.Blend)
			}
		default:
			for i := 0; i+game.SpriteStride <= len(p.Buf); i += game.SpriteStride {
				rec := p.Buf[i : i+game.SpriteStride]
				r.sprite(p.Shape, rec[0]+ox, rec[1]+oy, rec[2], rgb{rec[3], rec[4], rec[5]}, rec[6], p.Blend)
			}
		}
	}
}

func (r *Raster) fade(col rgb, a float32) {
	a = clamp1(a)
	for i := range r.acc {
		p := &r.acc[i]
		p.r += (col.r - p.r) * a
		p.g += (col.g - p.g) * a
		p.b += (col.b - p.b) * a
	}
}

// sprite spreads one shape over the cells it covers. Sprites smaller than a
// cell contribute in proportion to their area.
func (r *Raster) sprite(s game.Shape, x, y, size float32, col rgb, a float32, mode game.Blend) {
	rad := size / 2
	if rad <= 0 {
		return
	}
	c0 := int(math.Floor(float64((x - rad) / CellW)))
	c1 := int(math.Floor(float64((x + rad) / CellW)))
	r0 := int(math.Floor(float64((y - rad) / CellH)))
	r1 := int(math.Floor(float64((y + rad) / CellH)))

	if c0 == c1 && r0 == r1 {
		cover := clamp1(2 * size * size / (CellW * CellH))
		if s == game.ShapeHole {
			col = rgb{}
		}
		r.blend(c0, r0, col, a*cover, mode)
		return
	}

	c0, r0 = max(c0, 0), max(r0, 0)
	c1, r1 = min(c1, r.Cols-1), min(r1, r.Rows-1)
	for row := r0; row <= r1; row++ {
		for c := c0; c <= c1; c++ {
			cx := (float32(c) + 0.5) * CellW
			cy := (float32(row) + 0.5) * CellH
			d := float32(math.Hypot(float64(cx-x), float64(cy-y))) / rad
			if d > 1 {
				continue
			}
			w, tint := shapeWeight(s, d, col)
			r.blend(c, row, tint, a*w, mode)
		}
	}
}

// shapeWeight approximates each fragment shader at normalized distance d.
func shapeWeight(s game.Shape, d float32, col rgb) (float32, rgb) {
	switch s {
	case game.ShapeGlow:
		f := 1 - d
		return f * f, col
	case game.ShapeDisk:
		if d < 0.45 {
			return 0, col
		}
		return (1 - d) * 1.6, col
	case game.ShapeHole:
		if d < 0.7 {
			return 1, rgb{}
		}
		return 1, col
	}
	return 1, col
}

// line walks the segment one half-cell at a time.
func (r *Raster) line(x1, y1, x2, y2 float32, col rgb, a float32, mode game.Blend) {
	dx, dy := x2-x1, y2-y1
	steps := int(math.Max(math.Abs(float64(dx))/(CellW/2), math.Abs(float64(dy))/(CellH/2))) + 1
	lastC, lastR := math.MinInt, math.MinInt
	for i := 0; i <= steps; i++ {
		t := float32(i) / float32(steps)
		c := int(math.Floor(float64((x1 + dx*t) / CellW)))
		row := int(math.Floor(float64((y1 + dy*t) / CellH)))
		if c == lastC && row == lastR {
			continue
		}
		lastC, lastR = c, row
		r.blend(c, row, col, a*0.5, mode)
	}
}

// Color returns a cell's accumulated colour, or black outside the grid.
func (r *Raster) Color(c, row int) (float32, float32, float32) {
	p := r.at(c, row)
	if p == nil {
		return 0, 0, 0
	}
	return p.r, p.g, p.b
}

func toColor(c rgb) tcell.Color {
	return tcell.NewRGBColor(int32(clamp1(c.r)*255), int32(clamp1(c.g)*255), int32(clamp1(c.b)*255))
}

// cellStyle picks a glyph by brightness. The foreground is the cell colour
// at full intensity, the background a dim copy of it.
func cellStyle(c rgb) (rune, tcell.Style) {
	l := c.luma()
	i := int(l * float32(len(ramp)) * 1.5)
	if i >= len(ramp) {
		i = len(ramp) - 1
	}
	peak := max(c.r, c.g, c.b)
	fg := c
	if peak > 0 {
		fg = rgb{c.r / peak, c.g / peak, c.b / peak}
	}
	bg := rgb{c.r * 0.35, c.g * 0.35, c.b * 0.35}
	return ramp[i], tcell.StyleDefault.Foreground(toColor(fg)).Background(toColor(bg))
}

// Blit writes every cell to screen.
func (r *Raster) Blit(screen tcell.Screen) {
	for row := 0; row < r.Rows; row++ {
		for c := 0; c < r.Cols; c++ {
			ch, st := cellStyle(r.acc[row*r.Cols+c])
			screen.SetContent(c, row, ch, nil, st)
		}
	}
}
