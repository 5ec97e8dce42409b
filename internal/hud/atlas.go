// Package hud lays out the numeric displays, achievement list and
// notifications on top of the simulation. It is frontend-agnostic: the
// desktop renderer draws its lines with a font atlas, the terminal
// frontend writes them into cells.
package hud

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	firstGlyph = 32
	lastGlyph  = 126
	atlasCols  = 16
)

// Atlas is a grid of printable ASCII glyphs, white on transparent.
type Atlas struct {
	Img          *image.NRGBA
	CellW, CellH int
	Cols, Rows   int
}

// NewAtlas rasterizes the 7x13 bitmap face into a texture-ready image.
func NewAtlas() *Atlas {
	face := basicfont.Face7x13
	cellW := face.Advance
	cellH := face.Height
	rows := (lastGlyph - firstGlyph + atlasCols) / atlasCols

	img := image.NewNRGBA(image.Rect(0, 0, atlasCols*cellW, rows*cellH))
	d := font.Drawer{Dst: img, Src: image.White, Face: face}
	for ch := firstGlyph; ch <= lastGlyph; ch++ {
		i := ch - firstGlyph
		x := (i % atlasCols) * cellW
		y := (i / atlasCols) * cellH
		d.Dot = fixed.P(x, y+face.Ascent)
		d.DrawString(string(rune(ch)))
	}
	return &Atlas{Img: img, CellW: cellW, CellH: cellH, Cols: atlasCols, Rows: rows}
}

// Cell returns the pixel rectangle holding ch. ok is false for runes the
// atlas does not carry.
func (a *Atlas) Cell(ch rune) (image.Rectangle, bool) {
	if ch < firstGlyph || ch > lastGlyph {
		return image.Rectangle{}, false
	}
	i := int(ch - firstGlyph)
	x := (i % a.Cols) * a.CellW
	y := (i / a.Cols) * a.CellH
	return image.Rect(x, y, x+a.CellW, y+a.CellH), true
}

// UV returns normalized texture coordinates for ch.
func (a *Atlas) UV(ch rune) (u0, v0, u1, v1 float32, ok bool) {
	r, ok := a.Cell(ch)
	if !ok {
		return 0, 0, 0, 0, false
	}
	w := float32(a.Img.Bounds().Dx())
	h := float32(a.Img.Bounds().Dy())
	return float32(r.Min.X) / w, float32(r.Min.Y) / h, float32(r.Max.X) / w, float32(r.Max.Y) / h, true
}
