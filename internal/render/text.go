package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"nebula/internal/game"
	"nebula/internal/hud"
)

// textLayer batches glyph quads from the bitmap font atlas.
type textLayer struct {
	atlas *hud.Atlas
	tex   uint32
	prog  program
	uTex  int32
	vao   uint32
	vbo   uint32
	buf   []float32
}

func (t *textLayer) init(a *hud.Atlas) error {
	t.atlas = a
	b := a.Img.Bounds()

	gl.GenTextures(1, &t.tex)
	gl.BindTexture(gl.TEXTURE_2D, t.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(a.Img.Pix))

	prog, err := newProgram(textVertSrc, textFragSrc)
	if err != nil {
		return fmt.Errorf("text program: %w", err)
	}
	t.prog = prog
	gl.UseProgram(prog.id)
	t.uTex = gl.GetUniformLocation(prog.id, gl.Str("uFontTex\x00"))
	gl.Uniform1i(t.uTex, 2) // texture unit 2

	// Per vertex: pos(2) + uv(2) + colour(4).
	gl.GenVertexArrays(1, &t.vao)
	gl.GenBuffers(1, &t.vbo)
	gl.BindVertexArray(t.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, t.vbo)
	stride := int32(8 * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, glOffset(2*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(4*4))
	gl.BindVertexArray(0)
	return nil
}

func (t *textLayer) destroy() {
	if t.vbo != 0 {
		gl.DeleteBuffers(1, &t.vbo)
	}
	if t.vao != 0 {
		gl.DeleteVertexArrays(1, &t.vao)
	}
	if t.prog.id != 0 {
		gl.DeleteProgram(t.prog.id)
	}
	if t.tex != 0 {
		gl.DeleteTextures(1, &t.tex)
	}
}

// drawString queues text with its top-left corner at (sx, sy).
func (t *textLayer) drawString(text string, sx, sy, scale float32, col game.RGB, alpha float32) {
	w := float32(t.atlas.CellW) * scale
	h := float32(t.atlas.CellH) * scale
	cr, cg, cb := col.Floats()
	x := sx
	for _, ch := range text {
		u0, v0, u1, v1, ok := t.atlas.UV(ch)
		if ok && ch != ' ' {
			// Two triangles: TL, TR, BL then TR, BR, BL.
			t.buf = append(t.buf,
				x, sy, u0, v0, cr, cg, cb, alpha,
				x+w, sy, u1, v0, cr, cg, cb, alpha,
				x, sy+h, u0, v1, cr, cg, cb, alpha,
				x+w, sy, u1, v0, cr, cg, cb, alpha,
				x+w, sy+h, u1, v1, cr, cg, cb, alpha,
				x, sy+h, u0, v1, cr, cg, cb, alpha,
			)
		}
		x += w
	}
}

// flush draws every queued glyph and empties the batch.
func (t *textLayer) flush(fbW, fbH int) {
	if len(t.buf) == 0 {
		return
	}
	t.prog.use(fbW, fbH)
	gl.BindVertexArray(t.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, t.vbo)
	gl.ActiveTexture(gl.TEXTURE2)
	gl.BindTexture(gl.TEXTURE_2D, t.tex)

	gl.BufferData(gl.ARRAY_BUFFER, len(t.buf)*4, gl.Ptr(t.buf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(t.buf)/8))

	gl.ActiveTexture(gl.TEXTURE0)
	t.buf = t.buf[:0]
}

// GlyphSize is the unscaled cell size of the HUD font in pixels.
func (r *Renderer) GlyphSize() (w, h int) {
	return r.text.atlas.CellW, r.text.atlas.CellH
}
