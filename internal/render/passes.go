package render

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"nebula/internal/game"
)

func setBlend(b game.Blend) {
	if b == game.BlendLighter {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
		return
	}
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
}

func (r *Renderer) drawPass(p *game.Pass) {
	n := p.Count()
	if n == 0 {
		return
	}
	setBlend(p.Blend)
	switch p.Shape {
	case game.ShapeFade:
		r.drawFade(p.Buf)
	case game.ShapeLine:
		r.drawLines(p.Buf, n)
	default:
		r.drawSprites(p.Shape, p.Buf, n)
	}
}

// drawSprites renders n instanced quads with the shape's fragment shader.
func (r *Renderer) drawSprites(s game.Shape, buf []float32, n int) {
	if int(s) >= len(r.sprites) {
		return
	}
	r.sprites[s].use(r.w, r.h)
	gl.BindVertexArray(r.spriteVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.instanceVBO)
	gl.BufferData(gl.ARRAY_BUFFER, n*game.SpriteStride*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArraysInstanced(gl.TRIANGLES, 0, 6, int32(n))
}

// drawFade covers the target once per record.
func (r *Renderer) drawFade(buf []float32) {
	gl.UseProgram(r.fade.id)
	gl.BindVertexArray(r.fadeVAO)
	for i := 0; i+game.FadeStride <= len(buf); i += game.FadeStride {
		gl.Uniform4f(r.uFade, buf[i], buf[i+1], buf[i+2], buf[i+3])
		gl.DrawArrays(gl.TRIANGLES, 0, 6)
	}
}

// drawLines expands [x1, y1, x2, y2, r, g, b, a] records into two coloured
// vertices each.
func (r *Renderer) drawLines(buf []float32, n int) {
	r.lineBuf = r.lineBuf[:0]
	for i := 0; i < n; i++ {
		rec := buf[i*game.LineStride : (i+1)*game.LineStride]
		r.lineBuf = append(r.lineBuf,
			rec[0], rec[1], rec[4], rec[5], rec[6], rec[7],
			rec[2], rec[3], rec[4], rec[5], rec[6], rec[7],
		)
	}
	r.line.use(r.w, r.h)
	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.lineBuf)*4, gl.Ptr(r.lineBuf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.LINES, 0, int32(2*n))
}
