// Package render replays simulation canvases with OpenGL 4.1 core.
//
// Frames accumulate in an offscreen target that is never cleared between
// frames, so the translucent fade pass leaves trails. The target is then
// blitted to the window with the screen-shake offset and the HUD is drawn
// on top.
package render

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"nebula/internal/game"
	"nebula/internal/hud"
)

// glOffset converts a byte offset for VBO attribute pointers.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

type program struct {
	id   uint32
	uRes int32
}

func newProgram(vert, frag string) (program, error) {
	id, err := linkProgram(vert, frag)
	if err != nil {
		return program{}, err
	}
	return program{id: id, uRes: gl.GetUniformLocation(id, gl.Str("uResolution\x00"))}, nil
}

func (p program) use(w, h int) {
	gl.UseProgram(p.id)
	if p.uRes >= 0 {
		gl.Uniform2f(p.uRes, float32(w), float32(h))
	}
}

type Renderer struct {
	sprites [len(spriteFrags)]program
	line    program
	fade    program
	uFade   int32

	quadVBO     uint32 // static unit quad, 6 corners
	spriteVAO   uint32
	instanceVBO uint32
	fadeVAO     uint32
	lineVAO     uint32
	lineVBO     uint32
	lineBuf     []float32

	// Persistent scene target.
	fbo      uint32
	sceneTex uint32
	w, h     int

	text textLayer
}

// New builds every program and buffer. The GL context must be current.
func New() (*Renderer, error) {
	r := &Renderer{}
	for s, src := range spriteFrags {
		p, err := newProgram(spriteVertSrc, src)
		if err != nil {
			r.Destroy()
			return nil, fmt.Errorf("sprite program %d: %w", s, err)
		}
		r.sprites[s] = p
	}
	var err error
	if r.line, err = newProgram(lineVertSrc, lineFragSrc); err != nil {
		r.Destroy()
		return nil, fmt.Errorf("line program: %w", err)
	}
	if r.fade, err = newProgram(fadeVertSrc, fadeFragSrc); err != nil {
		r.Destroy()
		return nil, fmt.Errorf("fade program: %w", err)
	}
	r.uFade = gl.GetUniformLocation(r.fade.id, gl.Str("uColor\x00"))

	quad := [12]float32{
		-0.5, -0.5, 0.5, -0.5, 0.5, 0.5,
		-0.5, -0.5, 0.5, 0.5, -0.5, 0.5,
	}
	gl.GenBuffers(1, &r.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(&quad[0]), gl.STATIC_DRAW)

	// Sprite VAO: the quad per vertex, records per instance.
	// Each record: [x, y, size, r, g, b, a, rotation].
	gl.GenVertexArrays(1, &r.spriteVAO)
	gl.BindVertexArray(r.spriteVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))

	gl.GenBuffers(1, &r.instanceVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.instanceVBO)
	stride := int32(game.SpriteStride * 4)
	attrs := []struct {
		loc, size int32
		off       int
	}{
		{1, 2, 0}, // aPos
		{2, 1, 2}, // aSize
		{3, 4, 3}, // aColor
		{4, 1, 7}, // aRotation
	}
	for _, a := range attrs {
		gl.EnableVertexAttribArray(uint32(a.loc))
		gl.VertexAttribPointer(uint32(a.loc), a.size, gl.FLOAT, false, stride, glOffset(a.off*4))
		gl.VertexAttribDivisor(uint32(a.loc), 1)
	}

	// Fade VAO: just the quad.
	gl.GenVertexArrays(1, &r.fadeVAO)
	gl.BindVertexArray(r.fadeVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))

	// Line VAO: [x, y, r, g, b, a] per vertex.
	gl.GenVertexArrays(1, &r.lineVAO)
	gl.GenBuffers(1, &r.lineVBO)
	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 6*4, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, 6*4, glOffset(2*4))

	gl.BindVertexArray(0)

	if err := r.text.init(hud.NewAtlas()); err != nil {
		r.Destroy()
		return nil, fmt.Errorf("text: %w", err)
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	return r, nil
}

func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.quadVBO, r.instanceVBO, r.lineVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.spriteVAO, r.fadeVAO, r.lineVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, p := range r.sprites {
		if p.id != 0 {
			gl.DeleteProgram(p.id)
		}
	}
	for _, p := range []program{r.line, r.fade} {
		if p.id != 0 {
			gl.DeleteProgram(p.id)
		}
	}
	r.deleteTarget()
	r.text.destroy()
}

func (r *Renderer) deleteTarget() {
	if r.fbo != 0 {
		gl.DeleteFramebuffers(1, &r.fbo)
		r.fbo = 0
	}
	if r.sceneTex != 0 {
		gl.DeleteTextures(1, &r.sceneTex)
		r.sceneTex = 0
	}
}

func clearColor() {
	r, g, b := game.Palette.Background.Floats()
	gl.ClearColor(r, g, b, 1)
}

// Resize (re)creates the scene target at the framebuffer size and clears it.
func (r *Renderer) Resize(w, h int) error {
	if w <= 0 || h <= 0 || (w == r.w && h == r.h && r.fbo != 0) {
		return nil
	}
	r.deleteTarget()

	gl.GenTextures(1, &r.sceneTex)
	gl.BindTexture(gl.TEXTURE_2D, r.sceneTex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)

	gl.GenFramebuffers(1, &r.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, r.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, r.sceneTex, 0)
	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		r.deleteTarget()
		return fmt.Errorf("scene framebuffer incomplete: 0x%x", status)
	}
	gl.Viewport(0, 0, int32(w), int32(h))
	clearColor()
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	r.w, r.h = w, h
	return nil
}

// Frame draws cv into the scene target, presents it with the canvas shake
// offset and overlays the HUD lines (pixel coordinates, glyphs scaled).
func (r *Renderer) Frame(cv *game.Canvas, lines []hud.Line, textScale float32) {
	if r.fbo == 0 {
		return
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, r.fbo)
	gl.Viewport(0, 0, int32(r.w), int32(r.h))
	gl.Enable(gl.BLEND)
	for _, p := range cv.Passes() {
		r.drawPass(&p)
	}

	// Present. GL's y axis points up, the canvas's points down.
	ox := int32(cv.OffsetX)
	oy := int32(-cv.OffsetY)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, r.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(r.w), int32(r.h))
	clearColor()
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.BlitFramebuffer(0, 0, int32(r.w), int32(r.h), ox, oy, int32(r.w)+ox, int32(r.h)+oy, gl.COLOR_BUFFER_BIT, gl.NEAREST)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	for _, l := range lines {
		r.text.drawString(l.Text, float32(l.X), float32(l.Y), textScale, l.Col, float32(l.Alpha))
	}
	r.text.flush(r.w, r.h)
	gl.Disable(gl.BLEND)
}
