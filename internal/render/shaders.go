package render

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"nebula/internal/game"
)

// Sprite vertex shader: one instanced quad per record, rotated about its
// centre. vLocal runs from -1 to 1 across the quad.
const spriteVertSrc = `#version 410 core

layout(location = 0) in vec2 aCorner; // -0.5..0.5
layout(location = 1) in vec2 aPos;
layout(location = 2) in float aSize;
layout(location = 3) in vec4 aColor;
layout(location = 4) in float aRotation;

uniform vec2 uResolution;

out vec2 vLocal;
out vec4 vColor;

void main() {
    float c = cos(aRotation);
    float s = sin(aRotation);
    vec2 local = aCorner * aSize;
    vec2 rot = vec2(c * local.x - s * local.y, s * local.x + c * local.y);
    vec2 ndc = ((aPos + rot) / uResolution) * 2.0 - 1.0;
    ndc.y = -ndc.y;
    gl_Position = vec4(ndc, 0.0, 1.0);
    vLocal = aCorner * 2.0;
    vColor = aColor;
}
` + "\x00"

// Dot: filled circle with a one-pixel-ish soft edge.
const dotFragSrc = `#version 410 core

in vec2 vLocal;
in vec4 vColor;
out vec4 FragColor;

void main() {
    float d = length(vLocal);
    if (d > 1.0) discard;
    FragColor = vec4(vColor.rgb, vColor.a * smoothstep(1.0, 0.8, d));
}
` + "\x00"

// Glow: quadratic radial falloff, meant for additive passes.
const glowFragSrc = `#version 410 core

in vec2 vLocal;
in vec4 vColor;
out vec4 FragColor;

void main() {
    float falloff = clamp(1.0 - length(vLocal), 0.0, 1.0);
    falloff = falloff * falloff;
    FragColor = vec4(vColor.rgb, vColor.a * falloff);
}
` + "\x00"

// Square: filled box with a darker border so debris reads as solid chunks.
const squareFragSrc = `#version 410 core

in vec2 vLocal;
in vec4 vColor;
out vec4 FragColor;

void main() {
    float e = max(abs(vLocal.x), abs(vLocal.y));
    vec3 col = e > 0.75 ? vColor.rgb * 0.55 : vColor.rgb;
    FragColor = vec4(col, vColor.a);
}
` + "\x00"

// Disk: flattened ring, brightest at two thirds of the radius. The quad's
// rotation spins the ellipse.
const diskFragSrc = `#version 410 core

in vec2 vLocal;
in vec4 vColor;
out vec4 FragColor;

void main() {
    float d = length(vec2(vLocal.x, vLocal.y / 0.35));
    if (d > 1.0) discard;
    float ring = 1.0 - abs(d - 0.66) / 0.34;
    ring = clamp(ring, 0.0, 1.0);
    FragColor = vec4(vColor.rgb, vColor.a * ring * ring);
}
` + "\x00"

// Hole: black core fading into the rim colour at the edge.
const holeFragSrc = `#version 410 core

in vec2 vLocal;
in vec4 vColor;
out vec4 FragColor;

void main() {
    float d = length(vLocal);
    if (d > 1.0) discard;
    vec3 col = mix(vec3(0.0), vColor.rgb, smoothstep(0.45, 1.0, d));
    float a = vColor.a * (d < 0.9 ? 1.0 : (1.0 - d) / 0.1);
    FragColor = vec4(col, a);
}
` + "\x00"

// spriteFrags maps each sprite shape to its fragment shader.
var spriteFrags = [...]string{
	game.ShapeDot:    dotFragSrc,
	game.ShapeGlow:   glowFragSrc,
	game.ShapeSquare: squareFragSrc,
	game.ShapeDisk:   diskFragSrc,
	game.ShapeHole:   holeFragSrc,
}

// Lines: per-vertex position and colour.
const lineVertSrc = `#version 410 core

layout(location = 0) in vec2 aPos;
layout(location = 1) in vec4 aColor;

uniform vec2 uResolution;

out vec4 vColor;

void main() {
    vec2 ndc = (aPos / uResolution) * 2.0 - 1.0;
    ndc.y = -ndc.y;
    gl_Position = vec4(ndc, 0.0, 1.0);
    vColor = aColor;
}
` + "\x00"

const lineFragSrc = `#version 410 core

in vec4 vColor;
out vec4 FragColor;

void main() {
    FragColor = vColor;
}
` + "\x00"

// Fade: the unit quad stretched over the viewport, one flat colour.
const fadeVertSrc = `#version 410 core

layout(location = 0) in vec2 aCorner;

void main() {
    gl_Position = vec4(aCorner * 2.0, 0.0, 1.0);
}
` + "\x00"

const fadeFragSrc = `#version 410 core

uniform vec4 uColor;
out vec4 FragColor;

void main() {
    FragColor = uColor;
}
` + "\x00"

// Text: screen-space textured quads.
const textVertSrc = `#version 410 core

layout(location = 0) in vec2 aPos;
layout(location = 1) in vec2 aUV;
layout(location = 2) in vec4 aColor;

uniform vec2 uResolution;

out vec2 vUV;
out vec4 vColor;

void main() {
    vec2 ndc = (aPos / uResolution) * 2.0 - 1.0;
    ndc.y = -ndc.y;
    gl_Position = vec4(ndc, 0.0, 1.0);
    vUV = aUV;
    vColor = aColor;
}
` + "\x00"

const textFragSrc = `#version 410 core

uniform sampler2D uFontTex;

in vec2 vUV;
in vec4 vColor;
out vec4 FragColor;

void main() {
    vec4 t = texture(uFontTex, vUV);
    if (t.a < 0.01) discard;
    FragColor = vec4(t.rgb * vColor.rgb, t.a * vColor.a);
}
` + "\x00"

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(buf))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile shader: %s", strings.TrimRight(buf, "\x00"))
	}
	return shader, nil
}

func linkProgram(vertSrc, fragSrc string) (uint32, error) {
	vs, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	gl.DetachShader(program, vs)
	gl.DetachShader(program, fs)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(buf))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link program: %s", strings.TrimRight(buf, "\x00"))
	}
	return program, nil
}
