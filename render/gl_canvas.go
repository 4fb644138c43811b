//go:build !headless

package render

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	headlessterm "github.com/embeddedterm/goterm"
)

// glyphEntry is one cached glyph's position in the atlas texture, in
// normalized [0,1] atlas coordinates, mirroring the Glyph struct the GL
// renderer in the retrieval pack's RavenTerminal keeps per rune.
type glyphEntry struct {
	u0, v0, u1, v1 float32
	pixelW, pixelH int
	bearingX       int
	bearingY       int
}

// GLCanvas is a Canvas backed by an OpenGL 4.1 core-profile context, for
// cmd/demo's interactive window. It keeps a single solid-quad shader for
// fills/strokes and a single glyph-atlas shader for text, the same two-
// program split RavenTerminal's Renderer uses, scaled down to the handful
// of primitives render.Canvas actually needs.
type GLCanvas struct {
	face font.Face

	width, height float32 // viewport size in pixels

	quadProgram  uint32
	quadVAO      uint32
	quadVBO      uint32
	quadColorLoc int32
	quadProjLoc  int32

	textProgram  uint32
	textVAO      uint32
	textVBO      uint32
	textColorLoc int32
	textProjLoc  int32
	textTexLoc   int32

	imageProgram uint32
	imageProjLoc int32
	imageTexLoc  int32
	imageTex     map[uint32]uint32

	atlasTex  uint32
	atlasSize int
	glyphs    map[rune]glyphEntry
	nextX     int
	nextY     int
	rowHeight int
}

// NewGLCanvas builds a GLCanvas against the current OpenGL context (the
// caller must have made a GLFW/EGL context current before calling this).
// face defaults to basicfont.Face7x13 when nil; cmd/demo passes nil, so it
// draws with that face.
func NewGLCanvas(viewportWidth, viewportHeight int, face font.Face) (*GLCanvas, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl canvas: init: %w", err)
	}
	if face == nil {
		face = basicfont.Face7x13
	}

	c := &GLCanvas{
		face:      face,
		width:     float32(viewportWidth),
		height:    float32(viewportHeight),
		atlasSize: 1024,
		glyphs:    make(map[rune]glyphEntry),
		imageTex:  make(map[uint32]uint32),
	}

	var err error
	if c.quadProgram, err = newProgram(quadVertexShader, quadFragmentShader); err != nil {
		return nil, err
	}
	if c.textProgram, err = newProgram(textVertexShader, textFragmentShader); err != nil {
		return nil, err
	}
	if c.imageProgram, err = newProgram(textVertexShader, imageFragmentShader); err != nil {
		return nil, err
	}

	c.quadColorLoc = gl.GetUniformLocation(c.quadProgram, gl.Str("uColor\x00"))
	c.quadProjLoc = gl.GetUniformLocation(c.quadProgram, gl.Str("uProjection\x00"))
	c.textColorLoc = gl.GetUniformLocation(c.textProgram, gl.Str("uColor\x00"))
	c.textProjLoc = gl.GetUniformLocation(c.textProgram, gl.Str("uProjection\x00"))
	c.textTexLoc = gl.GetUniformLocation(c.textProgram, gl.Str("uTex\x00"))
	c.imageProjLoc = gl.GetUniformLocation(c.imageProgram, gl.Str("uProjection\x00"))
	c.imageTexLoc = gl.GetUniformLocation(c.imageProgram, gl.Str("uTex\x00"))

	gl.GenVertexArrays(1, &c.quadVAO)
	gl.GenBuffers(1, &c.quadVBO)
	gl.GenVertexArrays(1, &c.textVAO)
	gl.GenBuffers(1, &c.textVBO)

	gl.GenTextures(1, &c.atlasTex)
	gl.BindTexture(gl.TEXTURE_2D, c.atlasTex)
	blank := image.NewRGBA(image.Rect(0, 0, c.atlasSize, c.atlasSize))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(c.atlasSize), int32(c.atlasSize), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(blank.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	return c, nil
}

// Resize updates the viewport size used to build the orthographic
// projection matrix; cmd/demo calls this from its GLFW framebuffer-size
// callback.
func (c *GLCanvas) Resize(width, height int) {
	c.width, c.height = float32(width), float32(height)
	gl.Viewport(0, 0, int32(width), int32(height))
}

// projection returns a column-major orthographic matrix mapping pixel
// coordinates (origin top-left, Y down) to clip space.
func (c *GLCanvas) projection() [16]float32 {
	l, r := float32(0), c.width
	t, b := float32(0), c.height
	var m [16]float32
	m[0] = 2 / (r - l)
	m[5] = 2 / (t - b)
	m[10] = -1
	m[12] = -(r + l) / (r - l)
	m[13] = -(t + b) / (t - b)
	m[15] = 1
	return m
}

func hslaToGL(c headlessterm.Hsla) [4]float32 {
	rgba := c.ToRGBA()
	return [4]float32{
		float32(rgba.R) / 255,
		float32(rgba.G) / 255,
		float32(rgba.B) / 255,
		float32(rgba.A) / 255,
	}
}

func (c *GLCanvas) drawQuad(x0, y0, x1, y1 float32, color [4]float32) {
	verts := []float32{
		x0, y0,
		x1, y0,
		x0, y1,
		x1, y0,
		x1, y1,
		x0, y1,
	}

	gl.UseProgram(c.quadProgram)
	proj := c.projection()
	gl.UniformMatrix4fv(c.quadProjLoc, 1, false, &proj[0])
	gl.Uniform4f(c.quadColorLoc, color[0], color[1], color[2], color[3])

	gl.BindVertexArray(c.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.DYNAMIC_DRAW)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

// FillRect implements Canvas.
func (c *GLCanvas) FillRect(bounds Rect, col headlessterm.Hsla) {
	x0, y0 := float32(bounds.X), float32(bounds.Y)
	x1, y1 := float32(bounds.X+bounds.Width), float32(bounds.Y+bounds.Height)
	c.drawQuad(x0, y0, x1, y1, hslaToGL(col))
}

// StrokeLine implements boxdraw.Canvas as a thin filled rectangle aligned
// to the line's bounding box, matching RasterCanvas's axis-aligned stroke
// behavior (box-drawing calls StrokeLine only with horizontal/vertical
// segments).
func (c *GLCanvas) StrokeLine(from, to Point, thickness float64, col headlessterm.Hsla) {
	half := float32(thickness / 2)
	x0, y0 := float32(from.X), float32(from.Y)
	x1, y1 := float32(to.X), float32(to.Y)
	if x0 == x1 {
		c.drawQuad(x0-half, y0, x1+half, y1, hslaToGL(col))
	} else {
		c.drawQuad(x0, y0-half, x1, y1+half, hslaToGL(col))
	}
}

// StrokeCurve implements boxdraw.Canvas by flattening the quadratic Bézier
// into a short polyline of thin quads, good enough at cell-sized scales
// where a rounded corner spans a handful of pixels.
func (c *GLCanvas) StrokeCurve(start, control, end Point, thickness float64, col headlessterm.Hsla) {
	const segments = 8
	prev := start
	for i := 1; i <= segments; i++ {
		t := float64(i) / float64(segments)
		mt := 1 - t
		x := mt*mt*start.X + 2*mt*t*control.X + t*t*end.X
		y := mt*mt*start.Y + 2*mt*t*control.Y + t*t*end.Y
		cur := Point{X: x, Y: y}
		c.StrokeLine(prev, cur, thickness, col)
		prev = cur
	}
}

// MeasureCell implements Canvas by shaping refChar in the configured face.
func (c *GLCanvas) MeasureCell(_ string, _ float64, refChar rune) (width, ascent, descent float64) {
	adv, _ := c.face.GlyphAdvance(refChar)
	metrics := c.face.Metrics()
	return float64(adv.Ceil()), float64(metrics.Ascent.Ceil()), float64(metrics.Descent.Ceil())
}

// ensureGlyph rasterizes r into the atlas texture on first use and caches
// its atlas-space coordinates, following RavenTerminal's lazy-atlas-build
// pattern (Renderer.glyphs populated on demand rather than up front).
func (c *GLCanvas) ensureGlyph(r rune) (glyphEntry, bool) {
	if g, ok := c.glyphs[r]; ok {
		return g, true
	}

	dr, mask, maskp, advance, ok := c.face.Glyph(fixed.P(0, 0), r)
	if !ok {
		return glyphEntry{}, false
	}
	w, h := dr.Dx(), dr.Dy()
	if w <= 0 || h <= 0 {
		entry := glyphEntry{pixelW: advance.Ceil()}
		c.glyphs[r] = entry
		return entry, true
	}

	if c.nextX+w > c.atlasSize {
		c.nextX = 0
		c.nextY += c.rowHeight
		c.rowHeight = 0
	}
	if c.nextY+h > c.atlasSize {
		// Atlas exhausted; drop the glyph rather than corrupt another one's
		// region. Text falls back to the advance-only entry for this rune.
		entry := glyphEntry{pixelW: advance.Ceil()}
		c.glyphs[r] = entry
		return entry, true
	}

	glyphImg := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.DrawMask(glyphImg, glyphImg.Bounds(), image.White, image.Point{}, mask, maskp, draw.Src)

	gl.BindTexture(gl.TEXTURE_2D, c.atlasTex)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, int32(c.nextX), int32(c.nextY), int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(glyphImg.Pix))

	entry := glyphEntry{
		u0:       float32(c.nextX) / float32(c.atlasSize),
		v0:       float32(c.nextY) / float32(c.atlasSize),
		u1:       float32(c.nextX+w) / float32(c.atlasSize),
		v1:       float32(c.nextY+h) / float32(c.atlasSize),
		pixelW:   w,
		pixelH:   h,
		bearingX: dr.Min.X,
		bearingY: dr.Min.Y,
	}
	c.glyphs[r] = entry

	c.nextX += w + 1
	if h+1 > c.rowHeight {
		c.rowHeight = h + 1
	}

	return entry, true
}

// DrawText implements Canvas by drawing one textured quad per glyph; bold
// is approximated by drawing the run twice offset by half a pixel
// (GL has no synthetic bold primitive), italic is not shaped (no slant
// transform applied, matching RasterCanvas's plain-face limitation).
func (c *GLCanvas) DrawText(pos Point, text string, fg headlessterm.Hsla, bold, _ bool) {
	color := hslaToGL(fg)
	passes := 1
	if bold {
		passes = 2
	}

	for pass := 0; pass < passes; pass++ {
		offset := float32(0)
		if pass == 1 {
			offset = 0.5
		}
		x := float32(pos.X) + offset
		for _, r := range text {
			g, ok := c.ensureGlyph(r)
			if !ok || g.pixelW == 0 {
				adv, _ := c.face.GlyphAdvance(r)
				x += float32(adv.Ceil())
				continue
			}
			if g.u1 > g.u0 {
				c.drawGlyphQuad(x, float32(pos.Y)+float32(g.bearingY), g, color)
			}
			adv, _ := c.face.GlyphAdvance(r)
			x += float32(adv.Ceil())
		}
	}
}

func (c *GLCanvas) drawGlyphQuad(x, y float32, g glyphEntry, color [4]float32) {
	w, h := float32(g.pixelW), float32(g.pixelH)
	verts := []float32{
		// pos.x, pos.y, uv.u, uv.v
		x, y, g.u0, g.v0,
		x + w, y, g.u1, g.v0,
		x, y + h, g.u0, g.v1,
		x + w, y, g.u1, g.v0,
		x + w, y + h, g.u1, g.v1,
		x, y + h, g.u0, g.v1,
	}

	gl.UseProgram(c.textProgram)
	proj := c.projection()
	gl.UniformMatrix4fv(c.textProjLoc, 1, false, &proj[0])
	gl.Uniform4f(c.textColorLoc, color[0], color[1], color[2], color[3])
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, c.atlasTex)
	gl.Uniform1i(c.textTexLoc, 0)

	gl.BindVertexArray(c.textVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.textVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.DYNAMIC_DRAW)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(2*4))
	gl.EnableVertexAttribArray(1)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

// DrawUnderline implements Canvas as a 1px solid quad.
func (c *GLCanvas) DrawUnderline(pos Point, width float64, fg headlessterm.Hsla) {
	c.FillRect(Rect{X: pos.X, Y: pos.Y, Width: width, Height: 1}, fg)
}

// DrawImage implements Canvas. The RGBA pixels for each imageID are uploaded
// to their own texture on first use and reused for subsequent placements of
// the same image; the [u0,v0]-[u1,v1] range selects the cell's slice of it.
func (c *GLCanvas) DrawImage(bounds Rect, imageID uint32, rgba []byte, srcWidth, srcHeight uint32, u0, v0, u1, v1 float32) {
	if len(rgba) == 0 || srcWidth == 0 || srcHeight == 0 {
		return
	}

	tex, ok := c.imageTex[imageID]
	if !ok {
		gl.GenTextures(1, &tex)
		gl.BindTexture(gl.TEXTURE_2D, tex)
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(srcWidth), int32(srcHeight), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba))
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
		c.imageTex[imageID] = tex
	}

	x0, y0 := float32(bounds.X), float32(bounds.Y)
	x1, y1 := float32(bounds.X+bounds.Width), float32(bounds.Y+bounds.Height)
	verts := []float32{
		x0, y0, u0, v0,
		x1, y0, u1, v0,
		x0, y1, u0, v1,
		x1, y0, u1, v0,
		x1, y1, u1, v1,
		x0, y1, u0, v1,
	}

	gl.UseProgram(c.imageProgram)
	proj := c.projection()
	gl.UniformMatrix4fv(c.imageProjLoc, 1, false, &proj[0])
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.Uniform1i(c.imageTexLoc, 0)

	gl.BindVertexArray(c.textVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.textVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.DYNAMIC_DRAW)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(2*4))
	gl.EnableVertexAttribArray(1)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

var _ Canvas = (*GLCanvas)(nil)

const quadVertexShader = `#version 410 core
layout (location = 0) in vec2 aPos;
uniform mat4 uProjection;
void main() {
    gl_Position = uProjection * vec4(aPos, 0.0, 1.0);
}
` + "\x00"

const quadFragmentShader = `#version 410 core
out vec4 fragColor;
uniform vec4 uColor;
void main() {
    fragColor = uColor;
}
` + "\x00"

const textVertexShader = `#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aUV;
out vec2 vUV;
uniform mat4 uProjection;
void main() {
    vUV = aUV;
    gl_Position = uProjection * vec4(aPos, 0.0, 1.0);
}
` + "\x00"

const textFragmentShader = `#version 410 core
in vec2 vUV;
out vec4 fragColor;
uniform sampler2D uTex;
uniform vec4 uColor;
void main() {
    float a = texture(uTex, vUV).a;
    fragColor = vec4(uColor.rgb, uColor.a * a);
}
` + "\x00"

const imageFragmentShader = `#version 410 core
in vec2 vUV;
out vec4 fragColor;
uniform sampler2D uTex;
void main() {
    fragColor = texture(uTex, vUV);
}
` + "\x00"

func newProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vs, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		return 0, fmt.Errorf("gl canvas: link program: %s", string(log))
	}

	gl.DeleteShader(vs)
	gl.DeleteShader(fs)
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		return 0, fmt.Errorf("gl canvas: compile shader: %s", string(log))
	}
	return shader, nil
}
