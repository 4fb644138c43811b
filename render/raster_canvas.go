package render

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	headlessterm "github.com/embeddedterm/goterm"
	"github.com/embeddedterm/goterm/boxdraw"
)

// RasterCanvas is a CPU-rasterized Canvas backed by an *image.RGBA, for
// headless paints (such as the render tests) where no live GPU surface is
// available. It delegates stroke primitives to boxdraw.RasterCanvas and
// adds solid fills plus basicfont-based text shaping.
//
// cmd/demo uses a GL-backed Canvas instead for interactive display;
// RasterCanvas is the non-interactive counterpart the DOMAIN STACK table
// calls out as the headless backend.
type RasterCanvas struct {
	Img   *image.RGBA
	strip *boxdraw.RasterCanvas
	Face  font.Face
}

// NewRasterCanvas wraps img for drawing. face defaults to basicfont.Face7x13
// when nil, matching the teacher's Screenshot fallback.
func NewRasterCanvas(img *image.RGBA, face font.Face) *RasterCanvas {
	if face == nil {
		face = basicfont.Face7x13
	}
	return &RasterCanvas{Img: img, strip: boxdraw.NewRasterCanvas(img), Face: face}
}

// StrokeLine implements boxdraw.Canvas (and thus render.Canvas).
func (rc *RasterCanvas) StrokeLine(from, to Point, thickness float64, c headlessterm.Hsla) {
	rc.strip.StrokeLine(from, to, thickness, c)
}

// StrokeCurve implements boxdraw.Canvas.
func (rc *RasterCanvas) StrokeCurve(start, control, end Point, thickness float64, c headlessterm.Hsla) {
	rc.strip.StrokeCurve(start, control, end, thickness, c)
}

// FillRect implements Canvas by filling with image/draw's uniform source.
func (rc *RasterCanvas) FillRect(bounds Rect, c headlessterm.Hsla) {
	rgba := c.ToRGBA()
	r := image.Rect(int(bounds.X), int(bounds.Y), int(bounds.X+bounds.Width), int(bounds.Y+bounds.Height))
	draw.Draw(rc.Img, r, &image.Uniform{C: rgba}, image.Point{}, draw.Src)
}

// MeasureCell implements Canvas by shaping refChar in rc.Face. basicfont is
// a fixed-size bitmap face, so fontSizePx is accepted for interface
// conformance but does not rescale it; a host wanting true per-size
// metrics supplies an opentype face sized via headlessterm.LoadFont.
func (rc *RasterCanvas) MeasureCell(_ string, _ float64, refChar rune) (width, ascent, descent float64) {
	adv, _ := rc.Face.GlyphAdvance(refChar)
	metrics := rc.Face.Metrics()
	return float64(adv.Ceil()), float64(metrics.Ascent.Ceil()), float64(metrics.Descent.Ceil())
}

// DrawText implements Canvas, painting one shaped run with font.Drawer.
func (rc *RasterCanvas) DrawText(pos Point, text string, fg headlessterm.Hsla, _, _ bool) {
	d := &font.Drawer{
		Dst:  rc.Img,
		Src:  &image.Uniform{C: fg.ToRGBA()},
		Face: rc.Face,
		Dot:  fixed.P(int(pos.X), int(pos.Y)),
	}
	d.DrawString(text)
}

// DrawUnderline implements Canvas as a single solid-fill stroke.
func (rc *RasterCanvas) DrawUnderline(pos Point, width float64, fg headlessterm.Hsla) {
	rc.FillRect(Rect{X: pos.X, Y: pos.Y, Width: width, Height: 1}, fg)
}

// DrawImage implements Canvas by scaling the [u0,v0]-[u1,v1] sub-rectangle
// of the source pixels onto bounds with x/image/draw's bilinear scaler.
func (rc *RasterCanvas) DrawImage(bounds Rect, _ uint32, rgba []byte, srcWidth, srcHeight uint32, u0, v0, u1, v1 float32) {
	if len(rgba) == 0 || srcWidth == 0 || srcHeight == 0 {
		return
	}
	src := &image.RGBA{
		Pix:    rgba,
		Stride: int(srcWidth) * 4,
		Rect:   image.Rect(0, 0, int(srcWidth), int(srcHeight)),
	}
	sub := image.Rect(
		int(float32(srcWidth)*u0), int(float32(srcHeight)*v0),
		int(float32(srcWidth)*u1), int(float32(srcHeight)*v1),
	)
	dst := image.Rect(int(bounds.X), int(bounds.Y), int(bounds.X+bounds.Width), int(bounds.Y+bounds.Height))
	xdraw.ApproxBiLinear.Scale(rc.Img, dst, src, sub, xdraw.Over, nil)
}

var _ Canvas = (*RasterCanvas)(nil)
