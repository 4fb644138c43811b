package boxdraw

import (
	"image"
	"image/color"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	headlessterm "github.com/embeddedterm/goterm"
)

// RasterCanvas is a Canvas backed by CPU rasterization into an
// *image.RGBA, using rasterx for antialiased stroke filling. It's the
// stroke backend for headless rendering (render.RasterCanvas delegates its
// strokes to it); cmd/demo uses
// its own GPU-backed Canvas instead for live display.
type RasterCanvas struct {
	Img *image.RGBA
}

// NewRasterCanvas wraps an existing RGBA image for box-drawing output.
func NewRasterCanvas(img *image.RGBA) *RasterCanvas {
	return &RasterCanvas{Img: img}
}

func toFixed(p Point) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(p.X * 64), Y: fixed.Int26_6(p.Y * 64)}
}

func (rc *RasterCanvas) strokePath(thickness float64, c headlessterm.Hsla, draw func(rasterx.Adder)) {
	bounds := rc.Img.Bounds()
	scanner := rasterx.NewScannerGV(bounds.Dx(), bounds.Dy(), rc.Img, bounds)

	rgba := c.ToRGBA()
	scanner.SetColor(color.RGBA{R: rgba.R, G: rgba.G, B: rgba.B, A: rgba.A})

	dasher := rasterx.NewDasher(bounds.Dx(), bounds.Dy(), scanner)
	dasher.SetStroke(fixed.Int26_6(thickness*64), 0, rasterx.ButtCap, rasterx.ButtCap, rasterx.MiterJoin, rasterx.ArcClip, nil, 0)

	draw(dasher)
	dasher.Draw()
	dasher.Clear()
}

// StrokeLine implements Canvas.
func (rc *RasterCanvas) StrokeLine(from, to Point, thickness float64, c headlessterm.Hsla) {
	rc.strokePath(thickness, c, func(a rasterx.Adder) {
		a.Start(toFixed(from))
		a.Line(toFixed(to))
	})
}

// StrokeCurve implements Canvas.
func (rc *RasterCanvas) StrokeCurve(start, control, end Point, thickness float64, c headlessterm.Hsla) {
	rc.strokePath(thickness, c, func(a rasterx.Adder) {
		a.Start(toFixed(start))
		a.QuadBezier(toFixed(control), toFixed(end))
	})
}

var _ Canvas = (*RasterCanvas)(nil)
