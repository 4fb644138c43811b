package boxdraw

import (
	"math"

	headlessterm "github.com/embeddedterm/goterm"
)

// Point is a location in canvas space (pixels), with Y increasing downward.
type Point struct {
	X, Y float64
}

// Bounds is the pixel rectangle a single grid cell occupies.
type Bounds struct {
	X, Y, Width, Height float64
}

// Center returns the midpoint of the cell, where box-drawing strokes pivot.
func (b Bounds) Center() Point {
	return Point{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
}

// Canvas is the host-provided path-stroking surface. A renderer implements
// it once per backend (CPU raster, GPU quads, ...); this package never
// touches pixels directly.
type Canvas interface {
	// StrokeLine draws a straight segment of the given thickness.
	StrokeLine(from, to Point, thickness float64, c headlessterm.Hsla)
	// StrokeCurve draws a quadratic Bezier segment (used only for rounded
	// corners).
	StrokeCurve(start, control, end Point, thickness float64, c headlessterm.Hsla)
}

// CalculateThickness derives the light and heavy stroke widths from a cell's
// pixel width, so box-drawing scales with font size instead of using a
// fixed pixel count.
func CalculateThickness(cellWidth float64) (light, heavy float64) {
	light = math.Round(cellWidth * 0.15)
	if light < 1 {
		light = 1
	}
	heavy = math.Round(cellWidth * 0.28)
	if heavy < 2 {
		heavy = 2
	}
	return light, heavy
}

func thicknessOf(w LineWeight, light, heavy float64) float64 {
	switch w {
	case Heavy:
		return heavy
	case Double:
		// Double lines are drawn as two parallel light strokes.
		return light
	default:
		return light
	}
}

// drawContinuousLine draws one line segment, or for Double weight two
// parallel strokes separated by a stroke-width gap.
func drawContinuousLine(canvas Canvas, from, to Point, w LineWeight, light, heavy float64, c headlessterm.Hsla, horizontalLine bool) {
	thickness := thicknessOf(w, light, heavy)

	if w != Double {
		canvas.StrokeLine(from, to, thickness, c)
		return
	}

	gap := thickness
	offset := (thickness + gap) / 2
	if horizontalLine {
		canvas.StrokeLine(Point{from.X, from.Y - offset}, Point{to.X, to.Y - offset}, thickness, c)
		canvas.StrokeLine(Point{from.X, from.Y + offset}, Point{to.X, to.Y + offset}, thickness, c)
	} else {
		canvas.StrokeLine(Point{from.X - offset, from.Y}, Point{to.X - offset, to.Y}, thickness, c)
		canvas.StrokeLine(Point{from.X + offset, from.Y}, Point{to.X + offset, to.Y}, thickness, c)
	}
}

// spanOverlap is how far a batched span is extended past its nominal
// endpoints, so adjoining cells' strokes meet without a seam.
const spanOverlap = 1.0

// DrawHorizontalSpan draws one continuous horizontal stroke from xStart to
// xEnd (typically spanning several adjoining cells that share a horizontal
// weight), extended by spanOverlap at both ends.
func DrawHorizontalSpan(canvas Canvas, y, xStart, xEnd float64, w LineWeight, light, heavy float64, c headlessterm.Hsla) {
	drawContinuousLine(canvas, Point{xStart - spanOverlap, y}, Point{xEnd + spanOverlap, y}, w, light, heavy, c, true)
}

// DrawVerticalSpan draws one continuous vertical stroke from yStart to yEnd.
func DrawVerticalSpan(canvas Canvas, x, yStart, yEnd float64, w LineWeight, light, heavy float64, c headlessterm.Hsla) {
	drawContinuousLine(canvas, Point{x, yStart - spanOverlap}, Point{x, yEnd + spanOverlap}, w, light, heavy, c, false)
}

// DrawVerticalComponents draws the top and bottom halves of a single cell's
// vertical stroke. When both halves are present at the same weight they are
// drawn as one pass-through line; otherwise each half is drawn from the
// cell's center out to its edge independently, since they may differ in
// weight (light up, heavy down, and so on).
func DrawVerticalComponents(canvas Canvas, x, yTop, yMid, yBottom float64, top, bottom *LineWeight, light, heavy float64, c headlessterm.Hsla) {
	if top != nil && bottom != nil && *top == *bottom {
		DrawVerticalSpan(canvas, x, yTop, yBottom, *top, light, heavy, c)
		return
	}
	if top != nil {
		canvas.StrokeLine(Point{x, yTop - spanOverlap}, Point{x, yMid}, thicknessOf(*top, light, heavy), c)
	}
	if bottom != nil {
		canvas.StrokeLine(Point{x, yMid}, Point{x, yBottom + spanOverlap}, thicknessOf(*bottom, light, heavy), c)
	}
}

// DrawBoxCharacter renders a single box-drawing character into bounds. It
// reports false (drawing nothing) for characters outside the block and the
// diagonal characters, so callers can fall back to normal glyph rendering.
func DrawBoxCharacter(canvas Canvas, ch rune, bounds Bounds, c headlessterm.Hsla, cellWidth float64) bool {
	segs, ok := Segments(ch)
	if !ok {
		return false
	}

	light, heavy := CalculateThickness(cellWidth)
	center := bounds.Center()
	left, right := bounds.X, bounds.X+bounds.Width
	top, bottom := bounds.Y, bounds.Y+bounds.Height

	if IsRoundedCorner(ch) {
		DrawRoundedCorner(canvas, ch, bounds, center.X, center.Y, light, c)
		return true
	}

	if w, ok := GetHorizontalWeight(segs); ok {
		DrawHorizontalSpan(canvas, center.Y, left, right, w, light, heavy, c)
	} else {
		if segs.Left != nil {
			canvas.StrokeLine(Point{left - spanOverlap, center.Y}, Point{center.X, center.Y}, thicknessOf(*segs.Left, light, heavy), c)
		}
		if segs.Right != nil {
			canvas.StrokeLine(Point{center.X, center.Y}, Point{right + spanOverlap, center.Y}, thicknessOf(*segs.Right, light, heavy), c)
		}
	}

	if w, ok := GetVerticalWeight(segs); ok {
		DrawVerticalSpan(canvas, center.X, top, bottom, w, light, heavy, c)
	} else {
		DrawVerticalComponents(canvas, center.X, top, center.Y, bottom, segs.Top, segs.Bottom, light, heavy, c)
	}

	return true
}

// DrawRoundedCorner draws one of the four rounded-corner characters
// (U+256D-U+2570) as two straight segments joined by a quadratic curve
// pivoting on the cell center, instead of the sharp corner its Segments
// entry would otherwise imply.
func DrawRoundedCorner(canvas Canvas, ch rune, bounds Bounds, cx, cy, thickness float64, c headlessterm.Hsla) {
	halfW, halfH := bounds.Width/2, bounds.Height/2
	radiusX, radiusY := halfW*0.8, halfH*0.8
	left, right := bounds.X-spanOverlap, bounds.X+bounds.Width+spanOverlap
	top, bottom := bounds.Y-spanOverlap, bounds.Y+bounds.Height+spanOverlap
	center := Point{cx, cy}

	switch ch {
	case 0x256D: // box drawings light arc down and right (╭)
		canvas.StrokeLine(Point{cx, bottom}, Point{cx, cy + radiusY}, thickness, c)
		canvas.StrokeCurve(Point{cx, cy + radiusY}, center, Point{cx + radiusX, cy}, thickness, c)
		canvas.StrokeLine(Point{cx + radiusX, cy}, Point{right, cy}, thickness, c)
	case 0x256E: // box drawings light arc down and left (╮)
		canvas.StrokeLine(Point{left, cy}, Point{cx - radiusX, cy}, thickness, c)
		canvas.StrokeCurve(Point{cx - radiusX, cy}, center, Point{cx, cy + radiusY}, thickness, c)
		canvas.StrokeLine(Point{cx, cy + radiusY}, Point{cx, bottom}, thickness, c)
	case 0x256F: // box drawings light arc up and left (╯)
		canvas.StrokeLine(Point{cx, top}, Point{cx, cy - radiusY}, thickness, c)
		canvas.StrokeCurve(Point{cx, cy - radiusY}, center, Point{cx - radiusX, cy}, thickness, c)
		canvas.StrokeLine(Point{cx - radiusX, cy}, Point{left, cy}, thickness, c)
	case 0x2570: // box drawings light arc up and right (╰)
		canvas.StrokeLine(Point{right, cy}, Point{cx + radiusX, cy}, thickness, c)
		canvas.StrokeCurve(Point{cx + radiusX, cy}, center, Point{cx, cy - radiusY}, thickness, c)
		canvas.StrokeLine(Point{cx, cy - radiusY}, Point{cx, top}, thickness, c)
	}
}
