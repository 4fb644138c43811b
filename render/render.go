// Package render turns a headlessterm.Terminal grid snapshot into paint
// commands on a host drawing surface: row-batched text runs, merged
// background rectangles, the two-pass box-drawing dispatch, and the cursor
// quad, in the order spec.md §4.G requires.
package render

import (
	"math"

	headlessterm "github.com/embeddedterm/goterm"
	"github.com/embeddedterm/goterm/boxdraw"
)

// Point is a location in canvas space (pixels), Y increasing downward. It
// is an alias in all but name for boxdraw.Point so render code never has to
// convert between the two when calling into boxdraw's drawing helpers.
type Point = boxdraw.Point

// Rect is a pixel rectangle, e.g. the paint bounds or a background quad.
type Rect struct {
	X, Y, Width, Height float64
}

// Edges is a four-sided inset (the TerminalConfig padding).
type Edges struct {
	Top, Right, Bottom, Left float64
}

// Inset returns the rect remaining after subtracting e from all four sides.
func (r Rect) Inset(e Edges) Rect {
	return Rect{
		X:      r.X + e.Left,
		Y:      r.Y + e.Top,
		Width:  math.Max(0, r.Width-e.Left-e.Right),
		Height: math.Max(0, r.Height-e.Top-e.Bottom),
	}
}

// Canvas is the host-provided drawing surface. It extends boxdraw.Canvas
// (straight/curved stroke primitives) with solid fills and text shaping, the
// two additional primitives the renderer needs that box-drawing does not.
// A concrete backend measures one cell by shaping the single character
// '│' (U+2502), per spec.md §4.G.
type Canvas interface {
	boxdraw.Canvas

	// FillRect paints a solid quad.
	FillRect(bounds Rect, c headlessterm.Hsla)

	// MeasureCell shapes refChar ('│') in the given font/size and returns
	// its advance width plus the font's ascent/descent, from which the
	// caller derives cell width/height.
	MeasureCell(fontFamily string, fontSizePx float64, refChar rune) (width, ascent, descent float64)

	// DrawText shapes and paints a single run of same-styled text whose
	// first character's baseline-left origin is pos.
	DrawText(pos Point, text string, fg headlessterm.Hsla, bold, italic bool)

	// DrawUnderline paints a 1px stroke beneath a text run's baseline.
	DrawUnderline(pos Point, width float64, fg headlessterm.Hsla)

	// DrawImage paints the sub-rectangle [u0,v0]-[u1,v1] of the RGBA image
	// identified by imageID into bounds. The renderer looks up imageID's
	// pixels and coordinates from headlessterm.Cell.Image; the backend owns
	// texture upload/caching.
	DrawImage(bounds Rect, imageID uint32, rgba []byte, srcWidth, srcHeight uint32, u0, v0, u1, v1 float32)
}

// Config is the subset of TerminalConfig (see termview.Config) the renderer
// itself consumes.
type Config struct {
	FontFamily           string
	FontSizePx           float64
	LineHeightMultiplier float64
	Palette              headlessterm.Palette
}

// DefaultConfig returns spec.md §3's TerminalConfig defaults, restricted to
// the renderer-relevant fields.
func DefaultConfig() Config {
	return Config{
		FontFamily:           "monospace",
		FontSizePx:           14,
		LineHeightMultiplier: 1.0,
		Palette:              headlessterm.DefaultColorPalette(),
	}
}

// CellMetrics is the derived pixel geometry of one grid cell.
type CellMetrics struct {
	Width  float64
	Height float64
}

// refChar is the character shaped to derive cell geometry, per spec.md
// §4.G: "measure cell geometry by asking the host text system to shape the
// single character '│' (U+2502)".
const refChar = '│'

// MeasureCellMetrics derives cell width/height by shaping refChar in the
// configured font. Callers should cache the result and only recompute when
// FontFamily/FontSizePx/LineHeightMultiplier change.
func MeasureCellMetrics(canvas Canvas, cfg Config) CellMetrics {
	width, ascent, descent := canvas.MeasureCell(cfg.FontFamily, cfg.FontSizePx, refChar)
	height := math.Ceil(ascent+descent) * cfg.LineHeightMultiplier
	return CellMetrics{Width: width, Height: height}
}

// BatchedTextRun is a contiguous run of cells sharing every style field,
// paintable with one shaped-text call.
type BatchedTextRun struct {
	Text      string
	StartCol  int
	Row       int
	Fg, Bg    headlessterm.Hsla
	Bold      bool
	Italic    bool
	Underline bool
}

// BackgroundRect is a colored rectangle covering one or more horizontally
// contiguous cells sharing a background color.
type BackgroundRect struct {
	Row              int
	StartCol, EndCol int // [StartCol, EndCol)
	Color            headlessterm.Hsla
}

func (r BackgroundRect) mergeableWith(o BackgroundRect) bool {
	return r.Row == o.Row && r.Color == o.Color && r.EndCol == o.StartCol
}

// MergeBackgrounds combines adjacent same-row, same-color rectangles into
// single spans. rects must already be sorted by StartCol within each row
// (layoutRow produces them that way). The merge is idempotent and
// associative: merging in one call produces the same result as merging in
// two successive calls over a prefix/suffix split (Testable Property 8).
func MergeBackgrounds(rects []BackgroundRect) []BackgroundRect {
	if len(rects) == 0 {
		return nil
	}
	out := make([]BackgroundRect, 0, len(rects))
	cur := rects[0]
	for _, r := range rects[1:] {
		if cur.mergeableWith(r) {
			cur.EndCol = r.EndCol
			continue
		}
		out = append(out, cur)
		cur = r
	}
	return append(out, cur)
}

// layoutRow scans one grid row into a list of batched text runs and raw
// (unmerged, one rect per non-default-background cell) background
// rectangles, skipping WideCharSpacer cells. NUL and space are treated as
// equivalent (both render as a blank glyph).
func layoutRow(term *headlessterm.Terminal, row, cols int, palette headlessterm.Palette) ([]BatchedTextRun, []BackgroundRect) {
	var runs []BatchedTextRun
	var rawBg []BackgroundRect
	var cur *BatchedTextRun

	flush := func() {
		if cur != nil {
			runs = append(runs, *cur)
			cur = nil
		}
	}

	for col := 0; col < cols; col++ {
		cell := term.Cell(row, col)
		if cell == nil {
			flush()
			continue
		}
		if cell.HasFlag(headlessterm.CellFlagWideCharSpacer) {
			continue
		}

		fg, bg := cell.ResolveColors(palette, nil)
		bold := cell.HasFlag(headlessterm.CellFlagBold)
		italic := cell.HasFlag(headlessterm.CellFlagItalic)
		underline := cell.HasFlag(headlessterm.CellFlagUnderline)

		ch := cell.Char
		if ch == 0 {
			ch = ' '
		}

		if bg != palette.Background {
			rawBg = append(rawBg, BackgroundRect{Row: row, StartCol: col, EndCol: col + 1, Color: bg})
		}

		isBox := boxdraw.IsBoxDrawingChar(ch)

		if cur != nil && cur.StartCol+runeLen(cur.Text) == col &&
			cur.Fg == fg && cur.Bg == bg && cur.Bold == bold && cur.Italic == italic && cur.Underline == underline &&
			boxdraw.IsBoxDrawingChar(rune(lastRune(cur.Text))) == isBox {
			cur.Text += string(ch)
			continue
		}

		flush()
		cur = &BatchedTextRun{Text: string(ch), StartCol: col, Row: row, Fg: fg, Bg: bg, Bold: bold, Italic: italic, Underline: underline}
	}
	flush()

	return runs, MergeBackgrounds(rawBg)
}

func runeLen(s string) int {
	return len([]rune(s))
}

// lastRune returns the last rune of s, used to decide whether a growing
// text run is still uniformly box-drawing or uniformly ordinary text.
func lastRune(s string) rune {
	runes := []rune(s)
	if len(runes) == 0 {
		return 0
	}
	return runes[len(runes)-1]
}

// cellBounds returns the pixel rect of grid cell (row, col) relative to
// origin (the content area's top-left, after padding inset).
func cellBounds(origin Point, metrics CellMetrics, row, col int) boxdraw.Bounds {
	return boxdraw.Bounds{
		X:      origin.X + float64(col)*metrics.Width,
		Y:      origin.Y + float64(row)*metrics.Height,
		Width:  metrics.Width,
		Height: metrics.Height,
	}
}

// Paint renders term into bounds on canvas, treating the padding inset as
// default background, following spec.md §4.G's six-step order:
//  1. fill bounds with the default background
//  2. per-row background rectangles
//  3. box-drawing pass A: horizontal spans
//  4. box-drawing pass B: verticals / full characters not covered by pass A
//  5. text pass for non-box-drawing, non-blank cells
//  6. cursor quad
func Paint(bounds Rect, padding Edges, term *headlessterm.Terminal, cfg Config, canvas Canvas) {
	palette := cfg.Palette
	metrics := MeasureCellMetrics(canvas, cfg)

	canvas.FillRect(bounds, palette.Background)

	content := bounds.Inset(padding)
	origin := Point{X: content.X, Y: content.Y}

	rows := term.Rows()
	cols := term.Cols()
	light, heavy := boxdraw.CalculateThickness(metrics.Width)

	textOffset := (metrics.Height - metrics.Height/cfg.LineHeightMultiplier) / 2
	_, ascent, _ := canvas.MeasureCell(cfg.FontFamily, cfg.FontSizePx, refChar)

	type rowLayout struct {
		runs    []BatchedTextRun
		bgRects []BackgroundRect
	}
	rowLayouts := make([]rowLayout, rows)

	for row := 0; row < rows; row++ {
		runs, bg := layoutRow(term, row, cols, palette)
		rowLayouts[row] = rowLayout{runs: runs, bgRects: bg}

		// Step 2: paint this row's background rectangles.
		for _, r := range bg {
			x0 := origin.X + float64(r.StartCol)*metrics.Width
			x1 := origin.X + float64(r.EndCol)*metrics.Width
			y := origin.Y + float64(row)*metrics.Height
			canvas.FillRect(Rect{X: x0, Y: y, Width: x1 - x0, Height: metrics.Height}, r.Color)
		}
	}

	// Step 3: box-drawing pass A, horizontal spans. A run begins at any
	// cell with a horizontal weight and extends while the next cell is
	// adjacent with equal weight and equal foreground; covered columns are
	// skipped by pass B's full-character draw.
	covered := make([][]bool, rows)
	for row := 0; row < rows; row++ {
		covered[row] = make([]bool, cols)
		col := 0
		for col < cols {
			cell := term.Cell(row, col)
			if cell == nil || cell.HasFlag(headlessterm.CellFlagWideCharSpacer) {
				col++
				continue
			}
			segs, ok := boxdraw.Segments(cell.Char)
			w, hasH := boxdraw.GetHorizontalWeight(segs)
			if !ok || !hasH || boxdraw.IsRoundedCorner(cell.Char) {
				col++
				continue
			}
			fg := palette.Resolve(cell.Fg, nil)
			start := col
			end := col + 1
			for end < cols {
				next := term.Cell(row, end)
				if next == nil || next.HasFlag(headlessterm.CellFlagWideCharSpacer) {
					break
				}
				nsegs, nok := boxdraw.Segments(next.Char)
				nw, nHasH := boxdraw.GetHorizontalWeight(nsegs)
				if !nok || !nHasH || nw != w || boxdraw.IsRoundedCorner(next.Char) {
					break
				}
				if palette.Resolve(next.Fg, nil) != fg {
					break
				}
				end++
			}

			y := origin.Y + float64(row)*metrics.Height + metrics.Height/2
			x0 := origin.X + float64(start)*metrics.Width
			x1 := origin.X + float64(end)*metrics.Width
			boxdraw.DrawHorizontalSpan(canvas, y, x0, x1, w, light, heavy, fg)
			for c := start; c < end; c++ {
				covered[row][c] = true
			}
			col = end
		}
	}

	// Step 4: box-drawing pass B.
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			cell := term.Cell(row, col)
			if cell == nil || cell.HasFlag(headlessterm.CellFlagWideCharSpacer) {
				continue
			}
			if !boxdraw.IsBoxDrawingChar(cell.Char) {
				continue
			}
			fg := palette.Resolve(cell.Fg, nil)
			b := cellBounds(origin, metrics, row, col)
			if covered[row][col] {
				segs, ok := boxdraw.Segments(cell.Char)
				if !ok {
					continue
				}
				center := b.Center()
				top, bottom := b.Y, b.Y+b.Height
				boxdraw.DrawVerticalComponents(canvas, center.X, top, center.Y, bottom, segs.Top, segs.Bottom, light, heavy, fg)
				continue
			}
			boxdraw.DrawBoxCharacter(canvas, cell.Char, b, fg, metrics.Width)
		}
	}

	// Step 4.5: inline images. Cell.Image is populated only by
	// Terminal.PlaceImage (see headlessterm's inline-image model), never by
	// the wire decoder; skip spacer cells and cells already painted by a box
	// character so an image placement never contends with a border glyph.
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			cell := term.Cell(row, col)
			if cell == nil || cell.HasFlag(headlessterm.CellFlagWideCharSpacer) || !cell.HasImage() {
				continue
			}
			img := term.Image(cell.Image.ImageID)
			if img == nil {
				continue
			}
			b := cellBounds(origin, metrics, row, col)
			canvas.DrawImage(b, cell.Image.ImageID, img.Data, img.Width, img.Height,
				cell.Image.U0, cell.Image.V0, cell.Image.U1, cell.Image.V1)
		}
	}

	// Step 5: text pass for non-box-drawing, non-blank runs.
	for row := 0; row < rows; row++ {
		for _, run := range rowLayouts[row].runs {
			if isBlankRun(run.Text) || boxdraw.IsBoxDrawingChar(lastRune(run.Text)) {
				continue
			}
			x := origin.X + float64(run.StartCol)*metrics.Width
			y := origin.Y + float64(row)*metrics.Height + textOffset
			canvas.DrawText(Point{X: x, Y: y + ascent}, run.Text, run.Fg, run.Bold, run.Italic)
			if run.Underline {
				width := metrics.Width * float64(runeLen(run.Text))
				canvas.DrawUnderline(Point{X: x, Y: y + metrics.Height}, width, run.Fg)
			}
		}
	}

	// Step 6: cursor.
	if term.CursorVisible() {
		cr, cc := term.CursorPos()
		b := cellBounds(origin, metrics, cr, cc)
		canvas.FillRect(Rect{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}, palette.Cursor)
	}
}

func isBlankRun(s string) bool {
	for _, r := range s {
		if r != ' ' && r != 0 {
			return false
		}
	}
	return true
}

