// Package mouse translates host pointer events into the SGR (1006) mouse
// reporting sequences a terminal application expects, and implements the
// pixel-to-cell and scroll-to-lines math a view coordinator needs to drive
// it.
package mouse

import (
	"fmt"
	"math"
)

// Button identifies which physical mouse button an event refers to.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
	// ButtonOther covers buttons (4th, 5th, ...) that have no SGR encoding;
	// ButtonReport returns false for them.
	ButtonOther
)

// ReportMode mirrors the subset of terminal mode flags that control whether
// and how mouse events are reported to the running application.
type ReportMode struct {
	ReportClick bool // MOUSE_REPORT_CLICK
	Motion      bool // MOUSE_MOTION
	Drag        bool // MOUSE_DRAG
	AltScreen   bool // ALT_SCREEN
	AppCursor   bool // APP_CURSOR, affects the scroll-to-arrow-keys fallback
}

func (m ReportMode) reportingEnabled() bool {
	return m.ReportClick || m.Motion || m.Drag
}

// Cell is a zero-based grid coordinate.
type Cell struct {
	Row, Col int
}

// PixelToCell converts a pixel position to the grid cell it falls within,
// given the pixel origin of the grid's top-left corner and a cell's pixel
// dimensions. Positions above or left of origin clamp to row/col 0.
func PixelToCell(x, y, originX, originY, cellWidth, cellHeight float64) Cell {
	col := (x - originX) / cellWidth
	if col < 0 {
		col = 0
	}
	row := (y - originY) / cellHeight
	if row < 0 {
		row = 0
	}
	return Cell{Row: int(row), Col: int(col)}
}

// EncodeModifiers packs the held modifier keys into the bitmask SGR mouse
// reports embed in the button value: shift=4, alt/meta=8, control=16.
func EncodeModifiers(shift, alt, control bool) int {
	var m int
	if shift {
		m |= 4
	}
	if alt {
		m |= 8
	}
	if control {
		m |= 16
	}
	return m
}

// ButtonReport builds an SGR 1006 button press/release sequence
// (ESC [ < button ; col ; row M|m) for the given grid cell. ok is false
// when mouse reporting isn't enabled in mode, or button has no SGR
// encoding.
func ButtonReport(button Button, pressed bool, cell Cell, modifiers int, mode ReportMode) (out []byte, ok bool) {
	if !mode.reportingEnabled() {
		return nil, false
	}

	var code int
	switch button {
	case ButtonLeft:
		code = 0
	case ButtonMiddle:
		code = 1
	case ButtonRight:
		code = 2
	default:
		return nil, false
	}

	action := byte('m')
	if pressed {
		action = 'M'
	}

	seq := fmt.Sprintf("\x1b[<%d;%d;%d%c", code|modifiers, cell.Col+1, cell.Row+1, action)
	return []byte(seq), true
}

// ScrollReport builds the escape sequence a scroll-wheel event should
// produce: an SGR wheel report when mouse reporting is enabled, a run of
// arrow-key presses as a scrollback-substitute when the application has
// the alternate screen active without mouse reporting, or nothing (ok=false)
// when the host should instead scroll its own scrollback buffer.
func ScrollReport(delta int, cell Cell, modifiers int, mode ReportMode) (out []byte, ok bool) {
	if mode.reportingEnabled() {
		code := 65
		if delta > 0 {
			code = 64
		}
		seq := fmt.Sprintf("\x1b[<%d;%d;%dM", code|modifiers, cell.Col+1, cell.Row+1)
		return []byte(seq), true
	}

	if mode.AltScreen {
		return scrollToArrowKeys(delta, mode.AppCursor), true
	}

	return nil, false
}

func scrollToArrowKeys(delta int, appCursor bool) []byte {
	count := delta
	if count < 0 {
		count = -count
	}
	if count > 5 {
		count = 5
	}

	var seq []byte
	if delta > 0 {
		if appCursor {
			seq = []byte("\x1bOA")
		} else {
			seq = []byte("\x1b[A")
		}
	} else {
		if appCursor {
			seq = []byte("\x1bOB")
		} else {
			seq = []byte("\x1b[B")
		}
	}

	out := make([]byte, 0, len(seq)*count)
	for i := 0; i < count; i++ {
		out = append(out, seq...)
	}
	return out
}

// PixelsToScrollLines converts a pixel scroll delta (positive = up) to a
// whole number of terminal lines, clamped to +/-10 per event.
func PixelsToScrollLines(pixelDelta, cellHeight float64) int {
	lines := math.Round(pixelDelta / cellHeight)
	if lines > 10 {
		lines = 10
	}
	if lines < -10 {
		lines = -10
	}
	return int(lines)
}

// SelectionKind is the granularity of a text selection, driven by how many
// consecutive clicks started it.
type SelectionKind int

const (
	SelectionSimple SelectionKind = iota // single click: character-by-character
	SelectionWord                        // double click: word-based
	SelectionLine                        // triple click (or more): line-based
)

// SelectionKindFromClicks maps a consecutive-click count to a selection
// granularity: 1 click is character selection, 2 is word, 3 or more is line.
func SelectionKindFromClicks(clickCount int) SelectionKind {
	switch clickCount {
	case 1:
		return SelectionSimple
	case 2:
		return SelectionWord
	default:
		return SelectionLine
	}
}

// Selection is a grid-coordinate text selection span, inclusive of both
// endpoints.
type Selection struct {
	Start, End Cell
	Kind       SelectionKind
}

// Contains reports whether cell falls within the selection, regardless of
// whether Start or End comes first in reading order.
func (s Selection) Contains(cell Cell) bool {
	start, end := s.Start, s.End
	if cellLess(end, start) {
		start, end = end, start
	}
	return !cellLess(cell, start) && !cellLess(end, cell)
}

func cellLess(a, b Cell) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}
