package mouse

import "testing"

// TestPixelToCellClampsToOrigin is Testable Property 5.
func TestPixelToCellClampsToOrigin(t *testing.T) {
	cases := []struct {
		name               string
		x, y               float64
		originX, originY   float64
		w, h               float64
	}{
		{"at origin", 0, 0, 0, 0, 8, 16},
		{"at origin, large cells", 0, 0, 0, 0, 100, 200},
		{"above and left of origin clamps", -50, -50, 10, 10, 8, 16},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := PixelToCell(c.x, c.y, c.originX, c.originY, c.w, c.h)
			if got != (Cell{Row: 0, Col: 0}) {
				t.Fatalf("got %+v, want (0,0)", got)
			}
		})
	}
}

func TestPixelToCellInterior(t *testing.T) {
	got := PixelToCell(42, 33, 10, 10, 8, 16)
	// (42-10)/8 = 4.0 -> col 4, (33-10)/16 = 1.4375 -> row 1
	if got != (Cell{Row: 1, Col: 4}) {
		t.Fatalf("got %+v, want (1,4)", got)
	}
}

// TestButtonReportSGREncoding is Testable Property 6.
func TestButtonReportSGREncoding(t *testing.T) {
	out, ok := ButtonReport(ButtonLeft, true, Cell{Row: 4, Col: 9}, 0, ReportMode{ReportClick: true})
	if !ok {
		t.Fatalf("expected ok=true")
	}
	want := "\x1b[<0;10;5M"
	if string(out) != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestButtonReportRelease(t *testing.T) {
	out, ok := ButtonReport(ButtonLeft, false, Cell{Row: 4, Col: 9}, 0, ReportMode{ReportClick: true})
	if !ok {
		t.Fatalf("expected ok=true")
	}
	want := "\x1b[<0;10;5m"
	if string(out) != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestButtonReportDisabledWhenNoModeSet(t *testing.T) {
	_, ok := ButtonReport(ButtonLeft, true, Cell{Row: 0, Col: 0}, 0, ReportMode{})
	if ok {
		t.Fatalf("expected ok=false when no mouse mode is enabled")
	}
}

func TestButtonReportOtherButtonUnsupported(t *testing.T) {
	_, ok := ButtonReport(ButtonOther, true, Cell{Row: 0, Col: 0}, 0, ReportMode{ReportClick: true})
	if ok {
		t.Fatalf("expected ok=false for a button with no SGR encoding")
	}
}

func TestButtonReportEncodesModifiers(t *testing.T) {
	out, ok := ButtonReport(ButtonMiddle, true, Cell{Row: 0, Col: 0}, EncodeModifiers(true, false, false), ReportMode{ReportClick: true})
	if !ok {
		t.Fatalf("expected ok=true")
	}
	want := "\x1b[<5;1;1M" // middle=1 | shift=4 = 5
	if string(out) != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

// TestScrollFallbackArrowKeyCount is Testable Property 7: in ALT_SCREEN
// without mouse modes, scroll_report(+delta, ...) emits exactly
// min(delta,5) arrow-up sequences.
func TestScrollFallbackArrowKeyCount(t *testing.T) {
	mode := ReportMode{AltScreen: true}
	out, ok := ScrollReport(9, Cell{Row: 0, Col: 0}, 0, mode)
	if !ok {
		t.Fatalf("expected ok=true in ALT_SCREEN fallback")
	}
	want := 5 * len("\x1b[A")
	if len(out) != want {
		t.Fatalf("got %d bytes, want %d (5 arrow-up sequences)", len(out), want)
	}
	for i := 0; i < 5; i++ {
		if string(out[i*3:i*3+3]) != "\x1b[A" {
			t.Fatalf("sequence %d = %q, want ESC[A", i, out[i*3:i*3+3])
		}
	}
}

func TestScrollFallbackDownUsesAppCursorSS3(t *testing.T) {
	mode := ReportMode{AltScreen: true, AppCursor: true}
	out, ok := ScrollReport(-2, Cell{Row: 0, Col: 0}, 0, mode)
	if !ok {
		t.Fatalf("expected ok=true")
	}
	want := "\x1bOB\x1bOB"
	if string(out) != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestScrollReportPrefersSGRWhenReportingEnabled(t *testing.T) {
	mode := ReportMode{AltScreen: true, ReportClick: true}
	out, ok := ScrollReport(1, Cell{Row: 0, Col: 0}, 0, mode)
	if !ok {
		t.Fatalf("expected ok=true")
	}
	want := "\x1b[<64;1;1M"
	if string(out) != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestScrollReportNoopWithoutAltScreenOrReporting(t *testing.T) {
	_, ok := ScrollReport(3, Cell{Row: 0, Col: 0}, 0, ReportMode{})
	if ok {
		t.Fatalf("expected ok=false: host should scroll its own scrollback")
	}
}

func TestPixelsToScrollLinesClamps(t *testing.T) {
	if got := PixelsToScrollLines(1000, 16); got != 10 {
		t.Fatalf("got %d, want clamp to 10", got)
	}
	if got := PixelsToScrollLines(-1000, 16); got != -10 {
		t.Fatalf("got %d, want clamp to -10", got)
	}
	if got := PixelsToScrollLines(32, 16); got != 2 {
		t.Fatalf("got %d, want 2", got)
	}
}

func TestSelectionKindFromClicks(t *testing.T) {
	cases := map[int]SelectionKind{
		1: SelectionSimple,
		2: SelectionWord,
		3: SelectionLine,
		4: SelectionLine,
	}
	for clicks, want := range cases {
		if got := SelectionKindFromClicks(clicks); got != want {
			t.Fatalf("clicks=%d: got %v, want %v", clicks, got, want)
		}
	}
}

func TestSelectionContainsRegardlessOfDirection(t *testing.T) {
	s := Selection{Start: Cell{Row: 2, Col: 5}, End: Cell{Row: 0, Col: 0}}
	if !s.Contains(Cell{Row: 1, Col: 0}) {
		t.Fatalf("expected cell within reversed selection span to be contained")
	}
	if s.Contains(Cell{Row: 3, Col: 0}) {
		t.Fatalf("expected cell outside selection span to not be contained")
	}
}
