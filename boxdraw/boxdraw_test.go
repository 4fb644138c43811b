package boxdraw

import (
	"testing"

	headlessterm "github.com/embeddedterm/goterm"
)

// Every box-drawing character except the three diagonals has at least one
// segment.
func TestSegmentsCoversBlockExceptDiagonals(t *testing.T) {
	for r := rune(0x2500); r <= 0x257F; r++ {
		segs, ok := Segments(r)
		isDiagonal := r == 0x2571 || r == 0x2572 || r == 0x2573
		if isDiagonal {
			if ok {
				t.Errorf("%U: expected diagonal to be unsupported", r)
			}
			continue
		}
		if !ok {
			t.Errorf("%U: expected segments, got none", r)
			continue
		}
		if !segs.HasSegments() {
			t.Errorf("%U: segments present but all nil", r)
		}
	}
}

func TestSegmentsKnownChars(t *testing.T) {
	cases := []struct {
		r                         rune
		top, bottom, left, right *LineWeight
	}{
		{0x2500, nil, nil, weight(Light), weight(Light)},
		{0x2501, nil, nil, weight(Heavy), weight(Heavy)},
		{0x2502, weight(Light), weight(Light), nil, nil},
		{0x250C, nil, weight(Light), nil, weight(Light)},
		{0x253C, weight(Light), weight(Light), weight(Light), weight(Light)},
		{0x2549, weight(Heavy), weight(Heavy), weight(Heavy), weight(Light)},
		{0x254A, weight(Heavy), weight(Heavy), weight(Light), weight(Heavy)},
		{0x254B, weight(Heavy), weight(Heavy), weight(Heavy), weight(Heavy)},
		{0x2550, nil, nil, weight(Double), weight(Double)},
		{0x256C, weight(Double), weight(Double), weight(Double), weight(Double)},
	}

	for _, c := range cases {
		segs, ok := Segments(c.r)
		if !ok {
			t.Fatalf("%U: expected ok", c.r)
		}
		if !sameWeight(segs.Top, c.top) || !sameWeight(segs.Bottom, c.bottom) ||
			!sameWeight(segs.Left, c.left) || !sameWeight(segs.Right, c.right) {
			t.Errorf("%U: got %+v", c.r, segs)
		}
	}
}

func sameWeight(a, b *LineWeight) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func TestIsRoundedCorner(t *testing.T) {
	for r := rune(0x256D); r <= 0x2570; r++ {
		if !IsRoundedCorner(r) {
			t.Errorf("%U: expected rounded corner", r)
		}
	}
	if IsRoundedCorner(0x250C) {
		t.Error("square corner misclassified as rounded")
	}
}

func TestGetHorizontalWeightRequiresBothSides(t *testing.T) {
	segs, _ := Segments(0x2524) // ┤: top, bottom, left — no right
	if _, ok := GetHorizontalWeight(segs); ok {
		t.Error("expected no horizontal weight without a right edge")
	}
	segs, _ = Segments(0x2500) // ─
	if w, ok := GetHorizontalWeight(segs); !ok || w != Light {
		t.Errorf("expected Light horizontal weight, got %v ok=%v", w, ok)
	}
}

func TestCalculateThicknessMinimums(t *testing.T) {
	light, heavy := CalculateThickness(1)
	if light != 1 {
		t.Errorf("light thickness should floor at 1, got %v", light)
	}
	if heavy != 2 {
		t.Errorf("heavy thickness should floor at 2, got %v", heavy)
	}

	light, heavy = CalculateThickness(20)
	if light != 3 { // round(20*0.15) = 3
		t.Errorf("light thickness = %v, want 3", light)
	}
	if heavy != 6 { // round(20*0.28) = 6 (5.6 rounds to 6)
		t.Errorf("heavy thickness = %v, want 6", heavy)
	}
}

// fakeCanvas records stroke calls for assertions without needing a real
// rasterizer.
type fakeCanvas struct {
	lines  int
	curves int
}

func (f *fakeCanvas) StrokeLine(from, to Point, thickness float64, c headlessterm.Hsla) {
	f.lines++
}

func (f *fakeCanvas) StrokeCurve(start, control, end Point, thickness float64, c headlessterm.Hsla) {
	f.curves++
}

func TestDrawBoxCharacterRoundedCornerUsesCurve(t *testing.T) {
	canvas := &fakeCanvas{}
	bounds := Bounds{X: 0, Y: 0, Width: 10, Height: 20}
	if !DrawBoxCharacter(canvas, 0x256D, bounds, headlessterm.Hsla{}, 10) {
		t.Fatal("expected rounded corner to draw")
	}
	if canvas.curves != 1 {
		t.Errorf("expected exactly one curve segment, got %d", canvas.curves)
	}
	if canvas.lines != 2 {
		t.Errorf("expected two straight segments, got %d", canvas.lines)
	}
}

func TestDrawBoxCharacterDiagonalReturnsFalse(t *testing.T) {
	canvas := &fakeCanvas{}
	bounds := Bounds{X: 0, Y: 0, Width: 10, Height: 20}
	if DrawBoxCharacter(canvas, 0x2571, bounds, headlessterm.Hsla{}, 10) {
		t.Error("expected diagonal character to report false")
	}
}

func TestDrawBoxCharacterDoubleLineDrawsTwoStrokes(t *testing.T) {
	canvas := &fakeCanvas{}
	bounds := Bounds{X: 0, Y: 0, Width: 10, Height: 20}
	if !DrawBoxCharacter(canvas, 0x2550, bounds, headlessterm.Hsla{}, 10) {
		t.Fatal("expected double horizontal to draw")
	}
	if canvas.lines != 2 {
		t.Errorf("expected two parallel strokes for a double line, got %d", canvas.lines)
	}
}
