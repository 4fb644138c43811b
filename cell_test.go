package headlessterm

import (
	"image/color"
	"testing"
)

func TestNewCell(t *testing.T) {
	cell := NewCell()

	if cell.Char != ' ' {
		t.Errorf("expected space, got '%c'", cell.Char)
	}
	fg, ok := cell.Fg.(*NamedColor)
	if !ok || fg.Name != NamedColorForeground {
		t.Errorf("expected default foreground NamedColor, got %#v", cell.Fg)
	}
	bg, ok := cell.Bg.(*NamedColor)
	if !ok || bg.Name != NamedColorBackground {
		t.Errorf("expected default background NamedColor, got %#v", cell.Bg)
	}
	if cell.Flags != 0 {
		t.Error("expected no flags")
	}
}

func TestCellReset(t *testing.T) {
	cell := NewCell()
	cell.Char = 'A'
	cell.SetFlag(CellFlagBold)
	cell.UnderlineColor = color.RGBA{R: 255}

	cell.Reset()

	if cell.Char != ' ' {
		t.Errorf("expected space after reset, got '%c'", cell.Char)
	}
	if cell.HasFlag(CellFlagBold) {
		t.Error("expected no flags after reset")
	}
	if cell.UnderlineColor != nil {
		t.Error("expected underline color cleared after reset")
	}
}

func TestCellFlags(t *testing.T) {
	cell := NewCell()

	cell.SetFlag(CellFlagBold)
	if !cell.HasFlag(CellFlagBold) {
		t.Error("expected bold flag")
	}

	cell.SetFlag(CellFlagItalic)
	if !cell.HasFlag(CellFlagBold) || !cell.HasFlag(CellFlagItalic) {
		t.Error("expected both flags")
	}

	cell.ClearFlag(CellFlagBold)
	if cell.HasFlag(CellFlagBold) {
		t.Error("expected bold flag to be cleared")
	}
	if !cell.HasFlag(CellFlagItalic) {
		t.Error("expected italic flag to remain")
	}
}

func TestCellDirty(t *testing.T) {
	cell := NewCell()

	if cell.IsDirty() {
		t.Error("expected cell not dirty initially")
	}

	cell.MarkDirty()
	if !cell.IsDirty() {
		t.Error("expected cell to be dirty")
	}

	cell.ClearDirty()
	if cell.IsDirty() {
		t.Error("expected cell not dirty after clear")
	}
}

func TestCellWide(t *testing.T) {
	cell := NewCell()

	cell.SetFlag(CellFlagWideChar)
	if !cell.IsWide() {
		t.Error("expected cell to be wide")
	}

	spacer := NewCell()
	spacer.SetFlag(CellFlagWideCharSpacer)
	if !spacer.IsWideSpacer() {
		t.Error("expected cell to be spacer")
	}
}

func TestCellCopy(t *testing.T) {
	cell := NewCell()
	cell.Char = 'X'
	cell.SetFlag(CellFlagBold | CellFlagItalic)

	copied := cell.Copy()

	if copied.Char != 'X' {
		t.Errorf("expected 'X', got '%c'", copied.Char)
	}
	if !copied.HasFlag(CellFlagBold) || !copied.HasFlag(CellFlagItalic) {
		t.Error("expected flags to be copied")
	}

	// Modify original, copy should be unchanged
	cell.Char = 'Y'
	if copied.Char != 'X' {
		t.Error("copy should be independent")
	}
}

func TestCellResolveColorsPlain(t *testing.T) {
	palette := DefaultColorPalette()
	cell := NewCell()
	cell.Fg = &NamedColor{Name: 1} // ansi red
	cell.Bg = &NamedColor{Name: 4} // ansi blue

	fg, bg := cell.ResolveColors(palette, nil)
	if fg != palette.Ansi[1] {
		t.Errorf("expected fg = ansi[1], got %+v", fg)
	}
	if bg != palette.Ansi[4] {
		t.Errorf("expected bg = ansi[4], got %+v", bg)
	}
}

func TestCellResolveColorsReverse(t *testing.T) {
	palette := DefaultColorPalette()
	cell := NewCell()
	cell.Fg = &NamedColor{Name: 1}
	cell.Bg = &NamedColor{Name: 4}
	cell.SetFlag(CellFlagReverse)

	fg, bg := cell.ResolveColors(palette, nil)
	if fg != palette.Ansi[4] {
		t.Errorf("expected reversed fg = ansi[4], got %+v", fg)
	}
	if bg != palette.Ansi[1] {
		t.Errorf("expected reversed bg = ansi[1], got %+v", bg)
	}
}

func TestCellResolveColorsDim(t *testing.T) {
	palette := DefaultColorPalette()
	cell := NewCell()
	cell.Fg = &NamedColor{Name: 1}
	cell.SetFlag(CellFlagDim)

	fg, _ := cell.ResolveColors(palette, nil)
	want := palette.Ansi[1].dim()
	if fg != want {
		t.Errorf("expected dimmed fg %+v, got %+v", want, fg)
	}
}
