package headlessterm

import "github.com/unilibs/uniwidth"

// runeWidth returns the display width: 2 for wide characters (CJK, emoji), 1
// for normal, 0 for zero-width (combining marks, control chars). handler.go
// consults this when laying a rune into the grid to decide whether to also
// write a CellFlagWideCharSpacer into the following column; render's row
// layout then skips spacer cells outright rather than measuring width itself.
func runeWidth(r rune) int {
	return uniwidth.RuneWidth(r)
}

// isWideRune reports whether runeWidth(r) == 2 — the spacer-cell case.
func isWideRune(r rune) bool {
	return runeWidth(r) == 2
}

// StringWidth returns the total display width of a string (sum of rune widths).
func StringWidth(s string) int {
	return uniwidth.StringWidth(s)
}
