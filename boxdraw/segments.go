// Package boxdraw draws the Unicode box-drawing block (U+2500-U+257F) as
// geometric strokes instead of falling back to a font glyph, so terminal
// grids render continuous lines and clean corners/joins at any cell size.
package boxdraw

// LineWeight is the stroke weight of a box-drawing line segment.
type LineWeight int

const (
	Light LineWeight = iota
	Heavy
	Double
)

// BoxSegments describes which of the four edges emanating from a cell's
// center a box-drawing character draws, and at what weight. A nil field
// means that edge is absent.
type BoxSegments struct {
	Top, Bottom, Left, Right *LineWeight
}

// HasSegments reports whether any edge is present.
func (s BoxSegments) HasSegments() bool {
	return s.Top != nil || s.Bottom != nil || s.Left != nil || s.Right != nil
}

func weight(w LineWeight) *LineWeight {
	return &w
}

func horizontal(w LineWeight) BoxSegments {
	return BoxSegments{Left: weight(w), Right: weight(w)}
}

func vertical(w LineWeight) BoxSegments {
	return BoxSegments{Top: weight(w), Bottom: weight(w)}
}

func cornerTL(w LineWeight) BoxSegments { return BoxSegments{Bottom: weight(w), Right: weight(w)} }
func cornerTR(w LineWeight) BoxSegments { return BoxSegments{Bottom: weight(w), Left: weight(w)} }
func cornerBL(w LineWeight) BoxSegments { return BoxSegments{Top: weight(w), Right: weight(w)} }
func cornerBR(w LineWeight) BoxSegments { return BoxSegments{Top: weight(w), Left: weight(w)} }

func cross(w LineWeight) BoxSegments {
	return BoxSegments{Top: weight(w), Bottom: weight(w), Left: weight(w), Right: weight(w)}
}

// IsBoxDrawingChar reports whether r falls in the box-drawing block.
func IsBoxDrawingChar(r rune) bool {
	return r >= 0x2500 && r <= 0x257F
}

// IsRoundedCorner reports whether r is one of the four rounded-corner
// characters (U+256D-U+2570), which DrawBoxCharacter renders with a quadratic curve
// instead of a sharp corner even though Segments reports them as ordinary
// square-corner segments.
func IsRoundedCorner(r rune) bool {
	return r >= 0x256D && r <= 0x2570
}

// Segments returns the edge layout for a box-drawing character. ok is false
// for characters outside the block and for the three diagonal characters
// (U+2571-U+2573), which have no axis-aligned segment representation.
func Segments(r rune) (BoxSegments, bool) {
	switch r {
	// Light/heavy plain lines, with the "dashed" variants (0x2504-0x250B)
	// rendered identically to their solid counterparts: at terminal cell
	// sizes a dash pattern is indistinguishable from a solid line.
	case 0x2500, 0x2504, 0x2508:
		return horizontal(Light), true
	case 0x2501, 0x2505, 0x2509:
		return horizontal(Heavy), true
	case 0x2502, 0x2506, 0x250A:
		return vertical(Light), true
	case 0x2503, 0x2507, 0x250B:
		return vertical(Heavy), true

	// Corners.
	case 0x250C:
		return cornerTL(Light), true
	case 0x250D:
		return BoxSegments{Bottom: weight(Light), Right: weight(Heavy)}, true
	case 0x250E:
		return BoxSegments{Bottom: weight(Heavy), Right: weight(Light)}, true
	case 0x250F:
		return cornerTL(Heavy), true
	case 0x2510:
		return cornerTR(Light), true
	case 0x2511:
		return BoxSegments{Bottom: weight(Light), Left: weight(Heavy)}, true
	case 0x2512:
		return BoxSegments{Bottom: weight(Heavy), Left: weight(Light)}, true
	case 0x2513:
		return cornerTR(Heavy), true
	case 0x2514:
		return cornerBL(Light), true
	case 0x2515:
		return BoxSegments{Top: weight(Light), Right: weight(Heavy)}, true
	case 0x2516:
		return BoxSegments{Top: weight(Heavy), Right: weight(Light)}, true
	case 0x2517:
		return cornerBL(Heavy), true
	case 0x2518:
		return cornerBR(Light), true
	case 0x2519:
		return BoxSegments{Top: weight(Light), Left: weight(Heavy)}, true
	case 0x251A:
		return BoxSegments{Top: weight(Heavy), Left: weight(Light)}, true
	case 0x251B:
		return cornerBR(Heavy), true

	// Vertical-and-right T-junctions (├ family).
	case 0x251C:
		return BoxSegments{Top: weight(Light), Bottom: weight(Light), Right: weight(Light)}, true
	case 0x251D:
		return BoxSegments{Top: weight(Light), Bottom: weight(Light), Right: weight(Heavy)}, true
	case 0x251E:
		return BoxSegments{Top: weight(Heavy), Bottom: weight(Light), Right: weight(Light)}, true
	case 0x251F:
		return BoxSegments{Top: weight(Light), Bottom: weight(Heavy), Right: weight(Light)}, true
	case 0x2520:
		return BoxSegments{Top: weight(Heavy), Bottom: weight(Heavy), Right: weight(Light)}, true
	case 0x2521:
		return BoxSegments{Top: weight(Heavy), Bottom: weight(Light), Right: weight(Heavy)}, true
	case 0x2522:
		return BoxSegments{Top: weight(Light), Bottom: weight(Heavy), Right: weight(Heavy)}, true
	case 0x2523:
		return BoxSegments{Top: weight(Heavy), Bottom: weight(Heavy), Right: weight(Heavy)}, true

	// Vertical-and-left T-junctions (┤ family).
	case 0x2524:
		return BoxSegments{Top: weight(Light), Bottom: weight(Light), Left: weight(Light)}, true
	case 0x2525:
		return BoxSegments{Top: weight(Light), Bottom: weight(Light), Left: weight(Heavy)}, true
	case 0x2526:
		return BoxSegments{Top: weight(Heavy), Bottom: weight(Light), Left: weight(Light)}, true
	case 0x2527:
		return BoxSegments{Top: weight(Light), Bottom: weight(Heavy), Left: weight(Light)}, true
	case 0x2528:
		return BoxSegments{Top: weight(Heavy), Bottom: weight(Heavy), Left: weight(Light)}, true
	case 0x2529:
		return BoxSegments{Top: weight(Heavy), Bottom: weight(Light), Left: weight(Heavy)}, true
	case 0x252A:
		return BoxSegments{Top: weight(Light), Bottom: weight(Heavy), Left: weight(Heavy)}, true
	case 0x252B:
		return BoxSegments{Top: weight(Heavy), Bottom: weight(Heavy), Left: weight(Heavy)}, true

	// Down-and-horizontal T-junctions (┬ family).
	case 0x252C:
		return BoxSegments{Left: weight(Light), Right: weight(Light), Bottom: weight(Light)}, true
	case 0x252D:
		return BoxSegments{Left: weight(Heavy), Right: weight(Light), Bottom: weight(Light)}, true
	case 0x252E:
		return BoxSegments{Left: weight(Light), Right: weight(Heavy), Bottom: weight(Light)}, true
	case 0x252F:
		return BoxSegments{Left: weight(Heavy), Right: weight(Heavy), Bottom: weight(Light)}, true
	case 0x2530:
		return BoxSegments{Left: weight(Light), Right: weight(Light), Bottom: weight(Heavy)}, true
	case 0x2531:
		return BoxSegments{Left: weight(Heavy), Right: weight(Light), Bottom: weight(Heavy)}, true
	case 0x2532:
		return BoxSegments{Left: weight(Light), Right: weight(Heavy), Bottom: weight(Heavy)}, true
	case 0x2533:
		return BoxSegments{Left: weight(Heavy), Right: weight(Heavy), Bottom: weight(Heavy)}, true

	// Up-and-horizontal T-junctions (┴ family).
	case 0x2534:
		return BoxSegments{Left: weight(Light), Right: weight(Light), Top: weight(Light)}, true
	case 0x2535:
		return BoxSegments{Left: weight(Heavy), Right: weight(Light), Top: weight(Light)}, true
	case 0x2536:
		return BoxSegments{Left: weight(Light), Right: weight(Heavy), Top: weight(Light)}, true
	case 0x2537:
		return BoxSegments{Left: weight(Heavy), Right: weight(Heavy), Top: weight(Light)}, true
	case 0x2538:
		return BoxSegments{Left: weight(Light), Right: weight(Light), Top: weight(Heavy)}, true
	case 0x2539:
		return BoxSegments{Left: weight(Heavy), Right: weight(Light), Top: weight(Heavy)}, true
	case 0x253A:
		return BoxSegments{Left: weight(Light), Right: weight(Heavy), Top: weight(Heavy)}, true
	case 0x253B:
		return BoxSegments{Left: weight(Heavy), Right: weight(Heavy), Top: weight(Heavy)}, true

	// Crosses (┼ family).
	case 0x253C:
		return cross(Light), true
	case 0x253D:
		return BoxSegments{Left: weight(Heavy), Right: weight(Light), Top: weight(Light), Bottom: weight(Light)}, true
	case 0x253E:
		return BoxSegments{Left: weight(Light), Right: weight(Heavy), Top: weight(Light), Bottom: weight(Light)}, true
	case 0x253F:
		return BoxSegments{Left: weight(Heavy), Right: weight(Heavy), Top: weight(Light), Bottom: weight(Light)}, true
	case 0x2540:
		return BoxSegments{Top: weight(Heavy), Bottom: weight(Light), Left: weight(Light), Right: weight(Light)}, true
	case 0x2541:
		return BoxSegments{Top: weight(Light), Bottom: weight(Heavy), Left: weight(Light), Right: weight(Light)}, true
	case 0x2542:
		return BoxSegments{Top: weight(Heavy), Bottom: weight(Heavy), Left: weight(Light), Right: weight(Light)}, true
	case 0x2543:
		return BoxSegments{Top: weight(Heavy), Left: weight(Heavy), Bottom: weight(Light), Right: weight(Light)}, true
	case 0x2544:
		return BoxSegments{Top: weight(Heavy), Right: weight(Heavy), Bottom: weight(Light), Left: weight(Light)}, true
	case 0x2545:
		return BoxSegments{Bottom: weight(Heavy), Left: weight(Heavy), Top: weight(Light), Right: weight(Light)}, true
	case 0x2546:
		return BoxSegments{Bottom: weight(Heavy), Right: weight(Heavy), Top: weight(Light), Left: weight(Light)}, true
	case 0x2547:
		return BoxSegments{Top: weight(Heavy), Left: weight(Heavy), Right: weight(Heavy), Bottom: weight(Light)}, true
	case 0x2548:
		return BoxSegments{Bottom: weight(Heavy), Left: weight(Heavy), Right: weight(Heavy), Top: weight(Light)}, true
	case 0x2549:
		return BoxSegments{Right: weight(Light), Top: weight(Heavy), Bottom: weight(Heavy), Left: weight(Heavy)}, true
	case 0x254A:
		return BoxSegments{Left: weight(Light), Top: weight(Heavy), Bottom: weight(Heavy), Right: weight(Heavy)}, true
	case 0x254B:
		return cross(Heavy), true

	// More dashed variants, again treated as solid.
	case 0x254C:
		return horizontal(Light), true
	case 0x254D:
		return horizontal(Heavy), true
	case 0x254E:
		return vertical(Light), true
	case 0x254F:
		return vertical(Heavy), true

	// Double lines and their single/double mixed corners and junctions.
	case 0x2550:
		return horizontal(Double), true
	case 0x2551:
		return vertical(Double), true
	case 0x2552:
		return BoxSegments{Bottom: weight(Light), Right: weight(Double)}, true
	case 0x2553:
		return BoxSegments{Bottom: weight(Double), Right: weight(Light)}, true
	case 0x2554:
		return cornerTL(Double), true
	case 0x2555:
		return BoxSegments{Bottom: weight(Light), Left: weight(Double)}, true
	case 0x2556:
		return BoxSegments{Bottom: weight(Double), Left: weight(Light)}, true
	case 0x2557:
		return cornerTR(Double), true
	case 0x2558:
		return BoxSegments{Top: weight(Light), Right: weight(Double)}, true
	case 0x2559:
		return BoxSegments{Top: weight(Double), Right: weight(Light)}, true
	case 0x255A:
		return cornerBL(Double), true
	case 0x255B:
		return BoxSegments{Top: weight(Light), Left: weight(Double)}, true
	case 0x255C:
		return BoxSegments{Top: weight(Double), Left: weight(Light)}, true
	case 0x255D:
		return cornerBR(Double), true
	case 0x255E:
		return BoxSegments{Top: weight(Light), Bottom: weight(Light), Right: weight(Double)}, true
	case 0x255F:
		return BoxSegments{Top: weight(Double), Bottom: weight(Double), Right: weight(Light)}, true
	case 0x2560:
		return BoxSegments{Top: weight(Double), Bottom: weight(Double), Right: weight(Double)}, true
	case 0x2561:
		return BoxSegments{Top: weight(Light), Bottom: weight(Light), Left: weight(Double)}, true
	case 0x2562:
		return BoxSegments{Top: weight(Double), Bottom: weight(Double), Left: weight(Light)}, true
	case 0x2563:
		return BoxSegments{Top: weight(Double), Bottom: weight(Double), Left: weight(Double)}, true
	case 0x2564:
		return BoxSegments{Left: weight(Double), Right: weight(Double), Bottom: weight(Light)}, true
	case 0x2565:
		return BoxSegments{Left: weight(Light), Right: weight(Light), Bottom: weight(Double)}, true
	case 0x2566:
		return BoxSegments{Left: weight(Double), Right: weight(Double), Bottom: weight(Double)}, true
	case 0x2567:
		return BoxSegments{Left: weight(Double), Right: weight(Double), Top: weight(Light)}, true
	case 0x2568:
		return BoxSegments{Left: weight(Light), Right: weight(Light), Top: weight(Double)}, true
	case 0x2569:
		return BoxSegments{Left: weight(Double), Right: weight(Double), Top: weight(Double)}, true
	case 0x256A:
		return BoxSegments{Top: weight(Light), Bottom: weight(Light), Left: weight(Double), Right: weight(Double)}, true
	case 0x256B:
		return BoxSegments{Top: weight(Double), Bottom: weight(Double), Left: weight(Light), Right: weight(Light)}, true
	case 0x256C:
		return cross(Double), true

	// Rounded corners: same edge layout as their square equivalents;
	// DrawBoxCharacter checks IsRoundedCorner separately to pick the curved path.
	case 0x256D:
		return cornerTL(Light), true
	case 0x256E:
		return cornerTR(Light), true
	case 0x256F:
		return cornerBR(Light), true
	case 0x2570:
		return cornerBL(Light), true

	// Diagonals have no axis-aligned representation.
	case 0x2571, 0x2572, 0x2573:
		return BoxSegments{}, false

	// Half lines.
	case 0x2574:
		return BoxSegments{Left: weight(Light)}, true
	case 0x2575:
		return BoxSegments{Top: weight(Light)}, true
	case 0x2576:
		return BoxSegments{Right: weight(Light)}, true
	case 0x2577:
		return BoxSegments{Bottom: weight(Light)}, true
	case 0x2578:
		return BoxSegments{Left: weight(Heavy)}, true
	case 0x2579:
		return BoxSegments{Top: weight(Heavy)}, true
	case 0x257A:
		return BoxSegments{Right: weight(Heavy)}, true
	case 0x257B:
		return BoxSegments{Bottom: weight(Heavy)}, true
	case 0x257C:
		return BoxSegments{Left: weight(Light), Right: weight(Heavy)}, true
	case 0x257D:
		return BoxSegments{Top: weight(Light), Bottom: weight(Heavy)}, true
	case 0x257E:
		return BoxSegments{Left: weight(Heavy), Right: weight(Light)}, true
	case 0x257F:
		return BoxSegments{Top: weight(Heavy), Bottom: weight(Light)}, true

	default:
		return BoxSegments{}, false
	}
}

// GetHorizontalWeight returns the shared weight of the left and right edges,
// and false unless both are present at the same weight — a prerequisite for
// batching this character into a continuous horizontal span with its
// neighbors.
func GetHorizontalWeight(s BoxSegments) (LineWeight, bool) {
	if s.Left == nil || s.Right == nil || *s.Left != *s.Right {
		return 0, false
	}
	return *s.Left, true
}

// GetVerticalWeight returns the shared weight of the top and bottom edges,
// and false unless both are present at the same weight.
func GetVerticalWeight(s BoxSegments) (LineWeight, bool) {
	if s.Top == nil || s.Bottom == nil || *s.Top != *s.Bottom {
		return 0, false
	}
	return *s.Top, true
}

// ExtendsLeft reports whether the character draws a stroke into its left
// neighbor's cell.
func ExtendsLeft(s BoxSegments) bool { return s.Left != nil }

// ExtendsRight reports whether the character draws a stroke into its right
// neighbor's cell.
func ExtendsRight(s BoxSegments) bool { return s.Right != nil }
