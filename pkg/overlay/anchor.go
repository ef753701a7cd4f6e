package overlay

// Anchor is one of nine named reference points on the host surface.
type Anchor string

const (
	AnchorTopLeft      Anchor = "top-left"
	AnchorTopCenter    Anchor = "top-center"
	AnchorTopRight     Anchor = "top-right"
	AnchorCenterLeft   Anchor = "center-left"
	AnchorCenter       Anchor = "center"
	AnchorCenterRight  Anchor = "center-right"
	AnchorBottomLeft   Anchor = "bottom-left"
	AnchorBottomCenter Anchor = "bottom-center"
	AnchorBottomRight  Anchor = "bottom-right"
)

// anchorGrid lays the anchors out by row (top, center, bottom) and column
// (left, center, right).
var anchorGrid = [3][3]Anchor{
	{AnchorTopLeft, AnchorTopCenter, AnchorTopRight},
	{AnchorCenterLeft, AnchorCenter, AnchorCenterRight},
	{AnchorBottomLeft, AnchorBottomCenter, AnchorBottomRight},
}

// Anchors returns the nine anchors in row-major order.
func Anchors() []Anchor {
	out := make([]Anchor, 0, 9)
	for _, row := range anchorGrid {
		out = append(out, row[:]...)
	}
	return out
}

// axis is one half of an anchor: the start, middle or end of an axis.
type axis int

const (
	axisStart axis = iota
	axisCenter
	axisEnd
)

// cell returns the row and column of the anchor in the grid.
func (a Anchor) cell() (row, col axis, ok bool) {
	for r := range anchorGrid {
		for c := range anchorGrid[r] {
			if anchorGrid[r][c] == a {
				return axis(r), axis(c), true
			}
		}
	}
	return 0, 0, false
}

// Valid reports whether a is one of the nine named anchors.
func (a Anchor) Valid() bool {
	_, _, ok := a.cell()
	return ok
}

// InverseAnchor returns the point-symmetric anchor: top-left becomes
// bottom-right and center maps to itself. Unknown anchors are returned as is.
func InverseAnchor(a Anchor) Anchor {
	row, col, ok := a.cell()
	if !ok {
		return a
	}
	return anchorGrid[2-row][2-col]
}

// AdjacentAnchors returns the anchors one grid step away from a: first the
// neighbours in the same row (left, then right), then the neighbours in the
// same column (above, then below). Corners have two neighbours, edge
// midpoints three, and the center four. Unknown anchors have none.
func AdjacentAnchors(a Anchor) []Anchor {
	row, col, ok := a.cell()
	if !ok {
		return nil
	}
	var out []Anchor
	if col > axisStart {
		out = append(out, anchorGrid[row][col-1])
	}
	if col < axisEnd {
		out = append(out, anchorGrid[row][col+1])
	}
	if row > axisStart {
		out = append(out, anchorGrid[row-1][col])
	}
	if row < axisEnd {
		out = append(out, anchorGrid[row+1][col])
	}
	return out
}
