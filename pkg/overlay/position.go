package overlay

import (
	"encoding/json"
	"errors"
	"fmt"

	overlayerrors "github.com/go-drift/studio/pkg/errors"
	"github.com/go-drift/studio/pkg/geometry"
)

var (
	// ErrInvalidPosition is returned for a malformed position union.
	ErrInvalidPosition = errors.New("invalid position")
	// ErrInvalidAnchor is returned for an anchor outside the nine named points.
	ErrInvalidAnchor = errors.New("invalid anchor")
)

// PositionMode discriminates the two position forms.
type PositionMode string

const (
	ModeAnchor PositionMode = "anchor"
	ModeCustom PositionMode = "custom"
)

// Origin is the reference point of a custom position.
type Origin string

const (
	OriginTopLeft Origin = "top-left"
	OriginCenter  Origin = "center"
)

// Offset shifts an anchored widget. Positive X moves right and positive Y
// moves down, whatever the anchor.
type Offset struct {
	X Length `json:"x" yaml:"x" toml:"x"`
	Y Length `json:"y" yaml:"y" toml:"y"`
}

// WidgetPosition is either an anchor placement ({Mode: anchor, Anchor,
// Offset, Transform}) or a custom one ({Mode: custom, X, Y, Origin}).
// Fields of the other form must be left empty.
type WidgetPosition struct {
	Mode PositionMode `json:"mode" yaml:"mode" toml:"mode"`

	Anchor Anchor  `json:"anchor,omitempty" yaml:"anchor,omitempty" toml:"anchor,omitempty"`
	Offset *Offset `json:"offset,omitempty" yaml:"offset,omitempty" toml:"offset,omitempty"`
	// Transform replaces the centering compensation of center anchors.
	Transform string `json:"transform,omitempty" yaml:"transform,omitempty" toml:"transform,omitempty"`

	X      *Length `json:"x,omitempty" yaml:"x,omitempty" toml:"x,omitempty"`
	Y      *Length `json:"y,omitempty" yaml:"y,omitempty" toml:"y,omitempty"`
	Origin Origin  `json:"origin,omitempty" yaml:"origin,omitempty" toml:"origin,omitempty"`
}

// At returns an anchor position with a pixel offset.
func At(anchor Anchor, x, y float64) WidgetPosition {
	return WidgetPosition{Mode: ModeAnchor, Anchor: anchor, Offset: &Offset{X: Px(x), Y: Px(y)}}
}

// AtAnchor returns an anchor position without offset.
func AtAnchor(anchor Anchor) WidgetPosition {
	return WidgetPosition{Mode: ModeAnchor, Anchor: anchor}
}

// Custom returns a custom position.
func Custom(x, y Length, origin Origin) WidgetPosition {
	return WidgetPosition{Mode: ModeCustom, X: &x, Y: &y, Origin: origin}
}

// IsZero reports whether no position was supplied.
func (p WidgetPosition) IsZero() bool {
	return p.Mode == "" && p.Anchor == "" && p.Offset == nil && p.Transform == "" &&
		p.X == nil && p.Y == nil && p.Origin == ""
}

// hasAnchorFields reports whether any anchor-form field is set.
func (p WidgetPosition) hasAnchorFields() bool {
	return p.Anchor != "" || p.Offset != nil || p.Transform != ""
}

// hasCustomFields reports whether any custom-form field is set.
func (p WidgetPosition) hasCustomFields() bool {
	return p.X != nil || p.Y != nil || p.Origin != ""
}

// Validate checks that the position is exactly one well-formed form.
// Bad anchors wrap ErrInvalidAnchor; other problems wrap ErrInvalidPosition.
func (p WidgetPosition) Validate() error {
	switch p.Mode {
	case ModeAnchor:
		if p.hasCustomFields() {
			return fmt.Errorf("%w: anchor position also sets custom coordinates", ErrInvalidPosition)
		}
		if !p.Anchor.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidAnchor, p.Anchor)
		}
	case ModeCustom:
		if p.hasAnchorFields() {
			return fmt.Errorf("%w: custom position also sets anchor fields", ErrInvalidPosition)
		}
		if p.Origin != "" && p.Origin != OriginTopLeft && p.Origin != OriginCenter {
			return fmt.Errorf("%w: unknown origin %q", ErrInvalidPosition, p.Origin)
		}
	case "":
		return fmt.Errorf("%w: mode is required", ErrInvalidPosition)
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidPosition, p.Mode)
	}
	return nil
}

// Key returns a canonical serialization used to compare positions.
func (p WidgetPosition) Key() string {
	data, err := json.Marshal(p.normalized())
	if err != nil {
		return ""
	}
	return string(data)
}

// normalized fills in defaulted fields so equivalent positions share a key.
func (p WidgetPosition) normalized() WidgetPosition {
	switch p.Mode {
	case ModeAnchor:
		if p.Offset == nil {
			p.Offset = &Offset{}
		}
	case ModeCustom:
		if p.X == nil {
			p.X = &Length{}
		}
		if p.Y == nil {
			p.Y = &Length{}
		}
		if p.Origin == "" {
			p.Origin = OriginTopLeft
		}
	}
	return p
}

// Clone returns a deep copy of the position.
func (p WidgetPosition) Clone() WidgetPosition {
	if p.Offset != nil {
		o := *p.Offset
		p.Offset = &o
	}
	if p.X != nil {
		x := *p.X
		p.X = &x
	}
	if p.Y != nil {
		y := *p.Y
		p.Y = &y
	}
	return p
}

// WithAnchor returns a copy of an anchor position moved to a, keeping its
// offset and transform.
func (p WidgetPosition) WithAnchor(a Anchor) WidgetPosition {
	p = p.Clone()
	p.Anchor = a
	return p
}

// ComputedPosition is the resolved placement of a widget inside its
// container: CSS-equivalent offsets plus an optional transform. Empty fields
// are unset.
type ComputedPosition struct {
	Top       string `json:"top,omitempty"`
	Left      string `json:"left,omitempty"`
	Right     string `json:"right,omitempty"`
	Bottom    string `json:"bottom,omitempty"`
	Transform string `json:"transform,omitempty"`
}

// Style returns the position as CSS declarations.
func (c ComputedPosition) Style() map[string]string {
	style := map[string]string{"position": "absolute"}
	for k, v := range map[string]string{
		"top": c.Top, "left": c.Left, "right": c.Right, "bottom": c.Bottom, "transform": c.Transform,
	} {
		if v != "" {
			style[k] = v
		}
	}
	return style
}

// fallbackPosition is used when a position cannot be resolved.
var fallbackPosition = ComputedPosition{Top: "0px", Left: "0px"}

// Compute resolves the position, returning an error for a malformed one.
func (p WidgetPosition) Compute() (ComputedPosition, error) {
	if err := p.Validate(); err != nil {
		return ComputedPosition{}, err
	}
	if p.Mode == ModeCustom {
		return p.computeCustom(), nil
	}
	return p.computeAnchor(), nil
}

func (p WidgetPosition) computeAnchor() ComputedPosition {
	var offset Offset
	if p.Offset != nil {
		offset = *p.Offset
	}
	row, col, _ := p.Anchor.cell()

	var out ComputedPosition
	switch row {
	case axisStart:
		out.Top = offset.Y.String()
	case axisCenter:
		out.Top = offset.Y.centerCalc()
	case axisEnd:
		out.Bottom = offset.Y.Neg().String()
	}
	switch col {
	case axisStart:
		out.Left = offset.X.String()
	case axisCenter:
		out.Left = offset.X.centerCalc()
	case axisEnd:
		out.Right = offset.X.Neg().String()
	}

	switch {
	case p.Transform != "":
		out.Transform = p.Transform
	case row == axisCenter && col == axisCenter:
		out.Transform = "translate(-50%, -50%)"
	case col == axisCenter:
		out.Transform = "translateX(-50%)"
	case row == axisCenter:
		out.Transform = "translateY(-50%)"
	}
	return out
}

func (p WidgetPosition) computeCustom() ComputedPosition {
	var x, y Length
	if p.X != nil {
		x = *p.X
	}
	if p.Y != nil {
		y = *p.Y
	}
	out := ComputedPosition{Top: y.String(), Left: x.String()}
	if p.Origin == OriginCenter {
		out.Transform = "translate(-50%, -50%)"
	}
	return out
}

// ResolvePosition converts a position into a concrete placement. A malformed
// position degrades to the container origin and is reported through the
// error handler.
func ResolvePosition(p WidgetPosition) ComputedPosition {
	out, err := p.Compute()
	if err != nil {
		overlayerrors.Report(overlayerrors.New("overlay.ResolvePosition", overlayerrors.KindResolve, err))
		return fallbackPosition
	}
	return out
}

// AnchorRect returns the rectangle a widget of the given size occupies in a
// container of the given size when placed at p, in container coordinates.
// Raw (non-pixel) lengths count as zero. The boolean is false for an invalid
// position.
func AnchorRect(p WidgetPosition, size, container geometry.Size) (geometry.Rect, bool) {
	if p.Validate() != nil {
		return geometry.Rect{}, false
	}
	if p.Mode == ModeCustom {
		var x, y float64
		if p.X != nil {
			x, _ = p.X.Pixels()
		}
		if p.Y != nil {
			y, _ = p.Y.Pixels()
		}
		if p.Origin == OriginCenter {
			x -= size.Width / 2
			y -= size.Height / 2
		}
		return geometry.RectFromLTWH(x, y, size.Width, size.Height), true
	}

	var ox, oy float64
	if p.Offset != nil {
		ox, _ = p.Offset.X.Pixels()
		oy, _ = p.Offset.Y.Pixels()
	}
	row, col, _ := p.Anchor.cell()
	x := place(col, ox, size.Width, container.Width)
	y := place(row, oy, size.Height, container.Height)
	return geometry.RectFromLTWH(x, y, size.Width, size.Height), true
}

// place returns the start coordinate of an extent along one axis.
func place(a axis, offset, extent, span float64) float64 {
	switch a {
	case axisCenter:
		return span/2 + offset - extent/2
	case axisEnd:
		return span - extent + offset
	default:
		return offset
	}
}
