// Package measure estimates widget bounds without a renderer.
//
// Hosts that cannot measure rendered widgets (tests, the overlayctl layout
// command, server-side previews) use an [Estimator] to size each widget's
// resolved content from font metrics and place it with
// [overlay.AnchorRect]. The estimates feed [overlay.DetectCollisions].
package measure

import (
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/go-drift/studio/pkg/geometry"
	"github.com/go-drift/studio/pkg/overlay"
	"github.com/go-drift/studio/pkg/widgets"
)

// Default metrics, in pixels.
const (
	DefaultPaddingX      = 6
	DefaultPaddingY      = 4
	DefaultIconSize      = 16
	DefaultIconGap       = 4
	DefaultProgressWidth = 64
)

// Estimator sizes widgets from their resolved content. The zero value is not
// usable; call NewEstimator.
type Estimator struct {
	// Face measures label text. basicfont.Face7x13 by default.
	Face font.Face
	// PaddingX and PaddingY surround the content. A widget's Style.Padding
	// overrides both.
	PaddingX, PaddingY float64
	// IconSize is the side of an icon. A widget's Style.Size overrides it.
	IconSize float64
	// IconGap separates an icon from its label.
	IconGap float64
	// ProgressWidth is the minimum width of a progress indicator.
	ProgressWidth float64

	// font.Face implementations are not safe for concurrent use.
	mu sync.Mutex
}

// NewEstimator returns an estimator with default metrics.
func NewEstimator() *Estimator {
	return &Estimator{
		Face:          basicfont.Face7x13,
		PaddingX:      DefaultPaddingX,
		PaddingY:      DefaultPaddingY,
		IconSize:      DefaultIconSize,
		IconGap:       DefaultIconGap,
		ProgressWidth: DefaultProgressWidth,
	}
}

// Text returns the advance width and line height of s.
func (e *Estimator) Text(s string) geometry.Size {
	e.mu.Lock()
	defer e.mu.Unlock()
	height := float64(e.Face.Metrics().Height.Ceil())
	if s == "" {
		return geometry.Size{Height: height}
	}
	return geometry.Size{
		Width:  float64(font.MeasureString(e.Face, s).Ceil()),
		Height: height,
	}
}

// Size estimates the box of widget w showing content c.
func (e *Estimator) Size(w overlay.Widget, c overlay.Content) geometry.Size {
	padX, padY := e.PaddingX, e.PaddingY
	icon := e.IconSize
	if w.Style != nil {
		if w.Style.Padding != nil {
			padX, padY = *w.Style.Padding, *w.Style.Padding
		}
		if w.Style.Size != nil {
			icon = *w.Style.Size
		}
	}

	text := e.Text(c.Label)
	width := text.Width
	height := text.Height
	switch {
	case c.Icon != "" && c.Label != "":
		width += icon + e.IconGap
		height = math.Max(height, icon)
	case c.Icon != "" || c.Label == "":
		width = icon
		height = icon
	}
	if c.Kind == widgets.TypeProgress {
		width = math.Max(width, e.ProgressWidth)
	}
	return geometry.Size{Width: width + 2*padX, Height: height + 2*padY}
}

// Layout estimates the container-relative bounds of every widget in cfg
// with a valid position. Positions in adjusted replace the configured ones.
func (e *Estimator) Layout(cfg overlay.Configuration, container geometry.Size, adjusted map[string]overlay.WidgetPosition, data any) map[string]geometry.Rect {
	out := make(map[string]geometry.Rect, len(cfg.Widgets))
	for _, w := range cfg.Widgets {
		if _, ok := out[w.ID]; ok {
			continue
		}
		pos := w.Position
		if p, ok := adjusted[w.ID]; ok {
			pos = p
		}
		r, ok := overlay.AnchorRect(pos, e.Size(w, w.Resolve(data)), container)
		if !ok {
			continue
		}
		out[w.ID] = r
	}
	return out
}

// MeasureFunc adapts Layout to a collision pass measuring a container of the
// given size.
func (e *Estimator) MeasureFunc(cfg overlay.Configuration, container geometry.Size, data any) overlay.MeasureFunc {
	return func() (geometry.Rect, map[string]geometry.Rect) {
		bounds := geometry.RectFromLTWH(0, 0, container.Width, container.Height)
		return bounds, e.Layout(cfg, container, nil, data)
	}
}
