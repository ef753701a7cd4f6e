package animation

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tanema/gween"
)

// Kind is the visual style used when a widget is shown or hidden.
type Kind string

const (
	// KindNone toggles visibility without animating.
	KindNone Kind = "none"
	// KindFade animates opacity only.
	KindFade Kind = "fade"
	// KindScale animates opacity and a slight scale.
	KindScale Kind = "scale"
	// KindSlide animates opacity and a short vertical slide.
	KindSlide Kind = "slide"
)

// Valid reports whether k is a known transition kind. The empty kind is valid
// and means "use the default".
func (k Kind) Valid() bool {
	switch k {
	case "", KindNone, KindFade, KindScale, KindSlide:
		return true
	}
	return false
}

// DurationClass is a named transition speed.
type DurationClass string

const (
	DurationFast   DurationClass = "fast"
	DurationNormal DurationClass = "normal"
	DurationSlow   DurationClass = "slow"
)

// Valid reports whether d is a known duration class. The empty class is valid.
func (d DurationClass) Valid() bool {
	switch d {
	case "", DurationFast, DurationNormal, DurationSlow:
		return true
	}
	return false
}

// Duration returns the wall-clock length of the class. Unknown and empty
// classes map to the normal speed.
func (d DurationClass) Duration() time.Duration {
	switch d {
	case DurationFast:
		return 150 * time.Millisecond
	case DurationSlow:
		return 300 * time.Millisecond
	default:
		return 200 * time.Millisecond
	}
}

// Transition describes how a host should move a widget into its current
// visibility state. It is plain data; the engine never animates anything
// itself.
type Transition struct {
	Kind     Kind          `json:"kind"`
	Duration time.Duration `json:"duration"`
	Curve    Curve         `json:"curve"`
	// Immediate is set when the change must be applied without animation.
	Immediate bool `json:"immediate,omitempty"`
	// Visible is the target state.
	Visible bool `json:"visible"`
	// Opacity is the target opacity, 1 when visible and 0 when hidden.
	Opacity float64 `json:"opacity"`
	// Transform is the target transform for the kind, empty when none applies.
	Transform string `json:"transform,omitempty"`
	// PointerEvents is false while hidden so invisible widgets cannot be clicked.
	PointerEvents bool `json:"pointerEvents"`
}

// NewTransition returns the descriptor for kind and duration class toward the
// visible state. Reduced motion collapses every kind to an immediate toggle.
func NewTransition(kind Kind, class DurationClass, visible, reducedMotion bool) Transition {
	tr := Transition{
		Kind:          kind,
		Duration:      class.Duration(),
		Visible:       visible,
		PointerEvents: visible,
	}
	if visible {
		tr.Opacity = 1
		tr.Curve = EaseOut
	} else {
		tr.Curve = EaseIn
	}
	if kind == "" {
		tr.Kind = KindFade
	}
	if reducedMotion || tr.Kind == KindNone {
		tr.Kind = KindNone
		tr.Duration = 0
		tr.Immediate = true
		tr.Curve = Linear
		return tr
	}
	if !visible {
		switch tr.Kind {
		case KindScale:
			tr.Transform = "scale(0.95)"
		case KindSlide:
			tr.Transform = "translateY(4px)"
		}
	}
	return tr
}

// Property returns the CSS properties animated by the transition.
func (t Transition) Property() string {
	switch t.Kind {
	case KindScale, KindSlide:
		return "opacity, transform"
	case KindFade:
		return "opacity"
	default:
		return ""
	}
}

// Style renders the descriptor as CSS declarations.
func (t Transition) Style() map[string]string {
	style := map[string]string{
		"opacity": strconv.FormatFloat(t.Opacity, 'f', -1, 64),
	}
	if t.PointerEvents {
		style["pointer-events"] = "auto"
	} else {
		style["pointer-events"] = "none"
	}
	if t.Transform != "" {
		style["transform"] = t.Transform
	}
	if t.Immediate {
		style["transition"] = "none"
	} else {
		style["transition-property"] = t.Property()
		style["transition-duration"] = fmt.Sprintf("%dms", t.Duration.Milliseconds())
		style["transition-timing-function"] = t.Curve.CSS
	}
	return style
}

// Tween returns a tween of visibility progress from the given value toward
// the target (1 when visible, 0 when hidden) over the transition's duration
// in seconds. Immediate transitions finish on the first update.
func (t Transition) Tween(from float32) *gween.Tween {
	to := float32(0)
	if t.Visible {
		to = 1
	}
	return gween.New(from, to, float32(t.Duration.Seconds()), t.Curve.TweenFunc())
}
