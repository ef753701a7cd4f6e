package animation

import (
	"fmt"
	"math"

	"github.com/tanema/gween/ease"
)

// Curve is an easing curve paired with its CSS timing-function name, so the
// same curve can be emitted to a style-based host or driven frame by frame.
//
// Standard curves: [Linear], [Ease], [EaseIn], [EaseOut], [EaseInOut].
// Use [NewCubicBezier] to create custom curves matching CSS cubic-bezier().
type Curve struct {
	// CSS is the timing function as written in a transition declaration.
	CSS string `json:"css"`
	// Transform maps linear progress in [0, 1] to eased progress.
	Transform func(t float64) float64 `json:"-" yaml:"-"`
}

// Linear returns linear progress (no easing).
var Linear = Curve{CSS: "linear", Transform: func(t float64) float64 { return t }}

// Ease is a standard cubic bezier curve for general-purpose easing.
var Ease = Curve{CSS: "ease", Transform: CubicBezier(0.25, 0.1, 0.25, 1.0)}

// EaseIn starts slowly and accelerates. Used for widgets leaving.
var EaseIn = Curve{CSS: "ease-in", Transform: CubicBezier(0.4, 0.0, 1.0, 1.0)}

// EaseOut starts quickly and decelerates. Used for widgets appearing.
var EaseOut = Curve{CSS: "ease-out", Transform: CubicBezier(0.0, 0.0, 0.2, 1.0)}

// EaseInOut starts and ends slowly with acceleration in the middle.
var EaseInOut = Curve{CSS: "ease-in-out", Transform: CubicBezier(0.4, 0.0, 0.2, 1.0)}

// NewCubicBezier returns a Curve for the CSS cubic-bezier(x1, y1, x2, y2).
func NewCubicBezier(x1, y1, x2, y2 float64) Curve {
	return Curve{
		CSS:       fmt.Sprintf("cubic-bezier(%g, %g, %g, %g)", x1, y1, x2, y2),
		Transform: CubicBezier(x1, y1, x2, y2),
	}
}

// TweenFunc adapts the curve to a gween easing function.
func (c Curve) TweenFunc() ease.TweenFunc {
	transform := c.Transform
	if transform == nil {
		return ease.Linear
	}
	return func(t, b, change, d float32) float32 {
		if d <= 0 {
			return b + change
		}
		return b + change*float32(transform(float64(t/d)))
	}
}

// CubicBezier returns a cubic-bezier easing function matching CSS cubic-bezier().
// The parameters define the two control points (x1,y1) and (x2,y2) of the curve.
// The curve starts at (0,0) and ends at (1,1).
func CubicBezier(x1, y1, x2, y2 float64) func(float64) float64 {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}

		u := t
		// Newton-Raphson converges quickly for most values.
		for range 8 {
			x := sampleCurve(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				return sampleCurve(y1, y2, clampUnit(u))
			}
			dx := sampleCurveDerivative(x1, x2, u)
			if math.Abs(dx) < 1e-7 {
				break
			}
			u -= x / dx
		}

		// Bisection keeps the solution inside [0,1].
		lo, hi := 0.0, 1.0
		u = clampUnit(u)
		for range 12 {
			x := sampleCurve(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				break
			}
			if x > 0 {
				hi = u
			} else {
				lo = u
			}
			u = (lo + hi) * 0.5
		}

		return sampleCurve(y1, y2, u)
	}
}

func sampleCurve(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func sampleCurveDerivative(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}

func clampUnit(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
