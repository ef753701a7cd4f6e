package animation

import (
	"testing"
	"time"
)

func TestNewTransitionVisible(t *testing.T) {
	tr := NewTransition(KindScale, DurationSlow, true, false)
	if tr.Immediate {
		t.Error("expected animated transition")
	}
	if tr.Duration != 300*time.Millisecond {
		t.Errorf("Duration = %v, want 300ms", tr.Duration)
	}
	if tr.Opacity != 1 || tr.Transform != "" || !tr.PointerEvents {
		t.Errorf("visible target = %+v", tr)
	}
	if tr.Curve.CSS != "ease-out" {
		t.Errorf("Curve = %q, want ease-out", tr.Curve.CSS)
	}
}

func TestNewTransitionHidden(t *testing.T) {
	tests := []struct {
		kind      Kind
		transform string
	}{
		{KindFade, ""},
		{KindScale, "scale(0.95)"},
		{KindSlide, "translateY(4px)"},
	}
	for _, tt := range tests {
		tr := NewTransition(tt.kind, DurationNormal, false, false)
		if tr.Opacity != 0 || tr.PointerEvents {
			t.Errorf("%s: hidden target = %+v", tt.kind, tr)
		}
		if tr.Transform != tt.transform {
			t.Errorf("%s: Transform = %q, want %q", tt.kind, tr.Transform, tt.transform)
		}
	}
}

func TestReducedMotionCollapses(t *testing.T) {
	for _, kind := range []Kind{KindFade, KindScale, KindSlide, ""} {
		tr := NewTransition(kind, DurationSlow, false, true)
		if !tr.Immediate || tr.Duration != 0 || tr.Kind != KindNone {
			t.Errorf("%q with reduced motion = %+v", kind, tr)
		}
		if tr.Transform != "" {
			t.Errorf("%q with reduced motion kept transform %q", kind, tr.Transform)
		}
		if got := tr.Style()["transition"]; got != "none" {
			t.Errorf("transition style = %q, want none", got)
		}
	}
}

func TestDefaultKindIsFade(t *testing.T) {
	tr := NewTransition("", "", true, false)
	if tr.Kind != KindFade {
		t.Errorf("Kind = %q, want fade", tr.Kind)
	}
	if tr.Duration != 200*time.Millisecond {
		t.Errorf("Duration = %v, want 200ms", tr.Duration)
	}
}

func TestTransitionStyle(t *testing.T) {
	style := NewTransition(KindSlide, DurationFast, false, false).Style()
	want := map[string]string{
		"opacity":                    "0",
		"pointer-events":             "none",
		"transform":                  "translateY(4px)",
		"transition-property":        "opacity, transform",
		"transition-duration":        "150ms",
		"transition-timing-function": "ease-in",
	}
	for k, v := range want {
		if style[k] != v {
			t.Errorf("style[%q] = %q, want %q", k, style[k], v)
		}
	}
}

func TestTweenReachesTarget(t *testing.T) {
	tween := NewTransition(KindFade, DurationNormal, false, false).Tween(1)
	mid, done := tween.Update(0.1)
	if done {
		t.Fatal("tween finished too early")
	}
	if mid <= 0 || mid >= 1 {
		t.Errorf("mid value = %v, want in (0, 1)", mid)
	}
	end, done := tween.Update(1)
	if !done || end != 0 {
		t.Errorf("end = %v done=%v, want 0 true", end, done)
	}
}

func TestCurveTweenFunc(t *testing.T) {
	fn := EaseOut.TweenFunc()
	if got := fn(0, 0, 10, 1); got != 0 {
		t.Errorf("start = %v, want 0", got)
	}
	if got := fn(1, 0, 10, 1); got != 10 {
		t.Errorf("end = %v, want 10", got)
	}
	if got := Linear.TweenFunc()(0.5, 0, 10, 1); got != 5 {
		t.Errorf("linear mid = %v, want 5", got)
	}
}

func TestKindAndClassValid(t *testing.T) {
	if Kind("spin").Valid() {
		t.Error("unknown kind should be invalid")
	}
	if !KindSlide.Valid() || !Kind("").Valid() {
		t.Error("known kinds should be valid")
	}
	if DurationClass("glacial").Valid() {
		t.Error("unknown class should be invalid")
	}
}
