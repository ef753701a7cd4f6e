package overlay

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/studio/pkg/animation"
)

func TestEnginePrepare(t *testing.T) {
	defaults := Configuration{
		ID:                "card",
		Name:              "Card",
		DefaultVisibility: &VisibilityConfig{Trigger: TriggerHoverContainer, Duration: animation.DurationFast},
		Widgets:           []Widget{},
	}
	preset := Configuration{Widgets: []Widget{{ID: "status", Type: "badge", Position: AtAnchor(AnchorTopRight)}}}

	e := NewEngine()
	cfg, diag := e.Prepare(defaults, preset)
	if !diag.Validation.Valid {
		t.Errorf("prepared config invalid: %v", diag.Validation.Errors)
	}
	status, ok := cfg.Widget("status")
	if !ok {
		t.Fatal("status widget missing")
	}
	if status.Visibility.Trigger != TriggerHoverContainer || status.Visibility.Duration != animation.DurationFast {
		t.Errorf("defaults not applied: %+v", status.Visibility)
	}
}

func TestEnginePrepareDebugReports(t *testing.T) {
	h := captureReports(t)
	e := NewEngine(WithDebug(true))
	cfg := Configuration{ID: "c", Widgets: []Widget{{ID: "a", Type: "badge", Position: AtAnchor(AnchorCenter)}}}
	_, diag := e.Prepare(cfg)
	if diag.Validation.Valid {
		t.Error("config without a name should be invalid")
	}
	if len(h.reports) != 2 {
		t.Fatalf("got %d reports, want validate and lint", len(h.reports))
	}
	if h.reports[0].Source != "validate" || h.reports[1].Source != "lint" {
		t.Errorf("report sources = %q, %q", h.reports[0].Source, h.reports[1].Source)
	}

	h.reports = nil
	NewEngine().Prepare(cfg)
	if len(h.reports) != 0 {
		t.Error("non-debug engine reported issues")
	}
}

func TestEngineEvaluate(t *testing.T) {
	cfg := Configuration{Widgets: []Widget{
		{
			ID:         "low",
			Type:       "label",
			Position:   At(AnchorTopLeft, 4, 4),
			Visibility: VisibilityConfig{Trigger: TriggerHover},
			Content: ContentFunc(func(data any) Content {
				return Content{Label: data.(map[string]string)["name"]}
			}),
		},
		{
			ID:         "high",
			Type:       "badge",
			Priority:   Int(5),
			Position:   AtAnchor(AnchorCenter),
			Visibility: VisibilityConfig{Trigger: TriggerHoverContainer},
		},
	}}
	state := HostState{
		ContainerHovered: true,
		Widgets:          map[string]WidgetState{"low": {Hovered: false}},
		Adjusted:         map[string]WidgetPosition{"low": At(AnchorBottomRight, -4, -4)},
	}
	got := NewEngine().Evaluate(cfg, state, map[string]string{"name": "Ann"})

	if len(got) != 2 || got[0].WidgetID != "high" || got[1].WidgetID != "low" {
		t.Fatalf("placements = %+v, want high then low", got)
	}
	if !got[0].Visible || got[1].Visible {
		t.Errorf("visible = %v, %v, want true, false", got[0].Visible, got[1].Visible)
	}
	if diff := cmp.Diff(ComputedPosition{Bottom: "4px", Right: "4px"}, got[1].Position); diff != "" {
		t.Errorf("adjusted position mismatch (-want +got):\n%s", diff)
	}
	if got[1].Content.Label != "Ann" || got[1].Content.Kind != "label" {
		t.Errorf("content = %+v", got[1].Content)
	}
	if got[0].Content.Kind != "badge" {
		t.Errorf("widget without resolver content = %+v", got[0].Content)
	}
	if got[1].Transition.Visible || got[1].Transition.Opacity != 0 {
		t.Errorf("hidden transition = %+v", got[1].Transition)
	}
}

func TestEngineEvaluateTouchAndReducedMotion(t *testing.T) {
	cfg := Configuration{Widgets: []Widget{{
		ID:         "a",
		Type:       "badge",
		Position:   AtAnchor(AnchorTopLeft),
		Visibility: VisibilityConfig{Trigger: TriggerHover, Transition: animation.KindScale},
	}}}
	state := HostState{Widgets: map[string]WidgetState{"a": {Active: true}}}

	pointer := NewEngine().Evaluate(cfg, state, nil)
	if pointer[0].Visible {
		t.Error("hover widget visible without hover")
	}
	touch := NewEngine(WithTouch(true), WithReducedMotion(true)).Evaluate(cfg, state, nil)
	if !touch[0].Visible {
		t.Error("touch engine should reveal hover widgets when active")
	}
	if !touch[0].Transition.Immediate {
		t.Errorf("reduced motion transition = %+v", touch[0].Transition)
	}
	if cfg.Widgets[0].Visibility.Trigger != TriggerHover {
		t.Error("Evaluate mutated the configuration")
	}
}

func TestEngineEvaluateFailsSoft(t *testing.T) {
	h := captureReports(t)
	cfg := Configuration{Widgets: []Widget{{
		ID:       "broken",
		Type:     "label",
		Position: WidgetPosition{Mode: ModeAnchor, Anchor: "middle"},
		Content:  ContentFunc(func(any) Content { panic("resolver failed") }),
	}}}
	got := NewEngine().Evaluate(cfg, HostState{}, nil)
	if len(got) != 1 {
		t.Fatalf("got %d placements, want 1", len(got))
	}
	if got[0].Position != fallbackPosition {
		t.Errorf("position = %+v, want fallback", got[0].Position)
	}
	if got[0].Content.Label != "" || got[0].Content.Kind != "label" {
		t.Errorf("content = %+v, want empty", got[0].Content)
	}
	if len(h.errs) != 1 || h.errs[0].WidgetID != "broken" {
		t.Errorf("errors = %+v, want one for broken", h.errs)
	}
	if len(h.panics) != 1 {
		t.Errorf("panics = %d, want 1", len(h.panics))
	}
}

func TestEngineInstantiate(t *testing.T) {
	cfg := sampleConfig()
	live, err := NewEngine().Instantiate(cfg, RuntimeOptions{})
	if err != nil || len(live.Widgets) != len(cfg.Widgets) {
		t.Errorf("Instantiate without registry = %v, %v", live, err)
	}
	r := testRegistry(t)
	cfg = Configuration{Widgets: []Widget{{ID: "s", Type: "status-badge"}}}
	live, err = NewEngine(WithRegistry(r)).Instantiate(cfg, RuntimeOptions{})
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	if live.Widgets[0].Resolve(nil).Label != "default" {
		t.Errorf("instantiated content = %+v", live.Widgets[0].Resolve(nil))
	}
}
