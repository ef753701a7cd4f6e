package overlay

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/go-drift/studio/pkg/animation"
	overlayerrors "github.com/go-drift/studio/pkg/errors"
)

// Engine runs the overlay pipeline for one host: compose layered
// configurations, check them, and evaluate placements from host state.
type Engine struct {
	Registry *Registry
	// ReducedMotion collapses all transitions to immediate toggles.
	ReducedMotion bool
	// Touch rewrites hover triggers for pointerless devices.
	Touch bool
	// Debug routes validation and lint findings to the error handler.
	Debug bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithRegistry sets the registry used to instantiate widgets.
func WithRegistry(r *Registry) Option {
	return func(e *Engine) { e.Registry = r }
}

// WithReducedMotion sets the reduced-motion preference.
func WithReducedMotion(on bool) Option {
	return func(e *Engine) { e.ReducedMotion = on }
}

// WithTouch sets touch adaptation.
func WithTouch(on bool) Option {
	return func(e *Engine) { e.Touch = on }
}

// WithDebug enables diagnostic reporting.
func WithDebug(on bool) Option {
	return func(e *Engine) { e.Debug = on }
}

// NewEngine returns an engine configured by opts.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Diagnostics holds the findings produced while preparing a configuration.
type Diagnostics struct {
	Validation ValidationResult  `json:"validation"`
	Lint       []ValidationError `json:"lint,omitempty"`
}

// Prepare merges layers left to right, applies defaults and checks the
// result. Findings never stop preparation.
func (e *Engine) Prepare(layers ...Configuration) (Configuration, Diagnostics) {
	cfg := ApplyDefaults(MergeAll(layers...))
	diag := Diagnostics{Validation: Validate(cfg), Lint: Lint(cfg)}
	if e.Debug {
		ReportIssues(cfg.ID, "validate", diag.Validation.Errors)
		ReportIssues(cfg.ID, "lint", diag.Lint)
	}
	return cfg, diag
}

// Instantiate attaches runtime capabilities to every widget of cfg using the
// engine's registry. Without a registry cfg is returned unchanged.
func (e *Engine) Instantiate(cfg Configuration, opts RuntimeOptions) (Configuration, error) {
	if e.Registry == nil {
		return cfg.Clone(), nil
	}
	return e.Registry.InstantiateAll(cfg, opts)
}

// WidgetState is the interaction state of one widget.
type WidgetState struct {
	Hovered bool
	Focused bool
	Active  bool
}

// HostState is the interaction state the host owns and supplies on each
// evaluation.
type HostState struct {
	ContainerHovered bool
	ContainerFocused bool
	Widgets          map[string]WidgetState
	Conditions       map[string]bool
	// Adjusted holds positions produced by the last collision pass.
	Adjusted map[string]WidgetPosition
}

func (s HostState) signals(id string) Signals {
	w := s.Widgets[id]
	return Signals{
		Hovered:          w.Hovered,
		ContainerHovered: s.ContainerHovered,
		Focused:          w.Focused,
		ContainerFocused: s.ContainerFocused,
		Active:           w.Active,
		Conditions:       s.Conditions,
	}
}

// Placement is the render-ready result for one widget.
type Placement struct {
	WidgetID   string               `json:"widgetId"`
	Type       string               `json:"type"`
	Priority   int                  `json:"priority"`
	Position   ComputedPosition     `json:"position"`
	Visible    bool                 `json:"visible"`
	Transition animation.Transition `json:"transition"`
	Content    Content              `json:"content"`
}

// Evaluate resolves every widget of cfg against state and data. Positions
// from state.Adjusted replace declared ones. Invalid positions fall back to
// the container origin and content resolvers that panic yield empty content;
// both are reported through the error handler. Placements are ordered by
// descending priority.
func (e *Engine) Evaluate(cfg Configuration, state HostState, data any) []Placement {
	out := make([]Placement, 0, len(cfg.Widgets))
	for _, w := range cfg.Widgets {
		pos := w.Position
		if adj, ok := state.Adjusted[w.ID]; ok {
			pos = adj
		}
		computed, err := pos.Compute()
		if err != nil {
			report := overlayerrors.New("overlay.Evaluate", overlayerrors.KindResolve, err)
			report.WidgetID = w.ID
			overlayerrors.Report(report)
			computed = fallbackPosition
		}

		vis := w.Visibility
		if e.Touch {
			vis = AdaptForTouch(vis)
		}
		visible := vis.Evaluate(state.signals(w.ID))

		out = append(out, Placement{
			WidgetID:   w.ID,
			Type:       w.Type,
			Priority:   w.PriorityValue(),
			Position:   computed,
			Visible:    visible,
			Transition: TransitionStyle(vis, visible, e.ReducedMotion),
			Content:    resolveContent(w, data),
		})
	}
	slices.SortStableFunc(out, func(a, b Placement) int {
		return cmp.Compare(b.Priority, a.Priority)
	})
	return out
}

func resolveContent(w Widget, data any) (c Content) {
	defer func() {
		if r := recover(); r != nil {
			overlayerrors.ReportPanic(&overlayerrors.PanicError{
				Op:         "overlay.Evaluate",
				Value:      fmt.Sprintf("widget %s: %v", w.ID, r),
				StackTrace: overlayerrors.CaptureStack(),
				Timestamp:  time.Now(),
			})
			c = Content{Kind: w.Type}
		}
	}()
	return w.Resolve(data)
}
