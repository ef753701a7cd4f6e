package overlay

import (
	"maps"

	"github.com/go-drift/studio/pkg/binding"
)

// Spacing controls the clearance kept between widgets when the collision
// pass relocates one of them.
type Spacing string

const (
	SpacingCompact  Spacing = "compact"
	SpacingNormal   Spacing = "normal"
	SpacingSpacious Spacing = "spacious"
)

// Valid reports whether s is a known spacing. Empty means normal.
func (s Spacing) Valid() bool {
	switch s {
	case "", SpacingCompact, SpacingNormal, SpacingSpacious:
		return true
	}
	return false
}

// Gap returns the clearance in pixels.
func (s Spacing) Gap() float64 {
	switch s {
	case SpacingCompact:
		return 4
	case SpacingSpacious:
		return 12
	default:
		return 8
	}
}

// Reserved z-index band for overlay widgets. Values outside it are allowed
// but flagged, since they can slip under the host surface or above modals.
const (
	WidgetZIndexMin = 10
	WidgetZIndexMax = 50
)

// Style holds the presentational settings the engine checks and merges.
// Nil fields are unset.
type Style struct {
	Opacity   *float64 `json:"opacity,omitempty" yaml:"opacity,omitempty" toml:"opacity,omitempty"`
	ZIndex    *int     `json:"zIndex,omitempty" yaml:"zIndex,omitempty" toml:"zIndex,omitempty"`
	Size      *float64 `json:"size,omitempty" yaml:"size,omitempty" toml:"size,omitempty"`
	Padding   *float64 `json:"padding,omitempty" yaml:"padding,omitempty" toml:"padding,omitempty"`
	Variant   string   `json:"variant,omitempty" yaml:"variant,omitempty" toml:"variant,omitempty"`
	ClassName string   `json:"className,omitempty" yaml:"className,omitempty" toml:"className,omitempty"`
}

// Clone returns a deep copy of s. Clone of nil is nil.
func (s *Style) Clone() *Style {
	if s == nil {
		return nil
	}
	out := *s
	out.Opacity = clonePtr(s.Opacity)
	out.ZIndex = clonePtr(s.ZIndex)
	out.Size = clonePtr(s.Size)
	out.Padding = clonePtr(s.Padding)
	return &out
}

// MenuItem is one entry of a menu widget.
type MenuItem struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Icon     string `json:"icon,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

// Content is the resolved, render-ready description of what a widget shows.
// Fields a widget kind does not use stay zero.
type Content struct {
	Kind    string     `json:"kind,omitempty"`
	Label   string     `json:"label,omitempty"`
	Icon    string     `json:"icon,omitempty"`
	Tone    string     `json:"tone,omitempty"`
	Value   *float64   `json:"value,omitempty"`
	Max     float64    `json:"max,omitempty"`
	Items   []MenuItem `json:"items,omitempty"`
	Tooltip string     `json:"tooltip,omitempty"`
	// Disabled marks interactive content that cannot be activated.
	Disabled bool `json:"disabled,omitempty"`
}

// IsEmpty reports whether the content has nothing to show.
func (c Content) IsEmpty() bool {
	return c.Label == "" && c.Icon == "" && c.Value == nil && len(c.Items) == 0
}

// ContentResolver turns a data context into widget content. Each widget kind
// supplies its own implementation.
type ContentResolver interface {
	Resolve(data any) Content
}

// ContentFunc adapts a function to ContentResolver.
type ContentFunc func(data any) Content

// Resolve calls f(data).
func (f ContentFunc) Resolve(data any) Content { return f(data) }

// ClickFunc handles activation of an interactive widget.
type ClickFunc func(widgetID string, data any)

// Widget is one overlay element. Data fields are serializable; Content and
// OnClick are runtime capabilities supplied by a registry factory and never
// survive serialization.
type Widget struct {
	ID         string           `json:"id" yaml:"id" toml:"id"`
	Type       string           `json:"type" yaml:"type" toml:"type"`
	Position   WidgetPosition   `json:"position" yaml:"position" toml:"position"`
	Visibility VisibilityConfig `json:"visibility" yaml:"visibility" toml:"visibility"`
	Style      *Style           `json:"style,omitempty" yaml:"style,omitempty" toml:"style,omitempty"`
	// Priority orders layering and collision tie-breaks; higher wins. Nil is 0.
	Priority    *int   `json:"priority,omitempty" yaml:"priority,omitempty" toml:"priority,omitempty"`
	Interactive bool   `json:"interactive,omitempty" yaml:"interactive,omitempty" toml:"interactive,omitempty"`
	AriaLabel   string `json:"ariaLabel,omitempty" yaml:"ariaLabel,omitempty" toml:"ariaLabel,omitempty"`
	TabIndex    *int   `json:"tabIndex,omitempty" yaml:"tabIndex,omitempty" toml:"tabIndex,omitempty"`
	Group       string `json:"group,omitempty" yaml:"group,omitempty" toml:"group,omitempty"`
	// HandlesInteraction marks a widget that manages its own accessible
	// interaction, exempting it from the label requirement.
	HandlesInteraction bool `json:"handlesInteraction,omitempty" yaml:"handlesInteraction,omitempty" toml:"handlesInteraction,omitempty"`

	Bindings map[string]binding.Spec `json:"bindings,omitempty" yaml:"bindings,omitempty" toml:"bindings,omitempty"`
	Props    map[string]any          `json:"props,omitempty" yaml:"props,omitempty" toml:"props,omitempty"`

	Content ContentResolver `json:"-" yaml:"-" toml:"-"`
	OnClick ClickFunc       `json:"-" yaml:"-" toml:"-"`
}

// PriorityValue returns the widget priority, defaulting to 0.
func (w Widget) PriorityValue() int {
	if w.Priority == nil {
		return 0
	}
	return *w.Priority
}

// Resolve returns the widget's content for data. Widgets without a content
// capability resolve to empty content.
func (w Widget) Resolve(data any) Content {
	if w.Content == nil {
		return Content{Kind: w.Type}
	}
	c := w.Content.Resolve(data)
	if c.Kind == "" {
		c.Kind = w.Type
	}
	return c
}

// Click invokes the click capability, if any. It reports whether a handler ran.
func (w Widget) Click(data any) bool {
	if w.OnClick == nil {
		return false
	}
	w.OnClick(w.ID, data)
	return true
}

// Clone returns a deep copy of the widget's data. Capabilities are shared.
func (w Widget) Clone() Widget {
	w.Position = w.Position.Clone()
	w.Style = w.Style.Clone()
	w.Priority = clonePtr(w.Priority)
	w.TabIndex = clonePtr(w.TabIndex)
	w.Bindings = maps.Clone(w.Bindings)
	w.Props = maps.Clone(w.Props)
	return w
}

// Configuration is a set of widgets decorating one host surface, plus
// configuration-wide defaults. It also serves as a partial configuration when
// merging: empty strings, nil pointers and a nil Widgets slice are "not
// supplied".
type Configuration struct {
	ID          string   `json:"id" yaml:"id" toml:"id"`
	Name        string   `json:"name" yaml:"name" toml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Widgets     []Widget `json:"widgets" yaml:"widgets" toml:"widgets"`

	DefaultVisibility *VisibilityConfig `json:"defaultVisibility,omitempty" yaml:"defaultVisibility,omitempty" toml:"defaultVisibility,omitempty"`
	DefaultStyle      *Style            `json:"defaultStyle,omitempty" yaml:"defaultStyle,omitempty" toml:"defaultStyle,omitempty"`

	Spacing            Spacing `json:"spacing,omitempty" yaml:"spacing,omitempty" toml:"spacing,omitempty"`
	CollisionDetection *bool   `json:"collisionDetection,omitempty" yaml:"collisionDetection,omitempty" toml:"collisionDetection,omitempty"`
	AllowOverflow      *bool   `json:"allowOverflow,omitempty" yaml:"allowOverflow,omitempty" toml:"allowOverflow,omitempty"`
}

// CollisionEnabled reports whether collision detection is switched on.
func (c Configuration) CollisionEnabled() bool {
	return c.CollisionDetection != nil && *c.CollisionDetection
}

// OverflowAllowed reports whether widgets may be placed outside the container.
func (c Configuration) OverflowAllowed() bool {
	return c.AllowOverflow != nil && *c.AllowOverflow
}

// Widget returns the first widget with the given id.
func (c Configuration) Widget(id string) (Widget, bool) {
	for _, w := range c.Widgets {
		if w.ID == id {
			return w, true
		}
	}
	return Widget{}, false
}

// Clone returns a deep copy of the configuration.
func (c Configuration) Clone() Configuration {
	if c.Widgets != nil {
		widgets := make([]Widget, len(c.Widgets))
		for i, w := range c.Widgets {
			widgets[i] = w.Clone()
		}
		c.Widgets = widgets
	}
	if c.DefaultVisibility != nil {
		v := *c.DefaultVisibility
		c.DefaultVisibility = &v
	}
	c.DefaultStyle = c.DefaultStyle.Clone()
	c.CollisionDetection = clonePtr(c.CollisionDetection)
	c.AllowOverflow = clonePtr(c.AllowOverflow)
	return c
}

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
