package overlay

import "github.com/go-drift/studio/pkg/animation"

// Trigger selects the interaction signal that reveals a widget.
type Trigger string

const (
	TriggerAlways         Trigger = "always"
	TriggerHover          Trigger = "hover"
	TriggerHoverContainer Trigger = "hover-container"
	TriggerFocus          Trigger = "focus"
	TriggerActive         Trigger = "active"
	TriggerCustom         Trigger = "custom"
)

// Triggers returns the known triggers.
func Triggers() []Trigger {
	return []Trigger{TriggerAlways, TriggerHover, TriggerHoverContainer, TriggerFocus, TriggerActive, TriggerCustom}
}

// Valid reports whether t is a known trigger. The empty trigger is treated
// as always and is valid.
func (t Trigger) Valid() bool {
	switch t {
	case "", TriggerAlways, TriggerHover, TriggerHoverContainer, TriggerFocus, TriggerActive, TriggerCustom:
		return true
	}
	return false
}

// VisibilityConfig is the visibility policy of a widget.
type VisibilityConfig struct {
	Trigger    Trigger                 `json:"trigger,omitempty" yaml:"trigger,omitempty" toml:"trigger,omitempty"`
	Transition animation.Kind          `json:"transition,omitempty" yaml:"transition,omitempty" toml:"transition,omitempty"`
	Duration   animation.DurationClass `json:"duration,omitempty" yaml:"duration,omitempty" toml:"duration,omitempty"`
	// Condition names the host condition consulted by the custom trigger.
	Condition string `json:"condition,omitempty" yaml:"condition,omitempty" toml:"condition,omitempty"`
}

// IsZero reports whether no visibility field is set.
func (v VisibilityConfig) IsZero() bool {
	return v == VisibilityConfig{}
}

// Signals is a snapshot of the interaction state relevant to one widget.
// Hover of a sibling widget is reported as ContainerHovered: the pointer is
// still inside the host surface.
type Signals struct {
	Hovered          bool
	ContainerHovered bool
	Focused          bool
	ContainerFocused bool
	Active           bool
	// Conditions holds the host-evaluated custom conditions by name.
	Conditions map[string]bool
}

// ShouldShow reports whether a widget with the given trigger is visible under
// signals. It is a pure function of its inputs. Unknown triggers are hidden.
func ShouldShow(trigger Trigger, s Signals, condition string) bool {
	switch trigger {
	case "", TriggerAlways:
		return true
	case TriggerHover:
		return s.Hovered
	case TriggerHoverContainer:
		return s.ContainerHovered
	case TriggerFocus:
		return s.Focused || s.ContainerFocused
	case TriggerActive:
		return s.Active
	case TriggerCustom:
		return condition != "" && s.Conditions[condition]
	default:
		return false
	}
}

// Evaluate is ShouldShow applied to the config's own trigger and condition.
func (v VisibilityConfig) Evaluate(s Signals) bool {
	return ShouldShow(v.Trigger, s, v.Condition)
}

// TransitionStyle returns the transition descriptor for moving a widget
// configured with cfg into the visible or hidden state.
func TransitionStyle(cfg VisibilityConfig, visible, reducedMotion bool) animation.Transition {
	return animation.NewTransition(cfg.Transition, cfg.Duration, visible, reducedMotion)
}

// AdaptForTouch rewrites hover-based triggers for devices without a pointer:
// hover and hover-container become active. Other fields are kept.
func AdaptForTouch(cfg VisibilityConfig) VisibilityConfig {
	switch cfg.Trigger {
	case TriggerHover, TriggerHoverContainer:
		cfg.Trigger = TriggerActive
	}
	return cfg
}
