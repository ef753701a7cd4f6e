package widgets

import (
	"github.com/go-drift/studio/pkg/binding"
	"github.com/go-drift/studio/pkg/overlay"
)

// Button is an interactive action. Its click behavior is attached to the
// overlay.Widget record (OnClick), not to the button content.
type Button struct {
	// Label is the button text.
	Label *binding.Binding[string]
	// Icon is an optional icon name. Icon-only buttons should carry an
	// AriaLabel on their widget record.
	Icon *binding.Binding[string]
	// Tooltip is shown on hover or long press.
	Tooltip *binding.Binding[string]
	// Disabled prevents activation when it resolves to true.
	Disabled *binding.Binding[bool]
}

// ButtonOf creates a button with a static label.
func ButtonOf(label string) Button {
	return Button{Label: binding.Static(label)}
}

// IconButtonOf creates an icon-only button with a tooltip.
func IconButtonOf(icon, tooltip string) Button {
	return Button{Icon: binding.Static(icon), Tooltip: binding.Static(tooltip)}
}

// WithDisabled returns a copy of the button disabled by the boolean at path.
func (b Button) WithDisabled(path string) Button {
	b.Disabled = binding.Path[bool](path)
	return b
}

// Resolve implements overlay.ContentResolver.
func (b Button) Resolve(data any) overlay.Content {
	return overlay.Content{
		Kind:     TypeButton,
		Label:    binding.ResolveOr(b.Label, data, ""),
		Icon:     binding.ResolveOr(b.Icon, data, ""),
		Tooltip:  binding.ResolveOr(b.Tooltip, data, ""),
		Disabled: binding.ResolveOr(b.Disabled, data, false),
	}
}
