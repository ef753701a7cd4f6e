package widgets

import (
	"github.com/go-drift/studio/pkg/binding"
	"github.com/go-drift/studio/pkg/overlay"
)

// Label is passive text, such as a caption or a metadata line.
type Label struct {
	Text    *binding.Binding[string]
	Icon    *binding.Binding[string]
	Tooltip *binding.Binding[string]
}

// LabelOf creates a label reading its text at path.
func LabelOf(path string) Label {
	return Label{Text: binding.Path[string](path)}
}

// Resolve implements overlay.ContentResolver.
func (l Label) Resolve(data any) overlay.Content {
	return overlay.Content{
		Kind:    TypeLabel,
		Label:   binding.ResolveOr(l.Text, data, ""),
		Icon:    binding.ResolveOr(l.Icon, data, ""),
		Tooltip: binding.ResolveOr(l.Tooltip, data, ""),
	}
}
