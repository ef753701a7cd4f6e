// Package widgets provides the built-in overlay widget kinds: badge, button,
// progress, menu and label.
//
// Each kind is a struct of [binding.Binding] fields that implements
// [overlay.ContentResolver]. Kinds can be used directly:
//
//	w := overlay.Widget{
//	    ID:       "status",
//	    Type:     widgets.TypeBadge,
//	    Position: overlay.At(overlay.AnchorTopRight, -8, 8),
//	    Content:  widgets.BadgeOf("New").WithTone("info"),
//	}
//
// or rebuilt from serialized records through a registry, which compiles each
// record's Bindings and Props into the matching kind:
//
//	registry := widgets.NewRegistry()
//	live, err := registry.InstantiateAll(cfg, overlay.RuntimeOptions{
//	    Resolvers: binding.Funcs{"unread": countUnread},
//	})
//
// Binding names per kind:
//
//	badge:    label, icon, tone, count
//	button:   label, icon, tooltip, disabled
//	progress: value, label
//	menu:     label, icon
//	label:    text, icon, tooltip
//
// Props per kind: badge "maxCount", progress "max", menu "items".
package widgets
