package widgets

import (
	"github.com/go-drift/studio/pkg/binding"
	"github.com/go-drift/studio/pkg/overlay"
)

// Menu is a trigger that opens a list of actions. Item activation is routed
// through the widget's OnClick with the item id as data.
type Menu struct {
	// Label is the trigger text.
	Label *binding.Binding[string]
	// Icon is the trigger icon. Defaults to "more".
	Icon *binding.Binding[string]
	// Items are the menu entries.
	Items []overlay.MenuItem
}

// MenuOf creates a menu with the given items.
func MenuOf(items ...overlay.MenuItem) Menu {
	return Menu{Items: items}
}

// Resolve implements overlay.ContentResolver.
func (m Menu) Resolve(data any) overlay.Content {
	items := make([]overlay.MenuItem, len(m.Items))
	copy(items, m.Items)
	return overlay.Content{
		Kind:  TypeMenu,
		Label: binding.ResolveOr(m.Label, data, ""),
		Icon:  binding.ResolveOr(m.Icon, data, "more"),
		Items: items,
	}
}

// menuItems decodes the "items" prop. It accepts typed items or the
// []any of objects produced by JSON, YAML and TOML decoding.
func menuItems(v any) []overlay.MenuItem {
	switch items := v.(type) {
	case []overlay.MenuItem:
		return append([]overlay.MenuItem(nil), items...)
	case []any:
		out := make([]overlay.MenuItem, 0, len(items))
		for _, raw := range items {
			obj, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			item := overlay.MenuItem{
				ID:    stringField(obj, "id"),
				Label: stringField(obj, "label"),
				Icon:  stringField(obj, "icon"),
			}
			item.Disabled, _ = obj["disabled"].(bool)
			if item.ID == "" {
				continue
			}
			out = append(out, item)
		}
		return out
	case []map[string]any:
		raw := make([]any, len(items))
		for i, obj := range items {
			raw[i] = obj
		}
		return menuItems(raw)
	}
	return nil
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}
