package overlay

import (
	"cmp"
	"maps"
	"slices"
	"strings"
)

// Merge combines a base configuration with an override. Scalars supplied by
// the override win. Widgets are matched by id: widgets present in both are
// deep-merged, others are kept or appended. The result is sorted by
// descending priority; ties keep first-seen order. Neither input is modified.
func Merge(base, override Configuration) Configuration {
	return MergeAll(base, override)
}

// MergeAll folds configs left to right with the rules of Merge. Widgets are
// sorted once, after the last layer, so ties keep the order in which their
// ids first appeared across all layers. It returns the zero Configuration
// when called without arguments.
func MergeAll(configs ...Configuration) Configuration {
	if len(configs) == 0 {
		return Configuration{}
	}
	out := configs[0].Clone()
	index := widgetIndex(out.Widgets)
	for _, c := range configs[1:] {
		out = mergeScalars(out, c)
		out.Widgets = mergeWidgets(out.Widgets, c.Widgets, index)
	}
	sortByPriority(out.Widgets)
	return out
}

func mergeScalars(out, override Configuration) Configuration {
	if override.ID != "" {
		out.ID = override.ID
	}
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.Description != "" {
		out.Description = override.Description
	}
	if override.Spacing != "" {
		out.Spacing = override.Spacing
	}
	if override.CollisionDetection != nil {
		out.CollisionDetection = Bool(*override.CollisionDetection)
	}
	if override.AllowOverflow != nil {
		out.AllowOverflow = Bool(*override.AllowOverflow)
	}
	out.DefaultVisibility = mergeVisibilityPtr(out.DefaultVisibility, override.DefaultVisibility)
	out.DefaultStyle = mergeStyle(out.DefaultStyle, override.DefaultStyle)
	return out
}

// widgetIndex maps each id to its first occurrence. Duplicate ids are kept
// in the list so validation can report them.
func widgetIndex(widgets []Widget) map[string]int {
	index := make(map[string]int, len(widgets))
	for i, w := range widgets {
		if _, ok := index[w.ID]; !ok && w.ID != "" {
			index[w.ID] = i
		}
	}
	return index
}

// mergeWidgets merges override into the already cloned list, keeping
// first-seen order. index is updated for appended widgets.
func mergeWidgets(out, override []Widget, index map[string]int) []Widget {
	for _, w := range override {
		if i, ok := index[w.ID]; ok {
			out[i] = mergeWidget(out[i], w)
			continue
		}
		if w.ID != "" {
			index[w.ID] = len(out)
		}
		out = append(out, w.Clone())
	}
	return out
}

func sortByPriority(widgets []Widget) {
	slices.SortStableFunc(widgets, func(a, b Widget) int {
		return cmp.Compare(b.PriorityValue(), a.PriorityValue())
	})
}

// mergeWidget deep-merges over into base. base is already a private copy.
func mergeWidget(base, over Widget) Widget {
	out := base
	if over.Type != "" {
		out.Type = over.Type
	}
	if !over.Position.IsZero() {
		out.Position = over.Position.Clone()
	}
	out.Visibility = mergeVisibility(base.Visibility, over.Visibility)
	out.Style = mergeStyle(base.Style, over.Style)
	if over.Priority != nil {
		out.Priority = Int(*over.Priority)
	}
	if over.TabIndex != nil {
		out.TabIndex = Int(*over.TabIndex)
	}
	out.Interactive = base.Interactive || over.Interactive
	out.HandlesInteraction = base.HandlesInteraction || over.HandlesInteraction
	if over.AriaLabel != "" {
		out.AriaLabel = over.AriaLabel
	}
	if over.Group != "" {
		out.Group = over.Group
	}
	out.Bindings = mergeMap(base.Bindings, over.Bindings)
	out.Props = mergeMap(base.Props, over.Props)
	if over.Content != nil {
		out.Content = over.Content
	}
	if over.OnClick != nil {
		out.OnClick = over.OnClick
	}
	return out
}

func mergeVisibility(base, over VisibilityConfig) VisibilityConfig {
	if over.Trigger != "" {
		base.Trigger = over.Trigger
	}
	if over.Transition != "" {
		base.Transition = over.Transition
	}
	if over.Duration != "" {
		base.Duration = over.Duration
	}
	if over.Condition != "" {
		base.Condition = over.Condition
	}
	return base
}

func mergeVisibilityPtr(base, over *VisibilityConfig) *VisibilityConfig {
	switch {
	case over == nil && base == nil:
		return nil
	case over == nil:
		v := *base
		return &v
	case base == nil:
		v := *over
		return &v
	}
	v := mergeVisibility(*base, *over)
	return &v
}

// mergeStyle merges style keys with over winning. Class names are combined.
func mergeStyle(base, over *Style) *Style {
	if over == nil {
		return base.Clone()
	}
	if base == nil {
		return over.Clone()
	}
	out := base.Clone()
	if over.Opacity != nil {
		out.Opacity = Float(*over.Opacity)
	}
	if over.ZIndex != nil {
		out.ZIndex = Int(*over.ZIndex)
	}
	if over.Size != nil {
		out.Size = Float(*over.Size)
	}
	if over.Padding != nil {
		out.Padding = Float(*over.Padding)
	}
	if over.Variant != "" {
		out.Variant = over.Variant
	}
	out.ClassName = MergeClassNames(base.ClassName, over.ClassName)
	return out
}

func mergeMap[V any](base, over map[string]V) map[string]V {
	if len(over) == 0 {
		return maps.Clone(base)
	}
	out := make(map[string]V, len(base)+len(over))
	maps.Copy(out, base)
	maps.Copy(out, over)
	return out
}

// MergeClassNames joins whitespace-separated class lists, dropping duplicates
// and keeping first-seen order.
func MergeClassNames(lists ...string) string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, name := range strings.Fields(list) {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return strings.Join(out, " ")
}

// ApplyDefaults pushes the configuration's default visibility and style into
// each widget's unset fields. Values a widget sets itself are kept.
func ApplyDefaults(cfg Configuration) Configuration {
	out := cfg.Clone()
	for i, w := range out.Widgets {
		if out.DefaultVisibility != nil {
			w.Visibility = mergeVisibility(*out.DefaultVisibility, w.Visibility)
		}
		if out.DefaultStyle != nil {
			w.Style = mergeStyle(out.DefaultStyle, w.Style)
		}
		out.Widgets[i] = w
	}
	return out
}

// WidgetGroup is a named cluster of widgets.
type WidgetGroup struct {
	Name    string
	Widgets []Widget
}

// FilterByGroup returns the widgets whose Group is group, in order.
func FilterByGroup(cfg Configuration, group string) []Widget {
	var out []Widget
	for _, w := range cfg.Widgets {
		if w.Group == group {
			out = append(out, w.Clone())
		}
	}
	return out
}

// GroupWidgets clusters widgets by Group in order of first appearance.
// Ungrouped widgets are collected under the empty name.
func GroupWidgets(cfg Configuration) []WidgetGroup {
	var groups []WidgetGroup
	index := make(map[string]int)
	for _, w := range cfg.Widgets {
		i, ok := index[w.Group]
		if !ok {
			i = len(groups)
			index[w.Group] = i
			groups = append(groups, WidgetGroup{Name: w.Group})
		}
		groups[i].Widgets = append(groups[i].Widgets, w.Clone())
	}
	return groups
}

// RemoveWidgets returns cfg without the widgets with the given ids.
func RemoveWidgets(cfg Configuration, ids ...string) Configuration {
	out := cfg.Clone()
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	out.Widgets = slices.DeleteFunc(out.Widgets, func(w Widget) bool { return drop[w.ID] })
	return out
}

// PickWidgets returns cfg keeping only the widgets with the given ids.
func PickWidgets(cfg Configuration, ids ...string) Configuration {
	out := cfg.Clone()
	keep := make(map[string]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}
	out.Widgets = slices.DeleteFunc(out.Widgets, func(w Widget) bool { return !keep[w.ID] })
	return out
}

// UpsertWidget merges w into cfg by id, adding it when absent.
func UpsertWidget(cfg Configuration, w Widget) Configuration {
	return Merge(cfg, Configuration{Widgets: []Widget{w}})
}
