package overlay

import "strings"

// MaxRecommendedWidgets is the widget count above which Lint warns.
const MaxRecommendedWidgets = 10

// Lint reports advisory findings that do not make a configuration invalid.
func Lint(cfg Configuration) []ValidationError {
	var out issues
	if n := len(cfg.Widgets); n > MaxRecommendedWidgets {
		out.add("", CodeTooManyWidgets, SeverityWarning,
			"%d widgets exceed the recommended maximum of %d", n, MaxRecommendedWidgets)
	}

	if !cfg.CollisionEnabled() {
		var keys []string
		byKey := make(map[string][]string)
		for _, w := range cfg.Widgets {
			if w.Position.Validate() != nil {
				continue
			}
			k := w.Position.Key()
			if _, ok := byKey[k]; !ok {
				keys = append(keys, k)
			}
			byKey[k] = append(byKey[k], w.ID)
		}
		for _, k := range keys {
			ids := byKey[k]
			if len(ids) < 2 {
				continue
			}
			out.add(ids[0], CodeOverlappingWidgets, SeverityWarning,
				"widgets %s share the same position and collision detection is off", strings.Join(ids, ", "))
		}
	}

	for _, w := range cfg.Widgets {
		if w.Visibility.Trigger == "" {
			out.add(w.ID, CodeMissingTrigger, SeverityWarning, "no visibility trigger, widget is always shown")
		}
		if w.Interactive && w.OnClick == nil && !w.HandlesInteraction {
			out.add(w.ID, CodeNoClickHandler, SeverityInfo, "interactive widget has no click handler")
		}
	}
	return []ValidationError(out)
}
