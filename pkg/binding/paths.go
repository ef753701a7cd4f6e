package binding

import (
	"reflect"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// DefaultExtractDepth bounds ExtractPaths when no depth is given.
const DefaultExtractDepth = 3

// ExtractPaths enumerates property paths found in a sample object, for
// tooling and autocomplete. Only plain objects (string-keyed maps and
// structs) are descended into; arrays are reported as leaves. Recursion stops
// at maxDepth segments, which also bounds cyclic structures. A maxDepth of
// zero or less uses DefaultExtractDepth. Map keys are visited in sorted order.
func ExtractPaths(obj any, maxDepth int) []string {
	if maxDepth <= 0 {
		maxDepth = DefaultExtractDepth
	}
	var paths []string
	extract(reflect.ValueOf(obj), "", 1, maxDepth, &paths)
	return paths
}

func extract(v reflect.Value, prefix string, depth, maxDepth int, out *[]string) {
	v = indirect(v)
	if !v.IsValid() {
		return
	}
	visit := func(name string, child reflect.Value) {
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}
		*out = append(*out, path)
		if depth < maxDepth && isPlainObject(child) {
			extract(child, path, depth+1, maxDepth, out)
		}
	}
	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return
		}
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		for _, k := range keys {
			visit(k.String(), v.MapIndex(k))
		}
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name := jsonName(f)
			if name == "" {
				name = f.Name
			}
			visit(name, v.Field(i))
		}
	}
}

func isPlainObject(v reflect.Value) bool {
	v = indirect(v)
	if !v.IsValid() {
		return false
	}
	switch v.Kind() {
	case reflect.Map:
		return v.Type().Key().Kind() == reflect.String
	case reflect.Struct:
		return true
	}
	return false
}

// typeKeywords maps widget types to the keywords their likely data paths
// contain.
var typeKeywords = map[string][]string{
	"progress": {"progress", "percentage", "percent", "value"},
	"badge":    {"status", "badge", "label", "count", "tag"},
	"button":   {"label", "title", "action", "name"},
	"menu":     {"items", "options", "actions", "menu"},
	"label":    {"name", "title", "label", "text", "description"},
}

// SuggestPathsForWidgetType filters candidate paths down to those containing
// a keyword associated with the widget type. Matching is case-insensitive.
// Types without a keyword table get the candidates back unchanged.
func SuggestPathsForWidgetType(widgetType string, candidates []string) []string {
	keywords, ok := typeKeywords[widgetType]
	if !ok {
		return append([]string(nil), candidates...)
	}
	var out []string
	for _, path := range candidates {
		lower := strings.ToLower(path)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				out = append(out, path)
				break
			}
		}
	}
	return out
}

// RankPaths orders candidates by fuzzy match against query, best first,
// dropping candidates that do not match. An empty query returns the
// candidates unchanged.
func RankPaths(query string, candidates []string) []string {
	if query == "" {
		return append([]string(nil), candidates...)
	}
	matches := fuzzy.Find(query, candidates)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Str)
	}
	return out
}
