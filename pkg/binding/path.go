package binding

import (
	"reflect"
	"strconv"
	"strings"
)

// ResolvePath returns the value at path inside data, or nil when any step is
// missing. Segments are separated by '.', and bracket indexes ("items[0]")
// are treated as additional segments. Maps with string keys, structs
// (exported fields by name or json tag), pointers, interfaces, slices and
// arrays are traversed. ResolvePath never panics on malformed input.
func ResolvePath(data any, path string) any {
	if data == nil || path == "" {
		return nil
	}
	if !strings.ContainsAny(path, ".[") {
		return lookup(reflect.ValueOf(data), path)
	}
	segments := splitPath(path)
	if len(segments) == 0 {
		return nil
	}
	current := data
	for _, segment := range segments {
		if current == nil {
			return nil
		}
		current = lookup(reflect.ValueOf(current), segment)
	}
	return current
}

// splitPath turns "a.b[0].c" into ["a", "b", "0", "c"], dropping empty segments.
func splitPath(path string) []string {
	normalized := strings.NewReplacer("[", ".", "]", "").Replace(path)
	parts := strings.Split(normalized, ".")
	segments := parts[:0]
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// lookup performs one traversal step.
func lookup(v reflect.Value, key string) any {
	v = indirect(v)
	if !v.IsValid() {
		return nil
	}
	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil
		}
		item := v.MapIndex(reflect.ValueOf(key).Convert(v.Type().Key()))
		return interfaceOf(item)
	case reflect.Struct:
		return interfaceOf(structField(v, key))
	case reflect.Slice, reflect.Array:
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 || idx >= v.Len() {
			return nil
		}
		return interfaceOf(v.Index(idx))
	default:
		return nil
	}
}

// structField finds an exported field by json tag name, then by field name
// (case-insensitive).
func structField(v reflect.Value, key string) reflect.Value {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if name := jsonName(f); name != "" && name == key {
			return v.Field(i)
		}
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.IsExported() && strings.EqualFold(f.Name, key) {
			return v.Field(i)
		}
	}
	return reflect.Value{}
}

func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	return name
}

// indirect dereferences pointers and interfaces, stopping at nil.
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func interfaceOf(v reflect.Value) any {
	if !v.IsValid() || !v.CanInterface() {
		return nil
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		if v.IsNil() {
			return nil
		}
	}
	return v.Interface()
}
