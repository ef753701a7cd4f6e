// Package binding resolves widget content from an external data context.
//
// A [Binding] declares where a value comes from: a static value, a property
// path into the data, or a resolver function. Bindings are runtime values;
// their serializable form is [Spec], which names resolver functions instead
// of embedding them.
package binding

import (
	"fmt"
	"reflect"
)

// Kind discriminates the three binding forms.
type Kind string

const (
	KindStatic Kind = "static"
	KindPath   Kind = "path"
	KindFn     Kind = "fn"
)

// Binding is a declaration of how a value of type T is derived from data.
type Binding[T any] struct {
	Kind  Kind
	Value T
	Path  string
	Fn    func(data any) T

	// lazy is set for static bindings constructed from a function.
	lazy func(data any) T
}

// Static binds a fixed value.
func Static[T any](value T) *Binding[T] {
	return &Binding[T]{Kind: KindStatic, Value: value}
}

// StaticFunc binds a static value computed from the data on every resolve.
// The result is not memoized.
func StaticFunc[T any](fn func(data any) T) *Binding[T] {
	return &Binding[T]{Kind: KindStatic, lazy: fn}
}

// Path binds the value found at a property path in the data.
func Path[T any](path string) *Binding[T] {
	return &Binding[T]{Kind: KindPath, Path: path}
}

// Func binds the result of calling fn with the data.
func Func[T any](fn func(data any) T) *Binding[T] {
	return &Binding[T]{Kind: KindFn, Fn: fn}
}

// Resolve evaluates b against data. The boolean is false when the binding is
// nil, the path is missing, or the value found cannot be converted to T.
// Panics raised by resolver functions propagate to the caller.
func Resolve[T any](b *Binding[T], data any) (T, bool) {
	var zero T
	if b == nil {
		return zero, false
	}
	switch b.Kind {
	case KindStatic:
		if b.lazy != nil {
			return b.lazy(data), true
		}
		return b.Value, true
	case KindPath:
		return Convert[T](ResolvePath(data, b.Path))
	case KindFn:
		if b.Fn == nil {
			return zero, false
		}
		return b.Fn(data), true
	default:
		return zero, false
	}
}

// ResolveOr is Resolve with a fallback for unresolved bindings.
func ResolveOr[T any](b *Binding[T], data any, fallback T) T {
	if v, ok := Resolve(b, data); ok {
		return v
	}
	return fallback
}

// Convert asserts v to T, converting between numeric kinds when the
// assertion fails (data decoded from JSON carries float64 for every number).
func Convert[T any](v any) (T, bool) {
	var zero T
	if v == nil {
		return zero, false
	}
	if t, ok := v.(T); ok {
		return t, true
	}
	target := reflect.TypeOf((*T)(nil)).Elem()
	rv := reflect.ValueOf(v)
	if isNumeric(rv.Kind()) && isNumeric(target.Kind()) {
		return rv.Convert(target).Interface().(T), true
	}
	if target.Kind() == reflect.String {
		if s, ok := v.(fmt.Stringer); ok {
			return reflect.ValueOf(s.String()).Convert(target).Interface().(T), true
		}
	}
	return zero, false
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
