package binding

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSpec is returned when a Spec is structurally wrong.
	ErrInvalidSpec = errors.New("invalid binding spec")
	// ErrUnknownResolver is returned when a fn Spec names a resolver that
	// the runtime options do not provide.
	ErrUnknownResolver = errors.New("unknown resolver")
)

// Spec is the serializable form of a Binding. Function bindings are stored
// by name in Ref and recovered from a Funcs table at instantiation time.
type Spec struct {
	Kind  Kind   `json:"kind" yaml:"kind" toml:"kind"`
	Value any    `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`
	Path  string `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty"`
	Ref   string `json:"ref,omitempty" yaml:"ref,omitempty" toml:"ref,omitempty"`
}

// Funcs maps resolver names to functions.
type Funcs map[string]func(data any) any

// StaticSpec returns a static Spec.
func StaticSpec(value any) Spec { return Spec{Kind: KindStatic, Value: value} }

// PathSpec returns a path Spec.
func PathSpec(path string) Spec { return Spec{Kind: KindPath, Path: path} }

// FnSpec returns a function Spec referring to a named resolver.
func FnSpec(ref string) Spec { return Spec{Kind: KindFn, Ref: ref} }

// Validate checks that exactly the fields of the spec's kind are used.
func (s Spec) Validate() error {
	switch s.Kind {
	case KindStatic:
		if s.Path != "" || s.Ref != "" {
			return fmt.Errorf("%w: static binding with path or ref", ErrInvalidSpec)
		}
	case KindPath:
		if s.Path == "" {
			return fmt.Errorf("%w: path binding without path", ErrInvalidSpec)
		}
	case KindFn:
		if s.Ref == "" {
			return fmt.Errorf("%w: fn binding without ref", ErrInvalidSpec)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidSpec, s.Kind)
	}
	return nil
}

// Compile turns a Spec into a typed Binding. Static values must convert to T.
// Function results that do not convert to T resolve to T's zero value.
func Compile[T any](s Spec, fns Funcs) (*Binding[T], error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	switch s.Kind {
	case KindStatic:
		v, ok := Convert[T](s.Value)
		if !ok && s.Value != nil {
			return nil, fmt.Errorf("%w: static value %T does not fit", ErrInvalidSpec, s.Value)
		}
		return Static(v), nil
	case KindPath:
		return Path[T](s.Path), nil
	default:
		fn, ok := fns[s.Ref]
		if !ok || fn == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownResolver, s.Ref)
		}
		return Func(func(data any) T {
			v, _ := Convert[T](fn(data))
			return v
		}), nil
	}
}
