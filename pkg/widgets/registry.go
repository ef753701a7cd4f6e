package widgets

import (
	"errors"
	"fmt"

	"github.com/go-drift/studio/pkg/binding"
	"github.com/go-drift/studio/pkg/overlay"
)

// Built-in widget types.
const (
	TypeBadge    = "badge"
	TypeButton   = "button"
	TypeProgress = "progress"
	TypeMenu     = "menu"
	TypeLabel    = "label"
)

type builtin struct {
	typ      string
	factory  overlay.Factory
	defaults overlay.Widget
	meta     overlay.DisplayMeta
}

func builtins() []builtin {
	return []builtin{
		{
			typ:     TypeBadge,
			factory: badgeFactory,
			defaults: overlay.Widget{
				Position:   overlay.At(overlay.AnchorTopRight, -8, 8),
				Visibility: overlay.VisibilityConfig{Trigger: overlay.TriggerAlways},
				Style:      &overlay.Style{ZIndex: overlay.Int(20)},
			},
			meta: overlay.DisplayMeta{Icon: "tag", Category: "status", Description: "Short status label or count"},
		},
		{
			typ:     TypeButton,
			factory: buttonFactory,
			defaults: overlay.Widget{
				Position:    overlay.At(overlay.AnchorBottomRight, -8, -8),
				Visibility:  overlay.VisibilityConfig{Trigger: overlay.TriggerHoverContainer},
				Interactive: true,
			},
			meta: overlay.DisplayMeta{Icon: "pointer", Category: "action", Description: "Clickable action"},
		},
		{
			typ:     TypeProgress,
			factory: progressFactory,
			defaults: overlay.Widget{
				Position:   overlay.At(overlay.AnchorBottomLeft, 8, -8),
				Visibility: overlay.VisibilityConfig{Trigger: overlay.TriggerAlways},
			},
			meta: overlay.DisplayMeta{Icon: "gauge", Category: "status", Description: "Determinate progress indicator"},
		},
		{
			typ:     TypeMenu,
			factory: menuFactory,
			defaults: overlay.Widget{
				Position:           overlay.At(overlay.AnchorTopRight, -8, 8),
				Visibility:         overlay.VisibilityConfig{Trigger: overlay.TriggerHoverContainer},
				Interactive:        true,
				HandlesInteraction: true,
			},
			meta: overlay.DisplayMeta{Icon: "more", Category: "action", Description: "List of actions behind a trigger"},
		},
		{
			typ:     TypeLabel,
			factory: labelFactory,
			defaults: overlay.Widget{
				Position:   overlay.At(overlay.AnchorBottomLeft, 8, -8),
				Visibility: overlay.VisibilityConfig{Trigger: overlay.TriggerAlways},
			},
			meta: overlay.DisplayMeta{Icon: "text", Category: "content", Description: "Caption or metadata line"},
		},
	}
}

// Register adds the built-in types to r.
func Register(r *overlay.Registry) error {
	for _, b := range builtins() {
		if err := r.Register(b.typ, b.factory, b.defaults, b.meta); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a registry holding the built-in types.
func NewRegistry() *overlay.Registry {
	r := overlay.NewRegistry()
	if err := Register(r); err != nil {
		panic(err)
	}
	return r
}

// compiler compiles a widget's named bindings, collecting errors.
type compiler struct {
	specs map[string]binding.Spec
	fns   binding.Funcs
	errs  []error
}

func newCompiler(w overlay.Widget, opts overlay.RuntimeOptions) *compiler {
	return &compiler{specs: w.Bindings, fns: opts.Resolvers}
}

func compile[T any](c *compiler, name string) *binding.Binding[T] {
	spec, ok := c.specs[name]
	if !ok {
		return nil
	}
	b, err := binding.Compile[T](spec, c.fns)
	if err != nil {
		c.errs = append(c.errs, fmt.Errorf("binding %q: %w", name, err))
		return nil
	}
	return b
}

func (c *compiler) err() error {
	return errors.Join(c.errs...)
}

func prop[T any](w overlay.Widget, name string) (T, bool) {
	return binding.Convert[T](w.Props[name])
}

func badgeFactory(w overlay.Widget, opts overlay.RuntimeOptions) (overlay.Widget, error) {
	c := newCompiler(w, opts)
	b := Badge{
		Label: compile[string](c, "label"),
		Icon:  compile[string](c, "icon"),
		Tone:  compile[string](c, "tone"),
		Count: compile[float64](c, "count"),
	}
	if n, ok := prop[float64](w, "maxCount"); ok {
		b.MaxCount = int(n)
	}
	w.Content = b
	return w, c.err()
}

func buttonFactory(w overlay.Widget, opts overlay.RuntimeOptions) (overlay.Widget, error) {
	c := newCompiler(w, opts)
	w.Content = Button{
		Label:    compile[string](c, "label"),
		Icon:     compile[string](c, "icon"),
		Tooltip:  compile[string](c, "tooltip"),
		Disabled: compile[bool](c, "disabled"),
	}
	return w, c.err()
}

func progressFactory(w overlay.Widget, opts overlay.RuntimeOptions) (overlay.Widget, error) {
	c := newCompiler(w, opts)
	p := Progress{
		Value: compile[float64](c, "value"),
		Label: compile[string](c, "label"),
	}
	p.Max, _ = prop[float64](w, "max")
	w.Content = p
	return w, c.err()
}

func menuFactory(w overlay.Widget, opts overlay.RuntimeOptions) (overlay.Widget, error) {
	c := newCompiler(w, opts)
	w.Content = Menu{
		Label: compile[string](c, "label"),
		Icon:  compile[string](c, "icon"),
		Items: menuItems(w.Props["items"]),
	}
	return w, c.err()
}

func labelFactory(w overlay.Widget, opts overlay.RuntimeOptions) (overlay.Widget, error) {
	c := newCompiler(w, opts)
	w.Content = Label{
		Text:    compile[string](c, "text"),
		Icon:    compile[string](c, "icon"),
		Tooltip: compile[string](c, "tooltip"),
	}
	return w, c.err()
}
