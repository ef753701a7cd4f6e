package overlay

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/go-drift/studio/pkg/binding"
	overlayerrors "github.com/go-drift/studio/pkg/errors"
)

var (
	// ErrUnknownType is wrapped by errors for widget types with no factory.
	ErrUnknownType = errors.New("unknown widget type")
	// ErrTypeRegistered is returned when a type is registered twice.
	ErrTypeRegistered = errors.New("widget type already registered")
)

// RuntimeOptions supplies the capabilities that serialized widgets cannot
// carry: named resolver functions for fn bindings and click handlers.
type RuntimeOptions struct {
	Resolvers binding.Funcs
	// Handlers are looked up by widget id first, then by widget type.
	Handlers map[string]ClickFunc
}

func (o RuntimeOptions) handler(w Widget) ClickFunc {
	if h, ok := o.Handlers[w.ID]; ok {
		return h
	}
	return o.Handlers[w.Type]
}

// Factory attaches capabilities to a widget record. cfg already has the
// type's defaults merged in.
type Factory func(cfg Widget, opts RuntimeOptions) (Widget, error)

// DisplayMeta describes a widget type for pickers and listings.
type DisplayMeta struct {
	Name        string `json:"name"`
	Icon        string `json:"icon,omitempty"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
}

// RegistryEntry is one registered widget type.
type RegistryEntry struct {
	Type     string
	Factory  Factory
	Defaults Widget
	Meta     DisplayMeta
}

// Registry maps type discriminators to widget factories. It is safe for
// concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]RegistryEntry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]RegistryEntry)}
}

// Register adds a widget type. A missing display name is derived from the
// type, so "progress-ring" is listed as "Progress Ring".
func (r *Registry) Register(typ string, factory Factory, defaults Widget, meta DisplayMeta) error {
	if typ == "" || factory == nil {
		return fmt.Errorf("overlay: register %q: type and factory are required", typ)
	}
	if meta.Name == "" {
		meta.Name = displayName(typ)
	}
	defaults = defaults.Clone()
	defaults.Type = typ

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[typ]; ok {
		return fmt.Errorf("%w: %q", ErrTypeRegistered, typ)
	}
	r.entries[typ] = RegistryEntry{Type: typ, Factory: factory, Defaults: defaults, Meta: meta}
	return nil
}

func displayName(typ string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(typ)
	return cases.Title(language.English).String(words)
}

// Lookup returns the entry for typ.
func (r *Registry) Lookup(typ string) (RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[typ]
	if ok {
		e.Defaults = e.Defaults.Clone()
	}
	return e, ok
}

// Types returns the registered types in sorted order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.entries))
	for typ := range r.entries {
		out = append(out, typ)
	}
	slices.Sort(out)
	return out
}

// NewWidget returns the default record of typ with the given id.
func (r *Registry) NewWidget(typ, id string) (Widget, error) {
	e, ok := r.Lookup(typ)
	if !ok {
		return Widget{}, unknownType("overlay.NewWidget", typ, id)
	}
	w := e.Defaults
	w.ID = id
	return w, nil
}

// Instantiate rebuilds a live widget of type typ from its record: defaults
// are merged under cfg, the factory attaches content, and a click handler
// from opts is attached when the factory set none. Unregistered types fail
// with an error wrapping ErrUnknownType.
func (r *Registry) Instantiate(typ string, cfg Widget, opts RuntimeOptions) (Widget, error) {
	e, ok := r.Lookup(typ)
	if !ok {
		return Widget{}, unknownType("overlay.Instantiate", typ, cfg.ID)
	}
	w := mergeWidget(e.Defaults, cfg)
	w.Type = typ
	w, err := e.Factory(w, opts)
	if err != nil {
		return Widget{}, &overlayerrors.OverlayError{
			Op:       "overlay.Instantiate",
			Kind:     overlayerrors.KindRegistry,
			WidgetID: cfg.ID,
			Err:      err,
		}
	}
	if w.OnClick == nil {
		w.OnClick = opts.handler(w)
	}
	return w, nil
}

// InstantiateAll instantiates every widget of cfg by its own type. Widgets
// that fail keep their plain record; their errors are joined.
func (r *Registry) InstantiateAll(cfg Configuration, opts RuntimeOptions) (Configuration, error) {
	out := cfg.Clone()
	var errs []error
	for i, w := range out.Widgets {
		live, err := r.Instantiate(w.Type, w, opts)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out.Widgets[i] = live
	}
	return out, errors.Join(errs...)
}

func unknownType(op, typ, widgetID string) error {
	return &overlayerrors.OverlayError{
		Op:       op,
		Kind:     overlayerrors.KindRegistry,
		WidgetID: widgetID,
		Err:      fmt.Errorf("%w: %q", ErrUnknownType, typ),
	}
}
