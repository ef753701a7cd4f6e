package widgets

import (
	"math"
	"strconv"

	"github.com/go-drift/studio/pkg/binding"
	"github.com/go-drift/studio/pkg/overlay"
)

// Progress shows determinate progress toward Max.
//
// When Value does not resolve the indicator is indeterminate: the content
// carries no value and no default label.
type Progress struct {
	// Value is the current progress, clamped to [0, Max].
	Value *binding.Binding[float64]
	// Max is the value of a complete indicator. Zero means 1.
	Max float64
	// Label overrides the default percentage label.
	Label *binding.Binding[string]
}

// ProgressOf creates a progress indicator reading the value at path.
func ProgressOf(path string, max float64) Progress {
	return Progress{Value: binding.Path[float64](path), Max: max}
}

func (p Progress) max() float64 {
	if p.Max <= 0 {
		return 1
	}
	return p.Max
}

// Resolve implements overlay.ContentResolver.
func (p Progress) Resolve(data any) overlay.Content {
	max := p.max()
	c := overlay.Content{
		Kind:  TypeProgress,
		Max:   max,
		Label: binding.ResolveOr(p.Label, data, ""),
	}
	v, ok := binding.Resolve(p.Value, data)
	if !ok || math.IsNaN(v) {
		return c
	}
	v = math.Max(0, math.Min(v, max))
	c.Value = &v
	if c.Label == "" {
		c.Label = strconv.Itoa(int(math.Round(v/max*100))) + "%"
	}
	return c
}
