package widgets

import (
	"strconv"

	"github.com/go-drift/studio/pkg/binding"
	"github.com/go-drift/studio/pkg/overlay"
)

// Badge shows a short status label or a count.
//
// When Label resolves to an empty string and Count resolves, the count is
// shown as the label, capped at MaxCount ("99+").
type Badge struct {
	// Label is the badge text.
	Label *binding.Binding[string]
	// Icon is an optional icon name.
	Icon *binding.Binding[string]
	// Tone selects the color role, such as "info", "success" or "danger".
	Tone *binding.Binding[string]
	// Count is an optional numeric value.
	Count *binding.Binding[float64]
	// MaxCount caps the displayed count. Zero means no cap.
	MaxCount int
}

// BadgeOf creates a badge with a static label.
func BadgeOf(label string) Badge {
	return Badge{Label: binding.Static(label)}
}

// CountBadgeOf creates a badge showing the number at path, capped at max.
func CountBadgeOf(path string, max int) Badge {
	return Badge{Count: binding.Path[float64](path), MaxCount: max}
}

// WithTone returns a copy of the badge with a static tone.
func (b Badge) WithTone(tone string) Badge {
	b.Tone = binding.Static(tone)
	return b
}

// WithIcon returns a copy of the badge with a static icon.
func (b Badge) WithIcon(icon string) Badge {
	b.Icon = binding.Static(icon)
	return b
}

// Resolve implements overlay.ContentResolver.
func (b Badge) Resolve(data any) overlay.Content {
	c := overlay.Content{
		Kind:  TypeBadge,
		Label: binding.ResolveOr(b.Label, data, ""),
		Icon:  binding.ResolveOr(b.Icon, data, ""),
		Tone:  binding.ResolveOr(b.Tone, data, ""),
	}
	if n, ok := binding.Resolve(b.Count, data); ok {
		c.Value = &n
		if b.MaxCount > 0 {
			c.Max = float64(b.MaxCount)
		}
		if c.Label == "" {
			c.Label = formatCount(n, b.MaxCount)
		}
	}
	return c
}

func formatCount(n float64, max int) string {
	if max > 0 && n > float64(max) {
		return strconv.Itoa(max) + "+"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
