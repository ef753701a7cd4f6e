// Package preset stores and exchanges named overlay configurations.
//
// A [Preset] wraps an [overlay.Configuration] with identity and catalog
// metadata. Presets are persisted through a [Store] and exchanged as
// versioned [Document]s in JSON, YAML or TOML. The [Manager] implements the
// export and import workflows, including renaming on id collision.
package preset

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-drift/studio/pkg/overlay"
	"github.com/go-drift/studio/pkg/widgets"
)

// ErrInvalidPreset is wrapped by errors for structurally invalid presets.
var ErrInvalidPreset = errors.New("invalid preset structure")

// Preset is a named, storable configuration.
type Preset struct {
	ID            string                `json:"id" yaml:"id" toml:"id"`
	Name          string                `json:"name" yaml:"name" toml:"name"`
	Description   string                `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Category      string                `json:"category,omitempty" yaml:"category,omitempty" toml:"category,omitempty"`
	Configuration overlay.Configuration `json:"configuration" yaml:"configuration" toml:"configuration"`
	IsUserCreated bool                  `json:"isUserCreated" yaml:"isUserCreated" toml:"isUserCreated"`
	CreatedAt     time.Time             `json:"createdAt,omitzero" yaml:"createdAt,omitempty" toml:"createdAt,omitempty"`
}

// Check reports whether p has the structure a stored preset needs: an id, a
// name, and widgets that each carry an id and a type. Semantic problems are
// left to overlay.Validate.
func (p Preset) Check() error {
	switch {
	case p.ID == "":
		return fmt.Errorf("%w: missing id", ErrInvalidPreset)
	case p.Name == "":
		return fmt.Errorf("%w: preset %q: missing name", ErrInvalidPreset, p.ID)
	}
	for i, w := range p.Configuration.Widgets {
		if w.ID == "" || w.Type == "" {
			return fmt.Errorf("%w: preset %q: widget #%d needs id and type", ErrInvalidPreset, p.ID, i)
		}
	}
	return nil
}

// Clone returns a deep copy of p's data.
func (p Preset) Clone() Preset {
	p.Configuration = p.Configuration.Clone()
	return p
}

// Builtins returns the presets shipped with the engine. Each call returns
// fresh copies.
func Builtins() []Preset {
	return []Preset{
		{
			ID:          "gallery-card",
			Name:        "Gallery Card",
			Description: "Status badge with hover actions",
			Category:    "gallery",
			Configuration: overlay.Configuration{
				ID:                 "gallery-card",
				Name:               "Gallery Card",
				Spacing:            overlay.SpacingNormal,
				CollisionDetection: overlay.Bool(true),
				Widgets: []overlay.Widget{
					{
						ID:         "status",
						Type:       widgets.TypeBadge,
						Position:   overlay.At(overlay.AnchorTopLeft, 8, 8),
						Visibility: overlay.VisibilityConfig{Trigger: overlay.TriggerAlways},
						Priority:   overlay.Int(1),
					},
					{
						ID:          "favorite",
						Type:        widgets.TypeButton,
						Position:    overlay.At(overlay.AnchorTopRight, -8, 8),
						Visibility:  overlay.VisibilityConfig{Trigger: overlay.TriggerHoverContainer, Transition: "fade"},
						Interactive: true,
						AriaLabel:   "Favorite",
						Priority:    overlay.Int(2),
					},
					{
						ID:                 "actions",
						Type:               widgets.TypeMenu,
						Position:           overlay.At(overlay.AnchorBottomRight, -8, -8),
						Visibility:         overlay.VisibilityConfig{Trigger: overlay.TriggerHoverContainer, Transition: "fade"},
						Interactive:        true,
						HandlesInteraction: true,
					},
				},
			},
		},
		{
			ID:          "generation-progress",
			Name:        "Generation Progress",
			Description: "Progress bar with a caption",
			Category:    "status",
			Configuration: overlay.Configuration{
				ID:      "generation-progress",
				Name:    "Generation Progress",
				Spacing: overlay.SpacingCompact,
				Widgets: []overlay.Widget{
					{
						ID:         "progress",
						Type:       widgets.TypeProgress,
						Position:   overlay.At(overlay.AnchorBottomCenter, 0, -8),
						Visibility: overlay.VisibilityConfig{Trigger: overlay.TriggerAlways},
					},
					{
						ID:         "caption",
						Type:       widgets.TypeLabel,
						Position:   overlay.At(overlay.AnchorTopLeft, 8, 8),
						Visibility: overlay.VisibilityConfig{Trigger: overlay.TriggerHoverContainer},
					},
				},
			},
		},
	}
}

// Builtin returns the built-in preset with the given id.
func Builtin(id string) (Preset, bool) {
	for _, p := range Builtins() {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}
