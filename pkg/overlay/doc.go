// Package overlay places interactive widgets (badges, buttons, progress
// indicators, menus) around a host surface.
//
// A [Configuration] declares widgets with a [WidgetPosition] (one of nine
// named anchors plus an offset, or custom coordinates) and a
// [VisibilityConfig] (a trigger policy and transition). The package turns
// that declaration into plain data the host can render:
//
//   - [ResolvePosition] converts a position into CSS-equivalent offsets.
//   - [ShouldShow] and [TransitionStyle] evaluate visibility from live
//     interaction [Signals].
//   - [Merge], [MergeAll] and [ApplyDefaults] compose layered configurations.
//   - [Validate] and [Lint] report structural and advisory issues as data.
//   - [DetectCollisions] finds overlapping measured bounds and proposes
//     alternative anchors; [CollisionPass] runs it after layout settles.
//   - [Registry] rebuilds live widgets from serializable records.
//
// [Engine] wires these together for a host:
//
//	engine := overlay.NewEngine(overlay.WithRegistry(registry))
//	cfg, diag := engine.Prepare(defaults, preset, override)
//	if !diag.Validation.Valid {
//	    // still renderable; errors were reported through pkg/errors
//	}
//	placements := engine.Evaluate(cfg, hostState, data)
//
// Configurations are treated as immutable. Every operation returns new
// values and never modifies its inputs.
package overlay
