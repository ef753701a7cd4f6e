package cmd

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/studio/pkg/geometry"
	"github.com/go-drift/studio/pkg/measure"
	"github.com/go-drift/studio/pkg/overlay"
	"github.com/go-drift/studio/pkg/preset"
	"github.com/go-drift/studio/pkg/widgets"
)

// Default preview container, in pixels.
const (
	defaultLayoutWidth  = 320
	defaultLayoutHeight = 240
)

func init() {
	RegisterCommand(&Command{
		Name:  "layout",
		Short: "Preview widget placements",
		Long: `Evaluate a configuration without a host: resolve positions and content,
estimate widget bounds from font metrics, run collision resolution and print
the resulting placements.

Flags:
  --width W      Container width in pixels (default 320)
  --height H     Container height in pixels (default 240)
  --data FILE    Data context for bindings (json, yaml or toml)
  --hover        Evaluate with the container hovered
  --focus        Evaluate with the container focused
  --touch        Adapt hover triggers for touch input
  --json         Print placements as JSON`,
		Usage: "overlayctl layout <file>... [--width W] [--height H] [--data FILE] [--hover] [--focus] [--touch] [--json]",
		Run:   runLayout,
	})
}

// layoutReport is the JSON form of a layout preview.
type layoutReport struct {
	Container  geometry.Size            `json:"container"`
	Placements []overlay.Placement      `json:"placements"`
	Bounds     map[string]geometry.Rect `json:"bounds"`
	Collisions overlay.CollisionResult  `json:"collisions"`
	Findings   overlay.Diagnostics      `json:"findings"`
}

func runLayout(env *Env, args []string) error {
	fs, err := parseFlags(args, []string{"width", "height", "data"}, "hover", "focus", "touch", "json")
	if err != nil {
		return err
	}
	if len(fs.positional) == 0 {
		return fmt.Errorf("at least one configuration file is required\n\nUsage: overlayctl layout <file>...")
	}
	width, err := fs.float("width", defaultLayoutWidth)
	if err != nil {
		return err
	}
	height, err := fs.float("height", defaultLayoutHeight)
	if err != nil {
		return err
	}
	var data any
	if path, ok := fs.values["data"]; ok {
		if data, err = loadData(path); err != nil {
			return err
		}
	}
	layers, err := loadConfigs(fs.positional)
	if err != nil {
		return err
	}

	engine := overlay.NewEngine(
		overlay.WithRegistry(widgets.NewRegistry()),
		overlay.WithReducedMotion(env.Config.ReducedMotion),
		overlay.WithTouch(env.Config.Touch || fs.switches["touch"]),
		overlay.WithDebug(env.Config.Debug),
	)
	cfg, diag := engine.Prepare(layers...)
	live, err := engine.Instantiate(cfg, overlay.RuntimeOptions{})
	if err != nil {
		env.Log.Warn().Err(err).Msg("some widgets have no content")
	}

	report := preview(engine, live, geometry.Size{Width: width, Height: height}, overlay.HostState{
		ContainerHovered: fs.switches["hover"],
		ContainerFocused: fs.switches["focus"],
	}, data)
	report.Findings = diag

	if fs.switches["json"] {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printLayout(env, report)
	return nil
}

// preview estimates bounds, resolves collisions and evaluates placements
// with the adjusted positions.
func preview(engine *overlay.Engine, cfg overlay.Configuration, container geometry.Size, state overlay.HostState, data any) layoutReport {
	est := measure.NewEstimator()
	bounds := est.Layout(cfg, container, nil, data)
	res := overlay.DetectCollisions(cfg, geometry.RectFromLTWH(0, 0, container.Width, container.Height), bounds)
	if len(res.Adjusted) > 0 {
		bounds = est.Layout(cfg, container, res.Adjusted, data)
	}
	state.Adjusted = res.Adjusted
	return layoutReport{
		Container:  container,
		Placements: engine.Evaluate(cfg, state, data),
		Bounds:     bounds,
		Collisions: res,
	}
}

func printLayout(env *Env, r layoutReport) {
	w := env.Stdout
	st := newStyles(w)
	fmt.Fprintf(w, "%s %gx%g\n", st.heading.Render("Container"), r.Container.Width, r.Container.Height)
	fmt.Fprintln(w, st.heading.Render(fmt.Sprintf("%-12s %-9s %-7s %-26s %-22s %s", "WIDGET", "TYPE", "SHOWN", "POSITION", "BOUNDS", "CONTENT")))
	for _, p := range r.Placements {
		shown := st.dim.Render(fmt.Sprintf("%-7s", "no"))
		if p.Visible {
			shown = st.ok.Render(fmt.Sprintf("%-7s", "yes"))
		}
		bounds := "-"
		if b, ok := r.Bounds[p.WidgetID]; ok {
			bounds = fmt.Sprintf("%g,%g %gx%g", b.Left, b.Top, b.Width(), b.Height())
		}
		if _, moved := r.Collisions.Adjusted[p.WidgetID]; moved {
			bounds += "*"
		}
		fmt.Fprintf(w, "%-12s %-9s %s %-26s %-22s %s\n", p.WidgetID, p.Type, shown, positionText(p.Position), bounds, contentText(p.Content))
	}

	if r.Collisions.HasCollisions() {
		fmt.Fprintln(w, st.heading.Render("Collisions"))
		for _, c := range r.Collisions.Collisions {
			fmt.Fprintf(w, "  %s overlaps %s\n", c.First, c.Second)
		}
		for _, id := range slices.Sorted(maps.Keys(r.Collisions.Adjusted)) {
			anchor := r.Collisions.Adjusted[id].Anchor
			fmt.Fprintf(w, "  %s moved to %s\n", id, st.ok.Render(string(anchor)))
		}
		for _, id := range r.Collisions.Unresolved {
			fmt.Fprintf(w, "  %s %s\n", id, st.warn.Render("could not be moved"))
		}
	}

	n := len(r.Findings.Validation.Errors) + len(r.Findings.Lint)
	if n > 0 {
		fmt.Fprintln(w, st.warn.Render(fmt.Sprintf("%d findings; run overlayctl validate for details", n)))
	}
}

func positionText(c overlay.ComputedPosition) string {
	var parts []string
	for _, kv := range [][2]string{{"top", c.Top}, {"right", c.Right}, {"bottom", c.Bottom}, {"left", c.Left}} {
		if kv[1] != "" {
			parts = append(parts, kv[0]+"="+kv[1])
		}
	}
	return strings.Join(parts, " ")
}

func contentText(c overlay.Content) string {
	switch {
	case c.Label != "" && c.Icon != "":
		return c.Icon + " " + c.Label
	case c.Label != "":
		return c.Label
	case c.Icon != "":
		return c.Icon
	case len(c.Items) > 0:
		return fmt.Sprintf("%d items", len(c.Items))
	}
	return "-"
}

// loadData reads a binding data context.
func loadData(path string) (any, error) {
	f, err := preset.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data any
	switch f {
	case preset.FormatJSON:
		err = json.Unmarshal(raw, &data)
	case preset.FormatYAML:
		err = yaml.Unmarshal(raw, &data)
	case preset.FormatTOML:
		var m map[string]any
		_, err = toml.Decode(string(raw), &m)
		data = m
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}
