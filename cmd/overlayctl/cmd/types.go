package cmd

import (
	"fmt"

	"github.com/go-drift/studio/pkg/widgets"
)

func init() {
	RegisterCommand(&Command{
		Name:  "types",
		Short: "List widget types",
		Long: `List the registered widget types with their default anchor and
visibility trigger.`,
		Usage: "overlayctl types",
		Run:   runTypes,
	})
}

func runTypes(env *Env, args []string) error {
	registry := widgets.NewRegistry()
	st := newStyles(env.Stdout)
	fmt.Fprintln(env.Stdout, st.heading.Render(fmt.Sprintf("%-10s %-10s %-9s %-13s %-16s %s", "TYPE", "NAME", "CATEGORY", "ANCHOR", "TRIGGER", "DESCRIPTION")))
	for _, typ := range registry.Types() {
		e, _ := registry.Lookup(typ)
		fmt.Fprintf(env.Stdout, "%-10s %-10s %-9s %-13s %-16s %s\n",
			typ, e.Meta.Name, e.Meta.Category,
			e.Defaults.Position.Anchor, e.Defaults.Visibility.Trigger,
			st.dim.Render(e.Meta.Description))
	}
	return nil
}
