package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/go-drift/studio/pkg/preset"
)

func init() {
	RegisterCommand(&Command{
		Name:  "presets",
		Short: "Manage the preset library",
		Long: `Manage presets stored in the preset directory.

Subcommands:
  list                      List built-in and stored presets
  export <id> [--format F]  Print a preset document (json, yaml or toml)
  import <file>             Store a preset document; a taken id is renamed
  delete <id>               Remove a stored preset

The preset directory defaults to the user config directory and can be set
in overlayctl.yaml, with OVERLAYCTL_PRESET_DIR or with --preset-dir.`,
		Usage: "overlayctl presets <list|export|import|delete> [args]",
		Run:   runPresets,
	})
}

func runPresets(env *Env, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("subcommand is required (list, export, import or delete)\n\nUsage: overlayctl presets <subcommand>")
	}
	ctx := context.Background()
	m := preset.NewManager(preset.NewFileStore(env.Config.PresetDir))
	m.Debug = env.Config.Debug

	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		return presetsList(ctx, env, m)
	case "export":
		fs, err := parseFlags(rest, []string{"format"})
		if err != nil {
			return err
		}
		if len(fs.positional) != 1 {
			return fmt.Errorf("preset id is required\n\nUsage: overlayctl presets export <id> [--format F]")
		}
		format, err := fs.format(env.Config.Format)
		if err != nil {
			return err
		}
		data, err := m.Export(ctx, fs.positional[0], format)
		if err != nil {
			return err
		}
		_, err = env.Stdout.Write(data)
		return err
	case "import":
		if len(rest) != 1 {
			return fmt.Errorf("preset file is required\n\nUsage: overlayctl presets import <file>")
		}
		return presetsImport(ctx, env, m, rest[0])
	case "delete":
		if len(rest) != 1 {
			return fmt.Errorf("preset id is required\n\nUsage: overlayctl presets delete <id>")
		}
		if err := m.Delete(ctx, rest[0]); err != nil {
			return err
		}
		env.Log.Info().Str("preset", rest[0]).Msg("deleted")
		return nil
	default:
		return fmt.Errorf("unknown subcommand %q (use list, export, import or delete)", sub)
	}
}

func presetsList(ctx context.Context, env *Env, m *preset.Manager) error {
	list, err := m.List(ctx)
	if err != nil {
		return err
	}
	st := newStyles(env.Stdout)
	fmt.Fprintln(env.Stdout, st.heading.Render(fmt.Sprintf("%-28s %-28s %-10s %-8s %s", "ID", "NAME", "CATEGORY", "WIDGETS", "SOURCE")))
	for _, p := range list {
		source := st.dim.Render("built-in")
		if p.IsUserCreated {
			source = "user"
		}
		fmt.Fprintf(env.Stdout, "%-28s %-28s %-10s %-8d %s\n", p.ID, p.Name, p.Category, len(p.Configuration.Widgets), source)
	}
	return nil
}

func presetsImport(ctx context.Context, env *Env, m *preset.Manager, path string) error {
	f, err := preset.FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	p, err := m.Import(ctx, data, f)
	if err != nil {
		return err
	}
	env.Log.Info().Str("preset", p.ID).Str("dir", env.Config.PresetDir).Msg("imported")
	fmt.Fprintln(env.Stdout, p.ID)
	return nil
}
