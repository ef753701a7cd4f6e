package cmd

import (
	"fmt"

	"github.com/go-drift/studio/pkg/overlay"
	"github.com/go-drift/studio/pkg/preset"
)

func init() {
	RegisterCommand(&Command{
		Name:  "merge",
		Short: "Print the merged configuration",
		Long: `Merge configuration files left to right and print the effective
configuration with defaults applied.

Widgets are merged by id and ordered by descending priority.

Flags:
  --format FORMAT   Output format: json, yaml or toml (default from
                    overlayctl.yaml, else yaml)`,
		Usage: "overlayctl merge <file>... [--format FORMAT]",
		Run:   runMerge,
	})
}

func runMerge(env *Env, args []string) error {
	fs, err := parseFlags(args, []string{"format"})
	if err != nil {
		return err
	}
	if len(fs.positional) == 0 {
		return fmt.Errorf("at least one configuration file is required\n\nUsage: overlayctl merge <file>...")
	}
	format, err := fs.format(env.Config.Format)
	if err != nil {
		return err
	}
	layers, err := loadConfigs(fs.positional)
	if err != nil {
		return err
	}
	cfg := overlay.ApplyDefaults(overlay.MergeAll(layers...))
	data, err := preset.EncodeConfiguration(cfg, format)
	if err != nil {
		return err
	}
	_, err = env.Stdout.Write(data)
	return err
}
