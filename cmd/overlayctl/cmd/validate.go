package cmd

import (
	"errors"
	"fmt"

	"github.com/go-drift/studio/pkg/overlay"
)

// errInvalid is returned when a checked configuration has errors. The
// report has already been printed.
var errInvalid = errors.New("configuration is invalid")

func init() {
	RegisterCommand(&Command{
		Name:  "validate",
		Short: "Check a configuration",
		Long: `Check a configuration for structural errors and lint findings.

Files are merged left to right (later files override earlier ones by widget
id) and configuration defaults are applied before checking, so a preset can
be validated together with the overrides it will run with.

Errors make the command fail; warnings and hints are reported only.`,
		Usage: "overlayctl validate <file>...",
		Run:   runValidate,
	})
}

func runValidate(env *Env, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("at least one configuration file is required\n\nUsage: overlayctl validate <file>...")
	}
	layers, err := loadConfigs(args)
	if err != nil {
		return err
	}

	engine := overlay.NewEngine(overlay.WithDebug(env.Config.Debug))
	cfg, diag := engine.Prepare(layers...)

	st := newStyles(env.Stdout)
	name := cfg.ID
	if name == "" {
		name = args[len(args)-1]
	}
	fmt.Fprintf(env.Stdout, "%s %s (%d widgets)\n", st.heading.Render("Configuration"), name, len(cfg.Widgets))

	printFindings(env.Stdout, st, "Validation", diag.Validation.Errors)
	printFindings(env.Stdout, st, "Lint", diag.Lint)

	if !diag.Validation.Valid {
		fmt.Fprintln(env.Stdout, st.err.Render("invalid"))
		return errInvalid
	}
	fmt.Fprintln(env.Stdout, st.ok.Render("ok"))
	return nil
}
