// Package cmd implements the overlayctl commands.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (validate, merge, layout, presets, types).
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/go-drift/studio/cmd/overlayctl/internal/config"
	overlayerrors "github.com/go-drift/studio/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(env *Env, args []string) error
	SubCommands []*Command
}

// Env carries the resolved settings and output streams of one invocation.
type Env struct {
	Config *config.Resolved
	Stdout io.Writer
	Stderr io.Writer
	Log    zerolog.Logger
}

var rootCmd = &Command{
	Name:  "overlayctl",
	Short: "overlayctl - overlay configuration tooling",
	Long: `overlayctl checks, composes and previews overlay widget configurations
and manages the preset library.

Configuration files may be JSON, YAML or TOML; the format is taken from the
file extension.

Use "overlayctl <command> --help" for more information about a command.`,
	Usage: "overlayctl <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	return Run(os.Args[1:], os.Stdout, os.Stderr)
}

// Run runs the CLI with the given arguments and output streams.
func Run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printHelp(stdout, rootCmd)
		return nil
	}

	// Handle global flags
	var (
		filteredArgs []string
		presetDir    string
		debug        bool
		verbose      bool
	)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help", "help":
			if len(filteredArgs) == 0 {
				printHelp(stdout, rootCmd)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "-v", "--version", "version":
			if len(filteredArgs) == 0 {
				fmt.Fprintf(stdout, "overlayctl version %s (built %s)\n", Version, BuildTime)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--debug":
			debug = true
		case "--verbose":
			verbose = true
		case "--preset-dir":
			if i+1 < len(args) {
				presetDir = args[i+1]
				i++
			} else {
				return fmt.Errorf("--preset-dir requires a directory path")
			}
		default:
			if strings.HasPrefix(arg, "--preset-dir=") {
				presetDir = strings.TrimPrefix(arg, "--preset-dir=")
				continue
			}
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs

	if len(args) == 0 {
		printHelp(stdout, rootCmd)
		return nil
	}

	// Find the command
	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(stderr, rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	// Check for help flag on subcommand
	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(stdout, cmd)
			return nil
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := config.Resolve(wd)
	if err != nil {
		return err
	}
	if presetDir != "" {
		cfg.PresetDir = presetDir
	}
	cfg.Debug = cfg.Debug || debug

	env := &Env{Config: cfg, Stdout: stdout, Stderr: stderr, Log: newLogger(stderr, verbose)}
	overlayerrors.SetHandler(overlayerrors.WithLogger(env.Log, verbose))
	defer overlayerrors.SetHandler(nil)

	return cmd.Run(env, cmdArgs)
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
		Level(level).
		With().Timestamp().Logger()
}

func printHelp(w io.Writer, cmd *Command) {
	fmt.Fprintln(w, cmd.Long)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", cmd.Usage)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Fprintf(w, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -h, --help           Show help for a command")
	fmt.Fprintln(w, "  -v, --version        Show version information")
	fmt.Fprintln(w, "  --preset-dir DIR     Override the preset directory")
	fmt.Fprintln(w, "  --debug              Report validation findings through the logger")
	fmt.Fprintln(w, "  --verbose            Include debug logs and stack traces")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintf(w, "  %-20s Preset directory override (lower priority than --preset-dir)\n", config.PresetDirEnv)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  overlayctl validate base.yaml card.json     Check a layered configuration")
	fmt.Fprintln(w, "  overlayctl layout card.yaml --width 320     Preview placements")
	fmt.Fprintln(w, "  overlayctl presets export gallery-card      Print a preset document")
}

func printCommandHelp(w io.Writer, cmd *Command) {
	fmt.Fprintln(w, cmd.Long)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", cmd.Usage)
}
