package cmd

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/studio/pkg/overlay"
	"github.com/go-drift/studio/pkg/preset"
)

// styles renders report elements for one output stream. Colors are dropped
// when the stream is not a terminal.
type styles struct {
	heading lipgloss.Style
	dim     lipgloss.Style
	ok      lipgloss.Style
	err     lipgloss.Style
	warn    lipgloss.Style
	info    lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		heading: r.NewStyle().Bold(true),
		dim:     r.NewStyle().Faint(true),
		ok:      r.NewStyle().Foreground(lipgloss.Color("2")),
		err:     r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		warn:    r.NewStyle().Foreground(lipgloss.Color("3")),
		info:    r.NewStyle().Foreground(lipgloss.Color("4")),
	}
}

func (s styles) severity(sev overlay.Severity) lipgloss.Style {
	switch sev {
	case overlay.SeverityError:
		return s.err
	case overlay.SeverityWarning:
		return s.warn
	default:
		return s.info
	}
}

// printFindings writes one line per finding and returns the number of
// error-severity findings.
func printFindings(w io.Writer, st styles, title string, findings []overlay.ValidationError) int {
	if len(findings) == 0 {
		return 0
	}
	fmt.Fprintln(w, st.heading.Render(title))
	errs := 0
	for _, f := range findings {
		if f.Severity == overlay.SeverityError {
			errs++
		}
		widget := f.WidgetID
		if widget == "" {
			widget = "-"
		}
		label := st.severity(f.Severity).Render(fmt.Sprintf("%-7s", f.Severity))
		fmt.Fprintf(w, "  %s %-24s %-12s %s\n", label, f.Code, widget, f.Message)
	}
	return errs
}

// loadConfig reads one configuration file, choosing the codec by extension.
func loadConfig(path string) (overlay.Configuration, error) {
	f, err := preset.FormatFromPath(path)
	if err != nil {
		return overlay.Configuration{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return overlay.Configuration{}, err
	}
	cfg, err := preset.DecodeConfiguration(data, f)
	if err != nil {
		return overlay.Configuration{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func loadConfigs(paths []string) ([]overlay.Configuration, error) {
	layers := make([]overlay.Configuration, 0, len(paths))
	for _, p := range paths {
		cfg, err := loadConfig(p)
		if err != nil {
			return nil, err
		}
		layers = append(layers, cfg)
	}
	return layers, nil
}

// flagSet is a minimal parser for "--name value", "--name=value" and bare
// switch flags, in the manner of the global flag handling. Positional
// arguments are kept in order.
type flagSet struct {
	values     map[string]string
	switches   map[string]bool
	positional []string
}

func parseFlags(args []string, valued []string, switches ...string) (*flagSet, error) {
	fs := &flagSet{values: make(map[string]string), switches: make(map[string]bool)}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") || arg == "--" {
			fs.positional = append(fs.positional, arg)
			continue
		}
		name, value, hasValue := strings.Cut(arg[2:], "=")
		switch {
		case slices.Contains(switches, name) && !hasValue:
			fs.switches[name] = true
		case slices.Contains(valued, name):
			if !hasValue {
				if i+1 >= len(args) {
					return nil, fmt.Errorf("--%s requires a value", name)
				}
				value = args[i+1]
				i++
			}
			fs.values[name] = value
		default:
			return nil, fmt.Errorf("unknown flag --%s", name)
		}
	}
	return fs, nil
}

func (fs *flagSet) float(name string, def float64) (float64, error) {
	v, ok := fs.values[name]
	if !ok {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("--%s: want a positive number, got %q", name, v)
	}
	return f, nil
}

func (fs *flagSet) format(def preset.Format) (preset.Format, error) {
	v, ok := fs.values["format"]
	if !ok {
		return def, nil
	}
	return preset.ParseFormat(v)
}
