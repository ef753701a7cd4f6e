package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-drift/studio/pkg/preset"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveDefaults(t *testing.T) {
	t.Setenv(PresetDirEnv, "")
	dir := t.TempDir()
	cfg, err := Resolve(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Format != preset.FormatYAML {
		t.Errorf("Format = %q, want yaml", cfg.Format)
	}
	if !strings.HasSuffix(cfg.PresetDir, filepath.Join("overlayctl", "presets")) {
		t.Errorf("PresetDir = %q", cfg.PresetDir)
	}
	if cfg.Debug || cfg.Touch || cfg.ReducedMotion {
		t.Errorf("engine flags should default to false: %+v", cfg)
	}
}

func TestResolveFile(t *testing.T) {
	t.Setenv(PresetDirEnv, "")
	dir := t.TempDir()
	writeConfig(t, dir, `
presets:
  dir: presets
output:
  format: toml
engine:
  reducedMotion: true
  debug: true
`)
	cfg, err := Resolve(dir)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "presets"); cfg.PresetDir != want {
		t.Errorf("PresetDir = %q, want %q", cfg.PresetDir, want)
	}
	if cfg.Format != preset.FormatTOML {
		t.Errorf("Format = %q, want toml", cfg.Format)
	}
	if !cfg.ReducedMotion || !cfg.Debug || cfg.Touch {
		t.Errorf("engine flags = %+v", cfg)
	}
}

func TestResolveEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "presets:\n  dir: from-file\n")
	override := filepath.Join(t.TempDir(), "env")
	t.Setenv(PresetDirEnv, override)
	cfg, err := Resolve(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.PresetDir != override {
		t.Errorf("PresetDir = %q, want %q", cfg.PresetDir, override)
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "presets: [\n"},
		{"bad format", "output:\n  format: xml\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.body)
			if _, err := Resolve(dir); err == nil {
				t.Error("Resolve should fail")
			}
		})
	}
}
