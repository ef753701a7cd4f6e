// Package config loads the optional overlayctl.yaml settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/studio/pkg/preset"
)

// FileName is the settings file looked up in the working directory.
const FileName = "overlayctl.yaml"

// PresetDirEnv overrides the preset directory when no flag sets it.
const PresetDirEnv = "OVERLAYCTL_PRESET_DIR"

// Config represents the optional overlayctl.yaml configuration.
type Config struct {
	Presets PresetsConfig `yaml:"presets"`
	Output  OutputConfig  `yaml:"output"`
	Engine  EngineConfig  `yaml:"engine"`
}

// PresetsConfig locates the preset store.
type PresetsConfig struct {
	Dir string `yaml:"dir,omitempty"`
}

// OutputConfig controls how documents are printed.
type OutputConfig struct {
	Format string `yaml:"format,omitempty"`
}

// EngineConfig mirrors the overlay engine options.
type EngineConfig struct {
	ReducedMotion bool `yaml:"reducedMotion,omitempty"`
	Touch         bool `yaml:"touch,omitempty"`
	Debug         bool `yaml:"debug,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	PresetDir     string
	Format        preset.Format
	ReducedMotion bool
	Touch         bool
	Debug         bool
}

// LoadOptional reads overlayctl.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads overlayctl.yaml from dir (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	format := preset.FormatYAML
	if f := strings.TrimSpace(cfg.Output.Format); f != "" {
		format, err = preset.ParseFormat(f)
		if err != nil {
			return nil, fmt.Errorf("%s: output.format: %w", FileName, err)
		}
	}

	presetDir := strings.TrimSpace(cfg.Presets.Dir)
	if env := strings.TrimSpace(os.Getenv(PresetDirEnv)); env != "" {
		presetDir = env
	}
	if presetDir == "" {
		presetDir, err = defaultPresetDir()
		if err != nil {
			return nil, err
		}
	}
	presetDir, err = expandHome(presetDir)
	if err != nil {
		return nil, err
	}
	if !filepath.IsAbs(presetDir) {
		presetDir = filepath.Join(dir, presetDir)
	}

	return &Resolved{
		PresetDir:     presetDir,
		Format:        format,
		ReducedMotion: cfg.Engine.ReducedMotion,
		Touch:         cfg.Engine.Touch,
		Debug:         cfg.Engine.Debug,
	}, nil
}

func defaultPresetDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot locate preset directory: %w", err)
	}
	return filepath.Join(base, "overlayctl", "presets"), nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
