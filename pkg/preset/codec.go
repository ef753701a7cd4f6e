package preset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/studio/pkg/overlay"
)

// DocumentVersion is the version written by Encode. Documents of any v1
// version are accepted.
const DocumentVersion = "v1.0.0"

// Format names a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats returns the supported formats.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatTOML}
}

// ParseFormat parses a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unknown format %q", s)
}

// FormatFromPath returns the format implied by a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("no format extension in %q", path)
	}
	return ParseFormat(ext)
}

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Document is the interchange form of a preset.
type Document struct {
	Version string `json:"version" yaml:"version" toml:"version"`
	Preset  Preset `json:"preset" yaml:"preset" toml:"preset"`
}

// Encode serializes p as a document in format f.
func Encode(p Preset, f Format) ([]byte, error) {
	return marshal(Document{Version: DocumentVersion, Preset: p}, f)
}

// Decode parses a document in format f and checks its version and
// structure. Malformed input fails with an error wrapping ErrInvalidPreset.
func Decode(data []byte, f Format) (Preset, error) {
	var doc Document
	if err := unmarshal(data, f, &doc); err != nil {
		return Preset{}, err
	}
	if err := checkVersion(doc.Version); err != nil {
		return Preset{}, err
	}
	if err := doc.Preset.Check(); err != nil {
		return Preset{}, err
	}
	return doc.Preset, nil
}

func checkVersion(v string) error {
	if v == "" {
		return fmt.Errorf("%w: missing version", ErrInvalidPreset)
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: bad version %q", ErrInvalidPreset, v)
	}
	if major := semver.Major(v); major != semver.Major(DocumentVersion) {
		return fmt.Errorf("%w: unsupported version %s", ErrInvalidPreset, major)
	}
	return nil
}

// EncodeConfiguration serializes a bare configuration in format f.
func EncodeConfiguration(cfg overlay.Configuration, f Format) ([]byte, error) {
	return marshal(cfg, f)
}

// DecodeConfiguration parses a bare configuration in format f. Semantic
// checks are left to overlay.Validate.
func DecodeConfiguration(data []byte, f Format) (overlay.Configuration, error) {
	var cfg overlay.Configuration
	if err := unmarshal(data, f, &cfg); err != nil {
		return overlay.Configuration{}, err
	}
	return cfg, nil
}

func marshal(v any, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(v); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unknown format %q", f)
}

// unmarshal decodes data into v. Syntax and type errors wrap
// ErrInvalidPreset.
func unmarshal(data []byte, f Format, v any) error {
	var err error
	switch f {
	case FormatJSON:
		err = json.Unmarshal(data, v)
	case FormatYAML:
		err = yaml.Unmarshal(data, v)
	case FormatTOML:
		_, err = toml.Decode(string(data), v)
	default:
		return fmt.Errorf("unknown format %q", f)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPreset, err)
	}
	return nil
}
