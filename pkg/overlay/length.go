package overlay

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Length is an offset value. Numeric lengths are device-independent pixels;
// string lengths are already unit-qualified ("1rem", "10%") and are emitted
// verbatim. The zero Length is 0px.
//
// In JSON, YAML and TOML a Length is written as a number or a string. A
// string holding a bare number is read as pixels.
type Length struct {
	px  float64
	raw string
}

// Px returns a pixel length.
func Px(v float64) Length {
	return Length{px: v}
}

// Raw returns a verbatim length. A bare number string is read as pixels.
func Raw(s string) Length {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return Length{px: v}
	}
	return Length{raw: s}
}

// IsRaw reports whether the length is a verbatim string.
func (l Length) IsRaw() bool {
	return l.raw != ""
}

// Pixels returns the pixel value. The boolean is false for raw lengths,
// whose pixel value cannot be known without a layout.
func (l Length) Pixels() (float64, bool) {
	if l.raw != "" {
		return 0, false
	}
	return l.px, true
}

// IsZero reports whether the length is 0px.
func (l Length) IsZero() bool {
	return l.raw == "" && l.px == 0
}

// String returns the CSS form of the length.
func (l Length) String() string {
	if l.raw != "" {
		return l.raw
	}
	return formatPx(l.px)
}

// Neg returns the length negated.
func (l Length) Neg() Length {
	if l.raw == "" {
		if l.px == 0 {
			return Length{}
		}
		return Length{px: -l.px}
	}
	if rest, ok := strings.CutPrefix(l.raw, "-"); ok {
		return Length{raw: rest}
	}
	if strings.ContainsAny(l.raw, " (") {
		return Length{raw: "calc(-1 * " + l.raw + ")"}
	}
	return Length{raw: "-" + l.raw}
}

// centerCalc returns calc(50% + l), folding the sign of pixel lengths.
func (l Length) centerCalc() string {
	if l.raw != "" {
		return "calc(50% + " + l.raw + ")"
	}
	if l.px < 0 {
		return "calc(50% - " + formatPx(-l.px) + ")"
	}
	return "calc(50% + " + formatPx(l.px) + ")"
}

func formatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// MarshalJSON writes pixel lengths as numbers and raw lengths as strings.
func (l Length) MarshalJSON() ([]byte, error) {
	if l.raw != "" {
		return json.Marshal(l.raw)
	}
	return json.Marshal(l.px)
}

// UnmarshalJSON accepts a number or a string.
func (l *Length) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	return l.set(v)
}

// MarshalYAML writes pixel lengths as numbers and raw lengths as strings.
func (l Length) MarshalYAML() (any, error) {
	if l.raw != "" {
		return l.raw, nil
	}
	return l.px, nil
}

// UnmarshalYAML accepts a scalar number or string.
func (l *Length) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("length: expected scalar, got yaml kind %d", node.Kind)
	}
	switch node.Tag {
	case "!!null":
		*l = Length{}
		return nil
	case "!!int", "!!float":
		v, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return fmt.Errorf("length: %w", err)
		}
		*l = Length{px: v}
		return nil
	}
	*l = Raw(node.Value)
	return nil
}

// MarshalTOML writes pixel lengths as numbers and raw lengths as strings.
func (l Length) MarshalTOML() ([]byte, error) {
	if l.raw != "" {
		return []byte(strconv.Quote(l.raw)), nil
	}
	return []byte(strconv.FormatFloat(l.px, 'f', -1, 64)), nil
}

// UnmarshalTOML accepts an integer, float or string.
func (l *Length) UnmarshalTOML(v any) error {
	return l.set(v)
}

func (l *Length) set(v any) error {
	switch x := v.(type) {
	case nil:
		*l = Length{}
	case float64:
		*l = Length{px: x}
	case int64:
		*l = Length{px: float64(x)}
	case int:
		*l = Length{px: float64(x)}
	case string:
		*l = Raw(x)
	default:
		return fmt.Errorf("length: unsupported value %T", v)
	}
	return nil
}
