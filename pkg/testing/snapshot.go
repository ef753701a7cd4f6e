package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/studio/pkg/geometry"
	"github.com/go-drift/studio/pkg/overlay"
)

// UpdateSnapshotsEnv names the environment variable that switches
// MatchesFile into update mode.
const UpdateSnapshotsEnv = "OVERLAY_UPDATE_SNAPSHOTS"

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the evaluated state of an overlay.
type Snapshot struct {
	Widgets    []*WidgetNode           `json:"widgets"`
	Collisions []overlay.CollisionInfo `json:"collisions,omitempty"`
}

// WidgetNode is one serialized placement.
type WidgetNode struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Priority int    `json:"priority,omitempty"`
	Visible  bool   `json:"visible"`
	// Position and Transition hold the CSS declarations a host would apply.
	Position   map[string]string `json:"position"`
	Transition map[string]string `json:"transition"`
	// Bounds is [left, top, width, height] when the widget was measured.
	Bounds  *[4]float64     `json:"bounds,omitempty"`
	Content overlay.Content `json:"content"`
}

// Capture builds a snapshot from placements, keeping their order.
func Capture(placements []overlay.Placement) *Snapshot {
	snap := &Snapshot{Widgets: make([]*WidgetNode, 0, len(placements))}
	for _, p := range placements {
		snap.Widgets = append(snap.Widgets, &WidgetNode{
			ID:         p.WidgetID,
			Type:       p.Type,
			Priority:   p.Priority,
			Visible:    p.Visible,
			Position:   p.Position.Style(),
			Transition: p.Transition.Style(),
			Content:    p.Content,
		})
	}
	return snap
}

// WithBounds records measured bounds, keyed by widget id, and returns s.
func (s *Snapshot) WithBounds(rects map[string]geometry.Rect) *Snapshot {
	for _, n := range s.Widgets {
		r, ok := rects[n.ID]
		if !ok {
			continue
		}
		n.Bounds = &[4]float64{round2(r.Left), round2(r.Top), round2(r.Width()), round2(r.Height())}
	}
	return s
}

// WithCollisions records a collision result and returns s.
func (s *Snapshot) WithCollisions(res overlay.CollisionResult) *Snapshot {
	s.Collisions = res.Collisions
	return s
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When
// OVERLAY_UPDATE_SNAPSHOTS=1 is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv(UpdateSnapshotsEnv) == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: %s=1 go test -run %s", path, UpdateSnapshotsEnv, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: %s=1 go test -run %s", path, diff, UpdateSnapshotsEnv, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a unified diff between this snapshot and other. Returns
// empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return unifiedDiff(string(b), string(a))
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unifiedDiff produces a simple line-oriented diff.
func unifiedDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	for i := range max(len(expectedLines), len(actualLines)) {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e != a {
			if i < len(expectedLines) {
				fmt.Fprintf(&buf, "-%s\n", e)
			}
			if i < len(actualLines) {
				fmt.Fprintf(&buf, "+%s\n", a)
			}
		}
	}

	return buf.String()
}
