package preset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	overlayerrors "github.com/go-drift/studio/pkg/errors"
	"github.com/go-drift/studio/pkg/overlay"
)

var fixedNow = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func userPreset(id string) Preset {
	return Preset{
		ID:       id,
		Name:     "Mine",
		Category: "custom",
		Configuration: overlay.Configuration{
			ID:   id,
			Name: "Mine",
			Widgets: []overlay.Widget{{
				ID:         "status",
				Type:       "badge",
				Position:   overlay.At(overlay.AnchorTopLeft, 8, 8),
				Visibility: overlay.VisibilityConfig{Trigger: overlay.TriggerAlways},
			}},
		},
		CreatedAt: fixedNow,
	}
}

// presetOpts compares presets across codecs.
var presetOpts = cmp.Options{
	cmp.Comparer(func(a, b overlay.Length) bool { return a.String() == b.String() }),
	cmp.Comparer(func(a, b time.Time) bool { return a.Equal(b) }),
	cmpopts.EquateEmpty(),
	cmpopts.IgnoreFields(overlay.Widget{}, "Content", "OnClick"),
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Preset)
		ok     bool
	}{
		{"valid", func(*Preset) {}, true},
		{"missing id", func(p *Preset) { p.ID = "" }, false},
		{"missing name", func(p *Preset) { p.Name = "" }, false},
		{"widget without type", func(p *Preset) { p.Configuration.Widgets[0].Type = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := userPreset("mine")
			tt.mutate(&p)
			err := p.Check()
			if tt.ok && err != nil {
				t.Errorf("Check() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidPreset) {
				t.Errorf("Check() = %v, want ErrInvalidPreset", err)
			}
		})
	}
}

func TestBuiltinsAreValid(t *testing.T) {
	for _, p := range Builtins() {
		if err := p.Check(); err != nil {
			t.Errorf("%s: %v", p.ID, err)
		}
		if p.IsUserCreated {
			t.Errorf("%s: built-in marked user-created", p.ID)
		}
		res := overlay.Validate(overlay.ApplyDefaults(p.Configuration))
		if !res.Valid {
			t.Errorf("%s: %v", p.ID, res.Errors)
		}
	}
	a, _ := Builtin("gallery-card")
	a.Configuration.Widgets[0].ID = "changed"
	b, _ := Builtin("gallery-card")
	if b.Configuration.Widgets[0].ID != "status" {
		t.Error("Builtins returned shared data")
	}
}

func TestCodecRoundTrip(t *testing.T) {
	want, _ := Builtin("gallery-card")
	want.CreatedAt = fixedNow
	for _, f := range Formats() {
		t.Run(string(f), func(t *testing.T) {
			data, err := Encode(want, f)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, err := Decode(data, f)
			if err != nil {
				t.Fatalf("Decode: %v\n%s", err, data)
			}
			if diff := cmp.Diff(want, got, presetOpts); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed json", `{"version": "v1.0.0", "preset": `},
		{"missing version", `{"preset": {"id": "a", "name": "A", "configuration": {"widgets": []}}}`},
		{"future major", `{"version": "v2.0.0", "preset": {"id": "a", "name": "A", "configuration": {"widgets": []}}}`},
		{"bad version", `{"version": "one", "preset": {"id": "a", "name": "A", "configuration": {"widgets": []}}}`},
		{"missing id", `{"version": "1.2.0", "preset": {"name": "A", "configuration": {"widgets": []}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), FormatJSON)
			if !errors.Is(err, ErrInvalidPreset) {
				t.Errorf("Decode() = %v, want ErrInvalidPreset", err)
			}
			if err != nil && !strings.Contains(err.Error(), "invalid preset structure") {
				t.Errorf("error %q lacks context", err)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"a.json":        FormatJSON,
		"dir/b.yml":     FormatYAML,
		"c.YAML":        FormatYAML,
		"presets/d.toml": FormatTOML,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		if err != nil || got != want {
			t.Errorf("FormatFromPath(%q) = %q, %v; want %q", path, got, err, want)
		}
	}
	for _, path := range []string{"noext", "e.xml"} {
		if _, err := FormatFromPath(path); err == nil {
			t.Errorf("FormatFromPath(%q) should fail", path)
		}
	}
}

func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Load(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(missing) = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(missing) = %v, want ErrNotFound", err)
	}
	if err := s.Save(ctx, Preset{Name: "no id"}); !errors.Is(err, ErrInvalidPreset) {
		t.Errorf("Save(no id) = %v, want ErrInvalidPreset", err)
	}

	for _, id := range []string{"zeta", "alpha"} {
		if err := s.Save(ctx, userPreset(id)); err != nil {
			t.Fatalf("Save(%s): %v", id, err)
		}
	}
	if ok, err := s.Exists(ctx, "alpha"); !ok || err != nil {
		t.Errorf("Exists(alpha) = %v, %v", ok, err)
	}
	got, err := s.Load(ctx, "alpha")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(userPreset("alpha"), got, presetOpts); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}

	all, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, p := range all {
		ids = append(ids, p.ID)
	}
	if diff := cmp.Diff([]string{"alpha", "zeta"}, ids); diff != "" {
		t.Errorf("LoadAll ids (-want +got):\n%s", diff)
	}

	if err := s.Delete(ctx, "zeta"); err != nil {
		t.Fatal(err)
	}
	if ok, _ := s.Exists(ctx, "zeta"); ok {
		t.Error("zeta still exists after Delete")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := s.Save(cancelled, userPreset("late")); !errors.Is(err, context.Canceled) {
		t.Errorf("Save with cancelled context = %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	testStore(t, s)

	p := userPreset("alias")
	if err := s.Save(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	p.Configuration.Widgets[0].ID = "mutated"
	got, _ := s.Load(context.Background(), "alias")
	if got.Configuration.Widgets[0].ID != "status" {
		t.Error("stored preset aliases the caller's value")
	}
}

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "presets")
	s := NewFileStore(dir)
	if all, err := s.LoadAll(context.Background()); err != nil || len(all) != 0 {
		t.Errorf("LoadAll on missing dir = %v, %v", all, err)
	}
	testStore(t, s)

	if _, err := os.Stat(filepath.Join(dir, "alpha.yaml")); err != nil {
		t.Errorf("alpha.yaml not written: %v", err)
	}
	for _, id := range []string{"../escape", ".hidden", "..", `a\b`} {
		if err := s.Save(context.Background(), userPreset(id)); !errors.Is(err, ErrInvalidPreset) {
			t.Errorf("Save(%q) = %v, want ErrInvalidPreset", id, err)
		}
		if ok, _ := s.Exists(context.Background(), id); ok {
			t.Errorf("Exists(%q) = true after rejected save", id)
		}
	}
}

func TestFileStoreLoadAllReportsBadFile(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)
	if err := s.Save(context.Background(), userPreset("good")); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("version: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := s.LoadAll(context.Background())
	if !errors.Is(err, ErrInvalidPreset) {
		t.Errorf("LoadAll = %v, want ErrInvalidPreset", err)
	}
}

func newTestManager() *Manager {
	m := NewManager(NewMemoryStore())
	m.Now = func() time.Time { return fixedNow }
	return m
}

func TestManagerImport(t *testing.T) {
	ctx := context.Background()
	m := newTestManager()
	data, err := Encode(userPreset("mine"), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}

	first, err := m.Import(ctx, data, FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	if first.ID != "mine" || first.Name != "Mine" || !first.IsUserCreated {
		t.Errorf("first import = %+v", first)
	}

	second, err := m.Import(ctx, data, FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	wantID := "mine-imported-1773480413000"
	if second.ID != wantID {
		t.Errorf("second ID = %q, want %q", second.ID, wantID)
	}
	if second.Name != "Mine (Imported)" {
		t.Errorf("second Name = %q", second.Name)
	}
	if ok, _ := m.Store.Exists(ctx, wantID); !ok {
		t.Error("renamed preset not stored")
	}
}

func TestManagerImportCollidesWithBuiltin(t *testing.T) {
	m := newTestManager()
	builtin, _ := Builtin("gallery-card")
	data, _ := Encode(builtin, FormatJSON)
	p, err := m.Import(context.Background(), data, FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(p.ID, "gallery-card-imported-") {
		t.Errorf("ID = %q", p.ID)
	}
}

func TestManagerImportInvalid(t *testing.T) {
	m := newTestManager()
	_, err := m.Import(context.Background(), []byte(`{"preset": 1}`), FormatJSON)
	var oe *overlayerrors.OverlayError
	if !errors.As(err, &oe) || oe.Kind != overlayerrors.KindImport {
		t.Fatalf("Import error = %v, want KindImport OverlayError", err)
	}
	if !errors.Is(err, ErrInvalidPreset) {
		t.Errorf("Import error = %v, want ErrInvalidPreset", err)
	}
}

func TestManagerExportAndBuiltins(t *testing.T) {
	ctx := context.Background()
	m := newTestManager()
	if err := m.Save(ctx, userPreset("mine")); err != nil {
		t.Fatal(err)
	}
	data, err := m.Export(ctx, "mine", FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(data, FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsUserCreated || got.ID != "mine" {
		t.Errorf("exported preset = %+v", got)
	}

	if _, err := m.Export(ctx, "missing", FormatJSON); !errors.Is(err, ErrNotFound) {
		t.Errorf("Export(missing) = %v, want ErrNotFound", err)
	}
	if err := m.Delete(ctx, "gallery-card"); !errors.Is(err, ErrBuiltin) {
		t.Errorf("Delete(builtin) = %v, want ErrBuiltin", err)
	}
	if err := m.Save(ctx, userPreset("gallery-card")); !errors.Is(err, ErrBuiltin) {
		t.Errorf("Save(builtin id) = %v, want ErrBuiltin", err)
	}

	list, err := m.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(Builtins()) + 1; len(list) != n {
		t.Errorf("List returned %d presets, want %d", len(list), n)
	}
}
