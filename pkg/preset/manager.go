package preset

import (
	"context"
	"errors"
	"fmt"
	"time"

	overlayerrors "github.com/go-drift/studio/pkg/errors"
	"github.com/go-drift/studio/pkg/overlay"
)

// ErrBuiltin is returned when a built-in preset would be modified.
var ErrBuiltin = errors.New("built-in preset is read-only")

// Manager combines the built-in presets with a Store and implements the
// export and import workflows.
type Manager struct {
	Store Store
	// Now stamps created presets and renamed imports. Defaults to time.Now.
	Now func() time.Time
	// Debug reports validation findings of imported configurations through
	// the error handler.
	Debug bool
}

// NewManager returns a manager over store. A nil store uses a MemoryStore.
func NewManager(store Store) *Manager {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Manager{Store: store, Now: time.Now}
}

func (m *Manager) now() time.Time {
	if m.Now == nil {
		return time.Now()
	}
	return m.Now()
}

// List returns the built-in presets followed by the stored ones.
func (m *Manager) List(ctx context.Context) ([]Preset, error) {
	stored, err := m.Store.LoadAll(ctx)
	if err != nil {
		return nil, storageError("preset.List", "", err)
	}
	return append(Builtins(), stored...), nil
}

// Get returns the preset with the given id, built-ins first.
func (m *Manager) Get(ctx context.Context, id string) (Preset, error) {
	if p, ok := Builtin(id); ok {
		return p, nil
	}
	p, err := m.Store.Load(ctx, id)
	if err != nil {
		return Preset{}, storageError("preset.Get", id, err)
	}
	return p, nil
}

func (m *Manager) exists(ctx context.Context, id string) (bool, error) {
	if _, ok := Builtin(id); ok {
		return true, nil
	}
	return m.Store.Exists(ctx, id)
}

// Save stores p as a user-created preset, stamping CreatedAt when unset.
// Built-in ids cannot be overwritten.
func (m *Manager) Save(ctx context.Context, p Preset) error {
	if _, ok := Builtin(p.ID); ok {
		return storageError("preset.Save", p.ID, fmt.Errorf("%w: %q", ErrBuiltin, p.ID))
	}
	p = p.Clone()
	p.IsUserCreated = true
	if p.CreatedAt.IsZero() {
		p.CreatedAt = m.now()
	}
	if err := m.Store.Save(ctx, p); err != nil {
		return storageError("preset.Save", p.ID, err)
	}
	return nil
}

// Delete removes a stored preset. Built-ins cannot be deleted.
func (m *Manager) Delete(ctx context.Context, id string) error {
	if _, ok := Builtin(id); ok {
		return storageError("preset.Delete", id, fmt.Errorf("%w: %q", ErrBuiltin, id))
	}
	if err := m.Store.Delete(ctx, id); err != nil {
		return storageError("preset.Delete", id, err)
	}
	return nil
}

// Export encodes the preset with the given id as a document.
func (m *Manager) Export(ctx context.Context, id string, f Format) ([]byte, error) {
	p, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := Encode(p, f)
	if err != nil {
		return nil, &overlayerrors.OverlayError{Op: "preset.Export", Kind: overlayerrors.KindExport, Err: err}
	}
	return data, nil
}

// Import decodes a document and stores its preset as user-created. When the
// id is taken the preset is stored as "<id>-imported-<unix millis>" and its
// name gains an " (Imported)" suffix. The stored preset is returned.
func (m *Manager) Import(ctx context.Context, data []byte, f Format) (Preset, error) {
	p, err := Decode(data, f)
	if err != nil {
		return Preset{}, &overlayerrors.OverlayError{Op: "preset.Import", Kind: overlayerrors.KindImport, Err: err}
	}
	taken, err := m.exists(ctx, p.ID)
	if err != nil {
		return Preset{}, storageError("preset.Import", p.ID, err)
	}
	now := m.now()
	if taken {
		p.ID = fmt.Sprintf("%s-imported-%d", p.ID, now.UnixMilli())
		p.Name += " (Imported)"
	}
	p.IsUserCreated = true
	p.CreatedAt = now
	if err := m.Store.Save(ctx, p); err != nil {
		return Preset{}, storageError("preset.Import", p.ID, err)
	}
	if m.Debug {
		cfg := overlay.ApplyDefaults(p.Configuration)
		overlay.ReportIssues(p.ID, "preset.Import", overlay.Validate(cfg).Errors)
	}
	return p, nil
}

func storageError(op, id string, err error) error {
	var oe *overlayerrors.OverlayError
	if errors.As(err, &oe) {
		return err
	}
	e := overlayerrors.New(op, overlayerrors.KindStorage, err)
	if id != "" {
		e.Err = fmt.Errorf("preset %q: %w", id, err)
	}
	return e
}
