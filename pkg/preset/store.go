package preset

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrNotFound is returned when a preset does not exist.
var ErrNotFound = errors.New("preset not found")

// Store persists presets by id.
type Store interface {
	Save(ctx context.Context, p Preset) error
	// Load fails with an error wrapping ErrNotFound for unknown ids.
	Load(ctx context.Context, id string) (Preset, error)
	// LoadAll returns every stored preset sorted by id.
	LoadAll(ctx context.Context) ([]Preset, error)
	// Delete fails with an error wrapping ErrNotFound for unknown ids.
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}

// MemoryStore is a Store holding encoded documents in memory. Stored presets
// never alias the caller's values.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (s *MemoryStore) Save(ctx context.Context, p Preset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.Check(); err != nil {
		return err
	}
	data, err := Encode(p, FormatJSON)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[p.ID] = data
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, id string) (Preset, error) {
	if err := ctx.Err(); err != nil {
		return Preset{}, err
	}
	s.mu.RLock()
	data, ok := s.docs[id]
	s.mu.RUnlock()
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return Decode(data, FormatJSON)
}

func (s *MemoryStore) LoadAll(ctx context.Context) ([]Preset, error) {
	s.mu.RLock()
	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	slices.Sort(ids)

	out := make([]Preset, 0, len(ids))
	for _, id := range ids {
		p, err := s.Load(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	delete(s.docs, id)
	return nil
}

func (s *MemoryStore) Exists(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.docs[id]
	return ok, nil
}

func sortByID(presets []Preset) {
	slices.SortFunc(presets, func(a, b Preset) int { return cmp.Compare(a.ID, b.ID) })
}
