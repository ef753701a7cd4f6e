package preset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// FileStore is a Store keeping one YAML document per preset in a directory.
type FileStore struct {
	Dir string
}

// NewFileStore returns a store rooted at dir. The directory is created on
// first save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

// path maps id to its file. Ids starting with a dot are refused since
// LoadAll skips dotfiles.
func (s *FileStore) path(id string) (string, error) {
	if id == "" || strings.HasPrefix(id, ".") || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("%w: unusable id %q", ErrInvalidPreset, id)
	}
	return filepath.Join(s.Dir, id+FormatYAML.Ext()), nil
}

func (s *FileStore) Save(ctx context.Context, p Preset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.Check(); err != nil {
		return err
	}
	path, err := s.path(p.ID)
	if err != nil {
		return err
	}
	data, err := Encode(p, FormatYAML)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.Dir, ".preset-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (s *FileStore) Load(ctx context.Context, id string) (Preset, error) {
	if err := ctx.Err(); err != nil {
		return Preset{}, err
	}
	path, err := s.path(id)
	if err != nil {
		return Preset{}, err
	}
	return s.loadFile(path, id)
}

func (s *FileStore) loadFile(path, id string) (Preset, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Preset{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if err != nil {
		return Preset{}, err
	}
	p, err := Decode(data, FormatYAML)
	if err != nil {
		return Preset{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return p, nil
}

// LoadAll reads every preset file concurrently. A missing directory holds no
// presets.
func (s *FileStore) LoadAll(ctx context.Context) ([]Preset, error) {
	entries, err := os.ReadDir(s.Dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != FormatYAML.Ext() {
			continue
		}
		names = append(names, name)
	}

	presets := make([]Preset, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := s.loadFile(filepath.Join(s.Dir, name), strings.TrimSuffix(name, FormatYAML.Ext()))
			if err != nil {
				return err
			}
			presets[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sortByID(presets)
	return presets, nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(id)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return err
}

func (s *FileStore) Exists(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	path, err := s.path(id)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}
