package save

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/capnchainsaw/WastelandSurvivor/internal/games/wasteland/core"
)

// ErrNoSave is returned by a Store that holds no saved game.
var ErrNoSave = errors.New("no saved game")

// Meta summarizes a save for listings.
type Meta struct {
	Level int
	Turn  int
	Food  int
}

// MetaOf returns the listing summary of w.
func MetaOf(w *core.World) Meta {
	return Meta{Level: w.Level(), Turn: w.Turn(), Food: w.Food()}
}

// Store keeps one saved game.
type Store interface {
	Load() ([]byte, error)
	Store(data []byte, meta Meta) error
	Remove() error
}

// Write encodes w into s.
func Write(s Store, w *core.World) error {
	data, err := Marshal(w)
	if err != nil {
		return err
	}
	return s.Store(data, MetaOf(w))
}

// Read decodes the game held by s. It returns ErrNoSave when s is empty.
func Read(s Store, p core.Params, opts ...core.Option) (*core.World, error) {
	data, err := s.Load()
	if err != nil {
		return nil, err
	}
	return Unmarshal(data, p, opts...)
}

// FileStore keeps the save in a single file.
type FileStore struct {
	Path string
}

// NewFileStore returns a store at path. A leading ~ is expanded to the
// home directory.
func NewFileStore(path string) (*FileStore, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("save: get home dir: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	return &FileStore{Path: path}, nil
}

// Load reads the save file.
func (f *FileStore) Load() ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("save: read %s: %w", f.Path, err)
	}
	return data, nil
}

// Store replaces the save file atomically.
func (f *FileStore) Store(data []byte, _ Meta) error {
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("save: create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".save-*.xml")
	if err != nil {
		return fmt.Errorf("save: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("save: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("save: rename: %w", err)
	}
	return nil
}

// Remove deletes the save file. A missing file is not an error.
func (f *FileStore) Remove() error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("save: remove: %w", err)
	}
	return nil
}

// Exists reports whether a save file is present.
func (f *FileStore) Exists() bool {
	_, err := os.Stat(f.Path)
	return err == nil
}
