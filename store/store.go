// Package store persists editor buffers.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

var ErrNoPath = errors.New("no file path")

const defaultPerm os.FileMode = 0o644

// FileStore loads and saves a single file on an afero filesystem.
type FileStore struct {
	fs   afero.Fs
	path string
}

// NewFileStore creates a store for path. A nil fs means the OS filesystem.
func NewFileStore(fsys afero.Fs, path string) *FileStore {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &FileStore{fs: fsys, path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

// Exists reports whether the file is present
func (s *FileStore) Exists() bool {
	ok, err := afero.Exists(s.fs, s.path)
	return err == nil && ok
}

// Load returns the file content. A file that does not exist yet loads as
// an empty buffer.
func (s *FileStore) Load() (string, error) {
	if s.path == "" {
		return "", ErrNoPath
	}

	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", s.path, err)
	}
	return string(data), nil
}

// Save writes text through a temporary file and renames it into place, so a
// failed write never truncates the original.
func (s *FileStore) Save(text string) error {
	if s.path == "" {
		return ErrNoPath
	}

	perm := defaultPerm
	if info, err := s.fs.Stat(s.path); err == nil {
		perm = info.Mode().Perm()
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, []byte(text), perm); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}

	log.Printf("file saved: %s (%d bytes)", s.path, len(text))
	return nil
}
