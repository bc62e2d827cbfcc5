package editor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// filePermissions is the mode for newly created documents.
const filePermissions = 0o644

// Load reads path into a new buffer. A missing file yields an empty buffer so
// the file is created on first save.
func Load(path string) (*Buffer, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(""), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return New(string(content)), nil
}

// Reload replaces the buffer contents with the file on disk.
func (b *Buffer) Reload(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	b.Reset(string(content))
	return nil
}

// Save writes the buffer to path through a temporary file and marks it saved.
// An existing file keeps its permissions.
func (b *Buffer) Save(path string) error {
	mode, err := saveMode(path)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	if _, err := tmp.WriteString(b.Text()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing %s: %w", path, err)
	}

	b.MarkSaved()
	return nil
}

// saveMode returns the permissions for writing path.
func saveMode(path string) (fs.FileMode, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return filePermissions, nil
	case err != nil:
		return 0, fmt.Errorf("checking %s: %w", path, err)
	}
	return info.Mode().Perm(), nil
}
