package persist

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/beanmart/beanmart/pkg/domain"
)

// FileStore keeps the snapshot in a single JSON file readable only by the
// current user.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultFilePath returns ~/.beanmart/session.json.
func DefaultFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".beanmart", "session.json"), nil
}

// Path returns the snapshot file location.
func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Load(_ context.Context) (*domain.Session, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("persist.FileStore.Load: %w", err)
	}
	s, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("persist.FileStore.Load: %w", err)
	}
	return s, nil
}

// Save writes to a sibling temp file and renames it over the snapshot so a
// crash mid-write never leaves a truncated record.
func (f *FileStore) Save(_ context.Context, s domain.Session) error {
	data, err := encode(s)
	if err != nil {
		return err
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("persist.FileStore.Save: create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".session-*.tmp")
	if err != nil {
		return fmt.Errorf("persist.FileStore.Save: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after a successful rename

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("persist.FileStore.Save: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("persist.FileStore.Save: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("persist.FileStore.Save: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("persist.FileStore.Save: rename: %w", err)
	}
	return nil
}

func (f *FileStore) Clear(_ context.Context) error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("persist.FileStore.Clear: %w", err)
	}
	return nil
}
