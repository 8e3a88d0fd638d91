package history

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileGateway stores each key as a file under dir.
type FileGateway struct {
	fs  afero.Fs
	dir string
}

func NewFileGateway(fsys afero.Fs, dir string) (*FileGateway, error) {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	return &FileGateway{fs: fsys, dir: dir}, nil
}

func (f *FileGateway) Get(_ context.Context, key string) (string, bool, error) {
	data, err := afero.ReadFile(f.fs, f.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set writes through a temp file and rename so readers never see a partial value.
func (f *FileGateway) Set(_ context.Context, key, value string) error {
	target := f.path(key)
	tmp := target + ".tmp"

	if err := afero.WriteFile(f.fs, tmp, []byte(value), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := f.fs.Rename(tmp, target); err != nil {
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	return nil
}

func (f *FileGateway) Close() error {
	return nil
}

func (f *FileGateway) path(key string) string {
	return filepath.Join(f.dir, url.PathEscape(key)+".json")
}

var _ StorageGateway = (*FileGateway)(nil)
