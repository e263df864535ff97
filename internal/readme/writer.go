package readme

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrExists is returned when the target file exists and overwrite was not requested
var ErrExists = errors.New("file already exists")

// Writer saves README files through an afero filesystem.
// Use afero.NewOsFs() for real files or afero.NewMemMapFs() in tests.
type Writer struct {
	fs afero.Fs
}

// NewWriter creates a Writer on fs
func NewWriter(fs afero.Fs) *Writer {
	return &Writer{fs: fs}
}

// Exists reports whether path is present
func (w *Writer) Exists(path string) (bool, error) {
	return afero.Exists(w.fs, path)
}

// Write stores content at path, creating parent directories. An existing
// file is replaced only when overwrite is set.
func (w *Writer) Write(path, content string, overwrite bool) error {
	exists, err := w.Exists(path)
	if err != nil {
		return fmt.Errorf("check %s: %w", path, err)
	}
	if exists && !overwrite {
		return fmt.Errorf("%s: %w", path, ErrExists)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := w.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(w.fs, path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
