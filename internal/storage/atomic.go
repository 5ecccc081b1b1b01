package storage

import (
	"fmt"
	"os"
	"path"

	"github.com/spf13/afero"
)

// WriteFileAtomic writes data to a temporary file next to name and renames it
// into place, so readers never observe a partial file.
func WriteFileAtomic(fsys afero.Fs, name string, data []byte, perm os.FileMode) error {
	dir := path.Dir(name)
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	tmp, err := afero.TempFile(fsys, dir, "."+path.Base(name)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = fsys.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = fsys.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := fsys.Chmod(tmpName, perm); err != nil {
		_ = fsys.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := fsys.Rename(tmpName, name); err != nil {
		_ = fsys.Remove(tmpName)
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
