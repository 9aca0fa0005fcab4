// Package atomicfile writes files that only appear under their final name
// once they are complete. Writes go to a temporary file in the same
// directory and Close renames it into place, so an aborted run never
// leaves a partial artifact behind.
package atomicfile

import (
	"os"
	"path/filepath"
)

// File is a write handle backed by a temporary file.
type File struct {
	*os.File
	path string
}

// New creates a temporary file next to path. Until Close, readers see
// either the previous version of path or nothing.
func New(path string) (*File, error) {
	dir, base := filepath.Split(path)
	tmp, err := os.CreateTemp(dir, base+".tmp-")
	if err != nil {
		return nil, err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, err
	}
	return &File{File: tmp, path: path}, nil
}

// Close flushes the temporary file and moves it into place.
func (f *File) Close() error {
	if err := f.File.Sync(); err != nil {
		f.File.Close()
		os.Remove(f.File.Name())
		return err
	}
	if err := f.File.Close(); err != nil {
		os.Remove(f.File.Name())
		return err
	}
	return os.Rename(f.File.Name(), f.path)
}

// Abort discards the temporary file without touching the final path.
func (f *File) Abort() error {
	f.File.Close()
	return os.Remove(f.File.Name())
}
