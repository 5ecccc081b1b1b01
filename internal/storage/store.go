// Package storage keeps content-addressed artifacts in a flat directory on an
// afero filesystem. Objects are named by the caller (a hash plus extension) and
// written at most once.
package storage

import "errors"

// ObjectStore stores immutable named blobs.
type ObjectStore interface {
	// Exists reports whether an object called name is stored.
	Exists(name string) (bool, error)
	// Put stores data under name unless an object with that name already exists.
	// It reports whether data was written.
	Put(name string, data []byte) (bool, error)
	// List returns the stored object names, sorted.
	List() ([]string, error)
}

var ErrInvalidName = errors.New("invalid object name")
