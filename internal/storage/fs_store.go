package storage

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

// FSStore is an ObjectStore over a single directory:
//
//	images/releases/
//	  3f7a...e1.png
//	  9b04...c2.jpg
type FSStore struct {
	fs  afero.Fs
	dir string
	mu  sync.RWMutex
}

// NewFSStore returns a store rooted at dir on fsys, creating dir if needed.
func NewFSStore(fsys afero.Fs, dir string) (*FSStore, error) {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", dir, err)
	}
	return &FSStore{fs: fsys, dir: dir}, nil
}

// Dir returns the directory objects are stored in.
func (s *FSStore) Dir() string { return s.dir }

func (s *FSStore) objectPath(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return path.Join(s.dir, name), nil
}

func (s *FSStore) Exists(name string) (bool, error) {
	p, err := s.objectPath(name)
	if err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return afero.Exists(s.fs, p)
}

func (s *FSStore) Put(name string, data []byte) (bool, error) {
	p, err := s.objectPath(name)
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := afero.Exists(s.fs, p)
	if err != nil {
		return false, fmt.Errorf("stat object: %w", err)
	}
	if exists {
		return false, nil
	}
	if err := WriteFileAtomic(s.fs, p, data, 0o644); err != nil {
		return false, fmt.Errorf("write object: %w", err)
	}
	return true, nil
}

func (s *FSStore) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
