package fs

import (
	"path"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/breakdown/internal/core/domain"
	"go.trai.ch/zerr"
)

// MemoryStore is an in-memory ports.ContentStore, used by tests and dry runs.
type MemoryStore struct {
	mu    sync.RWMutex
	files map[string][]byte
	// FailWrites makes Write fail for the listed paths.
	FailWrites map[string]error
}

// NewMemoryStore creates a MemoryStore seeded with files.
func NewMemoryStore(files map[string]string) *MemoryStore {
	s := &MemoryStore{files: make(map[string][]byte, len(files))}
	for p, content := range files {
		s.files[clean(p)] = []byte(content)
	}
	return s
}

// Read returns a copy of the bytes stored at p.
func (s *MemoryStore) Read(p string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.files[clean(p)]
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrNotFound, "file does not exist"), "path", p)
	}
	return slices.Clone(data), nil
}

// Write stores a copy of data at p.
func (s *MemoryStore) Write(p string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err, ok := s.FailWrites[clean(p)]; ok {
		return zerr.With(zerr.Wrap(err, "failed to write file"), "path", p)
	}
	s.files[clean(p)] = slices.Clone(data)
	return nil
}

// Exists reports whether p is stored.
func (s *MemoryStore) Exists(p string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.files[clean(p)]
	return ok
}

// List returns every stored path below root in lexical order.
func (s *MemoryStore) List(root string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix := clean(root)
	paths := make([]string, 0, len(s.files))
	for p := range s.files {
		if prefix == "" || p == prefix || strings.HasPrefix(p, prefix+"/") {
			paths = append(paths, p)
		}
	}
	slices.Sort(paths)
	return paths, nil
}

func clean(p string) string {
	c := path.Clean("/" + p)
	return strings.TrimPrefix(c, "/")
}
