package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/breakdown/internal/core/domain"
	"go.trai.ch/zerr"
)

// DefaultIgnores are file name patterns never reported by List.
var DefaultIgnores = []string{".*.swp", "*~", ".DS_Store"}

// Store implements ports.ContentStore on a directory of the local file system.
type Store struct {
	root    string
	walker  *Walker
	ignores []string
}

// NewStore creates a Store rooted at root.
func NewStore(root string, walker *Walker) *Store {
	return &Store{
		root:    filepath.Clean(root),
		walker:  walker,
		ignores: DefaultIgnores,
	}
}

// Root returns the directory the store is rooted at.
func (s *Store) Root() string {
	return s.root
}

// Read returns the file stored at the slash separated path.
func (s *Store) Read(path string) ([]byte, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	//nolint:gosec // Path is confined to the store root by resolve
	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrNotFound, "file does not exist"), "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read file"), "path", path)
	}
	return data, nil
}

// Write stores data at path, creating parent directories as needed.
func (s *Store) Write(path string, data []byte) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(full), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create parent directory"), "path", path)
	}

	//nolint:gosec // Documents are meant to be shared, path is confined by resolve
	if err := os.WriteFile(full, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write file"), "path", path)
	}
	return nil
}

// Exists reports whether a regular file is stored at path.
func (s *Store) Exists(path string) bool {
	full, err := s.resolve(path)
	if err != nil {
		return false
	}
	info, err := os.Stat(full)
	return err == nil && info.Mode().IsRegular()
}

// List returns every file below root as a slash separated path relative to the store root.
// A missing directory lists as empty.
func (s *Store) List(root string) ([]string, error) {
	dir, err := s.resolve(root)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to stat directory"), "path", root)
	}

	paths := make([]string, 0)
	for file, err := range s.walker.WalkFiles(dir, s.ignores) {
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to walk directory"), "path", root)
		}
		rel, err := filepath.Rel(s.root, file)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to relativize path"), "path", file)
		}
		paths = append(paths, filepath.ToSlash(rel))
	}
	slices.Sort(paths)
	return paths, nil
}

// resolve maps a slash separated relative path onto the file system, refusing to escape the root.
func (s *Store) resolve(path string) (string, error) {
	if path == "" || path == "." {
		return s.root, nil
	}
	local := filepath.FromSlash(path)
	if !filepath.IsLocal(local) {
		return "", zerr.With(zerr.Wrap(domain.ErrMalformedPath, "path escapes store root"), "path", path)
	}
	return filepath.Join(s.root, local), nil
}
