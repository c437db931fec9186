// Package ports defines the core interfaces for the application.
package ports

// ContentStore is the byte-level storage the repositories read templates and schemas from.
// Paths are slash-separated and relative to the store root.
//
//go:generate mockgen -source=content_store.go -destination=mocks/mock_content_store.go -package=mocks
type ContentStore interface {
	// Read returns the bytes stored at path.
	Read(path string) ([]byte, error)
	// Write stores data at path, creating parent directories as needed.
	Write(path string, data []byte) error
	// Exists reports whether a readable entry is stored at path.
	Exists(path string) bool
	// List returns every file path below root in lexical order.
	List(root string) ([]string, error)
}

// ContentStoreFactory opens a ContentStore rooted at a base directory.
type ContentStoreFactory func(root string) ContentStore
