package domain

import "time"

// CacheEntry is a cached document body together with its load bookkeeping.
type CacheEntry struct {
	Content      string
	LoadedAt     time.Time
	SizeBytes    int
	Dependencies []string
	// Checksum is the xxhash of Content, used to detect changed documents.
	Checksum uint64
}

// Age returns how long ago the entry was loaded, relative to now.
func (e CacheEntry) Age(now time.Time) time.Duration {
	return now.Sub(e.LoadedAt)
}
