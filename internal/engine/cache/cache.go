// Package cache provides the TTL and capacity bounded document cache used by the repositories.
package cache

import (
	"slices"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/jonboulle/clockwork"
	"go.trai.ch/breakdown/internal/core/domain"
)

type slot struct {
	entry domain.CacheEntry
	seq   uint64
}

// Cache maps document paths to their loaded content.
//
// Entries older than the TTL are never returned. When the number of entries
// exceeds the capacity the entry with the oldest load time is evicted, so the
// cache behaves as TTL+FIFO rather than LRU: reads do not refresh an entry.
type Cache struct {
	mu       sync.Mutex
	clock    clockwork.Clock
	capacity int
	ttl      time.Duration
	entries  map[string]*slot
	seq      uint64
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock sets the clock used for load times and expiry.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Cache) {
		c.clock = clock
	}
}

// New creates a Cache holding at most capacity entries for at most ttl each.
// Non-positive values fall back to the defaults.
func New(capacity int, ttl time.Duration, opts ...Option) *Cache {
	if capacity <= 0 {
		capacity = domain.DefaultCacheCapacity
	}
	if ttl <= 0 {
		ttl = domain.DefaultCacheTTL
	}
	c := &Cache{
		clock:    clockwork.NewRealClock(),
		capacity: capacity,
		ttl:      ttl,
		entries:  make(map[string]*slot),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the entry for path if it exists and has not expired.
// An expired entry is removed as a side effect.
func (c *Cache) Get(path string) (domain.CacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.entries[path]
	if !ok {
		return domain.CacheEntry{}, false
	}
	if s.entry.Age(c.clock.Now()) > c.ttl {
		delete(c.entries, path)
		return domain.CacheEntry{}, false
	}

	entry := s.entry
	entry.Dependencies = slices.Clone(s.entry.Dependencies)
	return entry, true
}

// Put stores content for path, replacing any previous entry and resetting its load time.
// It returns the path of the entry evicted to stay within capacity, if any.
func (c *Cache) Put(path, content string, sizeBytes int, dependencies []string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	c.entries[path] = &slot{
		entry: domain.CacheEntry{
			Content:      content,
			LoadedAt:     c.clock.Now(),
			SizeBytes:    sizeBytes,
			Dependencies: uniqueOrdered(dependencies),
			Checksum:     xxhash.Sum64String(content),
		},
		seq: c.seq,
	}

	if len(c.entries) <= c.capacity {
		return "", false
	}
	victim := c.oldest()
	delete(c.entries, victim)
	return victim, true
}

// Delete removes the entry for path.
func (c *Cache) Delete(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, path)
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.entries)
}

// Len returns the number of stored entries, including ones that expired but were not read yet.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// oldest returns the path with the smallest load time; insertion order breaks ties.
// Callers must hold c.mu.
func (c *Cache) oldest() string {
	var (
		victim string
		best   *slot
	)
	for path, s := range c.entries {
		if best == nil ||
			s.entry.LoadedAt.Before(best.entry.LoadedAt) ||
			(s.entry.LoadedAt.Equal(best.entry.LoadedAt) && s.seq < best.seq) {
			victim, best = path, s
		}
	}
	return victim
}

func uniqueOrdered(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
