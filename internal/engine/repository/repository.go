// Package repository implements the cached template and schema repositories.
package repository

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/breakdown/internal/core/domain"
	"go.trai.ch/breakdown/internal/core/ports"
	"go.trai.ch/breakdown/internal/engine/cache"
	"go.trai.ch/breakdown/internal/engine/deps"
	"go.trai.ch/zerr"
)

// Repository loads, lists and saves documents of a single kind.
//
// The store is expected to be rooted at the base directory of the kind, so
// every document path is "directive/layer/filename".
type Repository struct {
	kind   domain.DocumentKind
	store  ports.ContentStore
	logger ports.Logger
	tracer ports.Tracer

	clock           clockwork.Clock
	capacity        int
	ttl             time.Duration
	freshness       time.Duration
	saveConcurrency int
	cache           *cache.Cache

	mu           sync.Mutex
	manifest     *domain.Manifest
	manifestOpts domain.ListOptions
	// generation counts invalidations; a manifest built across one is not stored.
	generation uint64
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock sets the clock used for cache expiry and manifest freshness.
func WithClock(clock clockwork.Clock) Option {
	return func(r *Repository) {
		r.clock = clock
	}
}

// WithCache sets the cache capacity and entry TTL.
func WithCache(capacity int, ttl time.Duration) Option {
	return func(r *Repository) {
		r.capacity = capacity
		r.ttl = ttl
	}
}

// WithManifestFreshness sets how long a generated manifest is reused.
func WithManifestFreshness(d time.Duration) Option {
	return func(r *Repository) {
		r.freshness = d
	}
}

// WithSaveConcurrency sets how many batch items are saved in parallel.
// Values below 2 keep batches sequential.
func WithSaveConcurrency(n int) Option {
	return func(r *Repository) {
		r.saveConcurrency = n
	}
}

// New creates a Repository for documents of kind stored in store.
func New(
	kind domain.DocumentKind,
	store ports.ContentStore,
	logger ports.Logger,
	tracer ports.Tracer,
	opts ...Option,
) *Repository {
	r := &Repository{
		kind:            kind,
		store:           store,
		logger:          logger,
		tracer:          tracer,
		clock:           clockwork.NewRealClock(),
		capacity:        domain.DefaultCacheCapacity,
		ttl:             domain.DefaultCacheTTL,
		freshness:       domain.DefaultManifestFreshness,
		saveConcurrency: 1,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.cache = cache.New(r.capacity, r.ttl, cache.WithClock(r.clock))
	return r
}

// Kind returns the document kind served by the repository.
func (r *Repository) Kind() domain.DocumentKind {
	return r.kind
}

// Load returns the content stored at path, using the cache when possible.
func (r *Repository) Load(ctx context.Context, path string) (string, error) {
	entry, err := r.load(ctx, path)
	if err != nil {
		return "", err
	}
	return entry.Content, nil
}

// LoadTemplate loads a template together with its front matter metadata.
func (r *Repository) LoadTemplate(ctx context.Context, path domain.TemplatePath) (domain.Template, error) {
	entry, err := r.load(ctx, path.String())
	if err != nil {
		return domain.Template{}, err
	}
	return domain.NewTemplate(path, entry.Content, r.templateMetadata(path.String(), entry.Content)), nil
}

// LoadSchema loads a schema together with its metadata and "$ref" dependencies.
func (r *Repository) LoadSchema(ctx context.Context, path domain.SchemaPath) (domain.Schema, error) {
	entry, err := r.load(ctx, path.String())
	if err != nil {
		return domain.Schema{}, err
	}
	return domain.NewSchema(path, entry.Content, r.schemaMetadata(path.String(), entry.Content), entry.Dependencies), nil
}

// Entry returns the live cache entry for path, if any.
func (r *Repository) Entry(path string) (domain.CacheEntry, bool) {
	return r.cache.Get(path)
}

// Invalidate drops the cache entry for path and marks the manifest stale.
func (r *Repository) Invalidate(path string) {
	r.cache.Delete(path)
	r.markStale()
}

// ClearCache drops every cached document and the cached manifest.
func (r *Repository) ClearCache() {
	r.cache.Clear()
	r.markStale()
}

// Refresh forces the next loads and listings to go back to the store.
func (r *Repository) Refresh() {
	r.ClearCache()
	r.logger.Debug("refreshed " + string(r.kind) + " repository")
}

func (r *Repository) load(ctx context.Context, path string) (domain.CacheEntry, error) {
	_, span := r.tracer.Start(ctx, "repository.load",
		ports.WithAttribute("kind", string(r.kind)),
		ports.WithAttribute("path", path),
	)
	defer span.End()

	if entry, ok := r.cache.Get(path); ok {
		span.SetAttribute("cache_hit", true)
		r.logger.Debug("cache hit: " + path)
		return entry, nil
	}
	span.SetAttribute("cache_hit", false)

	data, err := r.store.Read(path)
	if err != nil {
		wrapped := zerr.With(zerr.Wrap(domain.ErrNotFound, "failed to read "+string(r.kind)), "path", path)
		wrapped = zerr.With(wrapped, "cause", err.Error())
		span.RecordError(wrapped)
		return domain.CacheEntry{}, wrapped
	}

	var dependencies []string
	if r.kind == domain.KindSchema {
		dependencies, err = deps.Extract(data)
		if err != nil {
			wrapped := zerr.With(err, "path", path)
			span.RecordError(wrapped)
			return domain.CacheEntry{}, wrapped
		}
	}

	if victim, evicted := r.cache.Put(path, string(data), len(data), dependencies); evicted {
		r.logger.Debug("cache evicted: " + victim)
	}
	if entry, ok := r.cache.Get(path); ok {
		return entry, nil
	}
	// Evicted by a concurrent Put before it could be read back.
	return domain.CacheEntry{
		Content:      string(data),
		LoadedAt:     r.clock.Now(),
		SizeBytes:    len(data),
		Dependencies: dependencies,
	}, nil
}

func (r *Repository) markStale() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.manifest = nil
	r.generation++
}
