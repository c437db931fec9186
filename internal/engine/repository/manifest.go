package repository

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/breakdown/internal/core/domain"
	"go.trai.ch/breakdown/internal/core/ports"
	"go.trai.ch/breakdown/internal/engine/deps"
	"go.trai.ch/zerr"
)

// ListAvailable returns the manifest of every document in the store.
//
// A manifest built with the same options is reused until it is older than the
// configured freshness. Files that are not addressable documents of the
// repository's kind are skipped.
func (r *Repository) ListAvailable(ctx context.Context, opts domain.ListOptions) (*domain.Manifest, error) {
	m, generation, ok := r.freshManifest(opts)
	if ok {
		return m, nil
	}

	ctx, span := r.tracer.Start(ctx, "repository.list",
		ports.WithAttribute("kind", string(r.kind)),
		ports.WithAttribute("include_metadata", opts.IncludeMetadata),
		ports.WithAttribute("include_dependencies", opts.IncludeDependencies),
	)
	defer span.End()

	m, err := r.buildManifest(ctx, opts)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("total_count", m.TotalCount)

	r.mu.Lock()
	if r.generation == generation {
		r.manifest = m
		r.manifestOpts = opts
	}
	r.mu.Unlock()

	return cloneManifest(m), nil
}

// freshManifest returns the cached manifest when it can be reused, and
// otherwise the current generation for the caller's rebuild.
func (r *Repository) freshManifest(opts domain.ListOptions) (*domain.Manifest, uint64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.manifest == nil || r.manifestOpts != opts {
		return nil, r.generation, false
	}
	if r.clock.Since(r.manifest.GeneratedAt) > r.freshness {
		return nil, r.generation, false
	}
	return cloneManifest(r.manifest), r.generation, true
}

func (r *Repository) buildManifest(ctx context.Context, opts domain.ListOptions) (*domain.Manifest, error) {
	paths, err := r.store.List("")
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrStoreListFailed, err.Error()), "kind", string(r.kind))
	}

	entries := make([]domain.ManifestEntry, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, zerr.Wrap(err, "manifest build cancelled")
		}

		address, err := r.parsePath(p)
		if err != nil {
			r.logger.Warn("skipping " + p + ": not a " + string(r.kind) + " path")
			continue
		}

		data, err := r.store.Read(p)
		if err != nil {
			r.logger.Warn("skipping " + p + ": " + err.Error())
			continue
		}

		entry := domain.ManifestEntry{
			Path:      address.String(),
			Kind:      r.kind,
			Directive: address.Directive(),
			Layer:     address.Layer(),
			Filename:  address.Filename(),
			SizeBytes: len(data),
			Checksum:  checksum(data),
		}
		if opts.IncludeMetadata {
			meta := r.metadata(p, string(data))
			entry.Metadata = &meta
		}
		if opts.IncludeDependencies && r.kind == domain.KindSchema {
			refs, err := deps.Extract(data)
			if err != nil {
				r.logger.Warn("no dependencies for " + p + ": " + err.Error())
			}
			entry.Dependencies = refs
		}
		entries = append(entries, entry)
	}

	slices.SortFunc(entries, func(a, b domain.ManifestEntry) int {
		return strings.Compare(a.Path, b.Path)
	})
	return domain.NewManifest(entries, r.clock.Now()), nil
}

func (r *Repository) parsePath(p string) (domain.DocumentPath, error) {
	if r.kind == domain.KindSchema {
		sp, err := domain.ParseSchemaPath(p)
		return sp.DocumentPath, err
	}
	tp, err := domain.ParseTemplatePath(p)
	return tp.DocumentPath, err
}

func (r *Repository) metadata(path, content string) domain.Metadata {
	if r.kind == domain.KindSchema {
		return r.schemaMetadata(path, content)
	}
	return r.templateMetadata(path, content)
}

func checksum(data []byte) string {
	return strconv.FormatUint(xxhash.Sum64(data), 16)
}

func cloneManifest(m *domain.Manifest) *domain.Manifest {
	out := *m
	out.Entries = slices.Clone(m.Entries)
	return &out
}
