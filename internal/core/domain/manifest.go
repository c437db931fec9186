package domain

import "time"

// ManifestEntry describes one discoverable template or schema.
type ManifestEntry struct {
	Path         string       `json:"path"`
	Kind         DocumentKind `json:"kind"`
	Directive    Directive    `json:"directive"`
	Layer        Layer        `json:"layer"`
	Filename     string       `json:"filename"`
	SizeBytes    int          `json:"sizeBytes"`
	Checksum     string       `json:"checksum,omitempty"`
	Metadata     *Metadata    `json:"metadata,omitempty"`
	Dependencies []string     `json:"dependencies,omitempty"`
}

// Manifest is an enumerated listing of documents.
type Manifest struct {
	Entries     []ManifestEntry `json:"entries"`
	GeneratedAt time.Time       `json:"generatedAt"`
	TotalCount  int             `json:"totalCount"`
}

// NewManifest builds a Manifest whose TotalCount always equals len(entries).
func NewManifest(entries []ManifestEntry, generatedAt time.Time) *Manifest {
	if entries == nil {
		entries = []ManifestEntry{}
	}
	return &Manifest{
		Entries:     entries,
		GeneratedAt: generatedAt,
		TotalCount:  len(entries),
	}
}

// ListOptions controls how much detail a manifest carries.
type ListOptions struct {
	IncludeMetadata     bool
	IncludeDependencies bool
}
