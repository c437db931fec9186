package domain

import (
	"slices"
	"time"
)

// DocumentKind distinguishes the two repository flavours.
type DocumentKind string

const (
	// KindTemplate marks markdown prompt templates.
	KindTemplate DocumentKind = "template"
	// KindSchema marks JSON schema documents.
	KindSchema DocumentKind = "schema"
)

// Extension returns the filename extension documents of this kind must carry.
func (k DocumentKind) Extension() string {
	if k == KindSchema {
		return SchemaExtension
	}
	return TemplateExtension
}

// Metadata describes a template or schema for discovery.
type Metadata struct {
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	Version     string    `json:"version,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}

// Template is an immutable prompt template aggregate.
type Template struct {
	path     TemplatePath
	content  string
	metadata Metadata
}

// NewTemplate assembles a Template.
func NewTemplate(path TemplatePath, content string, metadata Metadata) Template {
	return Template{path: path, content: content, metadata: metadata}
}

// Path returns the template address.
func (t Template) Path() TemplatePath {
	return t.path
}

// Content returns the raw template text.
func (t Template) Content() string {
	return t.content
}

// Metadata returns the template metadata.
func (t Template) Metadata() Metadata {
	return t.metadata
}

// Schema is an immutable schema document aggregate.
type Schema struct {
	path         SchemaPath
	content      string
	metadata     Metadata
	dependencies []string
}

// NewSchema assembles a Schema. The dependency slice is copied.
func NewSchema(path SchemaPath, content string, metadata Metadata, dependencies []string) Schema {
	return Schema{
		path:         path,
		content:      content,
		metadata:     metadata,
		dependencies: slices.Clone(dependencies),
	}
}

// Path returns the schema address.
func (s Schema) Path() SchemaPath {
	return s.path
}

// Content returns the raw schema JSON.
func (s Schema) Content() string {
	return s.content
}

// Metadata returns the schema metadata.
func (s Schema) Metadata() Metadata {
	return s.metadata
}

// Dependencies returns the $ref values of the schema in first-seen order.
func (s Schema) Dependencies() []string {
	return slices.Clone(s.dependencies)
}

// Body returns the template text without its YAML front matter.
func (t Template) Body() string {
	_, body := SplitFrontMatter(t.content)
	return body
}
