package domain

import (
	"path"
	"strings"

	"go.trai.ch/zerr"
)

const (
	// TemplateExtension is the required filename extension for templates.
	TemplateExtension = ".md"
	// SchemaExtension is the required filename extension for schemas.
	SchemaExtension = ".json"
)

// DocumentPath is the shared address of a template or schema: directive/layer/filename.
type DocumentPath struct {
	directive Directive
	layer     Layer
	filename  string
}

// Directive returns the directive segment.
func (p DocumentPath) Directive() Directive {
	return p.directive
}

// Layer returns the layer segment.
func (p DocumentPath) Layer() Layer {
	return p.layer
}

// Filename returns the filename segment.
func (p DocumentPath) Filename() string {
	return p.filename
}

// String returns the composed path "directive/layer/filename".
func (p DocumentPath) String() string {
	return path.Join(p.directive.String(), p.layer.String(), p.filename)
}

// IsZero reports whether the path was never constructed.
func (p DocumentPath) IsZero() bool {
	return p.filename == ""
}

// TemplatePath addresses a markdown prompt template.
type TemplatePath struct {
	DocumentPath
}

// NewTemplatePath builds a TemplatePath, rejecting filenames that do not end in ".md".
func NewTemplatePath(directive Directive, layer Layer, filename string) (TemplatePath, error) {
	p, err := newDocumentPath(directive, layer, filename, TemplateExtension, ErrInvalidTemplatePath)
	if err != nil {
		return TemplatePath{}, err
	}
	return TemplatePath{p}, nil
}

// ParseTemplatePath parses a composed "directive/layer/filename" template path.
func ParseTemplatePath(composed string) (TemplatePath, error) {
	directive, layer, filename, err := splitComposed(composed)
	if err != nil {
		return TemplatePath{}, err
	}
	return NewTemplatePath(directive, layer, filename)
}

// Equal reports whether both paths compose to the same string.
func (p TemplatePath) Equal(other TemplatePath) bool {
	return p.String() == other.String()
}

// SchemaPath addresses a JSON schema document.
type SchemaPath struct {
	DocumentPath
}

// NewSchemaPath builds a SchemaPath, rejecting filenames that do not end in ".json".
func NewSchemaPath(directive Directive, layer Layer, filename string) (SchemaPath, error) {
	p, err := newDocumentPath(directive, layer, filename, SchemaExtension, ErrInvalidSchemaPath)
	if err != nil {
		return SchemaPath{}, err
	}
	return SchemaPath{p}, nil
}

// ParseSchemaPath parses a composed "directive/layer/filename" schema path.
func ParseSchemaPath(composed string) (SchemaPath, error) {
	directive, layer, filename, err := splitComposed(composed)
	if err != nil {
		return SchemaPath{}, err
	}
	return NewSchemaPath(directive, layer, filename)
}

// Equal reports whether both paths compose to the same string.
func (p SchemaPath) Equal(other SchemaPath) bool {
	return p.String() == other.String()
}

// DefaultTemplateFilename returns the canonical template filename for a layer: f_<layer>.md.
func DefaultTemplateFilename(layer Layer) string {
	return "f_" + layer.String() + TemplateExtension
}

func newDocumentPath(directive Directive, layer Layer, filename, ext string, sentinel error) (DocumentPath, error) {
	if !strings.HasSuffix(filename, ext) || len(filename) == len(ext) || strings.Contains(filename, "/") {
		err := zerr.Wrap(sentinel, "path validation failed")
		err = zerr.With(err, "directive", directive.String())
		err = zerr.With(err, "layer", layer.String())
		return DocumentPath{}, zerr.With(err, "filename", filename)
	}
	return DocumentPath{directive: directive, layer: layer, filename: filename}, nil
}

func splitComposed(composed string) (Directive, Layer, string, error) {
	parts := strings.Split(strings.Trim(composed, "/"), "/")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", zerr.With(zerr.Wrap(ErrMalformedPath, "path validation failed"), "path", composed)
	}
	return Directive(parts[0]), Layer(parts[1]), parts[2], nil
}
