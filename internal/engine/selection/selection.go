// Package selection picks the template path for a directive and layer.
package selection

import (
	"strings"

	"go.trai.ch/breakdown/internal/core/domain"
	"go.trai.ch/breakdown/internal/core/ports"
)

// minCustomSegments is the number of non-empty segments a custom path needs
// before its last segment is used as the filename.
const minCustomSegments = 3

// Standard selects f_<layer>.md, or the filename named by a custom path.
type Standard struct{}

// NewStandard creates a Standard selector.
func NewStandard() *Standard {
	return &Standard{}
}

// Select implements ports.TemplateSelector.
func (*Standard) Select(
	directive domain.Directive,
	layer domain.Layer,
	sc domain.SelectionContext,
) (domain.TemplatePath, error) {
	filename := domain.DefaultTemplateFilename(layer)
	if segments := nonEmptySegments(sc.CustomPath); len(segments) >= minCustomSegments {
		filename = segments[len(segments)-1]
	}
	return domain.NewTemplatePath(directive, layer, filename)
}

// Fallback overrides the filename chosen by another selector for mapped directive/layer pairs.
type Fallback struct {
	primary  ports.TemplateSelector
	mappings map[string]string
}

// NewFallback wraps primary. mappings is keyed by "directive/layer" and is copied.
func NewFallback(primary ports.TemplateSelector, mappings map[string]string) *Fallback {
	m := make(map[string]string, len(mappings))
	for k, v := range mappings {
		m[k] = v
	}
	return &Fallback{primary: primary, mappings: m}
}

// Select implements ports.TemplateSelector.
func (f *Fallback) Select(
	directive domain.Directive,
	layer domain.Layer,
	sc domain.SelectionContext,
) (domain.TemplatePath, error) {
	if sc.FallbackEnabled {
		if filename, ok := f.mappings[domain.FallbackKey(directive, layer)]; ok {
			return domain.NewTemplatePath(directive, layer, filename)
		}
	}
	return f.primary.Select(directive, layer, sc)
}

// Defaults returns the standard selector wrapped with the configured fallback mappings.
func Defaults(cfg domain.FallbackConfig) ports.TemplateSelector {
	return NewFallback(NewStandard(), cfg.Mappings)
}

func nonEmptySegments(p string) []string {
	var segments []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
