package ports

import (
	"context"

	"go.trai.ch/breakdown/internal/core/domain"
)

// TemplateSelector picks the template path for a directive/layer pair.
//
//go:generate mockgen -source=selection.go -destination=mocks/mock_selection.go -package=mocks
type TemplateSelector interface {
	Select(directive domain.Directive, layer domain.Layer, sc domain.SelectionContext) (domain.TemplatePath, error)
}

// TemplateSource loads template documents by path.
type TemplateSource interface {
	LoadTemplate(ctx context.Context, path domain.TemplatePath) (domain.Template, error)
}
