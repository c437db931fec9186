package policy

import (
	"context"
	"errors"

	"go.trai.ch/breakdown/internal/core/domain"
)

// fallback is the failure handler built from the configured fallback strategies.
func (p *Policy) fallback(ctx context.Context, f Failure) (*domain.Prompt, error) {
	switch {
	case f.Step == StepSelect && errors.Is(f.Err, domain.ErrNotFound) &&
		p.config.HasFallbackStrategy(domain.FallbackStandardTemplate):
		return p.recoverStandardTemplate(ctx, f)

	case (f.Step == StepResolve || f.Step == StepValidate) && !f.Template.Path().IsZero() &&
		p.config.HasFallbackStrategy(domain.FallbackRenderPartial):
		p.logger.Warn("rendering with partial variables: " + f.Err.Error())
		return p.finish(ctx, f.Request, f.Template, f.Variables, []string{"partial render: " + f.Err.Error()})
	}
	return nil, nil
}

// recoverStandardTemplate retries with f_<layer>.md when an override template is missing.
func (p *Policy) recoverStandardTemplate(ctx context.Context, f Failure) (*domain.Prompt, error) {
	req := f.Request
	path, err := domain.NewTemplatePath(req.Directive, req.Layer, domain.DefaultTemplateFilename(req.Layer))
	if err != nil {
		return nil, err
	}
	if failed, ok := domain.ErrorDetails(f.Err)["template"]; ok && failed == path.String() {
		return nil, nil
	}

	tmpl, err := p.source.LoadTemplate(ctx, path)
	if err != nil {
		return nil, err
	}
	p.logger.Warn("template override missing, using " + path.String())

	// Recover at most once: later failures propagate unchanged.
	vars, warnings, err := p.resolveVariables(ctx, req)
	if err != nil {
		return nil, err
	}
	validationWarnings, err := p.validateVariables(ctx, vars)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, validationWarnings...)
	warnings = append(warnings, "fell back to standard template "+path.String())
	return p.finish(ctx, req, tmpl, vars, warnings)
}
