// Package policy runs a generation request through selection, resolution, validation and rendering.
package policy

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"go.trai.ch/breakdown/internal/core/domain"
	"go.trai.ch/breakdown/internal/core/ports"
	"go.trai.ch/breakdown/internal/engine/resolution"
	"go.trai.ch/zerr"
)

// Step identifies a stage of the generation pipeline.
type Step string

// Pipeline steps, in execution order.
const (
	StepSelect    Step = "select"
	StepResolve   Step = "resolve"
	StepValidate  Step = "validate"
	StepTransform Step = "transform"
	StepRender    Step = "render"
)

// Failure describes an error raised by the select, resolve or validate step.
type Failure struct {
	Step    Step
	Err     error
	Request domain.GenerationRequest
	// Template is the selected template; zero when selection or loading failed.
	Template domain.Template
	// Variables holds whatever resolved before the failure.
	Variables map[string]string
}

// FailureHandler may turn a failure into a prompt. Returning a nil prompt lets
// the original error propagate.
type FailureHandler func(ctx context.Context, f Failure) (*domain.Prompt, error)

// Policy executes generation requests.
type Policy struct {
	config    domain.PolicyConfig
	rules     map[string]compiledRule
	selector  ports.TemplateSelector
	source    ports.TemplateSource
	chain     *resolution.Chain
	logger    ports.Logger
	tracer    ports.Tracer
	transform TransformFunc
	onFailure FailureHandler
}

// Option configures a Policy.
type Option func(*Policy)

// WithTransform sets the transform applied before rendering.
func WithTransform(fn TransformFunc) Option {
	return func(p *Policy) {
		p.transform = fn
	}
}

// WithFailureHandler replaces the failure handler derived from the fallback strategies.
func WithFailureHandler(fn FailureHandler) Option {
	return func(p *Policy) {
		p.onFailure = fn
	}
}

// New creates a Policy.
func New(
	config domain.PolicyConfig,
	selector ports.TemplateSelector,
	source ports.TemplateSource,
	chain *resolution.Chain,
	logger ports.Logger,
	tracer ports.Tracer,
	opts ...Option,
) *Policy {
	p := &Policy{
		config:    config,
		rules:     compileRules(config.Validation),
		selector:  selector,
		source:    source,
		chain:     chain,
		logger:    logger,
		tracer:    tracer,
		transform: Identity,
	}
	p.onFailure = p.fallback
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Config returns the policy configuration.
func (p *Policy) Config() domain.PolicyConfig {
	return p.config
}

// Execute runs req through the pipeline and returns the rendered prompt.
func (p *Policy) Execute(ctx context.Context, req domain.GenerationRequest) (*domain.Prompt, error) {
	ctx, span := p.tracer.Start(ctx, "policy.execute",
		ports.WithAttribute("directive", req.Directive.String()),
		ports.WithAttribute("layer", req.Layer.String()),
	)
	defer span.End()

	prompt, err := p.execute(ctx, req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("template", prompt.TemplatePath.String())
	span.SetAttribute("recovered", prompt.Recovered)
	return prompt, nil
}

func (p *Policy) execute(ctx context.Context, req domain.GenerationRequest) (*domain.Prompt, error) {
	tmpl, err := p.selectTemplate(ctx, req)
	if err != nil {
		return p.fail(ctx, Failure{Step: StepSelect, Err: err, Request: req})
	}
	return p.generate(ctx, req, tmpl)
}

// generate runs every step after template selection.
func (p *Policy) generate(ctx context.Context, req domain.GenerationRequest, tmpl domain.Template) (*domain.Prompt, error) {
	vars, warnings, err := p.resolveVariables(ctx, req)
	if err != nil {
		return p.fail(ctx, Failure{Step: StepResolve, Err: err, Request: req, Template: tmpl, Variables: vars})
	}

	validationWarnings, err := p.validateVariables(ctx, vars)
	if err != nil {
		return p.fail(ctx, Failure{Step: StepValidate, Err: err, Request: req, Template: tmpl, Variables: vars})
	}

	return p.finish(ctx, req, tmpl, vars, slices.Concat(warnings, validationWarnings))
}

// finish runs the transform and render steps.
func (p *Policy) finish(
	ctx context.Context,
	req domain.GenerationRequest,
	tmpl domain.Template,
	vars map[string]string,
	warnings []string,
) (*domain.Prompt, error) {
	if err := ctx.Err(); err != nil {
		return nil, zerr.Wrap(err, "generation cancelled")
	}

	tctx, span := p.tracer.Start(ctx, "policy.transform")
	transformed, err := p.transform(tctx, req, maps.Clone(vars))
	if err != nil {
		span.RecordError(err)
		span.End()
		return nil, zerr.With(zerr.Wrap(err, "transform failed"), "template", tmpl.Path().String())
	}
	span.End()

	_, span = p.tracer.Start(ctx, "policy.render", ports.WithAttribute("template", tmpl.Path().String()))
	content := Render(tmpl.Body(), transformed)
	span.SetAttribute("bytes", len(content))
	span.End()

	return &domain.Prompt{
		Content:      content,
		TemplatePath: tmpl.Path(),
		Variables:    transformed,
		Warnings:     warnings,
	}, nil
}

func (p *Policy) selectTemplate(ctx context.Context, req domain.GenerationRequest) (domain.Template, error) {
	if err := ctx.Err(); err != nil {
		return domain.Template{}, zerr.Wrap(err, "generation cancelled")
	}

	ctx, span := p.tracer.Start(ctx, "policy.select")
	defer span.End()

	path, err := p.selector.Select(req.Directive, req.Layer, req.Selection)
	if err != nil {
		err = zerr.With(zerr.Wrap(err, "template selection failed"), "directive", req.Directive.String())
		span.RecordError(err)
		return domain.Template{}, zerr.With(err, "layer", req.Layer.String())
	}
	if path.IsZero() {
		err = zerr.With(zerr.Wrap(domain.ErrTemplateNotSelectable, "no template path"), "directive", req.Directive.String())
		span.RecordError(err)
		return domain.Template{}, zerr.With(err, "layer", req.Layer.String())
	}
	span.SetAttribute("template", path.String())

	tmpl, err := p.source.LoadTemplate(ctx, path)
	if err != nil {
		span.RecordError(err)
		return domain.Template{}, zerr.With(err, "template", path.String())
	}
	return tmpl, nil
}

func (p *Policy) resolveVariables(
	ctx context.Context,
	req domain.GenerationRequest,
) (map[string]string, []string, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, zerr.Wrap(err, "generation cancelled")
	}

	ctx, span := p.tracer.Start(ctx, "policy.resolve")
	defer span.End()

	declared := p.requestVariables(req)
	resolved, unresolved := p.chain.ResolveAll(ctx, declared, req.Resolution)

	vars := make(map[string]string, len(resolved))
	for name, res := range resolved {
		vars[name] = res.Value
		p.logger.Debug(fmt.Sprintf("resolved %s from %s", name, res.Source))
	}

	var missing, warnings []string
	for _, name := range unresolved {
		if p.config.IsRequired(name) {
			missing = append(missing, name)
			continue
		}
		warnings = append(warnings, fmt.Sprintf("optional variable %s did not resolve", name))
	}
	if len(missing) > 0 {
		err := zerr.With(zerr.Wrap(domain.ErrMissingRequiredVariable, "required variables did not resolve"), "variables", missing)
		span.RecordError(err)
		return vars, warnings, err
	}
	return vars, warnings, nil
}

// requestVariables returns the configured variables followed by any provided
// variable the configuration does not list. Provided extras are optional.
func (p *Policy) requestVariables(req domain.GenerationRequest) []string {
	declared := p.config.DeclaredVariables()
	var extra []string
	for name := range req.Resolution.ProvidedVariables {
		if !slices.Contains(declared, name) {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)
	return append(declared, extra...)
}

func (p *Policy) validateVariables(ctx context.Context, vars map[string]string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, zerr.Wrap(err, "generation cancelled")
	}

	_, span := p.tracer.Start(ctx, "policy.validate")
	defer span.End()

	result := validate(p.rules, p.config.DeclaredVariables(), vars)
	warnings := make([]string, 0, len(result.Warnings))
	for _, w := range result.Warnings {
		warnings = append(warnings, w.Message)
	}
	if !result.IsValid {
		err := zerr.With(zerr.Wrap(domain.ErrVariableValidationFailed, "variables failed validation"), "errors", result.Errors)
		err = zerr.With(err, "warnings", result.Warnings)
		span.RecordError(err)
		return warnings, err
	}
	return warnings, nil
}

func (p *Policy) fail(ctx context.Context, f Failure) (*domain.Prompt, error) {
	if p.onFailure == nil || errors.Is(f.Err, context.Canceled) || errors.Is(f.Err, context.DeadlineExceeded) {
		return nil, f.Err
	}

	ctx, span := p.tracer.Start(ctx, "policy.recover", ports.WithAttribute("step", string(f.Step)))
	defer span.End()

	prompt, err := p.onFailure(ctx, f)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if prompt == nil {
		return nil, f.Err
	}
	prompt.Recovered = true
	span.SetAttribute("recovered", true)
	return prompt, nil
}
