package resolution

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/breakdown/internal/core/domain"
)

// Built-in strategy priorities. Higher values are consulted first.
const (
	PriorityProvided    = 100
	PriorityFilePath    = 50
	PriorityEnvironment = 10
	PriorityDefault     = 1
)

// Variable names handled by the FilePath strategy.
const (
	VarInputTextFile   = domain.VarInputTextFile
	VarDestinationPath = domain.VarDestinationPath
)

// StdinSentinel is the input_text_file value meaning standard input, and StdinValue what it resolves to.
const (
	StdinSentinel = "-"
	StdinValue    = "stdin"
)

// Provided resolves variables passed explicitly by the caller.
type Provided struct{}

// Name implements ports.ResolutionStrategy.
func (Provided) Name() string { return "provided" }

// Priority implements ports.ResolutionStrategy.
func (Provided) Priority() int { return PriorityProvided }

// Resolve implements ports.ResolutionStrategy.
func (Provided) Resolve(_ context.Context, name string, rc domain.ResolutionContext) (string, bool) {
	value, ok := rc.ProvidedVariables[name]
	return value, ok
}

// FilePath resolves the file oriented variables from the request's file options.
// Relative paths are joined with the working directory.
type FilePath struct{}

// Name implements ports.ResolutionStrategy.
func (FilePath) Name() string { return "file_path" }

// Priority implements ports.ResolutionStrategy.
func (FilePath) Priority() int { return PriorityFilePath }

// Resolve implements ports.ResolutionStrategy.
func (FilePath) Resolve(_ context.Context, name string, rc domain.ResolutionContext) (string, bool) {
	var value string
	switch name {
	case VarInputTextFile:
		value = rc.Files.InputTextFile
		if value == StdinSentinel {
			return StdinValue, true
		}
	case VarDestinationPath:
		value = rc.Files.DestinationPath
	default:
		return "", false
	}
	if value == "" {
		return "", false
	}
	if filepath.IsAbs(value) || rc.WorkingDirectory == "" {
		return value, true
	}
	return filepath.Join(rc.WorkingDirectory, value), true
}

// Environment resolves <prefix><NAME> from the process environment, then from
// the request's environment map. Empty values do not count.
type Environment struct {
	prefix string
	lookup func(string) (string, bool)
}

// EnvironmentOption configures an Environment strategy.
type EnvironmentOption func(*Environment)

// WithLookup replaces the process environment lookup.
func WithLookup(lookup func(string) (string, bool)) EnvironmentOption {
	return func(e *Environment) {
		e.lookup = lookup
	}
}

// NewEnvironment creates an Environment strategy using prefix for variable names.
func NewEnvironment(prefix string, opts ...EnvironmentOption) *Environment {
	e := &Environment{prefix: prefix, lookup: os.LookupEnv}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements ports.ResolutionStrategy.
func (*Environment) Name() string { return "environment" }

// Priority implements ports.ResolutionStrategy.
func (*Environment) Priority() int { return PriorityEnvironment }

// Key returns the environment variable consulted for name.
func (e *Environment) Key(name string) string {
	return e.prefix + strings.ToUpper(name)
}

// Resolve implements ports.ResolutionStrategy.
func (e *Environment) Resolve(_ context.Context, name string, rc domain.ResolutionContext) (string, bool) {
	key := e.Key(name)
	if value, ok := e.lookup(key); ok && value != "" {
		return value, true
	}
	if value := rc.EnvironmentVariables[key]; value != "" {
		return value, true
	}
	return "", false
}

// DefaultValue resolves every variable, to its configured default or to the empty string.
type DefaultValue struct {
	defaults map[string]string
}

// NewDefaultValue creates a DefaultValue strategy. The map is copied.
func NewDefaultValue(defaults map[string]string) *DefaultValue {
	d := &DefaultValue{defaults: make(map[string]string, len(defaults))}
	for k, v := range defaults {
		d.defaults[k] = v
	}
	return d
}

// Name implements ports.ResolutionStrategy.
func (*DefaultValue) Name() string { return "default" }

// Priority implements ports.ResolutionStrategy.
func (*DefaultValue) Priority() int { return PriorityDefault }

// Resolve implements ports.ResolutionStrategy.
func (d *DefaultValue) Resolve(_ context.Context, name string, _ domain.ResolutionContext) (string, bool) {
	return d.defaults[name], true
}

// Func adapts a function into a strategy.
type Func struct {
	name     string
	priority int
	fn       func(ctx context.Context, name string, rc domain.ResolutionContext) (string, bool)
}

// NewFunc creates a strategy named name at priority that delegates to fn.
func NewFunc(
	name string,
	priority int,
	fn func(ctx context.Context, name string, rc domain.ResolutionContext) (string, bool),
) *Func {
	return &Func{name: name, priority: priority, fn: fn}
}

// Name implements ports.ResolutionStrategy.
func (f *Func) Name() string { return f.name }

// Priority implements ports.ResolutionStrategy.
func (f *Func) Priority() int { return f.priority }

// Resolve implements ports.ResolutionStrategy.
func (f *Func) Resolve(ctx context.Context, name string, rc domain.ResolutionContext) (string, bool) {
	return f.fn(ctx, name, rc)
}

// Defaults returns the built-in chain: provided, file path, environment and default value.
func Defaults(cfg domain.VariablesConfig, opts ...EnvironmentOption) *Chain {
	prefix := cfg.EnvPrefix
	if prefix == "" {
		prefix = domain.DefaultEnvPrefix
	}
	return NewChain(
		Provided{},
		FilePath{},
		NewEnvironment(prefix, opts...),
		NewDefaultValue(cfg.Defaults),
	)
}
