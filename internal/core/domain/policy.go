package domain

import "slices"

// Names of the recovery strategies understood by the default failure handler.
const (
	// FallbackStandardTemplate retries with the canonical f_<layer>.md when an override template is missing.
	FallbackStandardTemplate = "standard_template"
	// FallbackRenderPartial renders with whatever resolved when variables are missing or invalid.
	FallbackRenderPartial = "render_partial"
)

// ValidationRule declares constraints for a single variable.
type ValidationRule struct {
	Required  bool   `yaml:"required"`
	MinLength int    `yaml:"min_length"`
	Pattern   string `yaml:"pattern"`
}

// PolicyConfig drives the generation policy.
//
// MaxRetries and TimeoutMs are advisory: they are surfaced to callers, the
// policy itself never loops or enforces deadlines.
type PolicyConfig struct {
	RequiredVariables  []string
	OptionalVariables  []string
	Validation         map[string]ValidationRule
	MaxRetries         int
	TimeoutMs          int
	FallbackStrategies []string
}

// File variables understood by every workspace.
const (
	VarInputTextFile   = "input_text_file"
	VarDestinationPath = "destination_path"
)

// DeclaredVariables returns required ∪ optional, required first, without duplicates.
func (c PolicyConfig) DeclaredVariables() []string {
	names := make([]string, 0, len(c.RequiredVariables)+len(c.OptionalVariables))
	for _, name := range slices.Concat(c.RequiredVariables, c.OptionalVariables) {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}

// IsRequired reports whether name is listed as a required variable.
func (c PolicyConfig) IsRequired(name string) bool {
	return slices.Contains(c.RequiredVariables, name)
}

// HasFallbackStrategy reports whether the named recovery strategy is enabled.
func (c PolicyConfig) HasFallbackStrategy(name string) bool {
	return slices.Contains(c.FallbackStrategies, name)
}

// ValidationIssue is a single rule violation or warning.
type ValidationIssue struct {
	Variable string `json:"variable"`
	Rule     string `json:"rule"`
	Message  string `json:"message"`
}

// ValidationResult accumulates every violation found for a variable map.
type ValidationResult struct {
	IsValid  bool              `json:"isValid"`
	Errors   []ValidationIssue `json:"errors,omitempty"`
	Warnings []ValidationIssue `json:"warnings,omitempty"`
}
