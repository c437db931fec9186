package policy

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"unicode/utf8"

	"go.trai.ch/breakdown/internal/core/domain"
)

// Validation rule names reported in issues.
const (
	RuleRequired   = "required"
	RuleMinLength  = "min_length"
	RulePattern    = "pattern"
	RuleUndeclared = "undeclared"
)

type compiledRule struct {
	rule    domain.ValidationRule
	pattern *regexp.Regexp
	err     error
}

func compileRules(rules map[string]domain.ValidationRule) map[string]compiledRule {
	compiled := make(map[string]compiledRule, len(rules))
	for name, rule := range rules {
		c := compiledRule{rule: rule}
		if rule.Pattern != "" {
			c.pattern, c.err = regexp.Compile(rule.Pattern)
		}
		compiled[name] = c
	}
	return compiled
}

// Validate checks vars against rules and reports every violation at once.
// Rules naming variables outside declared only produce warnings.
func Validate(
	rules map[string]domain.ValidationRule,
	declared []string,
	vars map[string]string,
) domain.ValidationResult {
	return validate(compileRules(rules), declared, vars)
}

func validate(rules map[string]compiledRule, declared []string, vars map[string]string) domain.ValidationResult {
	result := domain.ValidationResult{IsValid: true}

	for _, name := range slices.Sorted(maps.Keys(rules)) {
		c := rules[name]
		if !slices.Contains(declared, name) {
			result.Warnings = append(result.Warnings, domain.ValidationIssue{
				Variable: name,
				Rule:     RuleUndeclared,
				Message:  fmt.Sprintf("validation rule for %q ignored: variable is not declared", name),
			})
			continue
		}

		value := vars[name]
		if value == "" {
			if c.rule.Required {
				result.Errors = append(result.Errors, domain.ValidationIssue{
					Variable: name,
					Rule:     RuleRequired,
					Message:  fmt.Sprintf("%s is required", name),
				})
			}
			continue
		}

		if c.rule.MinLength > 0 && utf8.RuneCountInString(value) < c.rule.MinLength {
			result.Errors = append(result.Errors, domain.ValidationIssue{
				Variable: name,
				Rule:     RuleMinLength,
				Message:  fmt.Sprintf("%s must be at least %d characters", name, c.rule.MinLength),
			})
		}

		switch {
		case c.err != nil:
			result.Errors = append(result.Errors, domain.ValidationIssue{
				Variable: name,
				Rule:     RulePattern,
				Message:  fmt.Sprintf("%s has an invalid pattern: %v", name, c.err),
			})
		case c.pattern != nil && !c.pattern.MatchString(value):
			result.Errors = append(result.Errors, domain.ValidationIssue{
				Variable: name,
				Rule:     RulePattern,
				Message:  fmt.Sprintf("%s does not match %s", name, c.pattern),
			})
		}
	}

	result.IsValid = len(result.Errors) == 0
	return result
}
