package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

var (
	// ErrNotFound is returned when the content store has no readable entry at a path.
	ErrNotFound = zerr.New("not found")

	// ErrTemplateNotSelectable is returned when the selection chain produced no template path.
	ErrTemplateNotSelectable = zerr.New("template not selectable")

	// ErrMissingRequiredVariable is returned when one or more required variables resolved to nothing.
	ErrMissingRequiredVariable = zerr.New("missing required variable")

	// ErrVariableValidationFailed is returned when resolved values violate the declared rules.
	ErrVariableValidationFailed = zerr.New("variable validation failed")

	// ErrDependencyExtraction is returned when a schema document cannot be parsed as JSON.
	ErrDependencyExtraction = zerr.New("failed to extract schema dependencies")

	// ErrBatchItemFailed marks a single failed item inside a batch save.
	ErrBatchItemFailed = zerr.New("batch item failed")

	// ErrInvalidTemplatePath is returned when a template filename does not end in ".md".
	ErrInvalidTemplatePath = zerr.New("invalid template path, expected a .md filename")

	// ErrInvalidSchemaPath is returned when a schema filename does not end in ".json".
	ErrInvalidSchemaPath = zerr.New("invalid schema path, expected a .json filename")

	// ErrMalformedPath is returned when a composed path does not have the directive/layer/filename shape.
	ErrMalformedPath = zerr.New("malformed path, expected directive/layer/filename")

	// ErrStoreWriteFailed is returned when the content store rejects a write.
	ErrStoreWriteFailed = zerr.New("failed to write to content store")

	// ErrStoreListFailed is returned when the content store cannot be enumerated.
	ErrStoreListFailed = zerr.New("failed to list content store")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when a parsed config value is out of range.
	ErrInvalidConfig = zerr.New("invalid configuration value")

	// ErrInvalidVariable is returned when a --var flag is not in key=value form.
	ErrInvalidVariable = zerr.New("invalid variable, expected key=value")

	// ErrGenerationFailed is returned by the CLI when a generation response is unsuccessful.
	ErrGenerationFailed = zerr.New("prompt generation failed")
)

// ErrorType names an entry of the error taxonomy in structured responses.
type ErrorType string

const (
	// ErrorTypeNotFound maps ErrNotFound.
	ErrorTypeNotFound ErrorType = "NotFound"
	// ErrorTypeTemplateNotSelectable maps ErrTemplateNotSelectable.
	ErrorTypeTemplateNotSelectable ErrorType = "TemplateNotSelectable"
	// ErrorTypeMissingRequiredVariable maps ErrMissingRequiredVariable.
	ErrorTypeMissingRequiredVariable ErrorType = "MissingRequiredVariable"
	// ErrorTypeVariableValidationFailed maps ErrVariableValidationFailed.
	ErrorTypeVariableValidationFailed ErrorType = "VariableValidationFailed"
	// ErrorTypeDependencyExtraction maps ErrDependencyExtraction.
	ErrorTypeDependencyExtraction ErrorType = "DependencyExtractionError"
	// ErrorTypeBatchItemFailed maps ErrBatchItemFailed.
	ErrorTypeBatchItemFailed ErrorType = "BatchItemFailed"
	// ErrorTypeInvalidPath maps the path construction errors.
	ErrorTypeInvalidPath ErrorType = "InvalidPath"
	// ErrorTypeInternal covers anything outside the taxonomy.
	ErrorTypeInternal ErrorType = "Internal"
)

var classification = []struct {
	sentinel error
	kind     ErrorType
}{
	{ErrMissingRequiredVariable, ErrorTypeMissingRequiredVariable},
	{ErrVariableValidationFailed, ErrorTypeVariableValidationFailed},
	{ErrTemplateNotSelectable, ErrorTypeTemplateNotSelectable},
	{ErrDependencyExtraction, ErrorTypeDependencyExtraction},
	{ErrBatchItemFailed, ErrorTypeBatchItemFailed},
	{ErrInvalidTemplatePath, ErrorTypeInvalidPath},
	{ErrInvalidSchemaPath, ErrorTypeInvalidPath},
	{ErrMalformedPath, ErrorTypeInvalidPath},
	{ErrNotFound, ErrorTypeNotFound},
}

// ClassifyError maps err onto the error taxonomy.
func ClassifyError(err error) ErrorType {
	for _, c := range classification {
		if errors.Is(err, c.sentinel) {
			return c.kind
		}
	}
	return ErrorTypeInternal
}

// ErrorDetails collects zerr metadata from every layer of the error chain.
// Outer layers win when the same key appears more than once.
func ErrorDetails(err error) map[string]any {
	var details map[string]any
	for current := err; current != nil; current = errors.Unwrap(current) {
		var zErr *zerr.Error
		if !errors.As(current, &zErr) {
			break
		}
		for k, v := range zErr.Metadata() {
			if details == nil {
				details = make(map[string]any)
			}
			if _, exists := details[k]; !exists {
				details[k] = v
			}
		}
		current = zErr
	}
	return details
}
