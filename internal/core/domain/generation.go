package domain

// GenerationRequest is a single (directive, layer, variables) request.
type GenerationRequest struct {
	Directive  Directive
	Layer      Layer
	Resolution ResolutionContext
	Selection  SelectionContext
	// Stdin holds standard input when input_text_file is "-".
	Stdin []byte
}

// Prompt is the rendered outcome of a generation.
type Prompt struct {
	Content      string
	TemplatePath TemplatePath
	Variables    map[string]string
	Warnings     []string
	// Recovered is set when the failure handler downgraded an error.
	Recovered bool
}

// ErrorInfo is the structured error carried by an unsuccessful response.
type ErrorInfo struct {
	Type    ErrorType      `json:"type"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// GenerationResponse is the top-level boundary result of the generation service.
type GenerationResponse struct {
	RequestID    string            `json:"requestId"`
	Success      bool              `json:"success"`
	Content      string            `json:"content,omitempty"`
	TemplatePath string            `json:"templatePath,omitempty"`
	Variables    map[string]string `json:"variables,omitempty"`
	Warnings     []string          `json:"warnings,omitempty"`
	Error        *ErrorInfo        `json:"error,omitempty"`
}
