package domain

// FileOptions carries the file-oriented request options.
type FileOptions struct {
	// InputTextFile is the input path; "-" means standard input.
	InputTextFile string
	// DestinationPath is where the caller intends to write output.
	DestinationPath string
}

// ResolutionContext is the read-only input handed to variable resolution strategies.
type ResolutionContext struct {
	WorkingDirectory     string
	ProvidedVariables    map[string]string
	EnvironmentVariables map[string]string
	Files                FileOptions
}

// SelectionContext is the read-only input handed to template selection strategies.
type SelectionContext struct {
	CustomPath      string
	FallbackEnabled bool
}
