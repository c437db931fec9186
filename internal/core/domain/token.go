package domain

// Directive is the classification token naming what a prompt should do (e.g. "to", "summary").
// Values arrive pre-validated from the caller and are never re-validated here.
type Directive string

// String returns the raw token.
func (d Directive) String() string {
	return string(d)
}

// Layer is the classification token naming the abstraction level (e.g. "project", "issue").
// Values arrive pre-validated from the caller and are never re-validated here.
type Layer string

// String returns the raw token.
func (l Layer) String() string {
	return string(l)
}

// FallbackKey returns the "<directive>/<layer>" key used by fallback mappings.
func FallbackKey(directive Directive, layer Layer) string {
	return directive.String() + "/" + layer.String()
}
