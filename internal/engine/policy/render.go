package policy

import "regexp"

var placeholder = regexp.MustCompile(`\{(\w+)\}`)

// Render substitutes {name} placeholders with values from vars.
// Placeholders without a value are left verbatim, so Render never fails.
func Render(content string, vars map[string]string) string {
	return placeholder.ReplaceAllStringFunc(content, func(match string) string {
		name := match[1 : len(match)-1]
		if value, ok := vars[name]; ok {
			return value
		}
		return match
	})
}

// Placeholders returns the distinct placeholder names in content, in order of appearance.
func Placeholders(content string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range placeholder.FindAllStringSubmatch(content, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}
