package domain

import "strings"

const frontMatterDelimiter = "---"

// SplitFrontMatter separates a leading YAML block fenced by "---" lines from the
// markdown body. Content without a complete block is returned whole as body.
func SplitFrontMatter(content string) (header, body string) {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(normalized, frontMatterDelimiter+"\n") {
		return "", content
	}
	rest := normalized[len(frontMatterDelimiter)+1:]
	for offset := 0; offset < len(rest); {
		end := strings.IndexByte(rest[offset:], '\n')
		line := rest[offset:]
		if end >= 0 {
			line = rest[offset : offset+end]
		}
		if strings.TrimRight(line, " \t") == frontMatterDelimiter {
			next := len(rest)
			if end >= 0 {
				next = offset + end + 1
			}
			return rest[:offset], rest[next:]
		}
		if end < 0 {
			break
		}
		offset += end + 1
	}
	return "", content
}
