package repository

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"go.trai.ch/breakdown/internal/core/domain"
)

type frontMatter struct {
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Version     string    `yaml:"version"`
	CreatedAt   time.Time `yaml:"created_at"`
	UpdatedAt   time.Time `yaml:"updated_at"`
}

var markdown = goldmark.New()

func (r *Repository) templateMetadata(path, content string) domain.Metadata {
	header, body := domain.SplitFrontMatter(content)

	var meta domain.Metadata
	if header != "" {
		var fm frontMatter
		if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
			r.logger.Warn("ignoring malformed front matter in " + path + ": " + err.Error())
		} else {
			meta = domain.Metadata{
				Title:       fm.Title,
				Description: fm.Description,
				Version:     fm.Version,
				CreatedAt:   fm.CreatedAt,
				UpdatedAt:   fm.UpdatedAt,
			}
		}
	}
	if meta.Title == "" {
		meta.Title = firstHeading([]byte(body))
	}
	return meta
}

func (r *Repository) schemaMetadata(path, content string) domain.Metadata {
	var doc map[string]any
	if err := json.Unmarshal(jsonc.ToJSON([]byte(content)), &doc); err != nil {
		r.logger.Warn("ignoring unreadable schema metadata in " + path + ": " + err.Error())
		return domain.Metadata{}
	}
	return domain.Metadata{
		Title:       stringField(doc, "title"),
		Description: stringField(doc, "description"),
		Version:     stringField(doc, "version"),
	}
}

// firstHeading returns the plain text of the first markdown heading, if any.
func firstHeading(source []byte) string {
	doc := markdown.Parser().Parse(text.NewReader(source))

	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if heading, ok := n.(*ast.Heading); ok {
			title = inlineText(heading, source)
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(title)
}

func inlineText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := child.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func stringField(doc map[string]any, key string) string {
	if v, ok := doc[key].(string); ok {
		return v
	}
	return ""
}
