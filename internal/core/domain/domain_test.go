package domain_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/breakdown/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestSplitFrontMatter(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantHeader string
		wantBody   string
	}{
		{"NoFrontMatter", "# Title\nbody", "", "# Title\nbody"},
		{"Complete", "---\ntitle: T\n---\nbody\n", "title: T\n", "body\n"},
		{"CRLF", "---\r\ntitle: T\r\n---\r\nbody", "title: T\n", "body"},
		{"ClosingAtEOF", "---\ntitle: T\n---", "title: T\n", ""},
		{"TrailingSpaces", "---\na: 1\n---  \nbody", "a: 1\n", "body"},
		{"Unterminated", "---\ntitle: T\nbody", "", "---\ntitle: T\nbody"},
		{"NotAtStart", "intro\n---\na: 1\n---\n", "", "intro\n---\na: 1\n---\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, body := domain.SplitFrontMatter(tt.content)
			assert.Equal(t, tt.wantHeader, header)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestTemplateBody(t *testing.T) {
	p, err := domain.NewTemplatePath("to", "issue", "f_issue.md")
	require.NoError(t, err)

	tmpl := domain.NewTemplate(p, "---\ntitle: Issue\n---\nHello {name}", domain.Metadata{Title: "Issue"})
	assert.Equal(t, "Hello {name}", tmpl.Body())
	assert.Equal(t, "Issue", tmpl.Metadata().Title)
}

func TestParseTemplatePath(t *testing.T) {
	p, err := domain.ParseTemplatePath("/to/issue/f_issue.md/")
	require.NoError(t, err)
	assert.Equal(t, domain.Directive("to"), p.Directive())
	assert.Equal(t, domain.Layer("issue"), p.Layer())
	assert.Equal(t, "f_issue.md", p.Filename())
	assert.Equal(t, "to/issue/f_issue.md", p.String())
	assert.False(t, p.IsZero())

	other, err := domain.NewTemplatePath("to", "issue", "f_issue.md")
	require.NoError(t, err)
	assert.True(t, p.Equal(other))
	assert.True(t, domain.TemplatePath{}.IsZero())
}

func TestPathErrors(t *testing.T) {
	tests := []struct {
		name    string
		parse   func() error
		wantErr error
	}{
		{"TemplateWrongExt", func() error {
			_, err := domain.ParseTemplatePath("to/issue/f_issue.txt")
			return err
		}, domain.ErrInvalidTemplatePath},
		{"TemplateOnlyExt", func() error {
			_, err := domain.NewTemplatePath("to", "issue", ".md")
			return err
		}, domain.ErrInvalidTemplatePath},
		{"SchemaWrongExt", func() error {
			_, err := domain.ParseSchemaPath("to/issue/base.yaml")
			return err
		}, domain.ErrInvalidSchemaPath},
		{"TooFewSegments", func() error {
			_, err := domain.ParseSchemaPath("to/base.json")
			return err
		}, domain.ErrMalformedPath},
		{"EmptySegment", func() error {
			_, err := domain.ParseTemplatePath("to//f.md")
			return err
		}, domain.ErrMalformedPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.parse()
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, domain.ErrorTypeInvalidPath, domain.ClassifyError(err))
		})
	}
}

func TestDefaultTemplateFilename(t *testing.T) {
	assert.Equal(t, "f_project.md", domain.DefaultTemplateFilename("project"))
	assert.Equal(t, "to/project", domain.FallbackKey("to", "project"))
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		err  error
		want domain.ErrorType
	}{
		{zerr.Wrap(domain.ErrNotFound, "read"), domain.ErrorTypeNotFound},
		{zerr.Wrap(domain.ErrTemplateNotSelectable, "select"), domain.ErrorTypeTemplateNotSelectable},
		{zerr.Wrap(domain.ErrMissingRequiredVariable, "resolve"), domain.ErrorTypeMissingRequiredVariable},
		{zerr.Wrap(domain.ErrVariableValidationFailed, "validate"), domain.ErrorTypeVariableValidationFailed},
		{zerr.Wrap(domain.ErrDependencyExtraction, "extract"), domain.ErrorTypeDependencyExtraction},
		{zerr.Wrap(domain.ErrBatchItemFailed, "save"), domain.ErrorTypeBatchItemFailed},
		{zerr.New("something else"), domain.ErrorTypeInternal},
	}

	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ClassifyError(tt.err))
		})
	}
}

func TestErrorDetails_OuterLayerWins(t *testing.T) {
	inner := zerr.With(zerr.Wrap(domain.ErrNotFound, "read"), "path", "inner.md")
	inner = zerr.With(inner, "store", "memory")
	outer := zerr.With(zerr.Wrap(inner, "load template"), "path", "outer.md")

	details := domain.ErrorDetails(outer)
	assert.Equal(t, "outer.md", details["path"])
	assert.Equal(t, "memory", details["store"])
	assert.Nil(t, domain.ErrorDetails(nil))
}

func TestConfigRoots(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Root = "/project"
	assert.Equal(t, filepath.Join("/project", ".agent/breakdown", "prompts"), cfg.PromptRoot())
	assert.Equal(t, filepath.Join("/project", ".agent/breakdown", "schema"), cfg.SchemaRoot())

	cfg.WorkingDir = "/abs/work"
	assert.Equal(t, filepath.Join("/abs/work", "prompts"), cfg.PromptRoot())

	cfg.SchemaBaseDir = "/schemas"
	assert.Equal(t, "/schemas", cfg.SchemaRoot())
}

func TestBatchResultOK(t *testing.T) {
	assert.True(t, domain.BatchResult{Successful: []string{"a"}}.OK())
	assert.False(t, domain.BatchResult{Failed: []domain.BatchFailure{{Path: "b"}}}.OK())
}

func TestNewManifestCountsEntries(t *testing.T) {
	m := domain.NewManifest(nil, time.Time{})
	assert.Empty(t, m.Entries)
	assert.NotNil(t, m.Entries)
	assert.Zero(t, m.TotalCount)
}
