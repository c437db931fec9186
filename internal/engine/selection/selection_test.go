package selection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/breakdown/internal/core/domain"
	"go.trai.ch/breakdown/internal/core/ports"
	"go.trai.ch/breakdown/internal/core/ports/mocks"
	"go.trai.ch/breakdown/internal/engine/selection"
	"go.uber.org/mock/gomock"
)

var _ ports.TemplateSelector = (*selection.Fallback)(nil)

func TestStandard_Select(t *testing.T) {
	tests := []struct {
		name       string
		customPath string
		want       string
	}{
		{"default filename", "", "to/project/f_project.md"},
		{"short custom path ignored", "custom/x.md", "to/project/f_project.md"},
		{"custom filename", "lib/prompts/custom.md", "to/project/custom.md"},
		{"empty segments skipped", "/a//b/strict.md", "to/project/strict.md"},
		{"trailing slash counts only non-empty", "a/b/", "to/project/f_project.md"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := selection.NewStandard().Select("to", "project", domain.SelectionContext{CustomPath: tt.customPath})
			require.NoError(t, err)
			assert.Equal(t, tt.want, path.String())
		})
	}
}

func TestStandard_SelectInvalidCustomFilename(t *testing.T) {
	_, err := selection.NewStandard().Select("to", "project", domain.SelectionContext{CustomPath: "a/b/notes.txt"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTemplatePath)
}

func TestFallback_Select(t *testing.T) {
	mappings := map[string]string{"to/project": "f_project_strict.md"}
	selector := selection.NewFallback(selection.NewStandard(), mappings)

	enabled, err := selector.Select("to", "project", domain.SelectionContext{FallbackEnabled: true})
	require.NoError(t, err)
	assert.Equal(t, "to/project/f_project_strict.md", enabled.String())

	disabled, err := selector.Select("to", "project", domain.SelectionContext{FallbackEnabled: false})
	require.NoError(t, err)
	assert.Equal(t, "to/project/f_project.md", disabled.String())

	unmapped, err := selector.Select("to", "issue", domain.SelectionContext{FallbackEnabled: true})
	require.NoError(t, err)
	assert.Equal(t, "to/issue/f_issue.md", unmapped.String())
}

func TestFallback_DelegatesToPrimary(t *testing.T) {
	ctrl := gomock.NewController(t)
	primary := mocks.NewMockTemplateSelector(ctrl)

	want, err := domain.NewTemplatePath("summary", "issue", "custom.md")
	require.NoError(t, err)
	sc := domain.SelectionContext{FallbackEnabled: true}
	primary.EXPECT().Select(domain.Directive("summary"), domain.Layer("issue"), sc).Return(want, nil)

	got, err := selection.Defaults(domain.FallbackConfig{Mappings: map[string]string{"to/project": "x.md"}}).
		Select("to", "project", sc)
	require.NoError(t, err)
	assert.Equal(t, "to/project/x.md", got.String())

	got, err = selection.NewFallback(primary, nil).Select("summary", "issue", sc)
	require.NoError(t, err)
	assert.True(t, got.Equal(want))
}

func TestFallback_InvalidMappedFilename(t *testing.T) {
	selector := selection.NewFallback(selection.NewStandard(), map[string]string{"to/project": "strict.txt"})

	_, err := selector.Select("to", "project", domain.SelectionContext{FallbackEnabled: true})
	assert.ErrorIs(t, err, domain.ErrInvalidTemplatePath)
}
