package resolution_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/breakdown/internal/core/domain"
	"go.trai.ch/breakdown/internal/core/ports"
	"go.trai.ch/breakdown/internal/core/ports/mocks"
	"go.trai.ch/breakdown/internal/engine/resolution"
	"go.uber.org/mock/gomock"
)

func fixed(name string, priority int, value string) *resolution.Func {
	return resolution.NewFunc(name, priority, func(context.Context, string, domain.ResolutionContext) (string, bool) {
		return value, true
	})
}

func TestChain_PriorityIndependentOfRegistrationOrder(t *testing.T) {
	low := fixed("low", 1, "from-low")
	high := fixed("high", 50, "from-high")

	for _, order := range [][]ports.ResolutionStrategy{{low, high}, {high, low}} {
		chain := resolution.NewChain(order...)

		res, ok := chain.Resolve(context.Background(), "x", domain.ResolutionContext{})
		require.True(t, ok)
		assert.Equal(t, "from-high", res.Value)
		assert.Equal(t, "high", res.Source)
	}
}

func TestChain_EqualPrioritiesKeepRegistrationOrder(t *testing.T) {
	chain := resolution.NewChain(fixed("first", 5, "1"), fixed("second", 5, "2"))

	res, ok := chain.Resolve(context.Background(), "x", domain.ResolutionContext{})
	require.True(t, ok)
	assert.Equal(t, "first", res.Source)

	names := make([]string, 0)
	for _, s := range chain.Strategies() {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"first", "second"}, names)
}

func TestChain_FallsThroughDecliningStrategies(t *testing.T) {
	ctrl := gomock.NewController(t)
	declining := mocks.NewMockResolutionStrategy(ctrl)
	declining.EXPECT().Priority().Return(90).AnyTimes()
	declining.EXPECT().Resolve(gomock.Any(), "name", gomock.Any()).Return("", false)

	chain := resolution.NewChain(declining, resolution.NewDefaultValue(map[string]string{"name": "World"}))

	res, ok := chain.Resolve(context.Background(), "name", domain.ResolutionContext{})
	require.True(t, ok)
	assert.Equal(t, resolution.Result{Value: "World", Source: "default"}, res)
}

func TestChain_NothingResolves(t *testing.T) {
	chain := resolution.NewChain(resolution.Provided{}, resolution.FilePath{})

	_, ok := chain.Resolve(context.Background(), "name", domain.ResolutionContext{})
	assert.False(t, ok)

	resolved, missing := chain.ResolveAll(context.Background(), []string{"name", "input_text_file"}, domain.ResolutionContext{
		Files: domain.FileOptions{InputTextFile: "in.md"},
	})
	assert.Equal(t, []string{"name"}, missing)
	assert.Equal(t, "in.md", resolved["input_text_file"].Value)
}

func TestDefaults_Order(t *testing.T) {
	chain := resolution.Defaults(domain.VariablesConfig{}, resolution.WithLookup(func(string) (string, bool) {
		return "", false
	}))

	names := make([]string, 0)
	for _, s := range chain.Strategies() {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"provided", "file_path", "environment", "default"}, names)
}

func TestDefaults_EndToEnd(t *testing.T) {
	env := map[string]string{"BREAKDOWN_AUTHOR": "from-process"}
	chain := resolution.Defaults(
		domain.VariablesConfig{Defaults: map[string]string{"tone": "neutral"}},
		resolution.WithLookup(func(k string) (string, bool) {
			v, ok := env[k]
			return v, ok
		}),
	)
	rc := domain.ResolutionContext{
		WorkingDirectory:     "/work",
		ProvidedVariables:    map[string]string{"tone": "formal"},
		EnvironmentVariables: map[string]string{"BREAKDOWN_REVIEWER": "from-request"},
		Files:                domain.FileOptions{InputTextFile: "notes/in.md"},
	}

	tests := []struct {
		name, value, source string
	}{
		{"tone", "formal", "provided"},
		{"input_text_file", filepath.Join("/work", "notes/in.md"), "file_path"},
		{"author", "from-process", "environment"},
		{"reviewer", "from-request", "environment"},
		{"unknown", "", "default"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := chain.Resolve(context.Background(), tt.name, rc)
			require.True(t, ok)
			assert.Equal(t, tt.value, res.Value)
			assert.Equal(t, tt.source, res.Source)
		})
	}
}
