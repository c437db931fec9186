package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/breakdown/cmd/breakdown/commands"
	"go.trai.ch/breakdown/internal/app"
	"go.trai.ch/breakdown/internal/core/domain"
	"go.trai.ch/breakdown/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fakeApp struct {
	config    *domain.Config
	requests  []domain.GenerationRequest
	response  domain.GenerationResponse
	catalog   *app.Catalog
	saved     []domain.SaveItem
	savedKind domain.DocumentKind
	result    domain.BatchResult
}

func newFakeApp() *fakeApp {
	return &fakeApp{config: domain.DefaultConfig()}
}

func (f *fakeApp) Config(_ string) (*domain.Config, error) {
	return f.config, nil
}

func (f *fakeApp) Generate(_ context.Context, req domain.GenerationRequest) domain.GenerationResponse {
	f.requests = append(f.requests, req)
	return f.response
}

func (f *fakeApp) ListTemplates(_ context.Context, _ string, _ domain.ListOptions) (*domain.Manifest, error) {
	return f.catalog.Templates, nil
}

func (f *fakeApp) ListSchemas(_ context.Context, _ string, _ domain.ListOptions) (*domain.Manifest, error) {
	return f.catalog.Schemas, nil
}

func (f *fakeApp) ListAll(_ context.Context, _ string, _ domain.ListOptions) (*app.Catalog, error) {
	return f.catalog, nil
}

func (f *fakeApp) LoadSchema(_ context.Context, _, path string) (domain.Schema, error) {
	p, err := domain.ParseSchemaPath(path)
	if err != nil {
		return domain.Schema{}, err
	}
	return domain.NewSchema(p, `{"title":"T"}`, domain.Metadata{Title: "T"}, []string{"a.json", "b.json"}), nil
}

func (f *fakeApp) Save(
	_ context.Context,
	_ string,
	kind domain.DocumentKind,
	items []domain.SaveItem,
) (domain.BatchResult, error) {
	f.savedKind = kind
	f.saved = items
	return f.result, nil
}

func (f *fakeApp) Watch(ctx context.Context, _ string, onRefresh app.RefreshFunc) error {
	onRefresh(domain.KindTemplate, []string{"to/issue/f_issue.md"})
	<-ctx.Done()
	return nil
}

type cliHarness struct {
	cli    *commands.CLI
	app    *fakeApp
	logger *mocks.MockLogger
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newHarness(t *testing.T) *cliHarness {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	ctrl := gomock.NewController(t)
	h := &cliHarness{
		app:    newFakeApp(),
		logger: mocks.NewMockLogger(ctrl),
		stdout: new(bytes.Buffer),
		stderr: new(bytes.Buffer),
	}
	h.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	h.cli = commands.New(h.app, h.logger)
	h.cli.SetOutput(h.stdout, h.stderr)
	return h
}

func (h *cliHarness) run(args ...string) error {
	h.cli.SetArgs(append([]string{"-C", "/work"}, args...))
	return h.cli.Execute(context.Background())
}

func TestGenerate_WiresFlags(t *testing.T) {
	h := newHarness(t)
	h.app.response = domain.GenerationResponse{Success: true, Content: "Hello World"}
	h.cli.SetInput(strings.NewReader("from stdin"))

	err := h.run("generate", "to", "issue",
		"--var", "name=World", "--var", "empty=",
		"--from", "-",
		"--custom-path", "to/issue/custom.md",
	)
	require.NoError(t, err)

	require.Len(t, h.app.requests, 1)
	req := h.app.requests[0]
	assert.Equal(t, domain.Directive("to"), req.Directive)
	assert.Equal(t, domain.Layer("issue"), req.Layer)
	assert.Equal(t, "/work", req.Resolution.WorkingDirectory)
	assert.Equal(t, map[string]string{"name": "World", "empty": ""}, req.Resolution.ProvidedVariables)
	assert.Equal(t, "-", req.Resolution.Files.InputTextFile)
	assert.Equal(t, "from stdin", string(req.Stdin))
	assert.Equal(t, "to/issue/custom.md", req.Selection.CustomPath)
	assert.False(t, req.Selection.FallbackEnabled)
	assert.Equal(t, "Hello World\n", h.stdout.String())
}

func TestGenerate_FallbackDefaultsToConfig(t *testing.T) {
	h := newHarness(t)
	h.app.config.Fallback.Enabled = true
	h.app.response = domain.GenerationResponse{Success: true}

	require.NoError(t, h.run("generate", "to", "project"))
	require.NoError(t, h.run("generate", "to", "project", "--fallback=false"))

	require.Len(t, h.app.requests, 2)
	assert.True(t, h.app.requests[0].Selection.FallbackEnabled)
	assert.False(t, h.app.requests[1].Selection.FallbackEnabled)
}

func TestGenerate_InvalidVar(t *testing.T) {
	h := newHarness(t)

	err := h.run("generate", "to", "issue", "--var", "=x")
	require.ErrorIs(t, err, domain.ErrInvalidVariable)
	assert.Empty(t, h.app.requests)
}

func TestGenerate_Failure(t *testing.T) {
	h := newHarness(t)
	h.app.response = domain.GenerationResponse{
		RequestID: "req-1",
		Error: &domain.ErrorInfo{
			Type:    domain.ErrorTypeNotFound,
			Message: "not found",
			Details: map[string]any{"template": "to/x/f_x.md"},
		},
	}

	var logged error
	h.logger.EXPECT().Error(gomock.Any()).Do(func(err error) { logged = err })

	err := h.run("generate", "to", "x")
	require.ErrorIs(t, err, domain.ErrGenerationFailed)
	require.Error(t, logged)

	details := domain.ErrorDetails(logged)
	assert.Equal(t, "NotFound", details["type"])
	assert.Equal(t, "to/x/f_x.md", details["template"])
	assert.Empty(t, h.stdout.String())
}

func TestGenerate_JSONFailure(t *testing.T) {
	h := newHarness(t)
	h.app.response = domain.GenerationResponse{
		RequestID: "req-1",
		Error:     &domain.ErrorInfo{Type: domain.ErrorTypeNotFound, Message: "not found"},
	}

	err := h.run("generate", "to", "x", "--json")
	require.ErrorIs(t, err, domain.ErrGenerationFailed)
	assert.Contains(t, h.stdout.String(), `"type": "NotFound"`)
}

func TestGenerate_Destination(t *testing.T) {
	h := newHarness(t)
	h.app.response = domain.GenerationResponse{Success: true, Content: "written"}
	dir := t.TempDir()

	h.cli.SetArgs([]string{"-C", dir, "generate", "to", "issue", "-o", "out/prompt.md"})
	require.NoError(t, h.cli.Execute(context.Background()))

	data, err := os.ReadFile(filepath.Join(dir, "out", "prompt.md"))
	require.NoError(t, err)
	assert.Equal(t, "written", string(data))
	assert.Equal(t, "out/prompt.md", h.app.requests[0].Resolution.Files.DestinationPath)
	assert.Empty(t, h.stdout.String())
}

func TestList_Golden(t *testing.T) {
	h := newHarness(t)
	generated := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	h.app.catalog = &app.Catalog{
		Templates: domain.NewManifest([]domain.ManifestEntry{
			{Path: "summary/project/f_project.md", SizeBytes: 42, Metadata: &domain.Metadata{Title: "Project summary"}},
			{Path: "to/issue/f_issue.md", SizeBytes: 12},
		}, generated),
		Schemas: domain.NewManifest([]domain.ManifestEntry{
			{Path: "to/issue/base.schema.json", SizeBytes: 120, Dependencies: []string{"common.json"}},
		}, generated),
	}

	require.NoError(t, h.run("list", "--metadata", "--deps"))

	g := goldie.New(t)
	g.Assert(t, "list_all", h.stdout.Bytes())
}

func TestList_UnknownListing(t *testing.T) {
	h := newHarness(t)
	err := h.run("list", "widgets")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown listing")
}

func TestSchema_Deps(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("schema", "to/issue/base.schema.json", "--deps"))
	assert.Equal(t, "→ a.json\n→ b.json\n", h.stdout.String())

	err := h.run("schema", "to/issue")
	require.ErrorIs(t, err, domain.ErrMalformedPath)
}

func TestSave_ReadsSourcesAndReportsFailures(t *testing.T) {
	h := newHarness(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("A"), domain.FilePerm))
	h.cli.SetInput(strings.NewReader("B"))
	h.app.result = domain.BatchResult{
		Successful: []string{"to/issue/f_issue.md"},
		Failed:     []domain.BatchFailure{{Path: "to/issue/b.txt", Error: "invalid template path"}},
	}

	h.cli.SetArgs([]string{"-C", dir, "save", "templates", "to/issue/f_issue.md=a.md", "to/issue/b.txt=-"})
	err := h.cli.Execute(context.Background())

	require.ErrorIs(t, err, domain.ErrBatchItemFailed)
	assert.Equal(t, domain.KindTemplate, h.app.savedKind)
	assert.Equal(t, []domain.SaveItem{
		{Path: "to/issue/f_issue.md", Content: []byte("A")},
		{Path: "to/issue/b.txt", Content: []byte("B")},
	}, h.app.saved)
	assert.Equal(t, "✓ to/issue/f_issue.md\n✗ to/issue/b.txt invalid template path\n", h.stdout.String())
}

func TestSave_BadArguments(t *testing.T) {
	h := newHarness(t)

	err := h.run("save", "widget", "a=b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown document kind")

	err = h.run("save", "schema", "no-source")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected path=source")
}

func TestRootFlags(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("-v"))
	assert.Equal(t, "breakdown dev (commit: none, date: unknown)\n", h.stdout.String())

	h.stdout.Reset()
	h.app.response = domain.GenerationResponse{Success: true, Content: "ok"}
	require.NoError(t, h.run("--verbose", "generate", "to", "issue"))
	assert.Equal(t, "ok\n", h.stdout.String())
}

func TestWatch_PrintsChanges(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h.cli.SetArgs([]string{"-C", "/work", "watch"})
	require.NoError(t, h.cli.Execute(ctx))
	assert.Equal(t, "→ template to/issue/f_issue.md\n", h.stdout.String())
}

func TestVersion(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("version"))
	assert.Equal(t, "breakdown dev (commit: none, date: unknown)\n", h.stdout.String())
}
