package app

import (
	"context"

	"go.trai.ch/breakdown/internal/core/domain"
	"go.trai.ch/breakdown/internal/engine/repository"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Catalog is the combined template and schema listing.
type Catalog struct {
	Templates *domain.Manifest `json:"templates"`
	Schemas   *domain.Manifest `json:"schemas"`
}

// ListTemplates returns the template manifest of the workspace at cwd.
func (a *App) ListTemplates(ctx context.Context, cwd string, opts domain.ListOptions) (*domain.Manifest, error) {
	ws, err := a.workspace(cwd)
	if err != nil {
		return nil, err
	}
	return ws.Templates.ListAvailable(ctx, opts)
}

// ListSchemas returns the schema manifest of the workspace at cwd.
func (a *App) ListSchemas(ctx context.Context, cwd string, opts domain.ListOptions) (*domain.Manifest, error) {
	ws, err := a.workspace(cwd)
	if err != nil {
		return nil, err
	}
	return ws.Schemas.ListAvailable(ctx, opts)
}

// ListAll builds both manifests concurrently.
func (a *App) ListAll(ctx context.Context, cwd string, opts domain.ListOptions) (*Catalog, error) {
	ws, err := a.workspace(cwd)
	if err != nil {
		return nil, err
	}

	catalog := &Catalog{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := ws.Templates.ListAvailable(gctx, opts)
		catalog.Templates = m
		return err
	})
	g.Go(func() error {
		m, err := ws.Schemas.ListAvailable(gctx, opts)
		catalog.Schemas = m
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return catalog, nil
}

// LoadSchema loads the schema at a composed directive/layer/filename path.
func (a *App) LoadSchema(ctx context.Context, cwd, path string) (domain.Schema, error) {
	ws, err := a.workspace(cwd)
	if err != nil {
		return domain.Schema{}, err
	}
	schemaPath, err := domain.ParseSchemaPath(path)
	if err != nil {
		return domain.Schema{}, zerr.With(err, "path", path)
	}
	return ws.Schemas.LoadSchema(ctx, schemaPath)
}

// Save writes a batch of documents of the given kind.
// Per-item failures are reported in the result, not as an error.
func (a *App) Save(
	ctx context.Context,
	cwd string,
	kind domain.DocumentKind,
	items []domain.SaveItem,
) (domain.BatchResult, error) {
	ws, err := a.workspace(cwd)
	if err != nil {
		return domain.BatchResult{}, err
	}
	return ws.repository(kind).SaveAll(ctx, items), nil
}

// Refresh drops every cached document and manifest of the workspace at cwd.
func (a *App) Refresh(cwd string) error {
	ws, err := a.workspace(cwd)
	if err != nil {
		return err
	}
	ws.Templates.Refresh()
	ws.Schemas.Refresh()
	return nil
}

func (ws *Workspace) repository(kind domain.DocumentKind) *repository.Repository {
	if kind == domain.KindSchema {
		return ws.Schemas
	}
	return ws.Templates
}
