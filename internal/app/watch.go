package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.trai.ch/breakdown/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/breakdown/internal/core/domain"
	"go.trai.ch/zerr"
)

// RefreshFunc is told which repository was cleared and which of its files changed.
// Paths are relative to the repository root.
type RefreshFunc func(kind domain.DocumentKind, paths []string)

// Watch keeps the workspace at cwd alive and clears a repository whenever files
// under its root change. It blocks until ctx is done.
func (a *App) Watch(ctx context.Context, cwd string, onRefresh RefreshFunc) error {
	ws, err := a.workspace(cwd)
	if err != nil {
		return err
	}

	w, err := a.newWatcher()
	if err != nil {
		return err
	}
	defer func() {
		_ = w.Stop()
	}()

	roots := map[domain.DocumentKind]string{
		domain.KindTemplate: ws.Config.PromptRoot(),
		domain.KindSchema:   ws.Config.SchemaRoot(),
	}

	debouncer := watcher.NewDebouncer(a.debounceWindow, func(paths []string) {
		for _, kind := range []domain.DocumentKind{domain.KindTemplate, domain.KindSchema} {
			changed := under(roots[kind], paths)
			if len(changed) == 0 {
				continue
			}
			ws.repository(kind).Refresh()
			a.logger.Info(fmt.Sprintf("%s changes detected, %d file(s), cache cleared", kind, len(changed)))
			if onRefresh != nil {
				onRefresh(kind, changed)
			}
		}
	})

	if err := w.Start(ctx, roots[domain.KindTemplate], roots[domain.KindSchema]); err != nil {
		return zerr.Wrap(err, "failed to start watcher")
	}
	a.logger.Info(fmt.Sprintf("watching %s and %s", roots[domain.KindTemplate], roots[domain.KindSchema]))

	for event := range w.Events() {
		debouncer.Add(event.Path)
	}
	debouncer.Flush()
	return nil
}

// under returns the slash-separated paths below root, relative to it.
func under(root string, paths []string) []string {
	var rel []string
	for _, p := range paths {
		r, err := filepath.Rel(root, p)
		if err != nil || r == "." || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
			continue
		}
		rel = append(rel, filepath.ToSlash(r))
	}
	return rel
}
