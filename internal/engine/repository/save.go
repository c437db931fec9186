package repository

import (
	"context"

	"go.trai.ch/breakdown/internal/core/domain"
	"go.trai.ch/breakdown/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// SaveAll writes every item to the store and reports each outcome.
//
// A failing item never stops the batch. Results keep the input order even when
// items are saved concurrently.
func (r *Repository) SaveAll(ctx context.Context, items []domain.SaveItem) domain.BatchResult {
	ctx, span := r.tracer.Start(ctx, "repository.save_all",
		ports.WithAttribute("kind", string(r.kind)),
		ports.WithAttribute("items", len(items)),
	)
	defer span.End()

	outcomes := make([]error, len(items))
	if r.saveConcurrency < 2 {
		for i, item := range items {
			outcomes[i] = r.save(ctx, item)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(r.saveConcurrency)
		for i, item := range items {
			g.Go(func() error {
				outcomes[i] = r.save(ctx, item)
				return nil
			})
		}
		_ = g.Wait()
	}

	result := domain.BatchResult{
		Successful: make([]string, 0, len(items)),
		Failed:     make([]domain.BatchFailure, 0),
	}
	for i, err := range outcomes {
		if err == nil {
			result.Successful = append(result.Successful, items[i].Path)
			continue
		}
		r.logger.Error(err)
		result.Failed = append(result.Failed, domain.BatchFailure{Path: items[i].Path, Error: err.Error()})
	}
	span.SetAttribute("failed", len(result.Failed))
	if len(result.Failed) > 0 {
		span.RecordError(zerr.With(zerr.Wrap(domain.ErrBatchItemFailed, "batch save incomplete"), "failed", len(result.Failed)))
	}
	return result
}

func (r *Repository) save(ctx context.Context, item domain.SaveItem) error {
	if err := ctx.Err(); err != nil {
		return itemFailure(item.Path, err)
	}
	if _, err := r.parsePath(item.Path); err != nil {
		return itemFailure(item.Path, err)
	}
	if err := r.store.Write(item.Path, item.Content); err != nil {
		return itemFailure(item.Path, zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()))
	}
	r.Invalidate(item.Path)
	return nil
}

// itemFailure wraps ErrBatchItemFailed around the cause's message and keeps
// the cause itself in metadata.
func itemFailure(path string, cause error) error {
	err := zerr.With(zerr.Wrap(domain.ErrBatchItemFailed, cause.Error()), "path", path)
	return zerr.With(err, "cause", cause.Error())
}
