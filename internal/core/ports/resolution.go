package ports

import (
	"context"

	"go.trai.ch/breakdown/internal/core/domain"
)

// ResolutionStrategy resolves a single variable name.
//
//go:generate mockgen -source=resolution.go -destination=mocks/mock_resolution.go -package=mocks
type ResolutionStrategy interface {
	// Name identifies the strategy in logs and resolution results.
	Name() string
	// Priority orders strategies; higher values are tried first.
	Priority() int
	// Resolve returns the value for name and whether the strategy produced one.
	Resolve(ctx context.Context, name string, rc domain.ResolutionContext) (string, bool)
}
