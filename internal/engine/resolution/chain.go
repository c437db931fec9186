// Package resolution resolves template variables through a priority ordered strategy chain.
package resolution

import (
	"cmp"
	"context"
	"slices"

	"go.trai.ch/breakdown/internal/core/domain"
	"go.trai.ch/breakdown/internal/core/ports"
)

// Result is the outcome of resolving a single variable.
type Result struct {
	Value string
	// Source is the name of the strategy that produced Value.
	Source string
}

// Chain tries strategies from the highest priority down and stops at the first that resolves.
type Chain struct {
	strategies []ports.ResolutionStrategy
}

// NewChain orders strategies by descending priority. Strategies sharing a
// priority keep the order they were passed in.
func NewChain(strategies ...ports.ResolutionStrategy) *Chain {
	ordered := slices.Clone(strategies)
	slices.SortStableFunc(ordered, func(a, b ports.ResolutionStrategy) int {
		return cmp.Compare(b.Priority(), a.Priority())
	})
	return &Chain{strategies: ordered}
}

// Strategies returns the strategies in evaluation order.
func (c *Chain) Strategies() []ports.ResolutionStrategy {
	return slices.Clone(c.strategies)
}

// Resolve returns the value of name from the first strategy that resolves it.
// ok is false when no strategy does; that is not an error.
func (c *Chain) Resolve(ctx context.Context, name string, rc domain.ResolutionContext) (Result, bool) {
	for _, s := range c.strategies {
		if value, ok := s.Resolve(ctx, name, rc); ok {
			return Result{Value: value, Source: s.Name()}, true
		}
	}
	return Result{}, false
}

// ResolveAll resolves every name and returns the resolved values plus the names nothing resolved.
func (c *Chain) ResolveAll(
	ctx context.Context,
	names []string,
	rc domain.ResolutionContext,
) (map[string]Result, []string) {
	resolved := make(map[string]Result, len(names))
	var missing []string
	for _, name := range names {
		if res, ok := c.Resolve(ctx, name, rc); ok {
			resolved[name] = res
			continue
		}
		missing = append(missing, name)
	}
	return resolved, missing
}
