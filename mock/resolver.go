package mock

import (
	"context"

	"github.com/fwojciec/ecolocator"
)

var _ ecolocator.Resolver = (*Resolver)(nil)

// Resolver is a mock implementation of ecolocator.Resolver.
type Resolver struct {
	ResolveFn func(ctx context.Context, rawQuery string) (*ecolocator.ResolutionResult, error)
	HealthFn  func() ecolocator.Health
}

func (r *Resolver) Resolve(ctx context.Context, rawQuery string) (*ecolocator.ResolutionResult, error) {
	return r.ResolveFn(ctx, rawQuery)
}

func (r *Resolver) Health() ecolocator.Health {
	return r.HealthFn()
}
