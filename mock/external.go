package mock

import (
	"context"

	"github.com/fwojciec/ecolocator"
)

var _ ecolocator.ExternalResolver = (*ExternalResolver)(nil)

// ExternalResolver is a mock implementation of ecolocator.ExternalResolver.
type ExternalResolver struct {
	ResolveFn func(ctx context.Context, query string) (*ecolocator.ExternalQueryResult, error)
}

func (r *ExternalResolver) Resolve(ctx context.Context, query string) (*ecolocator.ExternalQueryResult, error) {
	return r.ResolveFn(ctx, query)
}
