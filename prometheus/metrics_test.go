package prometheus_test

import (
	"context"
	"testing"

	"github.com/fwojciec/ecolocator"
	"github.com/fwojciec/ecolocator/mock"
	locprom "github.com/fwojciec/ecolocator/prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsResolver_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("counts resolutions by source", func(t *testing.T) {
		t.Parallel()

		metrics := locprom.NewMetrics(prometheus.NewRegistry())
		sources := []ecolocator.Source{ecolocator.SourceLocal, ecolocator.SourceDefault, ecolocator.SourceDefault}
		i := 0
		inner := &mock.Resolver{
			ResolveFn: func(context.Context, string) (*ecolocator.ResolutionResult, error) {
				s := sources[i]
				i++
				return &ecolocator.ResolutionResult{Source: s, Body: "x"}, nil
			},
		}

		r := locprom.NewMetricsResolver(inner, metrics)
		for range sources {
			_, err := r.Resolve(context.Background(), "q")
			require.NoError(t, err)
		}

		assert.InDelta(t, 1, testutil.ToFloat64(metrics.Resolutions.WithLabelValues("local")), 0)
		assert.InDelta(t, 2, testutil.ToFloat64(metrics.Resolutions.WithLabelValues("default")), 0)
		assert.Equal(t, 2, testutil.CollectAndCount(metrics.ResolutionDuration))
	})

	t.Run("counts rejected queries", func(t *testing.T) {
		t.Parallel()

		metrics := locprom.NewMetrics(prometheus.NewRegistry())
		inner := &mock.Resolver{
			ResolveFn: func(context.Context, string) (*ecolocator.ResolutionResult, error) {
				return nil, ecolocator.Errorf(ecolocator.EINVALID, "location query required")
			},
		}

		r := locprom.NewMetricsResolver(inner, metrics)
		_, err := r.Resolve(context.Background(), "")

		require.Error(t, err)
		assert.InDelta(t, 1, testutil.ToFloat64(metrics.Resolutions.WithLabelValues("rejected")), 0)
	})

	t.Run("counts truncated answers", func(t *testing.T) {
		t.Parallel()

		metrics := locprom.NewMetrics(prometheus.NewRegistry())
		inner := &mock.Resolver{
			ResolveFn: func(context.Context, string) (*ecolocator.ResolutionResult, error) {
				return &ecolocator.ResolutionResult{Source: ecolocator.SourceExternal, Body: "cut", Truncated: true}, nil
			},
		}

		r := locprom.NewMetricsResolver(inner, metrics)
		_, err := r.Resolve(context.Background(), "rosario")

		require.NoError(t, err)
		assert.InDelta(t, 1, testutil.ToFloat64(metrics.Truncations), 0)
	})
}

func TestMetricsExternalResolver_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("counts finish signals", func(t *testing.T) {
		t.Parallel()

		metrics := locprom.NewMetrics(prometheus.NewRegistry())
		inner := &mock.ExternalResolver{
			ResolveFn: func(context.Context, string) (*ecolocator.ExternalQueryResult, error) {
				return &ecolocator.ExternalQueryResult{Finish: ecolocator.FinishSafetyBlocked}, nil
			},
		}

		r := locprom.NewMetricsExternalResolver(inner, metrics)
		_, err := r.Resolve(context.Background(), "rosario")

		require.NoError(t, err)
		assert.InDelta(t, 1, testutil.ToFloat64(metrics.ExternalResults.WithLabelValues("safety_blocked")), 0)
	})

	t.Run("counts errors by code", func(t *testing.T) {
		t.Parallel()

		metrics := locprom.NewMetrics(prometheus.NewRegistry())
		inner := &mock.ExternalResolver{
			ResolveFn: func(context.Context, string) (*ecolocator.ExternalQueryResult, error) {
				return nil, ecolocator.Errorf(ecolocator.ETIMEOUT, "gemini request timed out")
			},
		}

		r := locprom.NewMetricsExternalResolver(inner, metrics)
		_, err := r.Resolve(context.Background(), "rosario")

		require.Error(t, err)
		assert.InDelta(t, 1, testutil.ToFloat64(metrics.ExternalErrors.WithLabelValues("timeout")), 0)
	})
}

func TestMetricsResolver_Health(t *testing.T) {
	t.Parallel()

	inner := &mock.Resolver{
		HealthFn: func() ecolocator.Health { return ecolocator.Health{DirectoryEntries: 3} },
	}

	r := locprom.NewMetricsResolver(inner, locprom.NewMetrics(prometheus.NewRegistry()))

	assert.Equal(t, 3, r.Health().DirectoryEntries)
}
