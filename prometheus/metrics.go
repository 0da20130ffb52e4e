// Package prometheus provides metrics decorators for ecolocator services.
package prometheus

import (
	"context"
	"time"

	"github.com/fwojciec/ecolocator"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// sourceRejected labels resolutions that ended in an error.
const sourceRejected = "rejected"

// Metrics holds the collectors shared by the decorators in this package.
type Metrics struct {
	Resolutions        *prometheus.CounterVec
	ResolutionDuration *prometheus.HistogramVec
	ExternalResults    *prometheus.CounterVec
	ExternalErrors     *prometheus.CounterVec
	Truncations        prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Resolutions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ecolocator_resolutions_total",
				Help: "Total number of location resolutions by answer source",
			},
			[]string{"source"},
		),
		ResolutionDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ecolocator_resolution_duration_seconds",
				Help:    "Duration of location resolutions in seconds",
				Buckets: []float64{.001, .01, .1, .5, 1, 2.5, 5, 10, 15, 30},
			},
			[]string{"source"},
		),
		ExternalResults: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ecolocator_external_results_total",
				Help: "Total number of external lookup answers by finish signal",
			},
			[]string{"finish"},
		),
		ExternalErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ecolocator_external_errors_total",
				Help: "Total number of failed external lookups by error code",
			},
			[]string{"code"},
		),
		Truncations: f.NewCounter(
			prometheus.CounterOpts{
				Name: "ecolocator_truncated_answers_total",
				Help: "Total number of external answers shown despite hitting the output cap",
			},
		),
	}
}

// Ensure MetricsResolver implements ecolocator.Resolver.
var _ ecolocator.Resolver = (*MetricsResolver)(nil)

// MetricsResolver wraps a Resolver and records resolutions by source.
type MetricsResolver struct {
	next    ecolocator.Resolver
	metrics *Metrics
}

// NewMetricsResolver creates a new MetricsResolver.
func NewMetricsResolver(next ecolocator.Resolver, metrics *Metrics) *MetricsResolver {
	return &MetricsResolver{next: next, metrics: metrics}
}

// Resolve delegates to the wrapped resolver and records the outcome.
func (r *MetricsResolver) Resolve(ctx context.Context, rawQuery string) (result *ecolocator.ResolutionResult, err error) {
	defer func(begin time.Time) {
		source := sourceRejected
		if err == nil && result != nil {
			source = string(result.Source)
			if result.Truncated {
				r.metrics.Truncations.Inc()
			}
		}
		r.metrics.Resolutions.WithLabelValues(source).Inc()
		r.metrics.ResolutionDuration.WithLabelValues(source).Observe(time.Since(begin).Seconds())
	}(time.Now())
	return r.next.Resolve(ctx, rawQuery)
}

// Health delegates to the wrapped resolver.
func (r *MetricsResolver) Health() ecolocator.Health {
	return r.next.Health()
}

// Ensure MetricsExternalResolver implements ecolocator.ExternalResolver.
var _ ecolocator.ExternalResolver = (*MetricsExternalResolver)(nil)

// MetricsExternalResolver wraps an ExternalResolver and records finish
// signals and error codes.
type MetricsExternalResolver struct {
	next    ecolocator.ExternalResolver
	metrics *Metrics
}

// NewMetricsExternalResolver creates a new MetricsExternalResolver.
func NewMetricsExternalResolver(next ecolocator.ExternalResolver, metrics *Metrics) *MetricsExternalResolver {
	return &MetricsExternalResolver{next: next, metrics: metrics}
}

// Resolve delegates to the wrapped resolver and records the outcome.
func (r *MetricsExternalResolver) Resolve(ctx context.Context, query string) (result *ecolocator.ExternalQueryResult, err error) {
	defer func() {
		if err != nil {
			r.metrics.ExternalErrors.WithLabelValues(ecolocator.ErrorCode(err)).Inc()
			return
		}
		if result != nil {
			r.metrics.ExternalResults.WithLabelValues(string(result.Finish)).Inc()
		}
	}()
	return r.next.Resolve(ctx, query)
}
