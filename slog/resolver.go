// Package slog provides logging decorators for ecolocator services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/ecolocator"
)

// Ensure LoggingResolver implements ecolocator.Resolver.
var _ ecolocator.Resolver = (*LoggingResolver)(nil)

// LoggingResolver wraps a Resolver with request logging.
type LoggingResolver struct {
	next   ecolocator.Resolver
	logger *slog.Logger
}

// NewLoggingResolver creates a new LoggingResolver.
func NewLoggingResolver(next ecolocator.Resolver, logger *slog.Logger) *LoggingResolver {
	return &LoggingResolver{next: next, logger: logger}
}

// Resolve delegates to the wrapped resolver and logs the outcome.
// Truncated and ungrounded external answers are logged at warn level.
func (r *LoggingResolver) Resolve(ctx context.Context, rawQuery string) (result *ecolocator.ResolutionResult, err error) {
	defer func(begin time.Time) {
		if err != nil || result == nil {
			r.logger.Info("resolve",
				"query", rawQuery,
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		level := slog.LevelInfo
		if result.Truncated || result.Ungrounded {
			level = slog.LevelWarn
		}
		r.logger.Log(ctx, level, "resolve",
			"id", result.ID,
			"query", result.Normalized,
			"source", string(result.Source),
			"truncated", result.Truncated,
			"ungrounded", result.Ungrounded,
			"bytes", len(result.Body),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return r.next.Resolve(ctx, rawQuery)
}

// Health delegates to the wrapped resolver.
func (r *LoggingResolver) Health() ecolocator.Health {
	return r.next.Health()
}
