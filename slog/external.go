package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/ecolocator"
)

// Ensure LoggingExternalResolver implements ecolocator.ExternalResolver.
var _ ecolocator.ExternalResolver = (*LoggingExternalResolver)(nil)

// LoggingExternalResolver wraps an ExternalResolver with call logging.
type LoggingExternalResolver struct {
	next   ecolocator.ExternalResolver
	logger *slog.Logger
}

// NewLoggingExternalResolver creates a new LoggingExternalResolver.
func NewLoggingExternalResolver(next ecolocator.ExternalResolver, logger *slog.Logger) *LoggingExternalResolver {
	return &LoggingExternalResolver{next: next, logger: logger}
}

// Resolve delegates to the wrapped resolver and logs the call.
func (r *LoggingExternalResolver) Resolve(ctx context.Context, query string) (result *ecolocator.ExternalQueryResult, err error) {
	defer func(begin time.Time) {
		var finish string
		var bytes, sources int
		var ungrounded bool
		if result != nil {
			finish = string(result.Finish)
			bytes = len(result.Text)
			sources = len(result.Sources)
			ungrounded = result.Ungrounded
		}
		r.logger.Info("external lookup",
			"query", query,
			"finish", finish,
			"bytes", bytes,
			"sources", sources,
			"ungrounded", ungrounded,
			"duration", time.Since(begin),
			"code", ecolocator.ErrorCode(err),
			"err", err,
		)
	}(time.Now())
	return r.next.Resolve(ctx, query)
}
