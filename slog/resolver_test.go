package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/ecolocator"
	"github.com/fwojciec/ecolocator/mock"
	locslog "github.com/fwojciec/ecolocator/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingResolver_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("logs source and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Resolver{
			ResolveFn: func(context.Context, string) (*ecolocator.ResolutionResult, error) {
				return &ecolocator.ResolutionResult{
					ID:         "req-1",
					Source:     ecolocator.SourceLocal,
					Body:       "body",
					Normalized: "tigre",
				}, nil
			},
		}

		r := locslog.NewLoggingResolver(inner, logger)
		result, err := r.Resolve(context.Background(), "Tigre")

		require.NoError(t, err)
		assert.Equal(t, "body", result.Body)
		output := buf.String()
		assert.Contains(t, output, "level=INFO")
		assert.Contains(t, output, "msg=resolve")
		assert.Contains(t, output, "id=req-1")
		assert.Contains(t, output, "query=tigre")
		assert.Contains(t, output, "source=local")
		assert.Contains(t, output, "bytes=4")
		assert.Contains(t, output, "duration=")
	})

	t.Run("warns on truncated answer", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Resolver{
			ResolveFn: func(context.Context, string) (*ecolocator.ResolutionResult, error) {
				return &ecolocator.ResolutionResult{Source: ecolocator.SourceExternal, Body: "cut", Truncated: true}, nil
			},
		}

		r := locslog.NewLoggingResolver(inner, logger)
		_, err := r.Resolve(context.Background(), "Rosario")

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "truncated=true")
	})

	t.Run("warns on ungrounded answer", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Resolver{
			ResolveFn: func(context.Context, string) (*ecolocator.ResolutionResult, error) {
				return &ecolocator.ResolutionResult{Source: ecolocator.SourceExternal, Body: "Punto Limpio", Ungrounded: true}, nil
			},
		}

		r := locslog.NewLoggingResolver(inner, logger)
		_, err := r.Resolve(context.Background(), "Rosario")

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "ungrounded=true")
	})

	t.Run("logs rejected query", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Resolver{
			ResolveFn: func(context.Context, string) (*ecolocator.ResolutionResult, error) {
				return nil, ecolocator.Errorf(ecolocator.EINVALID, "location query required")
			},
		}

		r := locslog.NewLoggingResolver(inner, logger)
		_, err := r.Resolve(context.Background(), "  ")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "msg=resolve")
		assert.Contains(t, output, "location query required")
	})
}

func TestLoggingResolver_Health(t *testing.T) {
	t.Parallel()

	t.Run("delegates to inner resolver", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Resolver{
			HealthFn: func() ecolocator.Health {
				return ecolocator.Health{ExternalConfigured: true, DirectoryEntries: 5}
			},
		}

		r := locslog.NewLoggingResolver(inner, logger)

		assert.Equal(t, ecolocator.Health{ExternalConfigured: true, DirectoryEntries: 5}, r.Health())
	})
}
