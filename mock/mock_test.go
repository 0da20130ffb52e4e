package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/ecolocator"
	"github.com/fwojciec/ecolocator/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExternalResolver_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("delegates to ResolveFn", func(t *testing.T) {
		t.Parallel()

		var calledWith string
		r := &mock.ExternalResolver{
			ResolveFn: func(_ context.Context, query string) (*ecolocator.ExternalQueryResult, error) {
				calledWith = query
				return &ecolocator.ExternalQueryResult{Text: "answer", Present: true}, nil
			},
		}

		result, err := r.Resolve(context.Background(), "rosario")

		require.NoError(t, err)
		assert.Equal(t, "rosario", calledWith)
		assert.Equal(t, "answer", result.Text)
	})
}

func TestDirectory_Lookup(t *testing.T) {
	t.Parallel()

	t.Run("delegates to LookupFn", func(t *testing.T) {
		t.Parallel()

		d := &mock.Directory{
			LookupFn: func(query string) (*ecolocator.DirectoryEntry, bool) {
				return &ecolocator.DirectoryEntry{City: query}, true
			},
		}

		entry, ok := d.Lookup("tigre")

		require.True(t, ok)
		assert.Equal(t, "tigre", entry.City)
	})
}
