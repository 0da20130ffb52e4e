// Package resolve implements the location resolution pipeline: normalize
// the query, try the local directory, and fall back to a screened external
// lookup or the default message.
package resolve

import (
	"context"
	"strings"

	"github.com/fwojciec/ecolocator"
	"github.com/google/uuid"
)

// Ensure Resolver implements ecolocator.Resolver at compile time.
var _ ecolocator.Resolver = (*Resolver)(nil)

// Resolver orchestrates a single resolution. Directory is required.
// External may be nil when no credential is configured, in which case every
// directory miss ends in the default message.
type Resolver struct {
	Directory ecolocator.Directory
	External  ecolocator.ExternalResolver

	// Sentinel is the no-data token the external service was instructed to
	// emit. Defaults to ecolocator.DefaultSentinel.
	Sentinel string

	// NewID generates result IDs. Defaults to random UUIDs.
	NewID func() string
}

// Resolve implements ecolocator.Resolver.
func (r *Resolver) Resolve(ctx context.Context, rawQuery string) (*ecolocator.ResolutionResult, error) {
	query, err := ecolocator.Normalize(rawQuery)
	if err != nil {
		return nil, err
	}

	result := &ecolocator.ResolutionResult{
		ID:         r.newID(),
		Query:      strings.TrimSpace(rawQuery),
		Normalized: query,
	}

	if entry, ok := r.Directory.Lookup(query); ok {
		result.Source = ecolocator.SourceLocal
		result.Zone = entry.Zone
		result.Body = ecolocator.FormatEntry(entry)
		return result, nil
	}

	if ext, c := r.resolveExternal(ctx, query); c.Verdict == ecolocator.VerdictValid {
		result.Source = ecolocator.SourceExternal
		result.Body = c.Text
		result.Truncated = c.Truncated
		result.Sources = ext.Sources
		result.Ungrounded = ext.Ungrounded
		return result, nil
	}

	result.Source = ecolocator.SourceDefault
	result.Body = ecolocator.DefaultMessage
	return result, nil
}

// resolveExternal makes the single external attempt. Errors are folded into
// an empty classification so the caller only has to check for validity.
func (r *Resolver) resolveExternal(ctx context.Context, query string) (*ecolocator.ExternalQueryResult, ecolocator.Classification) {
	if r.External == nil {
		return nil, ecolocator.Classification{Verdict: ecolocator.VerdictEmpty}
	}
	ext, err := r.External.Resolve(ctx, query)
	if err != nil {
		return nil, ecolocator.Classification{Verdict: ecolocator.VerdictEmpty}
	}
	return ext, ecolocator.Classify(ext, r.sentinel())
}

// Health implements ecolocator.Resolver.
func (r *Resolver) Health() ecolocator.Health {
	return ecolocator.Health{
		ExternalConfigured: r.External != nil,
		DirectoryEntries:   r.Directory.Len(),
	}
}

func (r *Resolver) sentinel() string {
	if r.Sentinel == "" {
		return ecolocator.DefaultSentinel
	}
	return r.Sentinel
}

func (r *Resolver) newID() string {
	if r.NewID != nil {
		return r.NewID()
	}
	return uuid.NewString()
}
