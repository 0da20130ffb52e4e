package ecolocator

import "context"

// Source tells where a resolution body came from.
type Source string

// Source constants for ResolutionResult.
const (
	SourceLocal    Source = "local"
	SourceExternal Source = "external"
	SourceDefault  Source = "default"
)

// ResolutionResult is the answer for one location query. It lives for a
// single request and is never persisted.
type ResolutionResult struct {
	ID         string `json:"id"`
	Source     Source `json:"source"`
	Body       string `json:"body"`
	Query      string `json:"query"`
	Normalized string `json:"normalized"`

	// Zone is the directory label for local answers.
	Zone string `json:"zone,omitempty"`

	// Truncated marks an external answer cut short by the output cap.
	Truncated bool `json:"truncated,omitempty"`

	// Sources lists grounding pages behind an external answer.
	Sources []string `json:"sources,omitempty"`

	// Ungrounded marks an external answer served without search grounding.
	Ungrounded bool `json:"ungrounded,omitempty"`
}

// Health describes the readiness of a Resolver.
type Health struct {
	ExternalConfigured bool `json:"hasApiKey"`
	DirectoryEntries   int  `json:"directoryEntries"`
}

// Resolver turns a raw user-typed place name into drop-off points.
type Resolver interface {
	// Resolve returns exactly one result with a non-empty body for any
	// non-blank query. Returns EINVALID (see IsMissingQuery) for blank input;
	// external failures never surface as errors.
	Resolve(ctx context.Context, rawQuery string) (*ResolutionResult, error)

	// Health reports whether the external service is configured and how
	// many directory entries are loaded.
	Health() Health
}
