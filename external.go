package ecolocator

import "context"

// FinishSignal reports why the external service stopped generating.
type FinishSignal string

// FinishSignal constants for ExternalQueryResult.
const (
	FinishCompleted       FinishSignal = "completed"
	FinishSafetyBlocked   FinishSignal = "safety_blocked"
	FinishLengthTruncated FinishSignal = "length_truncated"
)

// ExternalQueryResult is the raw answer of the external search service.
type ExternalQueryResult struct {
	Text    string       `json:"text,omitempty"`
	Present bool         `json:"present"`
	Finish  FinishSignal `json:"finish"`

	// Sources lists the web pages the service grounded its answer on.
	Sources []string `json:"sources,omitempty"`

	// Ungrounded marks an answer produced without search grounding.
	Ungrounded bool `json:"ungrounded,omitempty"`
}

// ExternalResolver looks up drop-off points for places missing from the
// local directory using a search-grounded completion service.
type ExternalResolver interface {
	// Resolve performs a single bounded lookup for a normalized query.
	// Returns ETIMEOUT if the call exceeded its deadline and EUNAVAILABLE
	// on transport failures.
	Resolve(ctx context.Context, query string) (*ExternalQueryResult, error)
}
