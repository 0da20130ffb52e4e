package ecolocator

import "strings"

// MinAnswerLength is the shortest trimmed external answer accepted as content.
const MinAnswerLength = 5

// DefaultSentinel is the token the external service is told to emit when it
// cannot confirm any drop-off point.
const DefaultSentinel = "SIN_DATOS_VERIFICADOS"

// Verdict is the outcome of classifying an external answer.
type Verdict string

// Verdict constants for Classification.
const (
	VerdictValid    Verdict = "valid"
	VerdictEmpty    Verdict = "empty"
	VerdictBlocked  Verdict = "blocked"
	VerdictSentinel Verdict = "sentinel"
)

// Classification is the screened form of an ExternalQueryResult.
// Text is set only for VerdictValid.
type Classification struct {
	Verdict   Verdict
	Text      string
	Truncated bool
}

// Classify screens an external answer. Policy blocks win over everything,
// then missing or too-short text, then the sentinel token. Anything left is
// valid and carried verbatim; a length-truncated answer stays valid but is
// flagged.
func Classify(result *ExternalQueryResult, sentinel string) Classification {
	if result == nil {
		return Classification{Verdict: VerdictEmpty}
	}
	if result.Finish == FinishSafetyBlocked {
		return Classification{Verdict: VerdictBlocked}
	}
	if !result.Present || len([]rune(strings.TrimSpace(result.Text))) < MinAnswerLength {
		return Classification{Verdict: VerdictEmpty}
	}
	if sentinel != "" && strings.Contains(strings.ToUpper(result.Text), strings.ToUpper(sentinel)) {
		return Classification{Verdict: VerdictSentinel}
	}
	return Classification{
		Verdict:   VerdictValid,
		Text:      result.Text,
		Truncated: result.Finish == FinishLengthTruncated,
	}
}
