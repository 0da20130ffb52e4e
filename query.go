package ecolocator

import "strings"

// Normalize canonicalizes a raw location query: surrounding whitespace is
// trimmed and the text is lower-cased. Returns EINVALID if nothing is left.
func Normalize(raw string) (string, error) {
	q := strings.ToLower(strings.TrimSpace(raw))
	if q == "" {
		return "", Errorf(EINVALID, "location query required")
	}
	return q, nil
}

// IsMissingQuery reports whether err is the rejection returned by Normalize
// for an absent or blank query.
func IsMissingQuery(err error) bool {
	return ErrorCode(err) == EINVALID
}
