package geoparse

import (
	"fmt"
	"strings"
)

// NormalizeCountry canonicalizes a country value to a trimmed, lower-case
// string. Nil, empty, and whitespace-only values normalize to nil. Non-string
// values (unquoted tokens recovered from loose text) are coerced to their
// textual form first. Idempotent and never panics.
func NormalizeCountry(v any) *string {
	switch val := v.(type) {
	case nil:
		return nil
	case *string:
		if val == nil {
			return nil
		}
		return normalizeString(*val)
	case string:
		return normalizeString(val)
	default:
		return normalizeString(fmt.Sprint(val))
	}
}

func normalizeString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	s = strings.ToLower(s)
	return &s
}
