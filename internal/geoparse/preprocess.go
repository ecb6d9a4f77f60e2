package geoparse

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	openFenceRe  = regexp.MustCompile("(?i)^```(?:json)?\\s*")
	closeFenceRe = regexp.MustCompile("\\s*```$")
)

// Preprocess strips surrounding markdown code fences and unwraps a quoted
// outer string layer, returning the best-effort plain text to parse. It does
// not validate well-formedness and never fails; anything it cannot improve is
// returned unchanged.
func Preprocess(raw string) string {
	text := strings.TrimSpace(raw)

	text = openFenceRe.ReplaceAllString(text, "")
	text = closeFenceRe.ReplaceAllString(text, "")

	// Some responses arrive as a quoted JSON string with escaped newlines.
	// Decode one layer if it decodes cleanly, otherwise leave the text alone.
	if len(text) >= 2 {
		first, last := text[0], text[len(text)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			var unquoted string
			if err := json.Unmarshal([]byte(text), &unquoted); err == nil {
				text = unquoted
			}
		}
	}

	return text
}
