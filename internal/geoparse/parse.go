package geoparse

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Akbari06/WellWorld/internal/model"
)

// assocWindow is how far, in bytes, the country search looks on either side
// of a coordinate match before falling back to the whole document.
const assocWindow = 200

const numberPattern = `[+-]?\d+(?:\.\d+)?`

var (
	taggedPairRe = regexp.MustCompile(`(?i)"latlon"\s*:\s*\[?\s*(` + numberPattern + `)\s*,\s*(` + numberPattern + `)\s*\]?`)
	barePairRe   = regexp.MustCompile(`\[\s*(` + numberPattern + `)\s*,\s*(` + numberPattern + `)\s*\]`)

	// RE2 has no backreferences, so the quoted and unquoted forms are spelled
	// out instead of capturing an optional quote pair. Unquoted tokens run
	// until a quote, comma, closing brace, or closing bracket.
	countryRe = regexp.MustCompile(`(?i)"country"\s*:\s*(?:"([^"'},\]]+)"|'([^"'},\]]+)'|([^"'},\]]+))`)
)

// ExtractRecords parses free-form model output into an ordered list of
// coordinate records. Three tiers are tried in turn: a strict JSON decode, a
// tagged "latlon" scan tolerant of missing brackets, and a bare
// bracketed-pair scan. Exactly one tier produces the returned list, and
// malformed input degrades to an empty list rather than an error.
func ExtractRecords(raw string) []model.GeoRecord {
	text := Preprocess(raw)

	if recs := tryStrictDecode(text); recs != nil {
		return recs
	}

	recs := collectPairs(text, taggedPairRe)
	if len(recs) == 0 {
		recs = collectPairs(text, barePairRe)
	}
	return recs
}

// tryStrictDecode returns records from a clean JSON array decode, or nil when
// the text is not an array of objects or yields no valid entries. "Parsed but
// semantically empty" falls through to the regex tiers just like a parse
// failure.
func tryStrictDecode(text string) []model.GeoRecord {
	var decoded any
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return nil
	}

	items, ok := decoded.([]any)
	if !ok {
		return nil
	}

	var out []model.GeoRecord
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		pairVal, ok := obj["latlon"]
		if !ok {
			continue
		}
		pair, ok := pairVal.([]any)
		if !ok || len(pair) != 2 {
			continue
		}
		lat, ok1 := toFloat(pair[0])
		lon, ok2 := toFloat(pair[1])
		if !ok1 || !ok2 {
			continue // skip malformed numeric entries, keep the rest
		}
		out = append(out, model.GeoRecord{
			LatLon:  [2]float64{lat, lon},
			Country: NormalizeCountry(obj["country"]),
		})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// collectPairs scans text left-to-right with the given pair pattern,
// associating each non-overlapping match with the nearest country token.
func collectPairs(text string, re *regexp.Regexp) []model.GeoRecord {
	var out []model.GeoRecord
	for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
		lat, ok1 := toFloat(text[m[2]:m[3]])
		lon, ok2 := toFloat(text[m[4]:m[5]])
		if !ok1 || !ok2 {
			continue
		}
		out = append(out, model.GeoRecord{
			LatLon:  [2]float64{lat, lon},
			Country: associateCountry(text, m[0], m[1]),
		})
	}
	return out
}

// associateCountry finds the country token nearest a coordinate match: first
// a bounded window after the match, then one before it, then anywhere in the
// document. The global fallback is low-confidence and may pick up a country
// belonging to a different record when tagging is sparse.
func associateCountry(text string, matchStart, matchEnd int) *string {
	if c := searchCountry(text, matchEnd, matchEnd+assocWindow); c != nil {
		return c
	}
	if c := searchCountry(text, matchStart-assocWindow, matchStart); c != nil {
		return c
	}
	return searchCountry(text, 0, len(text))
}

// searchCountry runs the country pattern over text[start:end], clamped to the
// document bounds, and normalizes the first match.
func searchCountry(text string, start, end int) *string {
	start = max(start, 0)
	end = min(end, len(text))
	if start >= end {
		return nil
	}
	m := countryRe.FindStringSubmatch(text[start:end])
	if m == nil {
		return nil
	}
	for _, group := range m[1:] {
		if group != "" {
			return NormalizeCountry(group)
		}
	}
	return nil
}

// toFloat coerces a decoded JSON value or raw text token to a finite float64.
// Both the strict and regex tiers funnel through here so a value parses the
// same way regardless of how it was extracted.
func toFloat(v any) (float64, bool) {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
