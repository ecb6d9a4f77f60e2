package geoparse

import (
	"strings"
	"testing"
)

func TestExtractRecords_WellFormed(t *testing.T) {
	input := `[
  { "latlon": [-1.3090, 36.7820], "country":  "kenya" },
  { "latlon": [-1.2921, 36.8219], "country": "Kenya" },
  { "latlon": [-0.7183, 36.4385] },
  { "latlon": [-0.5283, 34.4600], "country":  " Kenya " },
  { "latlon": [3.7222, 34.8872], "country": "Kenya" }
]`

	recs := ExtractRecords(input)
	if len(recs) != 5 {
		t.Fatalf("expected 5 records, got %d", len(recs))
	}
	if recs[0].LatLon != [2]float64{-1.3090, 36.7820} {
		t.Errorf("unexpected first pair: %v", recs[0].LatLon)
	}
	if recs[4].LatLon != [2]float64{3.7222, 34.8872} {
		t.Errorf("unexpected last pair: %v", recs[4].LatLon)
	}
	for i, want := range []string{"kenya", "kenya", "", "kenya", "kenya"} {
		if want == "" {
			if recs[i].Country != nil {
				t.Errorf("record %d: expected nil country, got %q", i, *recs[i].Country)
			}
			continue
		}
		if recs[i].Country == nil || *recs[i].Country != want {
			t.Errorf("record %d: expected country %q, got %v", i, want, recs[i].Country)
		}
	}
}

func TestExtractRecords_MissingCountryIsNil(t *testing.T) {
	recs := ExtractRecords(`[{"latlon": [10.0, 20.0]}]`)
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].Country != nil {
		t.Errorf("expected nil country, got %q", *recs[0].Country)
	}
}

func TestExtractRecords_BracketOmission(t *testing.T) {
	bracketed := ExtractRecords(`{"latlon": [1.5, 2.5], "country": "japan"}`)
	unbracketed := ExtractRecords(`{"latlon": 1.5, 2.5, "country": "japan"}`)

	if len(bracketed) != 1 || len(unbracketed) != 1 {
		t.Fatalf("expected 1 record each, got %d and %d", len(bracketed), len(unbracketed))
	}
	if bracketed[0].LatLon != unbracketed[0].LatLon {
		t.Errorf("pairs differ: %v vs %v", bracketed[0].LatLon, unbracketed[0].LatLon)
	}
	if *bracketed[0].Country != *unbracketed[0].Country {
		t.Errorf("countries differ: %q vs %q", *bracketed[0].Country, *unbracketed[0].Country)
	}
}

func TestExtractRecords_FenceStripping(t *testing.T) {
	payload := `[{"latlon": [35.6897, 139.6922], "country": "japan"}]`
	plain := ExtractRecords(payload)

	for _, fenced := range []string{
		"```json\n" + payload + "\n```",
		"```\n" + payload + "\n```",
		"```JSON\n" + payload + "\n```",
	} {
		recs := ExtractRecords(fenced)
		if len(recs) != len(plain) {
			t.Fatalf("fenced input %.20q: expected %d records, got %d", fenced, len(plain), len(recs))
		}
		if recs[0].LatLon != plain[0].LatLon {
			t.Errorf("fenced input %.20q: pair %v, want %v", fenced, recs[0].LatLon, plain[0].LatLon)
		}
	}
}

func TestExtractRecords_QuotedEscapedLayer(t *testing.T) {
	raw := `"[{\"latlon\": [1.5, 2.5], \"country\": \"peru\"}]"`

	recs := ExtractRecords(raw)
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].Country == nil || *recs[0].Country != "peru" {
		t.Errorf("expected country peru, got %v", recs[0].Country)
	}
}

func TestExtractRecords_ProximityAssociation(t *testing.T) {
	input := `"latlon": [1, 1], "country": "kenya" and then "latlon": [2, 2], "country": "peru"`

	recs := ExtractRecords(input)
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Country == nil || *recs[0].Country != "kenya" {
		t.Errorf("first record: expected kenya, got %v", recs[0].Country)
	}
	if recs[1].Country == nil || *recs[1].Country != "peru" {
		t.Errorf("second record: expected peru, got %v", recs[1].Country)
	}
}

func TestExtractRecords_BackwardWindow(t *testing.T) {
	input := `"country": "chile", "latlon": [3, 4]` + strings.Repeat(".", 250)

	recs := ExtractRecords(input)
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].Country == nil || *recs[0].Country != "chile" {
		t.Errorf("expected chile via backward window, got %v", recs[0].Country)
	}
}

func TestExtractRecords_GlobalFallback(t *testing.T) {
	// The country token sits more than a window away from the match on both
	// sides, so only the whole-document fallback can find it.
	input := `"country": "brazil"` + strings.Repeat(" ", 300) + `"latlon": [5, 6]` + strings.Repeat(" ", 300)

	recs := ExtractRecords(input)
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].Country == nil || *recs[0].Country != "brazil" {
		t.Errorf("expected brazil via global fallback, got %v", recs[0].Country)
	}
}

func TestExtractRecords_ProseDegradesToEmpty(t *testing.T) {
	recs := ExtractRecords("I could not find any coordinates for those links, sorry about that.")
	if len(recs) != 0 {
		t.Fatalf("expected no records, got %d", len(recs))
	}
}

func TestExtractRecords_MalformedNumericSkipped(t *testing.T) {
	input := `[
  {"latlon": ["abc", 2.0], "country": "ghana"},
  {"latlon": [1.0, 2.0], "country": "Ghana"}
]`

	recs := ExtractRecords(input)
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].LatLon != [2]float64{1.0, 2.0} {
		t.Errorf("unexpected pair: %v", recs[0].LatLon)
	}
	if recs[0].Country == nil || *recs[0].Country != "ghana" {
		t.Errorf("expected ghana, got %v", recs[0].Country)
	}
}

func TestExtractRecords_BarePairs(t *testing.T) {
	input := `The spots are at [12.5, -3.25] and [4, 5], "country": "mali"`

	recs := ExtractRecords(input)
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].LatLon != [2]float64{12.5, -3.25} {
		t.Errorf("unexpected first pair: %v", recs[0].LatLon)
	}
	if recs[0].Country == nil || *recs[0].Country != "mali" {
		t.Errorf("expected mali, got %v", recs[0].Country)
	}
}

func TestExtractRecords_TaggedTierSuppressesBareTier(t *testing.T) {
	// A single tagged pair plus an untagged bracketed pair: only the tagged
	// tier runs, so the bare pair must not leak into the output.
	input := `"latlon": 1.5, 2.5 with a stray pair [9, 9] later`

	recs := ExtractRecords(input)
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].LatLon != [2]float64{1.5, 2.5} {
		t.Errorf("unexpected pair: %v", recs[0].LatLon)
	}
}

func TestExtractRecords_EmptyArrayFallsThroughToEmpty(t *testing.T) {
	recs := ExtractRecords(`[]`)
	if len(recs) != 0 {
		t.Fatalf("expected no records, got %d", len(recs))
	}
}

func TestExtractRecords_NonArrayJSON(t *testing.T) {
	recs := ExtractRecords(`{"latlon": [7.5, 8.5], "country": "india"}`)
	if len(recs) != 1 {
		t.Fatalf("expected 1 record via regex tier, got %d", len(recs))
	}
	if recs[0].Country == nil || *recs[0].Country != "india" {
		t.Errorf("expected india, got %v", recs[0].Country)
	}
}
