package geoparse

import "testing"

func TestNormalizeCountry(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string // "" means expect nil
	}{
		{"nil", nil, ""},
		{"plain", "kenya", "kenya"},
		{"mixed case", "Kenya", "kenya"},
		{"padded", "  Japan  ", "japan"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"numeric token", 42.0, "42"},
		{"bool token", true, "true"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeCountry(tc.in)
			if tc.want == "" {
				if got != nil {
					t.Fatalf("expected nil, got %q", *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("expected %q, got nil", tc.want)
			}
			if *got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, *got)
			}
		})
	}
}

func TestNormalizeCountry_Idempotent(t *testing.T) {
	for _, in := range []any{nil, "Kenya", "  Peru ", "", "   ", 7.0, true} {
		once := NormalizeCountry(in)
		twice := NormalizeCountry(once)

		if once == nil || twice == nil {
			if once != twice && (once == nil) != (twice == nil) {
				t.Errorf("input %v: normalization not stable across nil", in)
			}
			continue
		}
		if *once != *twice {
			t.Errorf("input %v: %q != %q after renormalizing", in, *once, *twice)
		}
	}
}
