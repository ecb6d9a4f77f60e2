package geoparse

import "testing"

func TestPreprocess(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"passthrough", `[{"latlon": [1, 2]}]`, `[{"latlon": [1, 2]}]`},
		{"trims whitespace", "  hello  \n", "hello"},
		{"strips fence", "```\n[1, 2]\n```", "[1, 2]"},
		{"strips tagged fence", "```json\n[1, 2]\n```", "[1, 2]"},
		{"fence tag case-insensitive", "```JSON\n[1, 2]\n```", "[1, 2]"},
		{"open fence only", "```json\n[1, 2]", "[1, 2]"},
		{"unwraps quoted layer", `"[1, 2]"`, "[1, 2]"},
		{"decodes escapes", `"line one\nline two"`, "line one\nline two"},
		{"bad quoting kept", `"unterminated`, `"unterminated`},
		{"single quotes kept", `'[1, 2]'`, `'[1, 2]'`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Preprocess(tc.in); got != tc.want {
				t.Errorf("Preprocess(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
