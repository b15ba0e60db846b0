package router

import "testing"

func TestTableMatch(t *testing.T) {
	table, err := NewTable(
		"/",
		"/areas",
		"/locations/[suburb]",
		"/locations/featured",
		"/locations/[suburb]/gallery",
	)
	if err != nil {
		t.Fatalf("new table: %v", err)
	}

	tests := []struct {
		name            string
		path            string
		expectedPattern string
		expectedKey     string
		expectedVal     string
	}{
		{name: "root", path: "/", expectedPattern: "/"},
		{name: "areas", path: "/areas", expectedPattern: "/areas"},
		{name: "areas trailing slash", path: "/areas/", expectedPattern: "/areas"},
		{
			name:            "location wildcard",
			path:            "/locations/port-melbourne",
			expectedPattern: "/locations/[suburb]",
			expectedKey:     "suburb",
			expectedVal:     "port-melbourne",
		},
		{name: "static precedence", path: "/locations/featured", expectedPattern: "/locations/featured"},
		{
			name:            "nested wildcard",
			path:            "/locations/carlton/gallery",
			expectedPattern: "/locations/[suburb]/gallery",
			expectedKey:     "suburb",
			expectedVal:     "carlton",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pattern, params, ok := table.Match(tc.path)
			if !ok {
				t.Fatalf("expected a match for %q", tc.path)
			}
			if pattern.String() != tc.expectedPattern {
				t.Fatalf("expected pattern %q, got %q", tc.expectedPattern, pattern.String())
			}
			if tc.expectedKey == "" {
				return
			}

			value, ok := params.Get(tc.expectedKey)
			if !ok {
				t.Fatalf("expected param %q", tc.expectedKey)
			}
			if value != tc.expectedVal {
				t.Fatalf("expected param %q=%q, got %q", tc.expectedKey, tc.expectedVal, value)
			}
		})
	}

	if _, _, ok := table.Match("/locations"); ok {
		t.Fatal("did not expect /locations to match")
	}
}

func TestTableConflict(t *testing.T) {
	if _, err := NewTable("/locations/[suburb]", "/locations/[slug]"); err == nil {
		t.Fatal("expected conflict error, got nil")
	}
	if _, err := NewTable(); err == nil {
		t.Fatal("expected error for empty table")
	}
}

func TestParseRejectsInvalidPatterns(t *testing.T) {
	for _, raw := range []string{"locations", "/locations/[suburb", "/locations/[1x]", "/a[b]c", "/[x]/[x]"} {
		if _, err := Parse(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestPatternMatch(t *testing.T) {
	pattern := MustParse("/locations/[suburb]")

	params, ok := pattern.Match("/locations/st-kilda")
	if !ok {
		t.Fatal("expected wildcard pattern to match")
	}
	if params["suburb"] != "st-kilda" {
		t.Fatalf("expected suburb to be %q, got %q", "st-kilda", params["suburb"])
	}

	if _, ok = pattern.Match("/locations"); ok {
		t.Fatal("expected mismatch for shorter path")
	}
	if _, ok = pattern.Match("/locations/st-kilda/extra"); ok {
		t.Fatal("expected mismatch for longer path")
	}
}

func TestPatternExpand(t *testing.T) {
	pattern := MustParse("/locations/[suburb]")

	got, err := pattern.Expand(Params{"suburb": "carlton"})
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if got != "/locations/carlton" {
		t.Fatalf("expected /locations/carlton, got %q", got)
	}

	if _, err := pattern.Expand(nil); err == nil {
		t.Fatal("expected error for missing param")
	}
	if _, err := pattern.Expand(Params{"suburb": "a/b"}); err == nil {
		t.Fatal("expected error for value containing a slash")
	}

	root, err := MustParse("/").Expand(nil)
	if err != nil || root != "/" {
		t.Fatalf("expected root to expand to /, got %q (%v)", root, err)
	}
}

func TestPatternMatchKeepsParamValueVerbatim(t *testing.T) {
	pattern := MustParse("/locations/[suburb]")

	for _, value := range []string{"carlton ", " carlton", "Carlton"} {
		params, ok := pattern.Match("/locations/" + value)
		if !ok {
			t.Fatalf("expected match for %q", value)
		}
		if got, _ := params.Get("suburb"); got != value {
			t.Fatalf("expected param %q, got %q", value, got)
		}
	}
}
