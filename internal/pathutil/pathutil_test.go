package pathutil

import "testing"

func TestNormalizePathPattern(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"apps/web", "apps/web", false},
		{"./apps/web", "apps/web", false},
		{"/apps/web", "apps/web", false},
		{`apps\web`, "apps/web", false},
		{"apps//web", "apps/web", false},
		{"apps/web/", "apps/web", false},
		{"", "", true},
		{".", "", true},
		{"..", "", true},
		{"../apps", "", true},
		{"apps/../web", "web", false},
		{"C:/apps", "", true},
	}
	for _, tc := range cases {
		got, err := NormalizePathPattern(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("NormalizePathPattern(%q): expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("NormalizePathPattern(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("NormalizePathPattern(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizePathPatternAllowEmpty(t *testing.T) {
	got, err := NormalizePathPatternAllowEmpty("   ")
	if err != nil || got != "" {
		t.Fatalf("got (%q, %v), want (\"\", nil)", got, err)
	}
}

func TestNormalizeWorkspacePattern(t *testing.T) {
	got, err := NormalizeWorkspacePattern("!apps/ignored/")
	if err != nil {
		t.Fatal(err)
	}
	if got != "!apps/ignored" {
		t.Fatalf("got %q, want %q", got, "!apps/ignored")
	}
}

func TestMatchesConfigPattern(t *testing.T) {
	cases := []struct {
		rel, pat string
		want     bool
	}{
		{"apps/web/.next", "apps/web", true},
		{"apps/web", "apps/web", true},
		{"apps/webby", "apps/web", false},
		{"apps/api/.next", "apps/web", false},
	}
	for _, tc := range cases {
		if got := MatchesConfigPattern(tc.rel, tc.pat); got != tc.want {
			t.Errorf("MatchesConfigPattern(%q, %q) = %v, want %v", tc.rel, tc.pat, got, tc.want)
		}
	}
}

func TestMatchesWorkspacePattern(t *testing.T) {
	cases := []struct {
		rel, pat string
		want     bool
	}{
		{"apps/site", "apps/*", true},
		{"apps/site", "apps/s?te", true},
		{"packages/a/b", "packages/**", true},
		{"packages", "packages/**", true},
		{"apps/site", "!apps/ignored", true},
		{"apps/ignored", "!apps/ignored", false},
	}
	for _, tc := range cases {
		if got := MatchesWorkspacePattern(tc.rel, tc.pat); got != tc.want {
			t.Errorf("MatchesWorkspacePattern(%q, %q) = %v, want %v", tc.rel, tc.pat, got, tc.want)
		}
	}
}
