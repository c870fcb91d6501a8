package pathutil

import (
	"regexp"
	"strings"
	"sync"
)

// segmentRegexCache memoizes the compiled regex for a single glob segment
// ("*", "?", "build-*", etc). wildcardToRegex sits on the hot path inside
// MatchesWorkspacePattern, so segments are compiled once and reused.
var segmentRegexCache sync.Map // map[string]*regexp.Regexp

// MatchesWorkspacePattern reports whether relativePath matches the
// WorkspacePattern pattern. A pattern carrying a leading "!" negation marker
// matches relativePath when its body does NOT match — the primitive inverts
// the result itself, so callers can act on its return value directly.
func MatchesWorkspacePattern(relativePath, pattern string) bool {
	negated := strings.HasPrefix(pattern, "!")
	body := strings.TrimPrefix(pattern, "!")

	pathSegs := splitSegments(relativePath)
	patSegs := splitSegments(body)

	matched := matchSegments(pathSegs, patSegs)
	if negated {
		return !matched
	}
	return matched
}

func splitSegments(s string) []string {
	parts := strings.Split(s, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func matchSegments(path, pat []string) bool {
	if len(pat) == 0 {
		return len(path) == 0
	}

	head := pat[0]
	rest := pat[1:]

	if head == "**" {
		if len(rest) == 0 {
			// Trailing ** matches everything remaining, greedily.
			return true
		}
		// Try consuming 0..N path segments for the **, then match the rest.
		for i := 0; i <= len(path); i++ {
			if matchSegments(path[i:], rest) {
				return true
			}
		}
		return false
	}

	if len(path) == 0 {
		return false
	}

	if !matchSegment(head, path[0]) {
		return false
	}
	return matchSegments(path[1:], rest)
}

func matchSegment(pattern, segment string) bool {
	if !strings.ContainsAny(pattern, "*?") {
		return pattern == segment
	}
	re := segmentRegex(pattern)
	return re.MatchString(segment)
}

func segmentRegex(pattern string) *regexp.Regexp {
	if cached, ok := segmentRegexCache.Load(pattern); ok {
		return cached.(*regexp.Regexp)
	}

	var b strings.Builder
	b.WriteString("^")
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString("[^/]*")
		case '?':
			b.WriteString("[^/]")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")

	re := regexp.MustCompile(b.String())
	segmentRegexCache.Store(pattern, re)
	return re
}
