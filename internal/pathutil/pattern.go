// Package pathutil normalizes and matches the path patterns used throughout
// next-prune's config and workspace-discovery layers: canonical POSIX-slashed
// relative paths, with a narrow segment-glob dialect for workspace patterns.
package pathutil

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

var windowsDrivePattern = regexp.MustCompile(`^[A-Za-z]:/`)

// NormalizeOptions controls edge-case behavior of the normalizers.
type NormalizeOptions struct {
	// AllowEmpty makes an empty (post-trim) input normalize to "" instead of
	// being rejected. Used for relative-path arguments in match helpers.
	AllowEmpty bool
}

// NormalizePathPattern canonicalizes value into a PathPattern: POSIX-slashed,
// no leading "./" or "/", no repeated slashes, no trailing slash, no ".."
// components, no Windows drive prefix.
func NormalizePathPattern(value string) (string, error) {
	return normalize(value, NormalizeOptions{})
}

// NormalizePathPatternAllowEmpty behaves like NormalizePathPattern but treats
// an empty/whitespace-only input as the valid empty pattern "".
func NormalizePathPatternAllowEmpty(value string) (string, error) {
	return normalize(value, NormalizeOptions{AllowEmpty: true})
}

// NormalizeWorkspacePattern canonicalizes value into a WorkspacePattern: a
// PathPattern optionally prefixed with "!" negation.
func NormalizeWorkspacePattern(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	negated := strings.HasPrefix(trimmed, "!")
	body := trimmed
	if negated {
		body = trimmed[1:]
	}

	normalized, err := normalize(body, NormalizeOptions{})
	if err != nil {
		return "", err
	}
	if negated {
		return "!" + normalized, nil
	}
	return normalized, nil
}

func normalize(value string, opts NormalizeOptions) (string, error) {
	s := strings.TrimSpace(value)
	s = strings.ReplaceAll(s, `\`, "/")

	for strings.HasPrefix(s, "./") {
		s = s[2:]
	}
	s = strings.TrimLeft(s, "/")

	s = collapseSlashes(s)
	s = strings.TrimRight(s, "/")

	if s == "" || s == "." {
		if opts.AllowEmpty {
			return "", nil
		}
		return "", fmt.Errorf("pathutil: empty pattern %q", value)
	}

	s = path.Clean(s)

	if s == "" || s == "." {
		if opts.AllowEmpty {
			return "", nil
		}
		return "", fmt.Errorf("pathutil: empty pattern %q", value)
	}

	if s == ".." || strings.HasPrefix(s, "../") || strings.Contains(s, "/../") {
		return "", fmt.Errorf("pathutil: traversal pattern %q", value)
	}
	if windowsDrivePattern.MatchString(s) {
		return "", fmt.Errorf("pathutil: drive-prefixed pattern %q", value)
	}

	return s, nil
}

func collapseSlashes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevSlash := false
	for _, r := range s {
		if r == '/' {
			if prevSlash {
				continue
			}
			prevSlash = true
		} else {
			prevSlash = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// MatchesConfigPattern reports whether relativePath is at or under pattern,
// as a prefix match on normalized path segments (not a glob).
func MatchesConfigPattern(relativePath, pattern string) bool {
	rel, err := normalize(relativePath, NormalizeOptions{AllowEmpty: true})
	if err != nil {
		return false
	}
	pat, err := normalize(pattern, NormalizeOptions{AllowEmpty: true})
	if err != nil {
		return false
	}
	if pat == "" {
		return rel == ""
	}
	return rel == pat || strings.HasPrefix(rel, pat+"/")
}
