package workspace

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// WorkspaceSkipDirs are directory names that heuristic discovery and the
// wildcard and "**" segments of pattern expansion never descend into. A
// literal pattern segment is followed even when it names one of them.
var WorkspaceSkipDirs = map[string]bool{
	".git": true, ".svn": true, ".hg": true,
	"node_modules": true, ".next": true, ".turbo": true, ".vercel": true,
	"coverage": true, ".swc": true, ".docusaurus": true, "storybook-static": true,
}

var wildcardSegmentCache sync.Map // map[string]*regexp.Regexp

func wildcardSegmentRegex(segment string) *regexp.Regexp {
	if cached, ok := wildcardSegmentCache.Load(segment); ok {
		return cached.(*regexp.Regexp)
	}
	var b strings.Builder
	b.WriteString("^")
	for _, r := range segment {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	re := regexp.MustCompile(b.String())
	wildcardSegmentCache.Store(segment, re)
	return re
}

// expandPattern walks root for directories matching the normalized,
// non-negated WorkspacePattern pattern and appends absolute directory paths
// (those that contain a package.json file) to results.
func expandPattern(root, pattern string, results *[]string) {
	segments := splitPatternSegments(pattern)
	expandSegments(root, segments, 0, results)
}

func splitPatternSegments(pattern string) []string {
	parts := strings.Split(pattern, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func expandSegments(dir string, segments []string, idx int, results *[]string) {
	if idx >= len(segments) {
		if isPackageDir(dir) {
			if abs, err := filepath.Abs(dir); err == nil {
				*results = append(*results, abs)
			}
		}
		return
	}

	segment := segments[idx]

	switch {
	case segment == "**":
		expandSegments(dir, segments, idx+1, results)
		for _, name := range listSubdirs(dir) {
			if WorkspaceSkipDirs[name] {
				continue
			}
			expandSegments(filepath.Join(dir, name), segments, idx, results)
		}

	case strings.ContainsAny(segment, "*?"):
		re := wildcardSegmentRegex(segment)
		for _, name := range listSubdirs(dir) {
			if WorkspaceSkipDirs[name] {
				continue
			}
			if re.MatchString(name) {
				expandSegments(filepath.Join(dir, name), segments, idx+1, results)
			}
		}

	default:
		next := filepath.Join(dir, segment)
		if isDir(next) {
			expandSegments(next, segments, idx+1, results)
		}
	}
}

func listSubdirs(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isPackageDir(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, "package.json"))
	return err == nil && !info.IsDir()
}
