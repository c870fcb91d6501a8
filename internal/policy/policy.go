// Package policy applies the never-delete/always-delete path patterns and
// the apply-protected classification to a set of scan candidates.
package policy

import (
	"github.com/nextprune/nextprune/internal/classify"
	"github.com/nextprune/nextprune/internal/fsutil"
	"github.com/nextprune/nextprune/internal/model"
	"github.com/nextprune/nextprune/internal/pathutil"
)

// FilterNeverDelete drops any item whose path relative to cwd matches any
// normalized never-delete pattern. An empty pattern list is the identity.
func FilterNeverDelete(items []model.ScanItem, cwd string, patterns []string) []model.ScanItem {
	if len(patterns) == 0 {
		return items
	}
	out := make([]model.ScanItem, 0, len(items))
	for _, item := range items {
		if matchesAny(item.Path, cwd, patterns) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// SelectAlwaysDeletePaths returns the set of item paths whose relative path
// matches any normalized always-delete pattern.
func SelectAlwaysDeletePaths(items []model.ScanItem, cwd string, patterns []string) map[string]bool {
	out := make(map[string]bool)
	if len(patterns) == 0 {
		return out
	}
	for _, item := range items {
		if matchesAny(item.Path, cwd, patterns) {
			out[item.Path] = true
		}
	}
	return out
}

func matchesAny(path, cwd string, patterns []string) bool {
	rel, err := fsutil.ToPosixRel(cwd, path)
	if err != nil {
		return false
	}
	for _, raw := range patterns {
		pattern, err := pathutil.NormalizePathPattern(raw)
		if err != nil {
			continue
		}
		if pathutil.MatchesConfigPattern(rel, pattern) {
			return true
		}
	}
	return false
}

// IsApplyProtected reports whether item belongs to an apply-protected
// candidate family: node_modules or pm-cache. Non-interactive deletion
// workflows must require an explicit apply opt-in when any selected item is
// apply-protected; interactive workflows surface a secondary confirmation.
func IsApplyProtected(item model.ScanItem) bool {
	switch classify.CandidateType(item) {
	case model.CandidateNodeModules, model.CandidatePMCache:
		return true
	default:
		return false
	}
}

// AnyApplyProtected reports whether any item in items is apply-protected.
func AnyApplyProtected(items []model.ScanItem) bool {
	for _, item := range items {
		if IsApplyProtected(item) {
			return true
		}
	}
	return false
}
