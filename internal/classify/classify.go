// Package classify derives the policy-facing CandidateType of a scan item
// and tokenizes the cleanup-scope option string used to filter a scan by
// candidate family.
package classify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nextprune/nextprune/internal/model"
)

var (
	nodeModulesPattern = regexp.MustCompile(`(^|/)node_modules(/|$)`)
	pmCachePatterns    = []*regexp.Regexp{
		regexp.MustCompile(`(^|/)\.pnpm-store(/|$)`),
		regexp.MustCompile(`(^|/)\.pnpm-cache(/|$)`),
		regexp.MustCompile(`(^|/)\.npm(/|$)`),
		regexp.MustCompile(`(^|/)\.yarn/cache(/|$)`),
		regexp.MustCompile(`(^|/)\.yarn/unplugged(/|$)`),
	}
)

// CandidateType derives the CandidateType of item per its CleanupType, and
// falls back to a path-pattern match over its normalized path otherwise.
func CandidateType(item model.ScanItem) model.CandidateType {
	switch item.CleanupType {
	case model.CleanupAsset:
		return model.CandidateAsset
	case model.CleanupPMCache:
		return model.CandidatePMCache
	case model.CleanupWorkspaceNodeModules:
		return model.CandidateNodeModules
	}

	normalized := strings.ToLower(strings.ReplaceAll(item.Path, "\\", "/"))

	if nodeModulesPattern.MatchString(normalized) {
		return model.CandidateNodeModules
	}
	for _, p := range pmCachePatterns {
		if p.MatchString(normalized) {
			return model.CandidatePMCache
		}
	}
	return model.CandidateArtifact
}

// ErrUnknownToken is returned by ParseScopeTokens when an input token is not
// one of the recognized cleanup-scope tokens.
type ErrUnknownToken struct {
	Token string
}

func (e ErrUnknownToken) Error() string {
	return fmt.Sprintf("unknown cleanup scope token: %q", e.Token)
}

var tokenExpansions = map[string][]model.CandidateType{
	"default":      allTypes,
	"all":          allTypes,
	"cold-storage": allTypes,
	"coldstorage":  allTypes,
	"archive":      allTypes,
	"project":      allTypes,
	"workspace":    allTypes,
	"safe":         {model.CandidateArtifact, model.CandidateAsset},
	"artifacts":    {model.CandidateArtifact, model.CandidateAsset},
	"artifact":     {model.CandidateArtifact, model.CandidateAsset},
	"node-modules": {model.CandidateNodeModules},
	"node_modules": {model.CandidateNodeModules},
	"nodemodules":  {model.CandidateNodeModules},
	"pm-caches":    {model.CandidatePMCache},
	"pm_caches":    {model.CandidatePMCache},
	"pmcaches":     {model.CandidatePMCache},
}

var allTypes = []model.CandidateType{
	model.CandidateArtifact, model.CandidateAsset, model.CandidateNodeModules, model.CandidatePMCache,
}

// ParseScopeTokens tokenizes a comma-separated cleanup-scope option string
// into the set of allowed CandidateTypes. An empty or whitespace-only input
// allows every type. An unrecognized token fails with ErrUnknownToken.
func ParseScopeTokens(raw string) (map[model.CandidateType]bool, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return typeSet(allTypes), nil
	}

	allowed := make(map[model.CandidateType]bool)
	for _, tok := range strings.Split(trimmed, ",") {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok == "" {
			continue
		}
		expansion, ok := tokenExpansions[tok]
		if !ok {
			return nil, ErrUnknownToken{Token: tok}
		}
		for _, t := range expansion {
			allowed[t] = true
		}
	}
	return allowed, nil
}

func typeSet(types []model.CandidateType) map[model.CandidateType]bool {
	out := make(map[model.CandidateType]bool, len(types))
	for _, t := range types {
		out[t] = true
	}
	return out
}

// ApplyIncludeFlags removes node_modules/pm-cache from allowed per the
// includeNodeModules/includeProjectLocalPmCaches options.
func ApplyIncludeFlags(allowed map[model.CandidateType]bool, includeNodeModules, includeProjectLocalPmCaches bool) {
	if !includeNodeModules {
		delete(allowed, model.CandidateNodeModules)
	}
	if !includeProjectLocalPmCaches {
		delete(allowed, model.CandidatePMCache)
	}
}

// Filter returns the subset of items whose CandidateType is allowed.
func Filter(items []model.ScanItem, allowed map[model.CandidateType]bool) []model.ScanItem {
	out := make([]model.ScanItem, 0, len(items))
	for _, item := range items {
		if allowed[CandidateType(item)] {
			out = append(out, item)
		}
	}
	return out
}
