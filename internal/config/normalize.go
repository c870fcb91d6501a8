package config

import (
	"github.com/nextprune/nextprune/internal/model"
	"github.com/nextprune/nextprune/internal/pathutil"
)

// applyRaw merges one parsed config source over base, field by field,
// following the normalization rules in spec §4.B. Only keys present in raw
// are considered. A present-but-malformed boolean keeps base's current value
// for that field; a present-but-malformed value for any other field resets
// it to that field's default (empty pattern list, auto, manifest-fallback,
// both scopes, or unlimited depth).
func applyRaw(base model.PruneConfig, raw rawConfig) model.PruneConfig {
	out := base

	if v, ok := raw["alwaysDelete"]; ok {
		out.AlwaysDelete = normalizePatternList(v)
	}
	if v, ok := raw["neverDelete"]; ok {
		out.NeverDelete = normalizePatternList(v)
	}
	if v, ok := raw["checkUnusedAssets"]; ok {
		out.CheckUnusedAssets = normalizeBool(v, out.CheckUnusedAssets)
	}
	if v, ok := raw["includeNodeModules"]; ok {
		out.IncludeNodeModules = normalizeBool(v, out.IncludeNodeModules)
	}
	if v, ok := raw["includeProjectLocalPmCaches"]; ok {
		out.IncludeProjectLocalPmCaches = normalizeBool(v, out.IncludeProjectLocalPmCaches)
	}
	if v, ok := raw["monorepoMode"]; ok {
		out.MonorepoMode = normalizeMonorepoMode(v)
	}
	if v, ok := raw["workspaceDiscoveryMode"]; ok {
		out.WorkspaceDiscoveryMode = normalizeWorkspaceDiscoveryMode(v)
	}
	if v, ok := raw["cleanupScopes"]; ok {
		out.CleanupScopes = normalizeCleanupScopes(v)
	}
	if v, ok := raw["maxScanDepth"]; ok {
		out.MaxScanDepth = normalizeMaxScanDepth(v)
	}

	return out
}

// normalizePatternList filters v to strings, normalizes each as a
// PathPattern, drops silently-invalid entries, and deduplicates preserving
// first occurrence.
func normalizePatternList(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}

	seen := make(map[string]bool, len(arr))
	var out []string
	for _, item := range arr {
		s, ok := item.(string)
		if !ok {
			continue
		}
		normalized, err := pathutil.NormalizePathPattern(s)
		if err != nil {
			continue
		}
		if seen[normalized] {
			continue
		}
		seen[normalized] = true
		out = append(out, normalized)
	}
	return out
}

func normalizeBool(v any, fallback bool) bool {
	b, ok := v.(bool)
	if !ok {
		return fallback
	}
	return b
}

func normalizeMonorepoMode(v any) model.MonorepoMode {
	s, ok := v.(string)
	if !ok {
		return model.MonorepoAuto
	}
	switch model.MonorepoMode(s) {
	case model.MonorepoAuto, model.MonorepoOn, model.MonorepoOff:
		return model.MonorepoMode(s)
	default:
		return model.MonorepoAuto
	}
}

func normalizeWorkspaceDiscoveryMode(v any) model.WorkspaceDiscoveryMode {
	s, ok := v.(string)
	if !ok {
		return model.DiscoveryManifestFallback
	}
	switch s {
	case string(model.DiscoveryManifestFallback), string(model.DiscoveryManifestOnly), string(model.DiscoveryHeuristicOnly):
		return model.WorkspaceDiscoveryMode(s)
	case "auto":
		return model.DiscoveryManifestFallback
	case "manifest":
		return model.DiscoveryManifestOnly
	case "heuristic":
		return model.DiscoveryHeuristicOnly
	default:
		return model.DiscoveryManifestFallback
	}
}

func normalizeCleanupScopes(v any) []model.CleanupScope {
	arr, ok := v.([]any)
	if !ok {
		return []model.CleanupScope{model.ScopeProject, model.ScopeWorkspace}
	}

	seen := make(map[model.CleanupScope]bool, len(arr))
	out := make([]model.CleanupScope, 0, len(arr))
	for _, item := range arr {
		s, ok := item.(string)
		if !ok {
			continue
		}
		scope := model.CleanupScope(s)
		if scope != model.ScopeProject && scope != model.ScopeWorkspace {
			continue
		}
		if seen[scope] {
			continue
		}
		seen[scope] = true
		out = append(out, scope)
	}
	return out
}

func normalizeMaxScanDepth(v any) *int {
	f, ok := v.(float64)
	if !ok {
		return nil
	}
	n := int(f)
	if float64(n) != f || n < 0 {
		return nil
	}
	return &n
}
