package workspace

import (
	"sort"
	"strings"

	"github.com/nextprune/nextprune/internal/fsutil"
	"github.com/nextprune/nextprune/internal/model"
	"github.com/nextprune/nextprune/internal/pathutil"
)

// Resolve enumerates workspace directories under root according to mode.
// Manifest files that fail to read or parse are skipped silently; the
// result degrades to whatever sources were readable, down to an empty
// result with Source == model.SourceNone.
func Resolve(root string, mode model.WorkspaceDiscoveryMode) (model.WorkspaceDiscoveryResult, error) {
	rootReal, err := fsutil.RealPath(root)
	if err != nil {
		return model.WorkspaceDiscoveryResult{}, err
	}

	rawPatterns, hasManifest := collectManifestPatterns(root)
	normalized := normalizeManifestPatterns(rawPatterns)

	var includes, excludes []string
	for _, p := range normalized {
		if strings.HasPrefix(p, "!") {
			excludes = append(excludes, strings.TrimPrefix(p, "!"))
		} else {
			includes = append(includes, p)
		}
	}

	var dirs []string
	var source model.WorkspaceSource

	if mode == model.DiscoveryManifestOnly || mode == model.DiscoveryManifestFallback {
		for _, inc := range includes {
			expandPattern(root, inc, &dirs)
		}
		if len(dirs) > 0 {
			source = model.SourceManifest
		}
	}

	if len(dirs) == 0 && mode != model.DiscoveryManifestOnly {
		dirs = discoverHeuristic(root)
		if len(dirs) > 0 {
			source = model.SourceHeuristic
		}
	}

	if len(dirs) == 0 {
		source = model.SourceNone
	}

	dirs = filterExcluded(root, dirs, excludes)
	dirs = containAndDedup(rootReal, dirs)
	sort.Strings(dirs)

	return model.WorkspaceDiscoveryResult{
		RootRealpath:         rootReal,
		WorkspaceDirectories: dirs,
		Source:               source,
		ManifestPatterns:      normalized,
		HasManifest:           hasManifest,
	}, nil
}

func filterExcluded(root string, dirs, excludes []string) []string {
	if len(excludes) == 0 {
		return dirs
	}
	out := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		rel, err := fsutil.ToPosixRel(root, dir)
		if err != nil {
			out = append(out, dir)
			continue
		}
		excluded := false
		for _, ex := range excludes {
			if pathutil.MatchesWorkspacePattern(rel, ex) {
				excluded = true
				break
			}
		}
		if !excluded {
			out = append(out, dir)
		}
	}
	return out
}

func containAndDedup(rootReal string, dirs []string) []string {
	seen := make(map[string]bool, len(dirs))
	out := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		real, err := fsutil.RealPath(dir)
		if err != nil {
			continue
		}
		if !fsutil.Contains(rootReal, real) {
			continue
		}
		if seen[real] {
			continue
		}
		seen[real] = true
		out = append(out, real)
	}
	return out
}
