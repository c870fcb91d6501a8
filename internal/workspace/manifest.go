// Package workspace enumerates monorepo workspace directories from manifest
// files (package.json, pnpm-workspace.yaml, lerna.json) or, failing that, a
// heuristic scan of conventional monorepo layouts.
package workspace

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nextprune/nextprune/internal/pathutil"
)

// collectManifestPatterns reads, in order, package.json.workspaces,
// pnpm-workspace.yaml, and lerna.json.packages, and returns every candidate
// WorkspacePattern string it found (before normalization). hasManifest is
// true if any of the three sources yielded any candidate, even one that is
// later rejected by normalization.
func collectManifestPatterns(root string) (patterns []string, hasManifest bool) {
	if pkg, ok := readPackageJSONWorkspaces(root); ok {
		hasManifest = true
		patterns = append(patterns, pkg...)
	}
	if pnpm, ok := readPnpmWorkspaceYAML(root); ok {
		hasManifest = true
		patterns = append(patterns, pnpm...)
	}
	if lerna, ok := readLernaPackages(root); ok {
		hasManifest = true
		patterns = append(patterns, lerna...)
	}
	return patterns, hasManifest
}

type packageJSONWorkspaces struct {
	Workspaces json.RawMessage `json:"workspaces"`
}

func readPackageJSONWorkspaces(root string) ([]string, bool) {
	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		return nil, false
	}

	var pkg packageJSONWorkspaces
	if err := json.Unmarshal(data, &pkg); err != nil || len(pkg.Workspaces) == 0 {
		return nil, false
	}

	var asArray []string
	if err := json.Unmarshal(pkg.Workspaces, &asArray); err == nil {
		if len(asArray) == 0 {
			return nil, false
		}
		return asArray, true
	}

	var asObject struct {
		Packages []string `json:"packages"`
	}
	if err := json.Unmarshal(pkg.Workspaces, &asObject); err == nil && len(asObject.Packages) > 0 {
		return asObject.Packages, true
	}

	return nil, false
}

type lernaJSON struct {
	Packages []string `json:"packages"`
}

func readLernaPackages(root string) ([]string, bool) {
	data, err := os.ReadFile(filepath.Join(root, "lerna.json"))
	if err != nil {
		return nil, false
	}

	var lerna lernaJSON
	if err := json.Unmarshal(data, &lerna); err != nil || len(lerna.Packages) == 0 {
		return nil, false
	}
	return lerna.Packages, true
}

var (
	pnpmPackagesKeyPattern = regexp.MustCompile(`^packages\s*:`)
	pnpmTopLevelKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+\s*:`)
	pnpmListItemPattern    = regexp.MustCompile(`^-\s*["']?([^"']+)["']?\s*$`)
)

// readPnpmWorkspaceYAML is a narrow line-based parser over the single
// "packages:" list a pnpm-workspace.yaml typically carries. It is
// deliberately not a general YAML parser: spec's negation/comment/
// termination semantics are defined over exactly this grammar.
func readPnpmWorkspaceYAML(root string) ([]string, bool) {
	f, err := os.Open(filepath.Join(root, "pnpm-workspace.yaml"))
	if err != nil {
		return nil, false
	}
	defer f.Close()

	var patterns []string
	inPackages := false

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if !inPackages {
			if pnpmPackagesKeyPattern.MatchString(trimmed) {
				inPackages = true
			}
			continue
		}

		if pnpmTopLevelKeyPattern.MatchString(trimmed) && !strings.HasPrefix(trimmed, "-") {
			break
		}

		if m := pnpmListItemPattern.FindStringSubmatch(trimmed); m != nil {
			patterns = append(patterns, m[1])
		}
	}

	if len(patterns) == 0 {
		return nil, false
	}
	return patterns, true
}

// normalizeManifestPatterns normalizes a raw pattern list as
// WorkspacePatterns, dropping any that fail normalization.
func normalizeManifestPatterns(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		normalized, err := pathutil.NormalizeWorkspacePattern(p)
		if err != nil {
			continue
		}
		out = append(out, normalized)
	}
	return out
}
