package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextprune/nextprune/internal/model"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestResolveDefaultsWithNoConfigFiles(t *testing.T) {
	root := t.TempDir()
	cfg := Resolve(root, nil)
	assert.Equal(t, model.Defaults(), cfg)
}

func TestResolvePackageJSONKey(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{
		"next-prune": {
			"neverDelete": ["apps/web"],
			"includeNodeModules": true,
			"monorepoMode": "on"
		}
	}`)

	cfg := Resolve(root, nil)
	assert.Equal(t, []string{"apps/web"}, cfg.NeverDelete)
	assert.True(t, cfg.IncludeNodeModules)
	assert.Equal(t, model.MonorepoOn, cfg.MonorepoMode)
}

func TestResolveRCFileWinsOverPackageJSON(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{"next-prune": {"monorepoMode": "on"}}`)
	writeFile(t, filepath.Join(root, ".next-prunerc.json"), `{"monorepoMode": "off"}`)

	cfg := Resolve(root, nil)
	assert.Equal(t, model.MonorepoOff, cfg.MonorepoMode)
}

func TestResolveMalformedJSONIsSilentlyIgnored(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{ not valid json`)

	cfg := Resolve(root, nil)
	assert.Equal(t, model.Defaults(), cfg)
}

func TestNormalizeCleanupScopesExplicitEmptyMeansNone(t *testing.T) {
	got := normalizeCleanupScopes([]any{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNormalizeCleanupScopesNonArrayFallsBackToDefault(t *testing.T) {
	got := normalizeCleanupScopes("not-an-array")
	assert.Equal(t, []model.CleanupScope{model.ScopeProject, model.ScopeWorkspace}, got)
}

func TestNormalizeMaxScanDepthRejectsFractional(t *testing.T) {
	assert.Nil(t, normalizeMaxScanDepth(1.5))
	assert.Nil(t, normalizeMaxScanDepth(-1.0))
	got := normalizeMaxScanDepth(3.0)
	require.NotNil(t, got)
	assert.Equal(t, 3, *got)
}

func TestNormalizeWorkspaceDiscoveryModeLegacyAliases(t *testing.T) {
	assert.Equal(t, model.DiscoveryManifestFallback, normalizeWorkspaceDiscoveryMode("auto"))
	assert.Equal(t, model.DiscoveryManifestOnly, normalizeWorkspaceDiscoveryMode("manifest"))
	assert.Equal(t, model.DiscoveryHeuristicOnly, normalizeWorkspaceDiscoveryMode("heuristic"))
}
