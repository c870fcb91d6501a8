package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextprune/nextprune/internal/model"
)

func mkdir(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(path, 0o755))
}

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	mkdir(t, filepath.Dir(path))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

func TestScanFindsArtifactDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "apps", "web", ".next", "cache", "blob"), 1024)
	writeFile(t, filepath.Join(root, "apps", "web", "package.json"), 2)

	items, err := Scan(context.Background(), root, Options{
		CleanupScopes: []model.CleanupScope{model.ScopeProject},
		MonorepoMode:  model.MonorepoOff,
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, model.CleanupArtifact, items[0].CleanupType)
	assert.True(t, items[0].Stats.Size >= 1024)
}

func TestScanSkipsNodeModulesByDefault(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "node_modules", "left-pad", "index.js"), 10)

	items, err := Scan(context.Background(), root, Options{
		CleanupScopes: []model.CleanupScope{model.ScopeProject},
		MonorepoMode:  model.MonorepoOff,
	})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestScanIncludesNodeModulesWhenEnabled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "node_modules", "left-pad", "index.js"), 10)

	items, err := Scan(context.Background(), root, Options{
		CleanupScopes:      []model.CleanupScope{model.ScopeProject},
		MonorepoMode:       model.MonorepoOff,
		IncludeNodeModules: true,
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, model.CleanupArtifact, items[0].CleanupType)
}

func TestScanExplicitEmptyCleanupScopesScansNothing(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "apps", "web", ".next", "cache", "blob"), 1024)
	writeFile(t, filepath.Join(root, "apps", "web", "package.json"), 2)

	items, err := Scan(context.Background(), root, Options{
		CleanupScopes: []model.CleanupScope{},
		MonorepoMode:  model.MonorepoAuto,
	})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestScanWorkspaceBeatsProjectOnCollision(t *testing.T) {
	root := t.TempDir()
	mkdir(t, filepath.Join(root, "apps", "web"))
	writeFile(t, filepath.Join(root, "apps", "web", "package.json"), 2)
	writeFile(t, filepath.Join(root, "apps", "web", ".next", "cache", "blob"), 100)
	writeFile(t, filepath.Join(root, "package.json"), 2)

	items, err := Scan(context.Background(), root, Options{
		CleanupScopes: []model.CleanupScope{model.ScopeProject, model.ScopeWorkspace},
		MonorepoMode:  model.MonorepoAuto,
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, model.ScopeWorkspace, items[0].CleanupScope)
}

func TestScanOrdersBySizeDescPathAsc(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", ".turbo", "blob"), 2048)
	writeFile(t, filepath.Join(root, "b", ".turbo", "blob"), 1024)

	items, err := Scan(context.Background(), root, Options{
		CleanupScopes: []model.CleanupScope{model.ScopeProject},
		MonorepoMode:  model.MonorepoOff,
	})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.GreaterOrEqual(t, items[0].Stats.Size, items[1].Stats.Size)
}

func TestFindCustomDistDirRejectsAbsolute(t *testing.T) {
	root := t.TempDir()
	mkdir(t, filepath.Join(root, "build-output"))
	require.NoError(t, os.WriteFile(filepath.Join(root, "next.config.js"),
		[]byte(`module.exports = { distDir: "/build-output" }`), 0o644))

	_, ok := findCustomDistDir(root)
	assert.False(t, ok)
}

func TestFindCustomDistDirAcceptsRelative(t *testing.T) {
	root := t.TempDir()
	mkdir(t, filepath.Join(root, "build-output"))
	require.NoError(t, os.WriteFile(filepath.Join(root, "next.config.js"),
		[]byte("// leading comment\nmodule.exports = { distDir: 'build-output' }"), 0o644))

	candidate, ok := findCustomDistDir(root)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "build-output"), candidate)
}
