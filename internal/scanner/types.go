// Package scanner implements the concurrent, symlink-safe directory walk
// that discovers build artifacts, asset-adjacent caches, and package-manager
// caches under a project root and its workspace members.
package scanner

import (
	"log/slog"

	"github.com/nextprune/nextprune/internal/model"
)

// Options configures a scan. Zero value scans both scopes with manifest
// fallback discovery and no node_modules/pm-cache emission.
type Options struct {
	SkipDirs                    []string
	MonorepoMode                model.MonorepoMode
	WorkspaceDiscoveryMode       model.WorkspaceDiscoveryMode
	CleanupScopes                []model.CleanupScope
	IncludeNodeModules           bool
	IncludeProjectLocalPmCaches bool
	MaxDepth                    *int

	// Concurrency bounds outstanding open file descriptors during traversal
	// and stat aggregation. 0 selects a default of 64.
	Concurrency int

	Logger *slog.Logger
}

func (o Options) skipSet() map[string]bool {
	out := make(map[string]bool, len(defaultSkipNames)+len(o.SkipDirs))
	for name := range defaultSkipNames {
		out[name] = true
	}
	for _, name := range o.SkipDirs {
		out[name] = true
	}
	return out
}

func (o Options) concurrency() int {
	if o.Concurrency > 0 {
		return o.Concurrency
	}
	return 64
}

func (o Options) maxDepthOrUnlimited() (int, bool) {
	if o.MaxDepth == nil {
		return 0, false
	}
	return *o.MaxDepth, true
}

// scanRoot is one filesystem subtree the walker enumerates: the project
// root itself, or one discovered workspace member directory.
type scanRoot struct {
	Path     string
	RealPath string
	Scope    model.CleanupScope
}
