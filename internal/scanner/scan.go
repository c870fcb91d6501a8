package scanner

import (
	"context"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/nextprune/nextprune/internal/fsutil"
	"github.com/nextprune/nextprune/internal/model"
	"github.com/nextprune/nextprune/internal/workspace"
)

// Scan discovers cleanup candidates under root and returns them with full
// recursive stats, sorted by size desc, path asc.
func Scan(ctx context.Context, root string, opts Options) ([]model.ScanItem, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	opts.Logger = logger
	if opts.WorkspaceDiscoveryMode == "" {
		opts.WorkspaceDiscoveryMode = model.DiscoveryManifestFallback
	}

	rootReal, err := fsutil.RealPath(root)
	if err != nil {
		return nil, err
	}

	// A nil CleanupScopes means the caller left it unset and wants the
	// default; a non-nil empty slice is an intentional "scan nothing"
	// (config.Resolve produces exactly this for an explicit
	// "cleanupScopes": []). Only the former gets re-defaulted here.
	scopes := opts.CleanupScopes
	if scopes == nil {
		scopes = []model.CleanupScope{model.ScopeProject, model.ScopeWorkspace}
	}
	wantsProject := containsScope(scopes, model.ScopeProject)
	wantsWorkspace := containsScope(scopes, model.ScopeWorkspace)

	var roots []scanRoot
	workspaceReals := make(map[string]bool)

	if wantsProject {
		roots = append(roots, scanRoot{Path: root, RealPath: rootReal, Scope: model.ScopeProject})
	}

	if wantsWorkspace && opts.MonorepoMode != model.MonorepoOff {
		result, err := workspace.Resolve(root, opts.WorkspaceDiscoveryMode)
		if err != nil {
			logger.Warn("workspace discovery failed", "root", root, "error", err)
		} else {
			for _, dir := range result.WorkspaceDirectories {
				dirReal, err := fsutil.RealPath(dir)
				if err != nil {
					continue
				}
				workspaceReals[dirReal] = true
				roots = append(roots, scanRoot{Path: dir, RealPath: dirReal, Scope: model.ScopeWorkspace})
			}
		}
	}

	collector := newCollector()
	w := newWalker(opts, collector, workspaceReals)

	g, gctx := errgroup.WithContext(ctx)
	for _, r := range roots {
		r := r
		g.Go(func() error {
			return w.walkRoot(gctx, r)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := collector.items()
	statErr := statAll(ctx, items, opts.concurrency())
	if statErr != nil {
		return nil, statErr
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Stats.Size != items[j].Stats.Size {
			return items[i].Stats.Size > items[j].Stats.Size
		}
		return items[i].Path < items[j].Path
	})

	return items, nil
}

func containsScope(scopes []model.CleanupScope, target model.CleanupScope) bool {
	for _, s := range scopes {
		if s == target {
			return true
		}
	}
	return false
}

// statAll fills in item.Stats for every item in place, bounding outstanding
// concurrent stat traversals to concurrency.
func statAll(ctx context.Context, items []model.ScanItem, concurrency int) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i := range items {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			items[i].Stats = computeStats(items[i].Path)
			return nil
		})
	}
	return g.Wait()
}
