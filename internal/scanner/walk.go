package scanner

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/nextprune/nextprune/internal/fsutil"
	"github.com/nextprune/nextprune/internal/model"
)

// walker holds the state shared across one Scan call's concurrent
// traversal: the discovered-candidates collector, the fd-limiting
// semaphore, and the set of known workspace real paths used to avoid
// double-counting a workspace member when the project-scope walk reaches
// its directory.
type walker struct {
	opts           Options
	skip           map[string]bool
	collector      *collector
	workspaceReals map[string]bool
	hasWorkspace   bool
	sem            *semaphore.Weighted
	logger         *slog.Logger
}

func newWalker(opts Options, collector *collector, workspaceReals map[string]bool) *walker {
	return &walker{
		opts:           opts,
		skip:           opts.skipSet(),
		collector:      collector,
		workspaceReals: workspaceReals,
		hasWorkspace:   len(workspaceReals) > 0,
		sem:            semaphore.NewWeighted(int64(opts.concurrency())),
		logger:         opts.Logger,
	}
}

func (w *walker) walkRoot(ctx context.Context, root scanRoot) error {
	w.scanProjectLocalPmCaches(root)
	return w.walkDir(ctx, root.Path, root.RealPath, root.Scope, 0)
}

func (w *walker) walkDir(ctx context.Context, dirPath, rootReal string, scope model.CleanupScope, depth int) error {
	if err := w.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	entries, err := os.ReadDir(dirPath)
	w.sem.Release(1)

	if err != nil {
		w.logger.Warn("readdir failed, skipping subtree", "path", dirPath, "error", err)
		return nil
	}

	if candidate, ok := findCustomDistDir(dirPath); ok {
		w.emitIfContained(candidate, rootReal, scope, model.CleanupArtifact)
	}

	maxDepth, limited := w.opts.maxDepthOrUnlimited()

	g, gctx := errgroup.WithContext(ctx)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		g.Go(func() error {
			return w.handleEntry(gctx, dirPath, name, rootReal, scope, depth, maxDepth, limited)
		})
	}
	return g.Wait()
}

func (w *walker) handleEntry(ctx context.Context, dirPath, name, rootReal string, scope model.CleanupScope, depth int, maxDepth int, limited bool) error {
	childPath := filepath.Join(dirPath, name)

	if artifactNames[name] {
		w.emitIfContained(childPath, rootReal, scope, model.CleanupArtifact)
		return nil
	}

	if name == "node_modules" {
		if w.opts.IncludeNodeModules {
			cleanupType := model.CleanupArtifact
			if scope == model.ScopeWorkspace {
				cleanupType = model.CleanupWorkspaceNodeModules
			}
			w.emitIfContained(childPath, rootReal, scope, cleanupType)
		}
		return nil
	}

	if name == ".vercel" {
		outputPath := filepath.Join(childPath, "output")
		if info, err := os.Stat(outputPath); err == nil && info.IsDir() {
			w.emitIfContained(outputPath, rootReal, scope, model.CleanupArtifact)
		}
		return nil
	}

	if w.skip[name] {
		return nil
	}

	if limited && depth >= maxDepth {
		return nil
	}

	if scope == model.ScopeProject && w.hasWorkspace && w.isKnownWorkspaceRoot(childPath) {
		return nil
	}

	return w.walkDir(ctx, childPath, rootReal, scope, depth+1)
}

func (w *walker) isKnownWorkspaceRoot(path string) bool {
	real, err := fsutil.RealPath(path)
	if err != nil {
		return false
	}
	return w.workspaceReals[real]
}

func (w *walker) emitIfContained(path, rootReal string, scope model.CleanupScope, cleanupType model.CleanupType) {
	real, err := fsutil.RealPath(path)
	if err != nil {
		return
	}
	if !fsutil.Contains(rootReal, real) {
		return
	}
	w.collector.emit(model.ScanItem{
		Path:         path,
		RealPath:     real,
		CleanupScope: scope,
		CleanupType:  cleanupType,
	})
}

func (w *walker) scanProjectLocalPmCaches(root scanRoot) {
	if !w.opts.IncludeProjectLocalPmCaches {
		return
	}
	for _, rel := range pmCacheRelPaths {
		candidate := filepath.Join(root.Path, rel)
		info, err := os.Stat(candidate)
		if err != nil || !info.IsDir() {
			continue
		}
		w.emitIfContained(candidate, root.RealPath, root.Scope, model.CleanupPMCache)
	}
}
